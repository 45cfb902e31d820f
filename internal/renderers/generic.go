package renderers

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strconv"

	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/markdown"
)

type genericBlock struct {
	Key  string
	Kind string
	Text string
	HTML template.HTML
	Src  string
	Alt  string
}

type genericSetting struct {
	Key   string
	Value string
}

type genericView struct {
	ID       string
	Section  string
	Variant  string
	Blocks   []genericBlock
	Settings []genericSetting
}

// NewGenericFactory returns the schema-driven fallback. The renderer walks
// the effective props of the variant and ignores any other field.
func NewGenericFactory(parser *markdown.Parser) Factory {
	if parser == nil {
		parser = markdown.NewParser(markdown.Options{})
	}
	return func(entry *catalog.Entry, variant catalog.Variant) Renderer {
		return &genericRenderer{
			props:  entry.PropsFor(variant.Key),
			parser: parser,
		}
	}
}

type genericRenderer struct {
	props  []catalog.PropDescriptor
	parser *markdown.Parser
}

func (r *genericRenderer) Render(_ context.Context, w io.Writer, props Props) error {
	view := genericView{
		ID:      sectionAnchor(props),
		Section: props.Section,
		Variant: props.Variant,
	}
	title := props.Text("title")

	for _, prop := range r.props {
		raw, ok := props.Fields[prop.Key]
		if !ok || raw == nil {
			continue
		}
		switch prop.Type {
		case catalog.PropText:
			text := cast.ToString(raw)
			if text == "" {
				continue
			}
			kind := "text"
			switch prop.Key {
			case "title":
				kind = "heading"
			case "button_text":
				kind = "button"
			}
			view.Blocks = append(view.Blocks, genericBlock{Key: prop.Key, Kind: kind, Text: text})
		case catalog.PropTextarea:
			html, err := r.parser.HTML(cast.ToString(raw))
			if err != nil {
				return fmt.Errorf("render %s.%s: %w", props.Section, prop.Key, err)
			}
			if html == "" {
				continue
			}
			view.Blocks = append(view.Blocks, genericBlock{Key: prop.Key, Kind: "markdown", HTML: html})
		case catalog.PropMedia:
			src := cast.ToString(raw)
			if asset := themeAsset(props, src); asset != "" {
				src = asset
			}
			if src == "" {
				continue
			}
			view.Blocks = append(view.Blocks, genericBlock{Key: prop.Key, Kind: "image", Src: src, Alt: title})
		default:
			view.Settings = append(view.Settings, genericSetting{Key: prop.Key, Value: formatScalar(raw)})
		}
	}

	return templates.ExecuteTemplate(w, "generic", view)
}

func sectionAnchor(props Props) string {
	if props.SectionID == uuid.Nil {
		return ""
	}
	return props.SectionID.String()
}

func themeAsset(props Props, key string) string {
	if key == "" || props.Theme.AssetURL == nil {
		return ""
	}
	return props.Theme.AssetURL(key)
}

func formatScalar(raw any) string {
	switch v := raw.(type) {
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		return cast.ToString(v)
	}
}
