package renderers

import (
	"context"
	"html/template"
	"io"
	"strconv"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/markdown"
)

type heroFullscreenView struct {
	ID         string
	Title      string
	Subtitle   template.HTML
	Button     string
	Background string
	Overlay    string
	TextColor  string
}

// NewHeroFullscreenFactory draws the edge-to-edge hero. The title falls back
// to the restaurant name.
func NewHeroFullscreenFactory(parser *markdown.Parser) Factory {
	if parser == nil {
		parser = markdown.NewParser(markdown.Options{})
	}
	return func(*catalog.Entry, catalog.Variant) Renderer {
		return RendererFunc(func(_ context.Context, w io.Writer, props Props) error {
			subtitle, err := parser.HTML(props.Text("subtitle"))
			if err != nil {
				return err
			}
			title := props.Text("title")
			if title == "" {
				title = props.RestaurantText("name")
			}
			background := props.Text("background_image")
			if asset := themeAsset(props, background); asset != "" {
				background = asset
			}
			view := heroFullscreenView{
				ID:         sectionAnchor(props),
				Title:      title,
				Button:     props.Text("button_text"),
				Background: background,
				Overlay:    strconv.FormatFloat(props.Number("overlay_opacity", 0.4), 'f', -1, 64),
				Subtitle:   subtitle,
				TextColor:  props.Text("text_color"),
			}
			return templates.ExecuteTemplate(w, "hero_fullscreen", view)
		})
	}
}

type menuPremiumView struct {
	ID               string
	Title            string
	Badge            string
	Accent           string
	Columns          int
	ShowImages       bool
	ShowPrices       bool
	CurrencyPosition string
}

// NewMenuPremiumFactory draws the photo card menu grid.
func NewMenuPremiumFactory() Factory {
	return func(*catalog.Entry, catalog.Variant) Renderer {
		return RendererFunc(func(_ context.Context, w io.Writer, props Props) error {
			accent := props.Text("accent_color")
			if accent == "" {
				accent = props.Theme.Token("color.accent", "")
			}
			currency := props.Text("currency_position")
			if currency == "" {
				currency = "after"
			}
			view := menuPremiumView{
				ID:               sectionAnchor(props),
				Title:            props.Text("title"),
				Badge:            props.Text("badge_text"),
				Accent:           accent,
				Columns:          int(props.Number("columns", 3)),
				ShowImages:       props.Bool("show_images", true),
				ShowPrices:       props.Bool("show_prices", true),
				CurrencyPosition: currency,
			}
			return templates.ExecuteTemplate(w, "menu_premium", view)
		})
	}
}

// NewBuiltinRegistry returns a registry with the specialized renderers
// shipped with the module and the generic fallback installed.
func NewBuiltinRegistry(parser *markdown.Parser) *Registry {
	registry := NewRegistry()
	_ = registry.Register(Key{Section: "hero", Variant: "fullscreen"}, NewHeroFullscreenFactory(parser))
	_ = registry.Register(Key{Section: "menu", Variant: "premium"}, NewMenuPremiumFactory())
	registry.SetFallback(NewGenericFactory(parser))
	return registry
}
