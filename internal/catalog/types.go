package catalog

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-landing/internal/i18n"
)

// PropType is the declared type of a customizable property.
type PropType string

const (
	PropText     PropType = "text"
	PropTextarea PropType = "textarea"
	PropSelect   PropType = "select"
	PropBoolean  PropType = "boolean"
	PropSlider   PropType = "slider"
	PropNumber   PropType = "number"
	PropColor    PropType = "color"
	PropMedia    PropType = "media"
)

// IsText reports whether values of this type are displayable strings that
// go through localization.
func (t PropType) IsText() bool {
	return t == PropText || t == PropTextarea
}

// Option is one selectable value of a select property.
type Option struct {
	Value string `json:"value"`
	Label string `json:"label,omitempty"`
}

// PropDescriptor declares a customizable property and its constraints.
type PropDescriptor struct {
	Key         string     `json:"key"`
	Label       string     `json:"label"`
	Type        PropType   `json:"type"`
	Default     i18n.Value `json:"default,omitempty"`
	Description string     `json:"description,omitempty"`
	Options     []Option   `json:"options,omitempty"`
	Min         *float64   `json:"min,omitempty"`
	Max         *float64   `json:"max,omitempty"`
	Step        *float64   `json:"step,omitempty"`
	MaxLength   int        `json:"max_length,omitempty"`
	Accept      []string   `json:"accept,omitempty"`
}

// OptionValues lists the select option values in declaration order.
func (p PropDescriptor) OptionValues() []string {
	values := make([]string, 0, len(p.Options))
	for _, option := range p.Options {
		values = append(values, option.Value)
	}
	return values
}

// Variant is an alternate visual implementation of a section. Props declared
// on a variant extend or override the entry props.
type Variant struct {
	Key         string           `json:"key"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	Props       []PropDescriptor `json:"props,omitempty"`
}

// StandardVariant is the variant every entry must declare.
const StandardVariant = "standard"

// Entry describes one section type of the library.
type Entry struct {
	bun.BaseModel `bun:"table:section_library,alias:sl"`

	ID          uuid.UUID        `bun:",pk,type:uuid" json:"id"`
	Key         string           `bun:"section_key,notnull,unique" json:"key"`
	Name        string           `bun:"name,notnull" json:"name"`
	Description string           `bun:"description" json:"description,omitempty"`
	Category    string           `bun:"category" json:"category,omitempty"`
	Position    int              `bun:"position,notnull,default:0" json:"position"`
	Variants    []Variant        `bun:"variants,type:jsonb" json:"variants"`
	Props       []PropDescriptor `bun:"props,type:jsonb" json:"props,omitempty"`
	CreatedAt   time.Time        `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt   time.Time        `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Variant returns the declared variant with key.
func (e *Entry) Variant(key string) (Variant, bool) {
	if e == nil {
		return Variant{}, false
	}
	for _, variant := range e.Variants {
		if variant.Key == key {
			return variant, true
		}
	}
	return Variant{}, false
}

// HasVariant reports whether key is declared.
func (e *Entry) HasVariant(key string) bool {
	_, ok := e.Variant(key)
	return ok
}

// DefaultVariant returns the first declared variant.
func (e *Entry) DefaultVariant() Variant {
	if e == nil || len(e.Variants) == 0 {
		return Variant{}
	}
	return e.Variants[0]
}

// ResolveVariant returns the variant for key, or the first declared variant
// when key is not declared. The boolean reports whether the fallback was used.
func (e *Entry) ResolveVariant(key string) (Variant, bool) {
	if variant, ok := e.Variant(key); ok {
		return variant, false
	}
	return e.DefaultVariant(), true
}

// PropsFor returns the effective props of a variant: entry props in order,
// variant props replacing same-key entry props in place and appending the
// rest. Unknown variants yield the entry props.
func (e *Entry) PropsFor(variantKey string) []PropDescriptor {
	if e == nil {
		return nil
	}
	props := slices.Clone(e.Props)
	variant, ok := e.Variant(variantKey)
	if !ok {
		return props
	}
	for _, override := range variant.Props {
		idx := slices.IndexFunc(props, func(p PropDescriptor) bool { return p.Key == override.Key })
		if idx >= 0 {
			props[idx] = override
			continue
		}
		props = append(props, override)
	}
	return props
}

// Clone returns a deep copy suitable for handing out of caches.
func (e *Entry) Clone() *Entry {
	if e == nil {
		return nil
	}
	cloned := *e
	cloned.Variants = make([]Variant, len(e.Variants))
	for i, variant := range e.Variants {
		variant.Props = cloneProps(variant.Props)
		cloned.Variants[i] = variant
	}
	cloned.Props = cloneProps(e.Props)
	return &cloned
}

func cloneProps(props []PropDescriptor) []PropDescriptor {
	if props == nil {
		return nil
	}
	out := make([]PropDescriptor, len(props))
	for i, prop := range props {
		prop.Options = slices.Clone(prop.Options)
		prop.Accept = slices.Clone(prop.Accept)
		out[i] = prop
	}
	return out
}
