package renderers

import (
	"github.com/google/uuid"
	"github.com/spf13/cast"

	"github.com/goliatone/go-landing/internal/themes"
)

// Props is everything a renderer receives for one section instance. Text
// fields are already resolved for Language; other props are plain scalars.
type Props struct {
	SectionID  uuid.UUID
	Section    string
	Variant    string
	Language   string
	Fields     map[string]any
	Restaurant map[string]string
	Theme      themes.Context
}

// Text returns a field as a string.
func (p Props) Text(key string) string {
	return cast.ToString(p.Fields[key])
}

// Bool returns a field coerced to bool, or fallback when unset.
func (p Props) Bool(key string, fallback bool) bool {
	raw, ok := p.Fields[key]
	if !ok || raw == nil {
		return fallback
	}
	value, err := cast.ToBoolE(raw)
	if err != nil {
		return fallback
	}
	return value
}

// Number returns a field coerced to float64, or fallback when unset.
func (p Props) Number(key string, fallback float64) float64 {
	raw, ok := p.Fields[key]
	if !ok || raw == nil {
		return fallback
	}
	value, err := cast.ToFloat64E(raw)
	if err != nil {
		return fallback
	}
	return value
}

// RestaurantText returns a restaurant translation field.
func (p Props) RestaurantText(field string) string {
	return p.Restaurant[field]
}
