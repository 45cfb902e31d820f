package configschema

import (
	"maps"

	"github.com/goliatone/go-landing/internal/i18n"
)

// Data is the stored configuration of a section instance keyed by property.
type Data map[string]i18n.Value

// Clone returns a shallow copy; i18n.Value is immutable so this is enough.
func (d Data) Clone() Data {
	if d == nil {
		return Data{}
	}
	return maps.Clone(d)
}

// Merge returns a copy of d with every key of patch applied. Absent values
// in patch delete the key so the declared default applies again.
func (d Data) Merge(patch Data) Data {
	out := d.Clone()
	for key, value := range patch {
		if value.IsAbsent() {
			delete(out, key)
			continue
		}
		out[key] = value
	}
	return out
}

// Interface converts the data into plain Go values.
func (d Data) Interface() map[string]any {
	out := make(map[string]any, len(d))
	for key, value := range d {
		out[key] = value.Interface()
	}
	return out
}
