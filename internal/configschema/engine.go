// Package configschema turns catalog property descriptors into editing
// contracts and validated, normalized configuration values.
package configschema

import (
	"slices"
	"strings"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/i18n"
)

// Field pairs a descriptor with the value an editor should show.
type Field struct {
	Descriptor catalog.PropDescriptor
	Value      i18n.Value
	Defaulted  bool
}

// RenderableFields returns every declared prop with its current value:
// data[key] when stored, otherwise the declared default. Undeclared keys in
// data are ignored. With no declared props it returns ErrNoCustomization.
func RenderableFields(props []catalog.PropDescriptor, data Data) ([]Field, error) {
	if len(props) == 0 {
		return nil, ErrNoCustomization
	}
	fields := make([]Field, 0, len(props))
	for _, prop := range props {
		if value, ok := data[prop.Key]; ok && !value.IsAbsent() {
			fields = append(fields, Field{Descriptor: prop, Value: value})
			continue
		}
		fields = append(fields, Field{Descriptor: prop, Value: DefaultValue(prop), Defaulted: true})
	}
	return fields, nil
}

// DefaultValue converts the declared default into a Value. Malformed
// defaults yield an absent value.
func DefaultValue(prop catalog.PropDescriptor) i18n.Value {
	return prop.Default
}

// Defaults returns the declared default of every prop that has one.
func Defaults(props []catalog.PropDescriptor) Data {
	data := Data{}
	for _, prop := range props {
		if value := DefaultValue(prop); !value.IsAbsent() {
			data[prop.Key] = value
		}
	}
	return data
}

// FindProp looks up a declared prop by key.
func FindProp(props []catalog.PropDescriptor, key string) (catalog.PropDescriptor, bool) {
	idx := slices.IndexFunc(props, func(p catalog.PropDescriptor) bool { return p.Key == key })
	if idx < 0 {
		return catalog.PropDescriptor{}, false
	}
	return props[idx], true
}

// SetValue validates raw for key and returns an updated copy of data. On
// rejection data is returned unchanged together with a *ValidationError.
func SetValue(props []catalog.PropDescriptor, data Data, key string, raw any) (Data, error) {
	if len(props) == 0 {
		return data, ErrNoCustomization
	}
	key = strings.TrimSpace(key)
	prop, ok := FindProp(props, key)
	if !ok {
		return data, &ValidationError{Key: key, Reason: "property is not declared", Err: ErrUnknownProperty}
	}

	value, err := Normalize(prop, raw)
	if err != nil {
		return data, err
	}
	return data.Merge(Data{key: value}), nil
}

// SetLocalizedValue stores text for one language of a text property,
// keeping the other languages. A stored scalar is replaced by a new
// per-language value.
func SetLocalizedValue(props []catalog.PropDescriptor, data Data, key, lang, text string) (Data, error) {
	if len(props) == 0 {
		return data, ErrNoCustomization
	}
	key = strings.TrimSpace(key)
	prop, ok := FindProp(props, key)
	if !ok {
		return data, &ValidationError{Key: key, Reason: "property is not declared", Err: ErrUnknownProperty}
	}
	if !prop.Type.IsText() {
		return data, reject(prop, "only text properties accept per-language values", nil)
	}
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		return data, reject(prop, "language is required", nil)
	}

	value, err := Normalize(prop, data[key].WithEntry(lang, text))
	if err != nil {
		return data, err
	}
	return data.Merge(Data{key: value}), nil
}

// NormalizeData normalizes every declared key of patch and keeps undeclared
// keys as given.
func NormalizeData(props []catalog.PropDescriptor, patch Data) (Data, error) {
	out := make(Data, len(patch))
	for key, value := range patch {
		prop, ok := FindProp(props, key)
		if !ok {
			out[key] = value
			continue
		}
		normalized, err := Normalize(prop, value)
		if err != nil {
			return nil, err
		}
		out[key] = normalized
	}
	return out, nil
}
