package i18n

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/tidwall/gjson"
)

// Kind tags the shape held by a Value.
type Kind uint8

const (
	KindAbsent Kind = iota
	KindScalar
	KindLocalized
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindLocalized:
		return "localized"
	default:
		return "absent"
	}
}

// LocaleText is one language entry of a localized value.
type LocaleText struct {
	Lang string
	Text string
}

// Value is a stored configuration value: absent, a legacy scalar (string,
// number or boolean) or an ordered per-language map. The zero Value is absent.
type Value struct {
	kind    Kind
	scalar  any
	entries []LocaleText
}

var ErrInvalidValue = errors.New("i18n: invalid value")

// Scalar wraps a primitive. A nil argument yields an absent value.
func Scalar(v any) Value {
	if v == nil {
		return Value{}
	}
	return Value{kind: KindScalar, scalar: v}
}

// Text is shorthand for Scalar(string).
func Text(s string) Value {
	return Scalar(s)
}

// Localized builds a per-language value keeping argument order. A repeated
// language replaces the earlier text in place.
func Localized(entries ...LocaleText) Value {
	v := Value{kind: KindLocalized, entries: make([]LocaleText, 0, len(entries))}
	for _, entry := range entries {
		v = v.WithEntry(entry.Lang, entry.Text)
	}
	return v
}

// FromMap builds a localized value from an unordered map; languages are
// sorted to keep the result deterministic.
func FromMap(m map[string]string) Value {
	v := Value{kind: KindLocalized, entries: make([]LocaleText, 0, len(m))}
	for _, lang := range slices.Sorted(maps.Keys(m)) {
		v.entries = append(v.entries, LocaleText{Lang: lang, Text: m[lang]})
	}
	return v
}

// ValueOf converts a decoded JSON/YAML value into a Value. Maps become
// localized values, primitives become scalars.
func ValueOf(raw any) (Value, error) {
	switch v := raw.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return v, nil
	case string, bool, float64, float32, int, int32, int64, uint, uint32, uint64:
		return Scalar(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
		}
		return Scalar(f), nil
	case map[string]string:
		return FromMap(v), nil
	case map[string]any:
		m := make(map[string]string, len(v))
		for lang, text := range v {
			s, ok := text.(string)
			if !ok {
				return Value{}, fmt.Errorf("%w: language %q must map to a string", ErrInvalidValue, lang)
			}
			m[lang] = s
		}
		return FromMap(m), nil
	case []LocaleText:
		return Localized(v...), nil
	default:
		return Value{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidValue, raw)
	}
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsAbsent() bool { return v.kind == KindAbsent }

func (v Value) IsLocalized() bool { return v.kind == KindLocalized }

// ScalarValue returns the raw scalar.
func (v Value) ScalarValue() (any, bool) {
	if v.kind != KindScalar {
		return nil, false
	}
	return v.scalar, true
}

// String returns the scalar when it holds a string.
func (v Value) String() (string, bool) {
	if v.kind != KindScalar {
		return "", false
	}
	s, ok := v.scalar.(string)
	return s, ok
}

// Lookup returns the text stored for lang and whether the entry exists.
func (v Value) Lookup(lang string) (string, bool) {
	for _, entry := range v.entries {
		if entry.Lang == lang {
			return entry.Text, true
		}
	}
	return "", false
}

// Entries returns a copy of the localized entries in insertion order.
func (v Value) Entries() []LocaleText {
	return slices.Clone(v.entries)
}

// WithEntry returns a localized copy with lang set to text. A scalar or
// absent receiver is discarded.
func (v Value) WithEntry(lang, text string) Value {
	out := Value{kind: KindLocalized}
	if v.kind == KindLocalized {
		out.entries = slices.Clone(v.entries)
	}
	for i := range out.entries {
		if out.entries[i].Lang == lang {
			out.entries[i].Text = text
			return out
		}
	}
	out.entries = append(out.entries, LocaleText{Lang: lang, Text: text})
	return out
}

// Map returns the localized entries as a map.
func (v Value) Map() map[string]string {
	if v.kind != KindLocalized {
		return nil
	}
	out := make(map[string]string, len(v.entries))
	for _, entry := range v.entries {
		out[entry.Lang] = entry.Text
	}
	return out
}

// Interface returns the plain Go representation used by templates and JSON
// consumers.
func (v Value) Interface() any {
	switch v.kind {
	case KindScalar:
		return v.scalar
	case KindLocalized:
		return v.Map()
	default:
		return nil
	}
}

// Equal reports whether both values hold the same shape and content,
// including entry order.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case KindScalar:
		return v.scalar == other.scalar
	case KindLocalized:
		return slices.Equal(v.entries, other.entries)
	default:
		return true
	}
}

// MarshalJSON writes scalars as JSON primitives and localized values as
// objects in insertion order.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindScalar:
		return json.Marshal(v.scalar)
	case KindLocalized:
		buf := []byte{'{'}
		for i, entry := range v.entries {
			if i > 0 {
				buf = append(buf, ',')
			}
			key, err := json.Marshal(entry.Lang)
			if err != nil {
				return nil, err
			}
			text, err := json.Marshal(entry.Text)
			if err != nil {
				return nil, err
			}
			buf = append(buf, key...)
			buf = append(buf, ':')
			buf = append(buf, text...)
		}
		return append(buf, '}'), nil
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON decodes with gjson so object key order survives.
func (v *Value) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return fmt.Errorf("%w: malformed json", ErrInvalidValue)
	}
	result := gjson.ParseBytes(data)
	switch result.Type {
	case gjson.Null:
		*v = Value{}
	case gjson.String:
		*v = Scalar(result.Str)
	case gjson.Number:
		*v = Scalar(result.Num)
	case gjson.True, gjson.False:
		*v = Scalar(result.Bool())
	case gjson.JSON:
		if !result.IsObject() {
			return fmt.Errorf("%w: arrays are not supported", ErrInvalidValue)
		}
		out := Value{kind: KindLocalized}
		var err error
		result.ForEach(func(key, value gjson.Result) bool {
			if value.Type != gjson.String {
				err = fmt.Errorf("%w: language %q must map to a string", ErrInvalidValue, key.String())
				return false
			}
			out = out.WithEntry(key.String(), value.Str)
			return true
		})
		if err != nil {
			return err
		}
		*v = out
	}
	return nil
}
