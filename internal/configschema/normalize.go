package configschema

import (
	"fmt"
	"math"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/spf13/cast"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/i18n"
)

var hexColor = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})$`)

// Normalize validates raw against prop and returns the value to store. An
// absent result means the stored override should be removed.
//
// text and textarea values longer than MaxLength are truncated, never
// rejected. Numbers are clamped to [Min, Max] and snapped to Step.
func Normalize(prop catalog.PropDescriptor, raw any) (i18n.Value, error) {
	value, err := i18n.ValueOf(raw)
	if err != nil {
		return i18n.Value{}, reject(prop, "unsupported value shape", err)
	}
	if value.IsAbsent() {
		return value, nil
	}

	if value.IsLocalized() {
		if !prop.Type.IsText() {
			return i18n.Value{}, reject(prop, "only text properties accept per-language values", nil)
		}
		out := i18n.Localized()
		for _, entry := range value.Entries() {
			out = out.WithEntry(entry.Lang, truncate(entry.Text, prop.MaxLength))
		}
		return out, nil
	}

	scalar, _ := value.ScalarValue()
	switch prop.Type {
	case catalog.PropText, catalog.PropTextarea:
		text, ok := scalar.(string)
		if !ok {
			return i18n.Value{}, reject(prop, fmt.Sprintf("expected text, got %T", scalar), nil)
		}
		return i18n.Text(truncate(text, prop.MaxLength)), nil

	case catalog.PropSelect:
		choice, err := cast.ToStringE(scalar)
		if err != nil {
			return i18n.Value{}, reject(prop, "expected an option value", err)
		}
		options := make([]any, 0, len(prop.Options))
		for _, option := range prop.OptionValues() {
			options = append(options, option)
		}
		if err := validation.Validate(choice, validation.Required, validation.In(options...)); err != nil {
			return i18n.Value{}, reject(prop, fmt.Sprintf("%q is not one of %s", choice, strings.Join(prop.OptionValues(), ", ")), err)
		}
		return i18n.Text(choice), nil

	case catalog.PropBoolean:
		flag, err := cast.ToBoolE(scalar)
		if err != nil {
			return i18n.Value{}, reject(prop, "expected a boolean", err)
		}
		return i18n.Scalar(flag), nil

	case catalog.PropSlider, catalog.PropNumber:
		number, err := cast.ToFloat64E(scalar)
		if err != nil {
			return i18n.Value{}, reject(prop, "expected a number", err)
		}
		if math.IsNaN(number) || math.IsInf(number, 0) {
			return i18n.Value{}, reject(prop, "expected a finite number", nil)
		}
		return i18n.Scalar(snap(number, prop)), nil

	case catalog.PropColor:
		color, ok := scalar.(string)
		if !ok {
			return i18n.Value{}, reject(prop, "expected a hex color", nil)
		}
		color = strings.TrimSpace(color)
		if err := validation.Validate(color, validation.Required, validation.Match(hexColor)); err != nil {
			return i18n.Value{}, reject(prop, fmt.Sprintf("%q is not a hex color", color), err)
		}
		return i18n.Text(strings.ToLower(color)), nil

	case catalog.PropMedia:
		ref, err := cast.ToStringE(scalar)
		if err != nil {
			return i18n.Value{}, reject(prop, "expected a media reference", err)
		}
		ref = strings.TrimSpace(ref)
		if ref == "" {
			return i18n.Value{}, nil
		}
		if !acceptsMedia(prop.Accept, ref) {
			return i18n.Value{}, reject(prop, fmt.Sprintf("%q does not match %s", ref, strings.Join(prop.Accept, ", ")), nil)
		}
		return i18n.Text(ref), nil

	default:
		return i18n.Value{}, reject(prop, fmt.Sprintf("unsupported property type %q", prop.Type), nil)
	}
}

func truncate(text string, maxLength int) string {
	if maxLength <= 0 || utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxLength])
}

// snap clamps to the declared range, then aligns to step counted from Min and
// rounds away float noise at the step precision.
func snap(value float64, prop catalog.PropDescriptor) float64 {
	value = clamp(value, prop.Min, prop.Max)
	if prop.Step == nil || *prop.Step <= 0 {
		return value
	}

	step := *prop.Step
	base := 0.0
	if prop.Min != nil {
		base = *prop.Min
	}
	precision := max(decimals(step), decimals(base))

	snapped := roundTo(base+math.Round((value-base)/step)*step, precision)
	if prop.Max != nil && snapped > *prop.Max {
		snapped = roundTo(base+math.Floor((*prop.Max-base)/step)*step, precision)
	}
	return clamp(snapped, prop.Min, prop.Max)
}

func clamp(value float64, lo, hi *float64) float64 {
	if lo != nil && value < *lo {
		value = *lo
	}
	if hi != nil && value > *hi {
		value = *hi
	}
	return value
}

func decimals(value float64) int {
	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	if idx := strings.IndexByte(formatted, '.'); idx >= 0 {
		return len(formatted) - idx - 1
	}
	return 0
}

func roundTo(value float64, precision int) float64 {
	scale := math.Pow10(precision)
	return math.Round(value*scale) / scale
}

func acceptsMedia(accept []string, ref string) bool {
	if len(accept) == 0 {
		return true
	}
	clean := ref
	if idx := strings.IndexAny(clean, "?#"); idx >= 0 {
		clean = clean[:idx]
	}
	ext := strings.ToLower(path.Ext(clean))
	if ext == "" {
		// opaque asset keys carry no extension to check
		return true
	}
	return slices.ContainsFunc(accept, func(candidate string) bool {
		candidate = strings.ToLower(strings.TrimSpace(candidate))
		return candidate == ext || "."+strings.TrimPrefix(candidate, ".") == ext
	})
}
