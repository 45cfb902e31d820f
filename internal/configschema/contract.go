package configschema

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/validation"
)

// Shape names the value an editor control produces.
type Shape string

const (
	ShapeText      Shape = "text"
	ShapeEnum      Shape = "enum"
	ShapeBoolean   Shape = "boolean"
	ShapeNumber    Shape = "number"
	ShapeColor     Shape = "color"
	ShapeReference Shape = "reference"
)

// EditingContract describes how an admin form edits one property.
type EditingContract struct {
	Key         string           `json:"key"`
	Label       string           `json:"label"`
	Type        catalog.PropType `json:"type"`
	Shape       Shape            `json:"shape"`
	Localizable bool             `json:"localizable"`
	Rule        string           `json:"rule"`
	Default     i18n.Value       `json:"default"`
	Options     []catalog.Option `json:"options,omitempty"`
	Min         *float64         `json:"min,omitempty"`
	Max         *float64         `json:"max,omitempty"`
	Step        *float64         `json:"step,omitempty"`
	MaxLength   int              `json:"max_length,omitempty"`
	Accept      []string         `json:"accept,omitempty"`
}

// Contract derives the editing contract of prop.
func Contract(prop catalog.PropDescriptor) EditingContract {
	contract := EditingContract{
		Key:       prop.Key,
		Label:     prop.Label,
		Type:      prop.Type,
		Default:   DefaultValue(prop),
		Options:   prop.Options,
		Min:       prop.Min,
		Max:       prop.Max,
		Step:      prop.Step,
		MaxLength: prop.MaxLength,
		Accept:    prop.Accept,
	}

	switch prop.Type {
	case catalog.PropText, catalog.PropTextarea:
		contract.Shape = ShapeText
		contract.Localizable = true
		contract.Rule = "free text"
		if prop.MaxLength > 0 {
			contract.Rule = fmt.Sprintf("truncated to %d characters", prop.MaxLength)
		}
	case catalog.PropSelect:
		contract.Shape = ShapeEnum
		contract.Rule = "one of " + strings.Join(prop.OptionValues(), ", ")
	case catalog.PropBoolean:
		contract.Shape = ShapeBoolean
		contract.Rule = "coerced to true or false"
	case catalog.PropSlider, catalog.PropNumber:
		contract.Shape = ShapeNumber
		contract.Rule = numberRule(prop)
	case catalog.PropColor:
		contract.Shape = ShapeColor
		contract.Rule = "hex color (#rgb, #rrggbb or #rrggbbaa)"
	case catalog.PropMedia:
		contract.Shape = ShapeReference
		contract.Rule = "media URL or asset key"
		if len(prop.Accept) > 0 {
			contract.Rule += " (" + strings.Join(prop.Accept, ", ") + ")"
		}
	}
	return contract
}

// Contracts maps Contract over props.
func Contracts(props []catalog.PropDescriptor) []EditingContract {
	out := make([]EditingContract, 0, len(props))
	for _, prop := range props {
		out = append(out, Contract(prop))
	}
	return out
}

func numberRule(prop catalog.PropDescriptor) string {
	parts := []string{}
	if prop.Min != nil || prop.Max != nil {
		parts = append(parts, fmt.Sprintf("clamped to [%s, %s]", bound(prop.Min, "-inf"), bound(prop.Max, "+inf")))
	}
	if prop.Step != nil {
		parts = append(parts, fmt.Sprintf("snapped to %g", *prop.Step))
	}
	if len(parts) == 0 {
		return "any number"
	}
	return strings.Join(parts, ", ")
}

func bound(value *float64, open string) string {
	if value == nil {
		return open
	}
	return fmt.Sprintf("%g", *value)
}

// DocumentSchema builds a JSON Schema for a complete configuration document.
// Undeclared keys are allowed so forward-compatible data survives.
func DocumentSchema(props []catalog.PropDescriptor) map[string]any {
	properties := make(map[string]any, len(props))
	for _, prop := range props {
		properties[prop.Key] = propSchema(prop)
	}
	return map[string]any{
		"type":                 "object",
		"properties":           properties,
		"additionalProperties": true,
	}
}

func propSchema(prop catalog.PropDescriptor) map[string]any {
	switch prop.Type {
	case catalog.PropText, catalog.PropTextarea:
		text := map[string]any{"type": "string"}
		if prop.MaxLength > 0 {
			text["maxLength"] = prop.MaxLength
		}
		return map[string]any{"oneOf": []any{
			text,
			map[string]any{"type": "object", "additionalProperties": text},
		}}
	case catalog.PropSelect:
		options := make([]any, 0, len(prop.Options))
		for _, value := range prop.OptionValues() {
			options = append(options, value)
		}
		return map[string]any{"enum": options}
	case catalog.PropBoolean:
		return map[string]any{"type": "boolean"}
	case catalog.PropSlider, catalog.PropNumber:
		schema := map[string]any{"type": "number"}
		if prop.Min != nil {
			schema["minimum"] = *prop.Min
		}
		if prop.Max != nil {
			schema["maximum"] = *prop.Max
		}
		return schema
	case catalog.PropColor:
		return map[string]any{"type": "string", "pattern": hexColor.String()}
	default:
		return map[string]any{"type": "string"}
	}
}

// ValidateDocument checks an imported configuration strictly: unlike
// SetValue it rejects over-long text and out-of-range numbers instead of
// adjusting them.
func ValidateDocument(props []catalog.PropDescriptor, data Data) error {
	encoded, err := json.Marshal(data)
	if err != nil {
		return err
	}
	var payload map[string]any
	if err := json.Unmarshal(encoded, &payload); err != nil {
		return err
	}
	if err := validation.ValidatePayload(DocumentSchema(props), payload); err != nil {
		return fmt.Errorf("%w: %w", ErrValidationRejected, err)
	}
	return nil
}
