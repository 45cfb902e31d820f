package i18n_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/goliatone/go-landing/internal/i18n"
)

func TestValueJSONKeepsLanguageOrder(t *testing.T) {
	var value i18n.Value
	if err := json.Unmarshal([]byte(`{"it":"Ciao","de":"Hallo","es":"Hola"}`), &value); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	entries := value.Entries()
	if len(entries) != 3 || entries[0].Lang != "it" || entries[1].Lang != "de" || entries[2].Lang != "es" {
		t.Fatalf("expected insertion order preserved, got %+v", entries)
	}

	data, err := json.Marshal(value)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != `{"it":"Ciao","de":"Hallo","es":"Hola"}` {
		t.Fatalf("unexpected encoding %s", data)
	}
}

func TestValueJSONDecodesScalars(t *testing.T) {
	var config map[string]i18n.Value
	payload := `{"title":"Hola","show":true,"size":0.25,"gone":null}`
	if err := json.Unmarshal([]byte(payload), &config); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if text, ok := config["title"].String(); !ok || text != "Hola" {
		t.Fatalf("expected string scalar got %#v", config["title"])
	}
	if raw, _ := config["show"].ScalarValue(); raw != true {
		t.Fatalf("expected boolean scalar got %#v", raw)
	}
	if raw, _ := config["size"].ScalarValue(); raw != 0.25 {
		t.Fatalf("expected number scalar got %#v", raw)
	}
	if !config["gone"].IsAbsent() {
		t.Fatalf("expected null to decode as absent")
	}
}

func TestValueJSONRejectsArraysAndNestedObjects(t *testing.T) {
	var value i18n.Value
	if err := json.Unmarshal([]byte(`["a"]`), &value); !errors.Is(err, i18n.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for arrays got %v", err)
	}
	if err := json.Unmarshal([]byte(`{"es":{"x":1}}`), &value); !errors.Is(err, i18n.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue for nested objects got %v", err)
	}
}

func TestWithEntryReplacesInPlaceAndDropsScalar(t *testing.T) {
	value := i18n.Localized(
		i18n.LocaleText{Lang: "es", Text: "Hola"},
		i18n.LocaleText{Lang: "en", Text: "Hi"},
	).WithEntry("es", "Buenas")

	entries := value.Entries()
	if entries[0].Lang != "es" || entries[0].Text != "Buenas" || len(entries) != 2 {
		t.Fatalf("expected in-place replacement got %+v", entries)
	}

	converted := i18n.Text("legacy").WithEntry("en", "Hello")
	if !converted.IsLocalized() || len(converted.Entries()) != 1 {
		t.Fatalf("expected scalar to be replaced by localized value, got %+v", converted.Entries())
	}
}

func TestValueOfConvertsDecodedShapes(t *testing.T) {
	value, err := i18n.ValueOf(map[string]any{"es": "Hola", "en": "Hi"})
	if err != nil {
		t.Fatalf("ValueOf: %v", err)
	}
	entries := value.Entries()
	if entries[0].Lang != "en" || entries[1].Lang != "es" {
		t.Fatalf("expected sorted languages for unordered maps got %+v", entries)
	}
	if _, err := i18n.ValueOf(map[string]any{"es": 1}); err == nil {
		t.Fatalf("expected error for non-string translation")
	}
	if _, err := i18n.ValueOf([]int{1}); err == nil {
		t.Fatalf("expected error for unsupported type")
	}
}
