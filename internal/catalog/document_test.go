package catalog_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/identity"
)

func TestBuiltinLibraryDeclaresAllSections(t *testing.T) {
	entries, err := catalog.Builtin()
	if err != nil {
		t.Fatalf("Builtin: %v", err)
	}

	want := []string{"header", "hero", "about", "menu", "gallery", "location", "contact"}
	if len(entries) != len(want) {
		t.Fatalf("expected %d entries got %d", len(want), len(entries))
	}
	for i, key := range want {
		entry := entries[i]
		if entry.Key != key {
			t.Fatalf("position %d: expected %s got %s", i, key, entry.Key)
		}
		if !entry.HasVariant(catalog.StandardVariant) {
			t.Fatalf("%s: expected standard variant", key)
		}
		if entry.ID != identity.SectionLibraryUUID(key) {
			t.Fatalf("%s: expected deterministic id", key)
		}
		if entry.Description == "" {
			t.Fatalf("%s: expected markdown description", key)
		}
	}
}

func TestBuiltinReturnsCopies(t *testing.T) {
	first := catalog.MustBuiltin()
	first[0].Props[0].Label = "mutated"

	second := catalog.MustBuiltin()
	if second[0].Props[0].Label == "mutated" {
		t.Fatalf("expected Builtin to hand out copies")
	}
}

func TestParseDocumentDecodesLocalizedDefaults(t *testing.T) {
	doc := `---
key: Banner
name: Banner
category: branding
variants:
  - key: standard
    name: Standard
props:
  - key: title
    label: Title
    type: text
    max_length: 20
    default:
      es: Hola
      en: Hello
  - key: size
    label: Size
    type: slider
    min: 0.1
    max: 0.5
    step: 0.05
    default: 0.2
---
Body text.
`
	entry, err := catalog.ParseDocument(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("ParseDocument: %v", err)
	}
	if entry.Key != "banner" {
		t.Fatalf("expected normalized key banner got %q", entry.Key)
	}
	if entry.Description != "Body text." {
		t.Fatalf("expected body description got %q", entry.Description)
	}
	title := entry.Props[0]
	want := i18n.Localized(i18n.LocaleText{Lang: "es", Text: "Hola"}, i18n.LocaleText{Lang: "en", Text: "Hello"})
	if !title.Default.Equal(want) {
		t.Fatalf("expected localized default in document order got %#v", title.Default.Entries())
	}
	size := entry.Props[1]
	if size.Min == nil || *size.Min != 0.1 || size.Step == nil || *size.Step != 0.05 {
		t.Fatalf("expected slider constraints got %+v", size)
	}
}

func TestParseDocumentRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"missing standard variant": `---
key: hero
name: Hero
category: branding
variants:
  - key: split
    name: Split
---
`,
		"select without options": `---
key: hero
name: Hero
category: branding
variants:
  - key: standard
    name: Standard
props:
  - key: align
    label: Align
    type: select
---
`,
		"unknown prop type": `---
key: hero
name: Hero
category: branding
variants:
  - key: standard
    name: Standard
props:
  - key: align
    label: Align
    type: date
---
`,
		"unknown field": `---
key: hero
name: Hero
category: branding
theme: dark
variants:
  - key: standard
    name: Standard
---
`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := catalog.ParseDocument(strings.NewReader(doc)); !errors.Is(err, catalog.ErrInvalidDocument) {
				t.Fatalf("expected ErrInvalidDocument got %v", err)
			}
		})
	}
}
