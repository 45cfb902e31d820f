package i18n

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-landing/pkg/interfaces"
)

var ErrMissingTranslation = errors.New("i18n: missing translation")

// UIStrings is the global UI-string table keyed by language then key.
type UIStrings map[string]map[string]string

// Lookup satisfies UIStringLookup.
func (u UIStrings) Lookup(lang, key string) (string, bool) {
	text, ok := u[lang][key]
	return text, ok
}

// Merge returns a copy of u with other layered on top.
func (u UIStrings) Merge(other UIStrings) UIStrings {
	out := make(UIStrings, len(u)+len(other))
	for _, table := range []UIStrings{u, other} {
		for lang, entries := range table {
			if out[lang] == nil {
				out[lang] = make(map[string]string, len(entries))
			}
			for key, text := range entries {
				out[lang][key] = text
			}
		}
	}
	return out
}

// Translator serves UI strings through the interfaces.Translator contract.
type Translator struct {
	strings       UIStrings
	defaultLocale string
}

var _ interfaces.Translator = (*Translator)(nil)

// NewTranslator wraps a UI-string table. Lookups that miss the requested
// locale retry with defaultLocale.
func NewTranslator(table UIStrings, defaultLocale string) *Translator {
	if table == nil {
		table = UIStrings{}
	}
	return &Translator{strings: table, defaultLocale: strings.TrimSpace(defaultLocale)}
}

func (t *Translator) Translate(locale, key string, args ...any) (string, error) {
	text, ok := t.strings.Lookup(locale, key)
	if !ok && t.defaultLocale != "" {
		text, ok = t.strings.Lookup(t.defaultLocale, key)
	}
	if !ok {
		return key, fmt.Errorf("%w: %s/%s", ErrMissingTranslation, locale, key)
	}
	if len(args) > 0 {
		return fmt.Sprintf(text, args...), nil
	}
	return text, nil
}

// Strings exposes the underlying table.
func (t *Translator) Strings() UIStrings {
	return t.strings
}

func (t *Translator) DefaultLocale() string {
	return t.defaultLocale
}
