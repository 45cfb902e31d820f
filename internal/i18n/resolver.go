package i18n

import (
	"slices"
	"strings"
)

const (
	// DefaultFallbackLanguage is used when a request carries no fallback.
	DefaultFallbackLanguage = "es"
	englishLanguage         = "en"
)

// Step identifies which tier of the text chain produced a result.
type Step uint8

const (
	StepNone Step = iota
	StepCurrentLanguage
	StepFallbackLanguage
	StepEnglish
	StepAnyLanguage
	StepLegacyScalar
	StepUIString
	StepDefault
)

var stepNames = [...]string{"none", "current_language", "fallback_language", "english", "any_language", "legacy_scalar", "ui_string", "default"}

func (s Step) String() string {
	if int(s) < len(stepNames) {
		return stepNames[s]
	}
	return "unknown"
}

// UIStringLookup resolves global UI strings by language and key.
type UIStringLookup interface {
	Lookup(lang, key string) (string, bool)
}

// TextRequest carries every candidate source for one displayable field.
type TextRequest struct {
	Value     Value
	Language  string
	Fallback  string
	UIKey     string
	UIStrings UIStringLookup
	Default   string
}

// Resolution is the chosen text plus the tier that produced it.
type Resolution struct {
	Text string
	Step Step
}

// ResolveText picks the display string for a single field.
func ResolveText(req TextRequest) string {
	return Resolve(req).Text
}

// Resolve walks the chain in order:
//
//  1. localized[L] when present and non-empty
//  2. localized[F] when present
//  3. localized["en"] when present
//  4. first non-empty localized entry in insertion order
//  5. a legacy scalar string, verbatim
//  6. the UI-string table entry for UIKey in L
//  7. the caller default
//
// It reads nothing but its arguments.
func Resolve(req TextRequest) Resolution {
	fallback := req.Fallback
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallbackLanguage
	}

	switch req.Value.Kind() {
	case KindLocalized:
		if text, ok := req.Value.Lookup(req.Language); ok && text != "" {
			return Resolution{Text: text, Step: StepCurrentLanguage}
		}
		if text, ok := req.Value.Lookup(fallback); ok {
			return Resolution{Text: text, Step: StepFallbackLanguage}
		}
		if text, ok := req.Value.Lookup(englishLanguage); ok {
			return Resolution{Text: text, Step: StepEnglish}
		}
		for _, entry := range req.Value.entries {
			if entry.Text != "" {
				return Resolution{Text: entry.Text, Step: StepAnyLanguage}
			}
		}
	case KindScalar:
		if text, ok := req.Value.String(); ok {
			return Resolution{Text: text, Step: StepLegacyScalar}
		}
	}

	if req.UIStrings != nil && req.UIKey != "" {
		if text, ok := req.UIStrings.Lookup(req.Language, req.UIKey); ok && text != "" {
			return Resolution{Text: text, Step: StepUIString}
		}
	}
	return Resolution{Text: req.Default, Step: StepDefault}
}

// Translations is a whole-entity translation table shaped {lang -> {field -> text}}.
type Translations map[string]map[string]string

// ResolveTranslation tries translations[L][field], then translations[F][field].
// It returns "" when neither holds a non-empty value.
func ResolveTranslation(translations Translations, field, lang, fallback string) string {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallbackLanguage
	}
	if text := translations[lang][field]; text != "" {
		return text
	}
	return translations[fallback][field]
}

// Fields lists, sorted, the field names defined for lang or fallback.
func (t Translations) Fields(lang, fallback string) []string {
	if strings.TrimSpace(fallback) == "" {
		fallback = DefaultFallbackLanguage
	}
	seen := map[string]struct{}{}
	var out []string
	for _, table := range []map[string]string{t[lang], t[fallback]} {
		for field := range table {
			if _, ok := seen[field]; ok {
				continue
			}
			seen[field] = struct{}{}
			out = append(out, field)
		}
	}
	slices.Sort(out)
	return out
}
