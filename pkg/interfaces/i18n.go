package interfaces

import (
	"context"

	"github.com/google/uuid"
)

// Translator resolves UI strings by locale and key.
type Translator interface {
	Translate(locale, key string, args ...any) (string, error)
}

// TranslationProvider is the translation collaborator consulted while composing
// a landing page. Restaurant translations are shaped as {lang -> {field -> value}}.
type TranslationProvider interface {
	RestaurantTranslations(ctx context.Context, tenantID uuid.UUID) (map[string]map[string]string, error)
}
