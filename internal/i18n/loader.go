package i18n

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
)

// Fixture is a serialised UI-string bundle.
type Fixture struct {
	DefaultLocale string    `json:"default_locale"`
	Strings       UIStrings `json:"strings"`
}

//go:embed fixtures/ui_strings.json
var defaultFixtureData embed.FS

// DefaultFixture loads the built-in UI strings.
func DefaultFixture() (*Fixture, error) {
	data, err := defaultFixtureData.ReadFile("fixtures/ui_strings.json")
	if err != nil {
		return nil, fmt.Errorf("i18n: read embedded fixture: %w", err)
	}
	return decodeFixture(bytes.NewReader(data))
}

// Loader reads UI-string fixtures from disk.
type Loader struct {
	path string
}

func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load parses the configured fixture file.
func (l *Loader) Load(ctx context.Context) (*Fixture, error) {
	if l == nil || l.path == "" {
		return nil, errors.New("i18n: loader path cannot be empty")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	file, err := os.Open(l.path)
	if err != nil {
		return nil, fmt.Errorf("i18n: open fixture %q: %w", l.path, err)
	}
	defer file.Close()

	return decodeFixture(file)
}

func decodeFixture(r io.Reader) (*Fixture, error) {
	decoder := json.NewDecoder(r)
	decoder.DisallowUnknownFields()

	var fx Fixture
	if err := decoder.Decode(&fx); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("i18n: decode fixture: %w", err)
	}
	if fx.Strings == nil {
		fx.Strings = UIStrings{}
	}
	if fx.DefaultLocale == "" {
		fx.DefaultLocale = DefaultFallbackLanguage
	}
	return &fx, nil
}
