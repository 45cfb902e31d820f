// Package themes selects go-theme manifests and exposes the selection to
// section renderers as a plain context.
package themes

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	gotheme "github.com/goliatone/go-theme"
)

var ErrThemeNotFound = errors.New("themes: theme manifest not found")

// Config mirrors the runtime theme settings.
type Config struct {
	BasePath       string
	DefaultTheme   string
	DefaultVariant string
	CSSPrefix      string
}

// Loader reads a manifest from a theme directory.
type Loader interface {
	Load(themePath string) (*gotheme.Manifest, error)
}

// FSLoader loads manifests from the local filesystem.
type FSLoader struct{}

func (FSLoader) Load(themePath string) (*gotheme.Manifest, error) {
	cleaned := filepath.Clean(strings.TrimSpace(themePath))
	if cleaned == "" || cleaned == "." {
		return nil, fmt.Errorf("theme path required")
	}
	return gotheme.LoadDir(os.DirFS(cleaned), ".")
}

type Option func(*Selector)

func WithLoader(loader Loader) Option {
	return func(s *Selector) {
		if loader != nil {
			s.loader = loader
		}
	}
}

// Selector resolves (theme, variant) pairs. Manifests are registered up
// front or loaded lazily from Config.BasePath/<theme>.
type Selector struct {
	cfg      Config
	registry *gotheme.MemoryRegistry
	loader   Loader

	mu     sync.Mutex
	loaded map[string]bool
}

func NewSelector(cfg Config, opts ...Option) *Selector {
	s := &Selector{
		cfg: Config{
			BasePath:       strings.TrimSpace(cfg.BasePath),
			DefaultTheme:   strings.TrimSpace(cfg.DefaultTheme),
			DefaultVariant: strings.TrimSpace(cfg.DefaultVariant),
			CSSPrefix:      cfg.CSSPrefix,
		},
		registry: gotheme.NewRegistry(),
		loader:   FSLoader{},
		loaded:   map[string]bool{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register adds a manifest under its own name.
func (s *Selector) Register(manifest *gotheme.Manifest) error {
	if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
		return fmt.Errorf("theme name required for manifest registration")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.register(manifest)
}

func (s *Selector) register(manifest *gotheme.Manifest) error {
	key := strings.ToLower(strings.TrimSpace(manifest.Name))
	if s.loaded[key] {
		return nil
	}
	if err := s.registry.Register(manifest); err != nil {
		return fmt.Errorf("register theme manifest: %w", err)
	}
	s.loaded[key] = true
	return nil
}

// Context returns the theme context for name and variant, falling back to
// the configured defaults. No theme at all yields an empty context.
func (s *Selector) Context(name, variant string) (Context, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = s.cfg.DefaultTheme
	}
	if name == "" {
		return EmptyContext(), nil
	}
	variant = strings.TrimSpace(variant)
	if variant == "" {
		variant = s.cfg.DefaultVariant
	}

	if err := s.ensure(name); err != nil {
		return EmptyContext(), err
	}

	selector := gotheme.Selector{
		Registry:       s.registry,
		DefaultTheme:   s.cfg.DefaultTheme,
		DefaultVariant: s.cfg.DefaultVariant,
	}
	selection, err := selector.Select(name, variant)
	if err != nil {
		return EmptyContext(), fmt.Errorf("select theme %s: %w", name, err)
	}
	return NewContext(selection, s.cfg.CSSPrefix), nil
}

func (s *Selector) ensure(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded[strings.ToLower(name)] {
		return nil
	}
	if s.cfg.BasePath == "" {
		return fmt.Errorf("%w: %s", ErrThemeNotFound, name)
	}

	manifest, err := s.loader.Load(filepath.Join(s.cfg.BasePath, name))
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrThemeNotFound, name, err)
	}
	normalized := *manifest
	if strings.TrimSpace(normalized.Name) == "" || !strings.EqualFold(normalized.Name, name) {
		normalized.Name = name
	}
	if err := s.registry.Register(&normalized); err != nil {
		return fmt.Errorf("register theme manifest: %w", err)
	}
	s.loaded[strings.ToLower(name)] = true
	return nil
}
