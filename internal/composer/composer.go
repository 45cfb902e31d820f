// Package composer turns a tenant's active sections into an ordered list of
// render items with localized props, and writes the page body.
package composer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/configschema"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/metrics"
	"github.com/goliatone/go-landing/internal/renderers"
	"github.com/goliatone/go-landing/internal/sections"
	"github.com/goliatone/go-landing/internal/themes"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

var (
	ErrUnregisteredSection = errors.New("composer: section key is not in the catalog")
	ErrTenantRequired      = errors.New("composer: tenant id is required")
)

// Skip reasons reported to metrics.
const (
	SkipUnregistered = "unregistered_section"
	SkipNoRenderer   = "no_renderer"
)

// wellKnownFields are resolved for every section even when the entry does
// not declare them.
var wellKnownFields = []string{"title", "subtitle", "description", "button_text"}

// Request selects the tenant page and presentation context.
type Request struct {
	TenantID     uuid.UUID
	Language     string
	Fallback     string
	Theme        string
	ThemeVariant string
}

// RenderItem is one section ready to be drawn.
type RenderItem struct {
	SectionID  uuid.UUID
	SectionKey string
	Variant    string
	Renderer   renderers.Renderer
	Props      renderers.Props
}

type CatalogReader interface {
	List(ctx context.Context) ([]*catalog.Entry, error)
}

type SectionReader interface {
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]*sections.ConfiguredSection, error)
}

type ThemeProvider interface {
	Context(name, variant string) (themes.Context, error)
}

type Option func(*Composer)

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Composer) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func WithMetrics(recorder metrics.Recorder) Option {
	return func(c *Composer) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}

func WithUIStrings(lookup i18n.UIStringLookup) Option {
	return func(c *Composer) {
		c.uiStrings = lookup
	}
}

func WithTranslationProvider(provider interfaces.TranslationProvider) Option {
	return func(c *Composer) {
		c.translations = provider
	}
}

func WithThemes(provider ThemeProvider) Option {
	return func(c *Composer) {
		c.themes = provider
	}
}

// WithFallbackLanguage sets the fallback used when a request has none.
func WithFallbackLanguage(lang string) Option {
	return func(c *Composer) {
		if trimmed := strings.TrimSpace(lang); trimmed != "" {
			c.fallback = strings.ToLower(trimmed)
		}
	}
}

func WithClock(clock func() time.Time) Option {
	return func(c *Composer) {
		if clock != nil {
			c.now = clock
		}
	}
}

// Composer is read-only with respect to the stores it consults.
type Composer struct {
	library      CatalogReader
	store        SectionReader
	resolver     *renderers.Resolver
	uiStrings    i18n.UIStringLookup
	translations interfaces.TranslationProvider
	themes       ThemeProvider
	logger       interfaces.Logger
	metrics      metrics.Recorder
	fallback     string
	now          func() time.Time
}

func New(library CatalogReader, store SectionReader, resolver *renderers.Resolver, opts ...Option) *Composer {
	if resolver == nil {
		resolver = renderers.NewResolver(nil)
	}
	c := &Composer{
		library:  library,
		store:    store,
		resolver: resolver,
		logger:   logging.NoOp(),
		metrics:  metrics.NoOp(),
		fallback: i18n.DefaultFallbackLanguage,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose builds the render items for the tenant's active sections in
// OrderIndex order. Sections whose key is missing from the catalog are
// logged and skipped.
func (c *Composer) Compose(ctx context.Context, req Request) ([]RenderItem, error) {
	if req.TenantID == uuid.Nil {
		return nil, ErrTenantRequired
	}
	started := c.now()
	lang, fallback := c.languages(req)
	logger := logging.WithFields(c.logger, map[string]any{
		"tenant_id": req.TenantID.String(),
		"language":  lang,
	})

	var (
		entries []*catalog.Entry
		active  []*sections.ConfiguredSection
	)
	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		var err error
		entries, err = c.library.List(groupCtx)
		if err != nil {
			return fmt.Errorf("load catalog: %w", err)
		}
		return nil
	})
	group.Go(func() error {
		var err error
		active, err = c.store.ListActive(groupCtx, req.TenantID)
		if err != nil {
			return fmt.Errorf("load sections: %w", err)
		}
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}

	byKey := make(map[string]*catalog.Entry, len(entries))
	for _, entry := range entries {
		byKey[entry.Key] = entry
	}
	sections.SortByOrder(active)

	restaurant := c.restaurant(ctx, logger, req.TenantID, lang, fallback)
	theme := c.theme(logger, req)

	items := make([]RenderItem, 0, len(active))
	for _, section := range active {
		entry, ok := byKey[section.SectionKey]
		if !ok {
			c.metrics.SectionSkipped(SkipUnregistered)
			logging.WithSectionContext(logger, uuid.Nil, section.ID, section.SectionKey, section.Variant).
				Warn("composer.section_skipped", "error", fmt.Errorf("%w: %s", ErrUnregisteredSection, section.SectionKey))
			continue
		}

		variant, fellBack := entry.ResolveVariant(section.Variant)
		if fellBack {
			logging.WithSectionContext(logger, uuid.Nil, section.ID, section.SectionKey, section.Variant).
				Warn("composer.variant_fallback", "resolved_variant", variant.Key)
		}

		renderer, ok := c.resolver.Resolve(entry, variant.Key)
		if !ok {
			c.metrics.SectionSkipped(SkipNoRenderer)
			logging.WithSectionContext(logger, uuid.Nil, section.ID, section.SectionKey, variant.Key).
				Warn("composer.renderer_missing")
			continue
		}

		items = append(items, RenderItem{
			SectionID:  section.ID,
			SectionKey: entry.Key,
			Variant:    variant.Key,
			Renderer:   renderer,
			Props: renderers.Props{
				SectionID:  section.ID,
				Section:    entry.Key,
				Variant:    variant.Key,
				Language:   lang,
				Fields:     c.fields(entry, variant.Key, section.ConfigData, lang, fallback),
				Restaurant: restaurant,
				Theme:      theme,
			},
		})
	}

	c.metrics.ObserveCompose(c.now().Sub(started), len(items))
	logger.Debug("composer.composed", "sections", len(active), "rendered", len(items))
	return items, nil
}

// Render writes every item in order.
func (c *Composer) Render(ctx context.Context, w io.Writer, items []RenderItem) error {
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if item.Renderer == nil {
			continue
		}
		if err := item.Renderer.Render(ctx, w, item.Props); err != nil {
			return fmt.Errorf("render %s/%s: %w", item.SectionKey, item.Variant, err)
		}
	}
	return nil
}

// ComposePage composes and renders in one call.
func (c *Composer) ComposePage(ctx context.Context, w io.Writer, req Request) error {
	items, err := c.Compose(ctx, req)
	if err != nil {
		return err
	}
	return c.Render(ctx, w, items)
}

func (c *Composer) languages(req Request) (string, string) {
	fallback := strings.ToLower(strings.TrimSpace(req.Fallback))
	if fallback == "" {
		fallback = c.fallback
	}
	lang := strings.ToLower(strings.TrimSpace(req.Language))
	if lang == "" {
		lang = fallback
	}
	return lang, fallback
}

// fields resolves declared text props and the well-known fields through the
// priority chain and copies the other declared props as scalars.
func (c *Composer) fields(entry *catalog.Entry, variant string, data configschema.Data, lang, fallback string) map[string]any {
	props := entry.PropsFor(variant)
	fields := make(map[string]any, len(props)+len(wellKnownFields))

	for _, prop := range props {
		value, ok := data[prop.Key]
		if !ok || value.IsAbsent() {
			value = configschema.DefaultValue(prop)
		}
		if prop.Type.IsText() {
			fields[prop.Key] = c.text(entry.Key, prop.Key, value, configschema.DefaultValue(prop), lang, fallback)
			continue
		}
		if scalar, ok := value.ScalarValue(); ok {
			fields[prop.Key] = scalar
		}
	}

	for _, field := range wellKnownFields {
		if _, declared := fields[field]; declared {
			continue
		}
		if text := c.text(entry.Key, field, data[field], i18n.Value{}, lang, fallback); text != "" {
			fields[field] = text
		}
	}
	return fields
}

// text resolves value through the chain. The declared default, resolved for
// the same languages, is the last resort.
func (c *Composer) text(section, field string, value, declared i18n.Value, lang, fallback string) string {
	return i18n.ResolveText(i18n.TextRequest{
		Value:     value,
		Language:  lang,
		Fallback:  fallback,
		UIKey:     "sections." + section + "." + field,
		UIStrings: c.uiStrings,
		Default:   i18n.ResolveText(i18n.TextRequest{Value: declared, Language: lang, Fallback: fallback}),
	})
}

func (c *Composer) restaurant(ctx context.Context, logger interfaces.Logger, tenantID uuid.UUID, lang, fallback string) map[string]string {
	out := map[string]string{}
	if c.translations == nil {
		return out
	}
	table, err := c.translations.RestaurantTranslations(ctx, tenantID)
	if err != nil {
		logger.Warn("composer.translations_unavailable", "error", err)
		return out
	}
	translations := i18n.Translations(table)
	for _, field := range translations.Fields(lang, fallback) {
		out[field] = i18n.ResolveTranslation(translations, field, lang, fallback)
	}
	return out
}

func (c *Composer) theme(logger interfaces.Logger, req Request) themes.Context {
	if c.themes == nil {
		return themes.EmptyContext()
	}
	ctx, err := c.themes.Context(req.Theme, req.ThemeVariant)
	if err != nil {
		logger.Warn("composer.theme_unavailable", "theme", req.Theme, "variant", req.ThemeVariant, "error", err)
		return themes.EmptyContext()
	}
	return ctx
}
