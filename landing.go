package landing

import (
	"context"
	"net/http"

	"github.com/goliatone/go-landing/internal/catalog"
	sectionscmd "github.com/goliatone/go-landing/internal/commands/sections"
	"github.com/goliatone/go-landing/internal/composer"
	"github.com/goliatone/go-landing/internal/di"
	"github.com/goliatone/go-landing/internal/reorder"
	"github.com/goliatone/go-landing/internal/sections"
)

// CatalogService exports the section library contract.
type CatalogService = catalog.Service

// CatalogEntry exports a library entry.
type CatalogEntry = catalog.Entry

// SectionService exports the configured section store contract.
type SectionService = sections.Service

// ConfiguredSection exports a tenant's section record.
type ConfiguredSection = sections.ConfiguredSection

// SectionCommands exports the admin command handlers.
type SectionCommands = sectionscmd.HandlerSet

// Composer exports the page composer.
type Composer = composer.Composer

// ComposeRequest selects the tenant, languages and theme for composition.
type ComposeRequest = composer.Request

// ReorderCoordinator exports the optimistic reorder coordinator.
type ReorderCoordinator = reorder.Coordinator

// Option overrides container wiring.
type Option = di.Option

var (
	WithLoggerProvider      = di.WithLoggerProvider
	WithBunDB               = di.WithBunDB
	WithCache               = di.WithCache
	WithPrometheusRegistry  = di.WithPrometheusRegistry
	WithActivityHooks       = di.WithActivityHooks
	WithUIStrings           = di.WithUIStrings
	WithTranslationProvider = di.WithTranslationProvider
	WithCommandRegistry     = di.WithCommandRegistry
)

// Module is the top level landing runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a landing module from cfg.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Migrate prepares durable storage. It does nothing for in-memory modules.
func (m *Module) Migrate(ctx context.Context) error {
	return m.container.Migrate(ctx)
}

func (m *Module) Catalog() CatalogService {
	return m.container.CatalogService()
}

func (m *Module) Sections() SectionService {
	return m.container.SectionService()
}

// Commands returns the admin mutation handlers.
func (m *Module) Commands() *SectionCommands {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Commands()
}

func (m *Module) Composer() *Composer {
	return m.container.Composer()
}

// NewReorderCoordinator returns a coordinator with its own in-memory view.
func (m *Module) NewReorderCoordinator() *ReorderCoordinator {
	return m.container.NewReorderCoordinator(reorder.NewMemoryView())
}

// RegisterRoutes mounts the admin and public handlers on mux.
func (m *Module) RegisterRoutes(mux *http.ServeMux) error {
	return m.container.RegisterRoutes(mux)
}

// Close releases resources the module opened.
func (m *Module) Close() error {
	if m == nil || m.container == nil {
		return nil
	}
	return m.container.Close()
}
