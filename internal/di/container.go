package di

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	repocache "github.com/goliatone/go-repository-cache/cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-landing/internal/catalog"
	sectionscmd "github.com/goliatone/go-landing/internal/commands/sections"
	"github.com/goliatone/go-landing/internal/composer"
	landinghttp "github.com/goliatone/go-landing/internal/http"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/logging/console"
	"github.com/goliatone/go-landing/internal/logging/gologger"
	"github.com/goliatone/go-landing/internal/logging/zaplogger"
	"github.com/goliatone/go-landing/internal/markdown"
	"github.com/goliatone/go-landing/internal/metrics"
	"github.com/goliatone/go-landing/internal/renderers"
	"github.com/goliatone/go-landing/internal/reorder"
	"github.com/goliatone/go-landing/internal/runtimeconfig"
	"github.com/goliatone/go-landing/internal/sections"
	"github.com/goliatone/go-landing/internal/storage"
	"github.com/goliatone/go-landing/internal/themes"
	"github.com/goliatone/go-landing/pkg/activity"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Container wires module dependencies. Without a database every repository
// lives in memory.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider

	bunDB  *bun.DB
	ownsDB bool

	cacheService  repocache.CacheService
	keySerializer repocache.KeySerializer

	promRegistry *prometheus.Registry
	prometheus   *metrics.Prometheus
	metrics      metrics.Recorder

	activityHooks activity.Hooks
	activity      *activity.Emitter

	uiStrings    i18n.UIStrings
	translations interfaces.TranslationProvider
	parser       *markdown.Parser
	renderers    *renderers.Registry
	themes       *themes.Selector

	catalogRepo catalog.Repository
	sectionRepo sections.Repository

	catalogSvc catalog.Service
	sectionSvc sections.Service

	commandRegistry sectionscmd.CommandRegistry
	commands        *sectionscmd.HandlerSet
	composer        *composer.Composer
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		c.loggerProvider = provider
	}
}

// WithBunDB uses db instead of opening one from Config.Storage. The caller
// keeps ownership.
func WithBunDB(db *bun.DB) Option {
	return func(c *Container) {
		c.bunDB = db
	}
}

// WithCache overrides the default catalog cache service.
func WithCache(service repocache.CacheService, serializer repocache.KeySerializer) Option {
	return func(c *Container) {
		c.cacheService = service
		c.keySerializer = serializer
	}
}

// WithPrometheusRegistry registers collectors on registry instead of a
// private one.
func WithPrometheusRegistry(registry *prometheus.Registry) Option {
	return func(c *Container) {
		c.promRegistry = registry
	}
}

func WithActivityHooks(hooks ...activity.Hook) Option {
	return func(c *Container) {
		c.activityHooks = append(c.activityHooks, hooks...)
	}
}

func WithUIStrings(table i18n.UIStrings) Option {
	return func(c *Container) {
		c.uiStrings = table
	}
}

func WithTranslationProvider(provider interfaces.TranslationProvider) Option {
	return func(c *Container) {
		c.translations = provider
	}
}

// WithRendererRegistry replaces the built-in renderer registry.
func WithRendererRegistry(registry *renderers.Registry) Option {
	return func(c *Container) {
		c.renderers = registry
	}
}

func WithThemeSelector(selector *themes.Selector) Option {
	return func(c *Container) {
		c.themes = selector
	}
}

// WithCommandRegistry registers the section command handlers on registry.
func WithCommandRegistry(registry sectionscmd.CommandRegistry) Option {
	return func(c *Container) {
		c.commandRegistry = registry
	}
}

func WithCatalogRepository(repo catalog.Repository) Option {
	return func(c *Container) {
		c.catalogRepo = repo
	}
}

func WithSectionRepository(repo sections.Repository) Option {
	return func(c *Container) {
		c.sectionRepo = repo
	}
}

// NewContainer validates cfg and wires every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLoggerProvider(); err != nil {
		return nil, err
	}
	if err := c.configureStorage(); err != nil {
		return nil, err
	}
	c.configureCacheDefaults()
	if err := c.configureRepositories(); err != nil {
		return nil, err
	}
	if err := c.configurePresentation(); err != nil {
		return nil, err
	}
	c.configureMetrics()

	c.activity = activity.NewEmitter(c.activityHooks, activity.Config{
		Enabled: cfg.Activity.Enabled,
		Channel: cfg.Activity.Channel,
	})

	c.catalogSvc = catalog.NewService(c.catalogRepo, catalog.WithLogger(logging.CatalogLogger(c.loggerProvider)))
	c.sectionSvc = sections.NewService(c.sectionRepo, c.catalogSvc,
		sections.WithLogger(logging.SectionsLogger(c.loggerProvider)),
		sections.WithActivityEmitter(c.activity),
	)

	commands, err := sectionscmd.RegisterSectionCommands(c.commandRegistry, c.sectionSvc, c.loggerProvider, sectionscmd.Options{
		Timeout:        cfg.Commands.Timeout,
		ReorderTimeout: cfg.Commands.ReorderTimeout,
		Metrics:        c.metrics,
	})
	if err != nil {
		return nil, err
	}
	c.commands = commands

	composerOpts := []composer.Option{
		composer.WithLogger(logging.ComposerLogger(c.loggerProvider)),
		composer.WithMetrics(c.metrics),
		composer.WithUIStrings(c.uiStrings),
		composer.WithThemes(c.themes),
		composer.WithFallbackLanguage(cfg.FallbackLocale),
	}
	if c.translations != nil {
		composerOpts = append(composerOpts, composer.WithTranslationProvider(c.translations))
	}
	c.composer = composer.New(c.catalogSvc, c.sectionSvc, renderers.NewResolver(c.renderers), composerOpts...)

	logging.ModuleLogger(c.loggerProvider, "landing.di").Debug("container.configured",
		"storage", c.storageKind(),
		"cache", c.cacheService != nil,
		"metrics", c.prometheus != nil,
		"activity", c.activity.Enabled(),
	)
	return c, nil
}

func (c *Container) configureLoggerProvider() error {
	if c.loggerProvider != nil {
		return nil
	}
	cfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	case "zap":
		provider, err := zaplogger.NewProvider(zaplogger.Config{Level: cfg.Level, Format: cfg.Format})
		if err != nil {
			return err
		}
		c.loggerProvider = provider
	default:
		c.loggerProvider = console.NewProvider(console.Options{MinLevel: console.ParseLevel(cfg.Level)})
	}
	return nil
}

func (c *Container) configureStorage() error {
	if c.bunDB != nil || strings.TrimSpace(c.Config.Storage.DSN) == "" {
		return nil
	}
	db, err := storage.Open(storage.Config{
		Driver:       c.Config.Storage.Driver,
		DSN:          c.Config.Storage.DSN,
		MaxOpenConns: c.Config.Storage.MaxOpenConns,
	})
	if err != nil {
		return fmt.Errorf("di: open storage: %w", err)
	}
	c.bunDB = db
	c.ownsDB = true
	return nil
}

func (c *Container) configureCacheDefaults() {
	if !c.Config.Cache.Enabled {
		return
	}

	if c.cacheService == nil {
		cfg := repocache.DefaultConfig()
		if c.Config.Cache.TTL > 0 {
			cfg.TTL = c.Config.Cache.TTL
		}
		service, err := repocache.NewCacheService(cfg)
		if err == nil {
			c.cacheService = service
		}
	}

	if c.cacheService != nil && c.keySerializer == nil {
		c.keySerializer = repocache.NewDefaultKeySerializer()
	}
}

func (c *Container) configureRepositories() error {
	if c.bunDB != nil {
		if c.catalogRepo == nil {
			c.catalogRepo = catalog.NewBunRepositoryWithCache(c.bunDB, c.cacheService, c.keySerializer)
		}
		if c.sectionRepo == nil {
			c.sectionRepo = sections.NewBunSectionRepository(c.bunDB)
		}
		return nil
	}
	if c.catalogRepo == nil {
		builtin, err := catalog.Builtin()
		if err != nil {
			return err
		}
		c.catalogRepo = catalog.NewMemoryRepository(builtin...)
	}
	if c.sectionRepo == nil {
		c.sectionRepo = sections.NewMemorySectionRepository()
	}
	return nil
}

func (c *Container) configurePresentation() error {
	if c.uiStrings == nil {
		fixture, err := i18n.DefaultFixture()
		if err != nil {
			return err
		}
		c.uiStrings = fixture.Strings
	}
	if c.parser == nil {
		c.parser = markdown.NewParser(markdown.Options{})
	}
	if c.renderers == nil {
		c.renderers = renderers.NewBuiltinRegistry(c.parser)
	}
	if c.themes == nil {
		c.themes = themes.NewSelector(themes.Config{
			BasePath:       c.Config.Themes.BasePath,
			DefaultTheme:   c.Config.Themes.DefaultTheme,
			DefaultVariant: c.Config.Themes.DefaultVariant,
			CSSPrefix:      c.Config.Themes.CSSPrefix,
		})
	}
	return nil
}

func (c *Container) configureMetrics() {
	if !c.Config.Metrics.Enabled {
		c.metrics = metrics.NoOp()
		return
	}
	if c.promRegistry == nil {
		c.promRegistry = prometheus.NewRegistry()
	}
	c.prometheus = metrics.NewPrometheus(c.promRegistry, c.Config.Metrics.Namespace)
	c.metrics = c.prometheus
}

// Migrate applies the embedded SQL migrations and, when Storage.Seed is
// set, syncs the built-in catalog. It is a no-op for in-memory storage.
func (c *Container) Migrate(ctx context.Context) error {
	if c.bunDB == nil {
		return nil
	}
	if err := storage.Migrate(ctx, c.bunDB); err != nil {
		return err
	}
	if !c.Config.Storage.Seed {
		return nil
	}
	builtin, err := catalog.Builtin()
	if err != nil {
		return err
	}
	if _, err := c.catalogSvc.Sync(ctx, builtin); err != nil {
		return fmt.Errorf("di: seed catalog: %w", err)
	}
	return nil
}

// NewReorderCoordinator builds a coordinator over the section service using
// the configured timeout and retries. A nil view gets a fresh MemoryView.
func (c *Container) NewReorderCoordinator(view reorder.View, opts ...reorder.Option) *reorder.Coordinator {
	base := []reorder.Option{
		reorder.WithLogger(logging.ReorderLogger(c.loggerProvider)),
		reorder.WithAttemptTimeout(c.Config.Commands.ReorderTimeout),
		reorder.WithRetries(c.Config.Commands.ReorderRetries),
		reorder.WithMetrics(c.metrics),
	}
	return reorder.NewCoordinator(c.sectionSvc, view, append(base, opts...)...)
}

// RegisterRoutes mounts the public and admin HTTP handlers on mux.
func (c *Container) RegisterRoutes(mux *http.ServeMux) error {
	opts := []landinghttp.Option{
		landinghttp.WithCatalogService(c.catalogSvc),
		landinghttp.WithSectionService(c.sectionSvc),
		landinghttp.WithSectionCommands(c.commands),
		landinghttp.WithComposer(c.composer),
		landinghttp.WithMarkdownParser(c.parser),
		landinghttp.WithLogger(logging.HTTPLogger(c.loggerProvider)),
	}
	if c.prometheus != nil {
		opts = append(opts, landinghttp.WithMetrics(c.prometheus, c.prometheus.Handler()))
	}
	return landinghttp.NewAPI(opts...).Register(mux)
}

// Close releases the database when the container opened it.
func (c *Container) Close() error {
	if c.bunDB == nil || !c.ownsDB {
		return nil
	}
	err := c.bunDB.Close()
	c.bunDB = nil
	return err
}

func (c *Container) storageKind() string {
	if c.bunDB == nil {
		return "memory"
	}
	return c.bunDB.Dialect().Name().String()
}

func (c *Container) LoggerProvider() interfaces.LoggerProvider { return c.loggerProvider }
func (c *Container) BunDB() *bun.DB                            { return c.bunDB }
func (c *Container) CatalogService() catalog.Service           { return c.catalogSvc }
func (c *Container) SectionService() sections.Service          { return c.sectionSvc }
func (c *Container) Commands() *sectionscmd.HandlerSet         { return c.commands }
func (c *Container) Composer() *composer.Composer              { return c.composer }
func (c *Container) Renderers() *renderers.Registry            { return c.renderers }
func (c *Container) Themes() *themes.Selector                  { return c.themes }
func (c *Container) Metrics() metrics.Recorder                 { return c.metrics }
func (c *Container) Activity() *activity.Emitter               { return c.activity }
