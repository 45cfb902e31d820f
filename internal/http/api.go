package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-landing/internal/catalog"
	sectionscmd "github.com/goliatone/go-landing/internal/commands/sections"
	"github.com/goliatone/go-landing/internal/composer"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/markdown"
	"github.com/goliatone/go-landing/internal/metrics"
	"github.com/goliatone/go-landing/internal/sections"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// API registers the public landing page and the admin endpoints.
type API struct {
	adminPath  string
	publicPath string
	catalog    catalog.Service
	sections   sections.Service
	commands   *sectionscmd.HandlerSet
	composer   *composer.Composer
	parser     *markdown.Parser
	metrics    metrics.Recorder
	exporter   http.Handler
	logger     interfaces.Logger
	now        func() time.Time
}

// Option mutates the API configuration.
type Option func(*API)

func NewAPI(opts ...Option) *API {
	api := &API{
		adminPath:  "/admin/landing",
		publicPath: "/landing",
		metrics:    metrics.NoOp(),
		logger:     logging.NoOp(),
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(api)
		}
	}
	if api.parser == nil {
		api.parser = markdown.NewParser(markdown.Options{})
	}
	return api
}

// WithAdminPath overrides the admin base path (defaults to "/admin/landing").
func WithAdminPath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.adminPath = trimmed
		}
	}
}

// WithPublicPath overrides the public base path (defaults to "/landing").
func WithPublicPath(path string) Option {
	return func(api *API) {
		if trimmed := strings.TrimSpace(path); trimmed != "" {
			api.publicPath = trimmed
		}
	}
}

func WithCatalogService(service catalog.Service) Option {
	return func(api *API) {
		api.catalog = service
	}
}

// WithSectionService wires reads; writes go through WithSectionCommands.
func WithSectionService(service sections.Service) Option {
	return func(api *API) {
		api.sections = service
	}
}

func WithSectionCommands(set *sectionscmd.HandlerSet) Option {
	return func(api *API) {
		api.commands = set
	}
}

func WithComposer(c *composer.Composer) Option {
	return func(api *API) {
		api.composer = c
	}
}

// WithMarkdownParser sets the parser used for catalog descriptions.
func WithMarkdownParser(parser *markdown.Parser) Option {
	return func(api *API) {
		api.parser = parser
	}
}

// WithMetrics records request counts and latency. When exporter is non-nil
// it is mounted at /metrics.
func WithMetrics(recorder metrics.Recorder, exporter http.Handler) Option {
	return func(api *API) {
		if recorder != nil {
			api.metrics = recorder
		}
		api.exporter = exporter
	}
}

func WithLogger(logger interfaces.Logger) Option {
	return func(api *API) {
		if logger != nil {
			api.logger = logger
		}
	}
}

// Register mounts every configured route on mux.
func (api *API) Register(mux *http.ServeMux) error {
	if api == nil {
		return errors.New("http: api is nil")
	}
	if mux == nil {
		return errors.New("http: mux is nil")
	}
	if api.composer != nil {
		api.handle(mux, "GET "+joinPath(api.publicPath, "{tenant}"), api.handleLandingPage)
	}
	if api.catalog != nil {
		api.handle(mux, "GET "+joinPath(api.adminPath, "catalog"), api.handleCatalogList)
	}
	if api.sections != nil {
		api.registerSectionRoutes(mux, joinPath(api.adminPath, "{tenant}/sections"))
	}
	if api.exporter != nil {
		mux.Handle("GET /metrics", api.exporter)
	}
	return nil
}

func (api *API) handle(mux *http.ServeMux, pattern string, fn http.HandlerFunc) {
	mux.Handle(pattern, api.instrument(pattern, fn))
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

func (api *API) instrument(pattern string, next http.Handler) http.Handler {
	method, route, ok := strings.Cut(pattern, " ")
	if !ok {
		method, route = "", pattern
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		started := api.now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		api.metrics.ObserveHTTP(method, route, rec.status, api.now().Sub(started))
		if rec.status >= http.StatusInternalServerError {
			api.logger.Error("http.request.failed", "method", method, "route", route, "status", rec.status)
		}
	})
}
