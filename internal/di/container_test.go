package di_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-landing/internal/composer"
	"github.com/goliatone/go-landing/internal/di"
	"github.com/goliatone/go-landing/internal/logging/gologger"
	"github.com/goliatone/go-landing/internal/logging/zaplogger"
	"github.com/goliatone/go-landing/internal/reorder"
	"github.com/goliatone/go-landing/internal/runtimeconfig"
	"github.com/goliatone/go-landing/internal/sections"
	"github.com/goliatone/go-landing/pkg/activity"
	"github.com/goliatone/go-landing/pkg/testsupport"
)

type recordingRegistry struct {
	handlers []any
}

func (r *recordingRegistry) RegisterCommand(handler any) error {
	r.handlers = append(r.handlers, handler)
	return nil
}

func TestContainerDefaultsComposeInMemory(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Activity.Enabled = true
	capture := &activity.CaptureHook{}

	container, err := di.NewContainer(cfg, di.WithActivityHooks(capture))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer container.Close()

	if container.BunDB() != nil {
		t.Fatalf("expected in-memory storage without a dsn")
	}

	ctx := context.Background()
	tenantID := uuid.New()
	if _, err := container.SectionService().Create(ctx, sections.CreateSectionInput{
		TenantID:   tenantID,
		SectionKey: "hero",
		Variant:    "fullscreen",
	}); err != nil {
		t.Fatalf("create hero: %v", err)
	}

	var buf bytes.Buffer
	if err := container.Composer().ComposePage(ctx, &buf, composer.Request{TenantID: tenantID, Language: "es"}); err != nil {
		t.Fatalf("compose page: %v", err)
	}
	if !strings.Contains(buf.String(), "hero--fullscreen") {
		t.Fatalf("expected fullscreen hero markup, got %q", buf.String())
	}

	if len(capture.Events) != 1 || capture.Events[0].Verb != "create" {
		t.Fatalf("expected one create activity event, got %+v", capture.Events)
	}
}

func TestContainerSelectsLoggerProvider(t *testing.T) {
	cases := []struct {
		provider string
		check    func(t *testing.T, c *di.Container)
	}{
		{
			provider: "gologger",
			check: func(t *testing.T, c *di.Container) {
				if _, ok := c.LoggerProvider().(*gologger.Provider); !ok {
					t.Fatalf("expected gologger provider, got %T", c.LoggerProvider())
				}
			},
		},
		{
			provider: "zap",
			check: func(t *testing.T, c *di.Container) {
				if _, ok := c.LoggerProvider().(*zaplogger.Provider); !ok {
					t.Fatalf("expected zap provider, got %T", c.LoggerProvider())
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.provider, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			cfg.Logging.Provider = tc.provider
			container, err := di.NewContainer(cfg)
			if err != nil {
				t.Fatalf("new container: %v", err)
			}
			tc.check(t, container)
		})
	}
}

func TestContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.DefaultLocale = ""

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrDefaultLocaleRequired) {
		t.Fatalf("expected ErrDefaultLocaleRequired, got %v", err)
	}
}

func TestContainerMigrateSeedsSQLiteCatalog(t *testing.T) {
	db := testsupport.NewMigratedBunDB(t)
	registry := &recordingRegistry{}

	container, err := di.NewContainer(runtimeconfig.DefaultConfig(),
		di.WithBunDB(db),
		di.WithCommandRegistry(registry),
	)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	ctx := context.Background()
	if err := container.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	entries, err := container.CatalogService().List(ctx)
	if err != nil {
		t.Fatalf("list catalog: %v", err)
	}
	if len(entries) != 7 {
		t.Fatalf("expected 7 seeded catalog entries, got %d", len(entries))
	}

	if err := container.Migrate(ctx); err != nil {
		t.Fatalf("second migrate: %v", err)
	}
	entries, err = container.CatalogService().List(ctx)
	if err != nil {
		t.Fatalf("list catalog after reseed: %v", err)
	}
	if len(entries) != 7 {
		t.Fatalf("expected reseed to be idempotent, got %d entries", len(entries))
	}

	if len(registry.handlers) != 5 {
		t.Fatalf("expected 5 registered section commands, got %d", len(registry.handlers))
	}

	tenantID := uuid.New()
	record, err := container.SectionService().Create(ctx, sections.CreateSectionInput{TenantID: tenantID, SectionKey: "about"})
	if err != nil {
		t.Fatalf("create about: %v", err)
	}
	if record.Variant != "standard" {
		t.Fatalf("expected default variant standard, got %q", record.Variant)
	}
}

func TestContainerReorderCoordinatorUsesSectionStore(t *testing.T) {
	registry := prometheus.NewRegistry()
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithPrometheusRegistry(registry))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	ctx := context.Background()
	tenantID := uuid.New()
	first, err := container.SectionService().Create(ctx, sections.CreateSectionInput{TenantID: tenantID, SectionKey: "header"})
	if err != nil {
		t.Fatalf("create header: %v", err)
	}
	second, err := container.SectionService().Create(ctx, sections.CreateSectionInput{TenantID: tenantID, SectionKey: "about"})
	if err != nil {
		t.Fatalf("create about: %v", err)
	}

	coordinator := container.NewReorderCoordinator(reorder.NewMemoryView())
	if _, err := coordinator.Load(ctx, tenantID); err != nil {
		t.Fatalf("load: %v", err)
	}
	if err := coordinator.Reorder(ctx, tenantID, []uuid.UUID{second.ID, first.ID}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	list, err := container.SectionService().List(ctx, tenantID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].ID != second.ID {
		t.Fatalf("expected about first after reorder, got %s", list[0].SectionKey)
	}

	count, err := testutil.GatherAndCount(registry, "landing_reorder_outcomes_total")
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if count == 0 {
		t.Fatalf("expected reorder outcome series to be recorded")
	}
}

func TestContainerRegistersRoutes(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	mux := http.NewServeMux()
	if err := container.RegisterRoutes(mux); err != nil {
		t.Fatalf("register routes: %v", err)
	}

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/landing/catalog", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from catalog route, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics route, got %d", rec.Code)
	}
}
