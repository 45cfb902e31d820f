package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/identity"
)

func TestParseFlagsDefaults(t *testing.T) {
	opts, err := parseFlags(nil)
	if err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if !opts.Demo || opts.ConfigPath != "" || opts.Addr != "" {
		t.Fatalf("unexpected defaults %+v", opts)
	}
}

func TestLoadConfigAppliesFileAndAddr(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.yaml")
	if err := os.WriteFile(path, []byte("default_locale: en\nhttp:\n  addr: \":9000\"\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig(options{ConfigPath: path})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.DefaultLocale != "en" || cfg.HTTP.Addr != ":9000" {
		t.Fatalf("expected file values, got locale %q addr %q", cfg.DefaultLocale, cfg.HTTP.Addr)
	}

	cfg, err = loadConfig(options{ConfigPath: path, Addr: ":7000"})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.HTTP.Addr != ":7000" {
		t.Fatalf("expected flag addr to win, got %q", cfg.HTTP.Addr)
	}
}

func TestBuildModuleServesDemoRestaurant(t *testing.T) {
	cfg, err := loadConfig(options{})
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	cfg.Activity.Enabled = true

	ctx := context.Background()
	module, mux, err := buildModule(ctx, cfg, true)
	if err != nil {
		t.Fatalf("build module: %v", err)
	}
	defer module.Close()

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/landing/casa-lucia?lang=en", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Market cooking since 1985") {
		t.Fatalf("expected english hero title, got %q", rec.Body.String())
	}

	if err := seedDemo(ctx, module, i18n.NewMemoryTranslations()); err != nil {
		t.Fatalf("reseed: %v", err)
	}
	list, err := module.Sections().List(ctx, identity.TenantUUID(demoTenantSlug))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != len(demoSections) {
		t.Fatalf("expected reseed to keep %d sections, got %d", len(demoSections), len(list))
	}
}
