package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

var (
	ErrDefaultLocaleRequired   = errors.New("landing config: default locale is required")
	ErrStorageDriverUnknown    = errors.New("landing config: storage driver is invalid")
	ErrStorageDSNRequired      = errors.New("landing config: storage dsn is required for postgres")
	ErrCacheTTLInvalid         = errors.New("landing config: cache ttl must be positive when cache is enabled")
	ErrCommandTimeoutInvalid   = errors.New("landing config: command timeouts must be zero or positive")
	ErrReorderRetriesInvalid   = errors.New("landing config: reorder retries must be zero or positive")
	ErrLoggingProviderRequired = errors.New("landing config: logging provider is required")
	ErrLoggingProviderUnknown  = errors.New("landing config: logging provider is invalid")
	ErrLoggingLevelInvalid     = errors.New("landing config: logging level is invalid")
	ErrLoggingFormatInvalid    = errors.New("landing config: logging format is invalid")
	ErrThemeBasePathRequired   = errors.New("landing config: themes base path is required when a default theme is set")
	ErrActivityChannelRequired = errors.New("landing config: activity channel is required when activity is enabled")
)

// Config aggregates the runtime options of the landing module. The zero
// value is not usable; start from DefaultConfig.
type Config struct {
	DefaultLocale  string         `yaml:"default_locale"`
	FallbackLocale string         `yaml:"fallback_locale"`
	Storage        StorageConfig  `yaml:"storage"`
	Cache          CacheConfig    `yaml:"cache"`
	Commands       CommandsConfig `yaml:"commands"`
	Logging        LoggingConfig  `yaml:"logging"`
	Themes         ThemeConfig    `yaml:"themes"`
	Metrics        MetricsConfig  `yaml:"metrics"`
	Activity       ActivityConfig `yaml:"activity"`
	HTTP           HTTPConfig     `yaml:"http"`
}

// StorageConfig selects the database backing the section store. An empty
// SQLite DSN keeps every repository in memory.
type StorageConfig struct {
	Driver       string `yaml:"driver"`
	DSN          string `yaml:"dsn"`
	MaxOpenConns int    `yaml:"max_open_conns"`
	Seed         bool   `yaml:"seed"`
}

// CacheConfig controls the catalog repository cache.
type CacheConfig struct {
	Enabled bool          `yaml:"enabled"`
	TTL     time.Duration `yaml:"ttl"`
}

// CommandsConfig bounds mutation execution.
type CommandsConfig struct {
	Timeout        time.Duration `yaml:"timeout"`
	ReorderTimeout time.Duration `yaml:"reorder_timeout"`
	ReorderRetries int           `yaml:"reorder_retries"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// ThemeConfig points at go-theme manifests on disk.
type ThemeConfig struct {
	BasePath       string `yaml:"base_path"`
	DefaultTheme   string `yaml:"default_theme"`
	DefaultVariant string `yaml:"default_variant"`
	CSSPrefix      string `yaml:"css_prefix"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

type ActivityConfig struct {
	Enabled bool   `yaml:"enabled"`
	Channel string `yaml:"channel"`
}

type HTTPConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the defaults used by the example server and tests.
func DefaultConfig() Config {
	return Config{
		DefaultLocale:  "es",
		FallbackLocale: "es",
		Storage: StorageConfig{
			Driver: "sqlite",
			Seed:   true,
		},
		Cache: CacheConfig{
			Enabled: true,
			TTL:     time.Minute,
		},
		Commands: CommandsConfig{
			Timeout:        30 * time.Second,
			ReorderTimeout: 5 * time.Second,
			ReorderRetries: 1,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
		Themes: ThemeConfig{
			BasePath:  "themes",
			CSSPrefix: "landing",
		},
		Metrics: MetricsConfig{
			Enabled:   true,
			Namespace: "landing",
		},
		Activity: ActivityConfig{
			Channel: "landing",
		},
		HTTP: HTTPConfig{
			Addr: ":8080",
		},
	}
}

// LoadFile overlays the YAML document at path on DefaultConfig and validates
// the result. Unknown keys are rejected.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("landing config: read %s: %w", path, err)
	}
	return Parse(data)
}

// Parse overlays a YAML document on DefaultConfig.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(bytes.TrimSpace(data)) > 0 {
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("landing config: decode: %w", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.DefaultLocale) == "" {
		return ErrDefaultLocaleRequired
	}

	switch normalize(cfg.Storage.Driver) {
	case "", "sqlite", "sqlite3":
	case "postgres", "postgresql", "pg", "pgx":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageDriverUnknown, cfg.Storage.Driver)
	}

	if cfg.Cache.Enabled && cfg.Cache.TTL <= 0 {
		return ErrCacheTTLInvalid
	}
	if cfg.Commands.Timeout < 0 || cfg.Commands.ReorderTimeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	if cfg.Commands.ReorderRetries < 0 {
		return ErrReorderRetriesInvalid
	}

	provider := normalize(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(provider, format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}

	if strings.TrimSpace(cfg.Themes.DefaultTheme) != "" && strings.TrimSpace(cfg.Themes.BasePath) == "" {
		return ErrThemeBasePathRequired
	}
	if cfg.Activity.Enabled && strings.TrimSpace(cfg.Activity.Channel) == "" {
		return ErrActivityChannelRequired
	}
	return nil
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger", "zap":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(provider, format string) bool {
	switch provider {
	case "gologger":
		switch normalize(format) {
		case "json", "console", "pretty":
			return true
		}
	case "zap":
		switch normalize(format) {
		case "json", "console":
			return true
		}
	case "console":
		return true
	}
	return false
}
