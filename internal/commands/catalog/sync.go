package catalogcmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/commands"
	"github.com/goliatone/go-landing/internal/configschema"
	"github.com/goliatone/go-landing/internal/metrics"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

const syncCatalogMessageType = "landing.catalog.sync"

// DefaultSyncCron is the cron expression used when none is configured.
const DefaultSyncCron = "@daily"

// Syncer upserts library entries. catalog.Service satisfies it.
type Syncer interface {
	Sync(ctx context.Context, entries []*catalog.Entry) (catalog.SyncResult, error)
}

// SyncCatalogCommand loads catalog documents from Dir, or the embedded
// library when Dir is empty, and upserts them.
type SyncCatalogCommand struct {
	Dir    string          `json:"dir,omitempty"`
	DryRun bool            `json:"dry_run,omitempty"`
	Result *SyncResultSink `json:"-"`
}

// SyncResultSink receives the sync outcome.
type SyncResultSink struct {
	Loaded int
	Result catalog.SyncResult
}

func (SyncCatalogCommand) Type() string { return syncCatalogMessageType }

func (m SyncCatalogCommand) Validate() error {
	return validation.ValidateStruct(&m,
		validation.Field(&m.Dir, validation.By(directoryExists)),
	)
}

func directoryExists(value any) error {
	dir, _ := value.(string)
	if strings.TrimSpace(dir) == "" {
		return nil
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return validation.NewError("validation_catalog_dir", "must be an existing directory")
	}
	return nil
}

// SyncCatalogHandler wraps catalog sync with cron and CLI metadata.
type SyncCatalogHandler struct {
	inner      *commands.Handler[SyncCatalogCommand]
	cronConfig command.HandlerConfig
}

type syncHandlerConfig struct {
	cron    string
	timeout time.Duration
	metrics metrics.Recorder
}

type SyncHandlerOption func(*syncHandlerConfig)

// SyncWithCronExpression overrides DefaultSyncCron.
func SyncWithCronExpression(expression string) SyncHandlerOption {
	return func(cfg *syncHandlerConfig) {
		if trimmed := strings.TrimSpace(expression); trimmed != "" {
			cfg.cron = trimmed
		}
	}
}

func SyncWithTimeout(timeout time.Duration) SyncHandlerOption {
	return func(cfg *syncHandlerConfig) {
		cfg.timeout = timeout
	}
}

func SyncWithMetrics(recorder metrics.Recorder) SyncHandlerOption {
	return func(cfg *syncHandlerConfig) {
		cfg.metrics = recorder
	}
}

func NewSyncCatalogHandler(syncer Syncer, logger interfaces.Logger, opts ...SyncHandlerOption) *SyncCatalogHandler {
	cfg := syncHandlerConfig{cron: DefaultSyncCron, timeout: commands.DefaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	if logger == nil {
		logger = commands.CommandLogger(nil, "catalog")
	}

	exec := func(ctx context.Context, msg SyncCatalogCommand) error {
		entries, err := loadEntries(msg.Dir)
		if err != nil {
			return err
		}
		if err := validateDefaults(entries); err != nil {
			return err
		}
		if msg.Result != nil {
			msg.Result.Loaded = len(entries)
		}
		if msg.DryRun {
			logger.Debug("catalog.command.sync.dry_run", "entries", len(entries))
			return nil
		}
		result, err := syncer.Sync(ctx, entries)
		if err != nil {
			return err
		}
		if msg.Result != nil {
			msg.Result.Result = result
		}
		return nil
	}

	handlerOpts := []commands.HandlerOption[SyncCatalogCommand]{
		commands.WithLogger[SyncCatalogCommand](logger),
		commands.WithOperation[SyncCatalogCommand]("catalog.sync"),
		commands.WithTimeout[SyncCatalogCommand](cfg.timeout),
		commands.WithMessageFields(func(msg SyncCatalogCommand) map[string]any {
			fields := map[string]any{"dry_run": msg.DryRun}
			if dir := strings.TrimSpace(msg.Dir); dir != "" {
				fields["dir"] = dir
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[SyncCatalogCommand]()),
	}
	if cfg.metrics != nil {
		handlerOpts = append(handlerOpts, commands.WithTelemetry(commands.MetricsTelemetry[SyncCatalogCommand](cfg.metrics)))
	}

	return &SyncCatalogHandler{
		inner:      commands.NewHandler(exec, handlerOpts...),
		cronConfig: command.HandlerConfig{Expression: cfg.cron},
	}
}

func loadEntries(dir string) ([]*catalog.Entry, error) {
	if strings.TrimSpace(dir) == "" {
		return catalog.Builtin()
	}
	return catalog.LoadFS(os.DirFS(dir), ".")
}

// validateDefaults rejects entries whose declared defaults break their own
// constraints in any variant.
func validateDefaults(entries []*catalog.Entry) error {
	for _, entry := range entries {
		for _, variant := range entry.Variants {
			props := entry.PropsFor(variant.Key)
			if err := configschema.ValidateDocument(props, configschema.Defaults(props)); err != nil {
				return fmt.Errorf("catalog entry %s variant %s defaults: %w", entry.Key, variant.Key, err)
			}
		}
	}
	return nil
}

func (h *SyncCatalogHandler) Execute(ctx context.Context, msg SyncCatalogCommand) error {
	return h.inner.Execute(ctx, msg)
}

// CronHandler satisfies command.CronCommand by syncing the embedded library.
func (h *SyncCatalogHandler) CronHandler() func() error {
	return func() error {
		return h.Execute(context.Background(), SyncCatalogCommand{})
	}
}

func (h *SyncCatalogHandler) CronOptions() command.HandlerConfig {
	return h.cronConfig
}

func (h *SyncCatalogHandler) CLIHandler() any {
	return h
}

func (h *SyncCatalogHandler) CLIOptions() command.CLIConfig {
	return command.CLIConfig{
		Path:        []string{"catalog", "sync"},
		Group:       "catalog",
		Description: "Upsert section library entries from markdown documents",
	}
}
