package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	landing "github.com/goliatone/go-landing"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/activity/usersink"
	"github.com/goliatone/go-landing/pkg/interfaces"
	usertypes "github.com/goliatone/go-users/pkg/types"
)

const shutdownTimeout = 10 * time.Second

type options struct {
	ConfigPath string
	Addr       string
	Demo       bool
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		log.Fatalf("landing: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts); err != nil {
		log.Fatalf("landing: %v", err)
	}
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("landing", flag.ContinueOnError)
	configPath := fs.String("config", "", "Path to a YAML config file layered over the defaults")
	addr := fs.String("addr", "", "Listen address (overrides http.addr)")
	demo := fs.Bool("demo", true, "Seed the casa-lucia demo restaurant when it has no sections")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return options{
		ConfigPath: strings.TrimSpace(*configPath),
		Addr:       strings.TrimSpace(*addr),
		Demo:       *demo,
	}, nil
}

func loadConfig(opts options) (landing.Config, error) {
	cfg := landing.DefaultConfig()
	if opts.ConfigPath != "" {
		loaded, err := landing.LoadConfig(opts.ConfigPath)
		if err != nil {
			return cfg, fmt.Errorf("load config: %w", err)
		}
		cfg = loaded
	}
	if opts.Addr != "" {
		cfg.HTTP.Addr = opts.Addr
	}
	return cfg, nil
}

// buildModule wires the module and, when requested, the demo tenant. The
// returned mux carries every route.
func buildModule(ctx context.Context, cfg landing.Config, demo bool) (*landing.Module, *http.ServeMux, error) {
	sink := &logSink{}
	translations := i18n.NewMemoryTranslations()

	module, err := landing.New(cfg,
		landing.WithActivityHooks(usersink.Hook{Sink: sink}),
		landing.WithTranslationProvider(translations),
	)
	if err != nil {
		return nil, nil, err
	}
	sink.logger = logging.ModuleLogger(module.Container().LoggerProvider(), "landing.activity")

	if err := module.Migrate(ctx); err != nil {
		_ = module.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	if demo {
		if err := seedDemo(ctx, module, translations); err != nil {
			_ = module.Close()
			return nil, nil, fmt.Errorf("seed demo: %w", err)
		}
	}

	mux := http.NewServeMux()
	if err := module.RegisterRoutes(mux); err != nil {
		_ = module.Close()
		return nil, nil, err
	}
	return module, mux, nil
}

func run(ctx context.Context, opts options) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	module, mux, err := buildModule(ctx, cfg, opts.Demo)
	if err != nil {
		return err
	}
	defer module.Close()

	logger := logging.HTTPLogger(module.Container().LoggerProvider())
	server := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http.listen", "addr", cfg.HTTP.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	logger.Info("http.shutdown")
	return server.Shutdown(shutdownCtx)
}

var _ usersink.Sink = (*logSink)(nil)

// logSink writes go-users activity records to the module logger.
type logSink struct {
	logger interfaces.Logger
}

func (s *logSink) Log(_ context.Context, record usertypes.ActivityRecord) error {
	if s == nil || s.logger == nil {
		return nil
	}
	s.logger.Info("activity.recorded",
		"verb", record.Verb,
		"object_type", record.ObjectType,
		"object_id", record.ObjectID,
		"tenant_id", record.TenantID.String(),
		"actor_id", record.ActorID.String(),
		"channel", record.Channel,
	)
	return nil
}
