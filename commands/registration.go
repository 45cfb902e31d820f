package commands

import (
	"errors"
	"strings"

	command "github.com/goliatone/go-command"

	catalogcmd "github.com/goliatone/go-landing/internal/commands/catalog"
	"github.com/goliatone/go-landing/internal/di"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// CommandRegistry records command handlers so hosts can expose them via CLI or cron.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// CommandDispatcher subscribes command handlers to a dispatcher implementation.
type CommandDispatcher interface {
	RegisterCommand(handler any) (CommandSubscription, error)
}

// CommandSubscription allows hosts to tear down dispatcher subscriptions.
type CommandSubscription interface {
	Unsubscribe()
}

// CronRegistrar registers command handlers with a cron scheduler.
type CronRegistrar func(command.HandlerConfig, any) error

// RegistrationOptions configures how handlers are registered during construction.
type RegistrationOptions struct {
	Registry       CommandRegistry
	Dispatcher     CommandDispatcher
	CronRegistrar  CronRegistrar
	LoggerProvider interfaces.LoggerProvider
	// CatalogSyncCron overrides the cron expression applied to the catalog sync handler.
	CatalogSyncCron string
}

// RegistrationResult captures the constructed command handlers and any dispatcher subscriptions.
type RegistrationResult struct {
	Handlers      []any
	Subscriptions []CommandSubscription
}

// RegisterContainerCommands collects the handlers exposed by container and
// registers them with the registry, dispatcher and cron integrations in opts.
func RegisterContainerCommands(container *di.Container, opts RegistrationOptions) (*RegistrationResult, error) {
	if container == nil {
		return &RegistrationResult{}, nil
	}

	provider := opts.LoggerProvider
	if provider == nil {
		provider = container.LoggerProvider()
	}

	result := &RegistrationResult{
		Handlers:      make([]any, 0),
		Subscriptions: make([]CommandSubscription, 0),
	}

	var errs error

	register := func(handler any) {
		if handler == nil {
			return
		}
		result.Handlers = append(result.Handlers, handler)

		if opts.Registry != nil {
			if err := opts.Registry.RegisterCommand(handler); err != nil {
				errs = errors.Join(errs, err)
			}
		}

		if opts.Dispatcher != nil {
			subscription, err := opts.Dispatcher.RegisterCommand(handler)
			if err != nil {
				errs = errors.Join(errs, err)
			} else if subscription != nil {
				result.Subscriptions = append(result.Subscriptions, subscription)
			}
		}

		if opts.CronRegistrar != nil {
			if cronCmd, ok := handler.(command.CronCommand); ok {
				if err := opts.CronRegistrar(cronCmd.CronOptions(), cronCmd.CronHandler()); err != nil {
					errs = errors.Join(errs, err)
				}
			}
		}
	}

	// Section commands.
	if set := container.Commands(); set != nil {
		register(set.Create)
		register(set.Update)
		register(set.Delete)
		register(set.Toggle)
		register(set.Reorder)
	}

	// Catalog commands.
	if service := container.CatalogService(); service != nil {
		syncOpts := []catalogcmd.SyncHandlerOption{
			catalogcmd.SyncWithMetrics(container.Metrics()),
			catalogcmd.SyncWithTimeout(container.Config.Commands.Timeout),
		}
		if expr := strings.TrimSpace(opts.CatalogSyncCron); expr != "" {
			syncOpts = append(syncOpts, catalogcmd.SyncWithCronExpression(expr))
		}
		logger := logging.ModuleLogger(provider, "landing.commands.catalog")
		register(catalogcmd.NewSyncCatalogHandler(service, logger, syncOpts...))
	}

	if errs != nil && len(result.Handlers) == 0 {
		return result, errs
	}

	if len(result.Handlers) == 0 {
		return result, errors.New("no command handlers registered; ensure services are configured")
	}

	return result, errs
}
