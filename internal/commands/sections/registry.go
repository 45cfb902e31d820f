package sectionscmd

import (
	"errors"
	"time"

	"github.com/goliatone/go-landing/internal/commands"
	"github.com/goliatone/go-landing/internal/metrics"
	"github.com/goliatone/go-landing/internal/sections"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// HandlerSet groups the section command handlers.
type HandlerSet struct {
	Create  *CreateSectionHandler
	Update  *UpdateSectionHandler
	Delete  *DeleteSectionHandler
	Toggle  *ToggleSectionHandler
	Reorder *ReorderSectionsHandler
}

// Options tunes handler construction.
type Options struct {
	Timeout        time.Duration
	ReorderTimeout time.Duration
	Metrics        metrics.Recorder
}

// RegisterSectionCommands builds the section handlers and registers them
// with reg when it is non-nil.
func RegisterSectionCommands(reg CommandRegistry, service sections.Service, provider interfaces.LoggerProvider, opts Options) (*HandlerSet, error) {
	if service == nil {
		return nil, errors.New("section command registration: service is nil")
	}
	logger := commands.CommandLogger(provider, "sections")
	recorder := opts.Metrics
	if recorder == nil {
		recorder = metrics.NoOp()
	}

	set := &HandlerSet{
		Create: NewCreateSectionHandler(service, logger,
			commands.WithTimeout[CreateSectionCommand](opts.timeout()),
			commands.WithTelemetry(commands.DefaultTelemetry[CreateSectionCommand]()),
			commands.WithTelemetry(commands.MetricsTelemetry[CreateSectionCommand](recorder))),
		Update: NewUpdateSectionHandler(service, logger,
			commands.WithTimeout[UpdateSectionCommand](opts.timeout()),
			commands.WithTelemetry(commands.DefaultTelemetry[UpdateSectionCommand]()),
			commands.WithTelemetry(commands.MetricsTelemetry[UpdateSectionCommand](recorder))),
		Delete: NewDeleteSectionHandler(service, logger,
			commands.WithTimeout[DeleteSectionCommand](opts.timeout()),
			commands.WithTelemetry(commands.DefaultTelemetry[DeleteSectionCommand]()),
			commands.WithTelemetry(commands.MetricsTelemetry[DeleteSectionCommand](recorder))),
		Toggle: NewToggleSectionHandler(service, logger,
			commands.WithTimeout[ToggleSectionCommand](opts.timeout()),
			commands.WithTelemetry(commands.DefaultTelemetry[ToggleSectionCommand]()),
			commands.WithTelemetry(commands.MetricsTelemetry[ToggleSectionCommand](recorder))),
		Reorder: NewReorderSectionsHandler(service, logger,
			commands.WithTimeout[ReorderSectionsCommand](opts.reorderTimeout()),
			commands.WithTelemetry(commands.DefaultTelemetry[ReorderSectionsCommand]()),
			commands.WithTelemetry(commands.MetricsTelemetry[ReorderSectionsCommand](recorder))),
	}

	if reg != nil {
		for _, handler := range []any{set.Create, set.Update, set.Delete, set.Toggle, set.Reorder} {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}
	return set, nil
}

func (o Options) timeout() time.Duration {
	if o.Timeout <= 0 {
		return commands.DefaultTimeout
	}
	return o.Timeout
}

func (o Options) reorderTimeout() time.Duration {
	if o.ReorderTimeout <= 0 {
		return o.timeout()
	}
	return o.ReorderTimeout
}
