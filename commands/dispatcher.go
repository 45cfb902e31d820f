package commands

import (
	"fmt"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"

	catalogcmd "github.com/goliatone/go-landing/internal/commands/catalog"
	sectionscmd "github.com/goliatone/go-landing/internal/commands/sections"
)

// Dispatcher subscribes landing handlers to the go-command global dispatcher.
type Dispatcher struct {
	opts []runner.Option
}

// NewDispatcher returns a Dispatcher applying opts to every subscription.
func NewDispatcher(opts ...runner.Option) *Dispatcher {
	return &Dispatcher{opts: opts}
}

var _ CommandDispatcher = (*Dispatcher)(nil)

func (d *Dispatcher) RegisterCommand(handler any) (CommandSubscription, error) {
	switch h := handler.(type) {
	case *sectionscmd.CreateSectionHandler:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case *sectionscmd.UpdateSectionHandler:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case *sectionscmd.DeleteSectionHandler:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case *sectionscmd.ToggleSectionHandler:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case *sectionscmd.ReorderSectionsHandler:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	case *catalogcmd.SyncCatalogHandler:
		return dispatcher.SubscribeCommand(h, d.opts...), nil
	default:
		return nil, fmt.Errorf("commands: unsupported handler %T", handler)
	}
}
