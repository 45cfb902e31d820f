package sectionscmd

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/commands"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/sections"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// ResultSink receives the section produced by a command.
type ResultSink struct {
	Section *sections.ConfiguredSection
}

func (r *ResultSink) set(section *sections.ConfiguredSection) {
	if r != nil {
		r.Section = section
	}
}

// CreateSectionHandler creates sections. A variant the entry does not
// declare is replaced by the entry's first variant.
type CreateSectionHandler struct {
	inner *commands.Handler[CreateSectionCommand]
}

func NewCreateSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[CreateSectionCommand]) *CreateSectionHandler {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg CreateSectionCommand) error {
		input := sections.CreateSectionInput{
			TenantID:   msg.TenantID,
			SectionKey: msg.SectionKey,
			Variant:    msg.Variant,
			ConfigData: msg.ConfigData,
			ActorID:    msg.ActorID,
		}
		record, err := service.Create(ctx, input)
		if fallback, ok := recoverVariant(err, input.Variant); ok {
			logger.Warn("sections.create.variant_replaced", "section_key", msg.SectionKey, "requested_variant", msg.Variant, "variant", fallback)
			input.Variant = fallback
			record, err = service.Create(ctx, input)
		}
		if err != nil {
			return err
		}
		msg.Result.set(record)
		return nil
	}

	handlerOpts := []commands.HandlerOption[CreateSectionCommand]{
		commands.WithLogger[CreateSectionCommand](logger),
		commands.WithOperation[CreateSectionCommand]("sections.create"),
		commands.WithMessageFields(func(msg CreateSectionCommand) map[string]any {
			return compactFields(map[string]any{
				"tenant_id":   msg.TenantID,
				"section_key": strings.TrimSpace(msg.SectionKey),
				"variant":     strings.TrimSpace(msg.Variant),
			})
		}),
	}
	return &CreateSectionHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

func (h *CreateSectionHandler) Execute(ctx context.Context, msg CreateSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// UpdateSectionHandler applies config patches and variant switches.
type UpdateSectionHandler struct {
	inner *commands.Handler[UpdateSectionCommand]
}

func NewUpdateSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateSectionCommand]) *UpdateSectionHandler {
	logger = ensureLogger(logger)
	exec := func(ctx context.Context, msg UpdateSectionCommand) error {
		input := sections.UpdateSectionInput{
			TenantID:   msg.TenantID,
			ID:         msg.SectionID,
			Variant:    msg.Variant,
			ConfigData: msg.ConfigData,
			ActorID:    msg.ActorID,
		}
		requested := ""
		if msg.Variant != nil {
			requested = *msg.Variant
		}
		record, err := service.Update(ctx, input)
		if fallback, ok := recoverVariant(err, requested); ok {
			logger.Warn("sections.update.variant_replaced", "section_id", msg.SectionID, "requested_variant", requested, "variant", fallback)
			input.Variant = &fallback
			record, err = service.Update(ctx, input)
		}
		if err != nil {
			return err
		}
		msg.Result.set(record)
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateSectionCommand]{
		commands.WithLogger[UpdateSectionCommand](logger),
		commands.WithOperation[UpdateSectionCommand]("sections.update"),
		commands.WithMessageFields(func(msg UpdateSectionCommand) map[string]any {
			fields := compactFields(map[string]any{
				"tenant_id":  msg.TenantID,
				"section_id": msg.SectionID,
			})
			if msg.Variant != nil {
				fields["variant"] = *msg.Variant
			}
			return fields
		}),
	}
	return &UpdateSectionHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

func (h *UpdateSectionHandler) Execute(ctx context.Context, msg UpdateSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

type DeleteSectionHandler struct {
	inner *commands.Handler[DeleteSectionCommand]
}

func NewDeleteSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[DeleteSectionCommand]) *DeleteSectionHandler {
	exec := func(ctx context.Context, msg DeleteSectionCommand) error {
		return service.Delete(ctx, sections.DeleteSectionRequest{
			TenantID: msg.TenantID,
			ID:       msg.SectionID,
			ActorID:  msg.ActorID,
		})
	}
	handlerOpts := []commands.HandlerOption[DeleteSectionCommand]{
		commands.WithLogger[DeleteSectionCommand](ensureLogger(logger)),
		commands.WithOperation[DeleteSectionCommand]("sections.delete"),
		commands.WithMessageFields(func(msg DeleteSectionCommand) map[string]any {
			return compactFields(map[string]any{"tenant_id": msg.TenantID, "section_id": msg.SectionID})
		}),
	}
	return &DeleteSectionHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

func (h *DeleteSectionHandler) Execute(ctx context.Context, msg DeleteSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

type ToggleSectionHandler struct {
	inner *commands.Handler[ToggleSectionCommand]
}

func NewToggleSectionHandler(service sections.Service, logger interfaces.Logger, opts ...commands.HandlerOption[ToggleSectionCommand]) *ToggleSectionHandler {
	exec := func(ctx context.Context, msg ToggleSectionCommand) error {
		record, err := service.Toggle(ctx, sections.ToggleSectionRequest{
			TenantID: msg.TenantID,
			ID:       msg.SectionID,
			ActorID:  msg.ActorID,
		})
		if err != nil {
			return err
		}
		msg.Result.set(record)
		return nil
	}
	handlerOpts := []commands.HandlerOption[ToggleSectionCommand]{
		commands.WithLogger[ToggleSectionCommand](ensureLogger(logger)),
		commands.WithOperation[ToggleSectionCommand]("sections.toggle"),
		commands.WithMessageFields(func(msg ToggleSectionCommand) map[string]any {
			return compactFields(map[string]any{"tenant_id": msg.TenantID, "section_id": msg.SectionID})
		}),
	}
	return &ToggleSectionHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

func (h *ToggleSectionHandler) Execute(ctx context.Context, msg ToggleSectionCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Reorderer applies a full permutation durably.
type Reorderer interface {
	Reorder(ctx context.Context, input sections.ReorderSectionsInput) ([]*sections.ConfiguredSection, error)
}

type ReorderSectionsHandler struct {
	inner *commands.Handler[ReorderSectionsCommand]
}

func NewReorderSectionsHandler(service Reorderer, logger interfaces.Logger, opts ...commands.HandlerOption[ReorderSectionsCommand]) *ReorderSectionsHandler {
	exec := func(ctx context.Context, msg ReorderSectionsCommand) error {
		_, err := service.Reorder(ctx, sections.ReorderSectionsInput{
			TenantID:   msg.TenantID,
			OrderedIDs: msg.OrderedIDs,
			ActorID:    msg.ActorID,
		})
		return err
	}
	handlerOpts := []commands.HandlerOption[ReorderSectionsCommand]{
		commands.WithLogger[ReorderSectionsCommand](ensureLogger(logger)),
		commands.WithOperation[ReorderSectionsCommand]("sections.reorder"),
		commands.WithMessageFields(func(msg ReorderSectionsCommand) map[string]any {
			return compactFields(map[string]any{"tenant_id": msg.TenantID, "count": len(msg.OrderedIDs)})
		}),
	}
	return &ReorderSectionsHandler{inner: commands.NewHandler(exec, append(handlerOpts, opts...)...)}
}

func (h *ReorderSectionsHandler) Execute(ctx context.Context, msg ReorderSectionsCommand) error {
	return h.inner.Execute(ctx, msg)
}

// recoverVariant returns the first declared variant when err reports an
// undeclared one that differs from it.
func recoverVariant(err error, requested string) (string, bool) {
	var invalid *sections.InvalidVariantError
	if !errors.As(err, &invalid) || len(invalid.Declared) == 0 {
		return "", false
	}
	fallback := invalid.Declared[0]
	if fallback == strings.TrimSpace(requested) {
		return "", false
	}
	return fallback, true
}

func compactFields(fields map[string]any) map[string]any {
	for key, value := range fields {
		switch v := value.(type) {
		case uuid.UUID:
			if v == uuid.Nil {
				delete(fields, key)
			} else {
				fields[key] = v.String()
			}
		case string:
			if v == "" {
				delete(fields, key)
			}
		}
	}
	return fields
}

func ensureLogger(logger interfaces.Logger) interfaces.Logger {
	if logger == nil {
		return logging.NoOp()
	}
	return logger
}
