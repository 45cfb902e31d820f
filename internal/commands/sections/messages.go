package sectionscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/configschema"
)

const (
	createSectionMessageType   = "landing.sections.create"
	updateSectionMessageType   = "landing.sections.update"
	deleteSectionMessageType   = "landing.sections.delete"
	toggleSectionMessageType   = "landing.sections.toggle"
	reorderSectionsMessageType = "landing.sections.reorder"
)

// CreateSectionCommand adds a catalog section to a tenant page.
type CreateSectionCommand struct {
	TenantID   uuid.UUID         `json:"tenant_id"`
	SectionKey string            `json:"section_key"`
	Variant    string            `json:"variant,omitempty"`
	ConfigData configschema.Data `json:"config_data,omitempty"`
	ActorID    uuid.UUID         `json:"actor_id,omitempty"`
	// Result receives the stored section after a successful execution.
	Result *ResultSink `json:"-"`
}

func (CreateSectionCommand) Type() string { return createSectionMessageType }

func (m CreateSectionCommand) Validate() error {
	errs := validation.Errors{}
	if m.TenantID == uuid.Nil {
		errs["tenant_id"] = validation.NewError("landing.sections.create.tenant_required", "tenant_id is required")
	}
	if err := validation.Validate(strings.TrimSpace(m.SectionKey),
		validation.Required.ErrorObject(validation.NewError("landing.sections.create.key_required", "section_key is required")),
		validation.Length(1, 64),
	); err != nil {
		errs["section_key"] = err
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// UpdateSectionCommand patches ConfigData and optionally switches variant.
type UpdateSectionCommand struct {
	TenantID   uuid.UUID         `json:"tenant_id"`
	SectionID  uuid.UUID         `json:"section_id"`
	Variant    *string           `json:"variant,omitempty"`
	ConfigData configschema.Data `json:"config_data,omitempty"`
	ActorID    uuid.UUID         `json:"actor_id,omitempty"`
	Result     *ResultSink       `json:"-"`
}

func (UpdateSectionCommand) Type() string { return updateSectionMessageType }

func (m UpdateSectionCommand) Validate() error {
	errs := targetErrors(updateSectionMessageType, m.TenantID, m.SectionID)
	if m.Variant != nil && strings.TrimSpace(*m.Variant) == "" {
		errs["variant"] = validation.NewError("landing.sections.update.variant_blank", "variant must not be blank when provided")
	}
	if m.Variant == nil && len(m.ConfigData) == 0 {
		errs["config_data"] = validation.NewError("landing.sections.update.empty", "variant or config_data is required")
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DeleteSectionCommand struct {
	TenantID  uuid.UUID `json:"tenant_id"`
	SectionID uuid.UUID `json:"section_id"`
	ActorID   uuid.UUID `json:"actor_id,omitempty"`
}

func (DeleteSectionCommand) Type() string { return deleteSectionMessageType }

func (m DeleteSectionCommand) Validate() error {
	if errs := targetErrors(deleteSectionMessageType, m.TenantID, m.SectionID); len(errs) > 0 {
		return errs
	}
	return nil
}

type ToggleSectionCommand struct {
	TenantID  uuid.UUID   `json:"tenant_id"`
	SectionID uuid.UUID   `json:"section_id"`
	ActorID   uuid.UUID   `json:"actor_id,omitempty"`
	Result    *ResultSink `json:"-"`
}

func (ToggleSectionCommand) Type() string { return toggleSectionMessageType }

func (m ToggleSectionCommand) Validate() error {
	if errs := targetErrors(toggleSectionMessageType, m.TenantID, m.SectionID); len(errs) > 0 {
		return errs
	}
	return nil
}

// ReorderSectionsCommand carries the full new order of a tenant page.
type ReorderSectionsCommand struct {
	TenantID   uuid.UUID   `json:"tenant_id"`
	OrderedIDs []uuid.UUID `json:"ordered_ids"`
	ActorID    uuid.UUID   `json:"actor_id,omitempty"`
}

func (ReorderSectionsCommand) Type() string { return reorderSectionsMessageType }

func (m ReorderSectionsCommand) Validate() error {
	errs := validation.Errors{}
	if m.TenantID == uuid.Nil {
		errs["tenant_id"] = validation.NewError("landing.sections.reorder.tenant_required", "tenant_id is required")
	}
	for _, id := range m.OrderedIDs {
		if id == uuid.Nil {
			errs["ordered_ids"] = validation.NewError("landing.sections.reorder.nil_id", "ordered_ids must not contain empty identifiers")
			break
		}
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

func targetErrors(prefix string, tenantID, sectionID uuid.UUID) validation.Errors {
	errs := validation.Errors{}
	if tenantID == uuid.Nil {
		errs["tenant_id"] = validation.NewError(prefix+".tenant_required", "tenant_id is required")
	}
	if sectionID == uuid.Nil {
		errs["section_id"] = validation.NewError(prefix+".section_required", "section_id is required")
	}
	return errs
}
