package sections

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/goliatone/go-landing/internal/configschema"
)

// ConfiguredSection is a tenant-owned placement of a catalog entry.
type ConfiguredSection struct {
	bun.BaseModel `bun:"table:configured_sections,alias:cs"`

	ID         uuid.UUID         `bun:",pk,type:uuid" json:"id"`
	TenantID   uuid.UUID         `bun:"tenant_id,notnull,type:uuid" json:"tenant_id"`
	SectionKey string            `bun:"section_key,notnull" json:"section_key"`
	Variant    string            `bun:"variant,notnull" json:"variant"`
	ConfigData configschema.Data `bun:"config_data,type:jsonb" json:"config_data"`
	OrderIndex int               `bun:"order_index,notnull" json:"order_index"`
	IsActive   bool              `bun:"is_active,notnull" json:"is_active"`
	CreatedAt  time.Time         `bun:",nullzero,notnull,default:current_timestamp" json:"created_at"`
	UpdatedAt  time.Time         `bun:",nullzero,notnull,default:current_timestamp" json:"updated_at"`
}

// Clone returns a copy that shares no mutable state with s.
func (s *ConfiguredSection) Clone() *ConfiguredSection {
	if s == nil {
		return nil
	}
	cloned := *s
	cloned.ConfigData = s.ConfigData.Clone()
	return &cloned
}

// Position assigns an order index to a section.
type Position struct {
	ID         uuid.UUID
	OrderIndex int
}

// CreateSectionInput adds a catalog entry to a tenant's page. An empty
// Variant selects the entry's first declared variant.
type CreateSectionInput struct {
	TenantID   uuid.UUID
	SectionKey string
	Variant    string
	ConfigData configschema.Data
	ActorID    uuid.UUID
}

// UpdateSectionInput merges ConfigData into the stored configuration and
// optionally switches the variant.
type UpdateSectionInput struct {
	TenantID   uuid.UUID
	ID         uuid.UUID
	Variant    *string
	ConfigData configschema.Data
	ActorID    uuid.UUID
}

type DeleteSectionRequest struct {
	TenantID uuid.UUID
	ID       uuid.UUID
	ActorID  uuid.UUID
}

type ToggleSectionRequest struct {
	TenantID uuid.UUID
	ID       uuid.UUID
	ActorID  uuid.UUID
}

// ReorderSectionsInput carries the complete new order of a tenant's sections.
type ReorderSectionsInput struct {
	TenantID   uuid.UUID
	OrderedIDs []uuid.UUID
	ActorID    uuid.UUID
}
