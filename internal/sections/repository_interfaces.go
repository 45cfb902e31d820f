package sections

import (
	"context"

	"github.com/google/uuid"
)

// Repository persists configured sections.
type Repository interface {
	Create(ctx context.Context, section *ConfiguredSection) (*ConfiguredSection, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ConfiguredSection, error)
	// ListByTenant returns the tenant's sections in insertion order.
	ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*ConfiguredSection, error)
	Update(ctx context.Context, section *ConfiguredSection) (*ConfiguredSection, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// ApplyOrder writes every position or none of them.
	ApplyOrder(ctx context.Context, tenantID uuid.UUID, positions []Position) error
}
