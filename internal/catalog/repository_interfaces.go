package catalog

import (
	"context"

	"github.com/google/uuid"
)

// Repository is the persistence contract for the section library.
type Repository interface {
	List(ctx context.Context) ([]*Entry, error)
	GetByKey(ctx context.Context, key string) (*Entry, error)
	GetByID(ctx context.Context, id uuid.UUID) (*Entry, error)
	Create(ctx context.Context, entry *Entry) (*Entry, error)
	Update(ctx context.Context, entry *Entry) (*Entry, error)
}
