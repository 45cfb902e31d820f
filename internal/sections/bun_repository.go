package sections

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const configuredSectionResource = "configured_section"

// BunSectionRepository stores configured sections in SQLite or Postgres.
// It is not cached: ApplyOrder writes through a raw transaction that a
// list cache would not observe.
type BunSectionRepository struct {
	db   *bun.DB
	repo repository.Repository[*ConfiguredSection]
	now  func() time.Time
}

func NewBunSectionRepository(db *bun.DB) *BunSectionRepository {
	return &BunSectionRepository{
		db:   db,
		repo: NewConfiguredSectionRepository(db),
		now:  time.Now,
	}
}

func (r *BunSectionRepository) Create(ctx context.Context, section *ConfiguredSection) (*ConfiguredSection, error) {
	if section.ID == uuid.Nil {
		section.ID = uuid.New()
	}
	record, err := r.repo.Create(ctx, section)
	if err != nil {
		return nil, mapRepositoryError(err, section.ID.String())
	}
	return record, nil
}

func (r *BunSectionRepository) GetByID(ctx context.Context, id uuid.UUID) (*ConfiguredSection, error) {
	record, err := r.repo.GetByID(ctx, id.String())
	if err != nil {
		return nil, mapRepositoryError(err, id.String())
	}
	return record, nil
}

func (r *BunSectionRepository) ListByTenant(ctx context.Context, tenantID uuid.UUID) ([]*ConfiguredSection, error) {
	records, _, err := r.repo.List(ctx, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("?TableAlias.tenant_id = ?", tenantID).
			OrderExpr("?TableAlias.created_at ASC").
			OrderExpr("?TableAlias.id ASC")
	}))
	if err != nil {
		return nil, mapRepositoryError(err, tenantID.String())
	}
	return records, nil
}

func (r *BunSectionRepository) Update(ctx context.Context, section *ConfiguredSection) (*ConfiguredSection, error) {
	updated, err := r.repo.Update(ctx, section,
		repository.UpdateByID(section.ID.String()),
		repository.UpdateColumns(
			"variant",
			"config_data",
			"order_index",
			"is_active",
			"updated_at",
		),
	)
	if err != nil {
		return nil, mapRepositoryError(err, section.ID.String())
	}
	return updated, nil
}

func (r *BunSectionRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := r.GetByID(ctx, id); err != nil {
		return err
	}
	if err := r.repo.Delete(ctx, &ConfiguredSection{ID: id}); err != nil {
		return mapRepositoryError(err, id.String())
	}
	return nil
}

// ApplyOrder updates every order_index inside one transaction. A position
// that matches no row of the tenant rolls the whole batch back.
func (r *BunSectionRepository) ApplyOrder(ctx context.Context, tenantID uuid.UUID, positions []Position) error {
	now := r.now()
	return r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		for _, pos := range positions {
			res, err := tx.NewUpdate().
				Model((*ConfiguredSection)(nil)).
				Set("order_index = ?", pos.OrderIndex).
				Set("updated_at = ?", now).
				Where("id = ?", pos.ID).
				Where("tenant_id = ?", tenantID).
				Exec(ctx)
			if err != nil {
				return fmt.Errorf("apply section order: %w", err)
			}
			if affected, _ := res.RowsAffected(); affected != 1 {
				return &NotFoundError{Resource: configuredSectionResource, Key: pos.ID.String()}
			}
		}
		return nil
	})
}

func mapRepositoryError(err error, key string) error {
	if err == nil {
		return nil
	}
	if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
		return &NotFoundError{Resource: configuredSectionResource, Key: key}
	}
	return fmt.Errorf("%s repository error: %w", configuredSectionResource, err)
}
