// Package sections stores the sections a tenant has placed on its landing
// page together with their variant, configuration and order.
package sections

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/configschema"
	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/activity"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Service manages configured sections. Every operation is scoped to a
// tenant; ids owned by another tenant are reported as not found.
type Service interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]*ConfiguredSection, error)
	ListActive(ctx context.Context, tenantID uuid.UUID) ([]*ConfiguredSection, error)
	Get(ctx context.Context, tenantID, id uuid.UUID) (*ConfiguredSection, error)
	Create(ctx context.Context, input CreateSectionInput) (*ConfiguredSection, error)
	Update(ctx context.Context, input UpdateSectionInput) (*ConfiguredSection, error)
	Delete(ctx context.Context, req DeleteSectionRequest) error
	Toggle(ctx context.Context, req ToggleSectionRequest) (*ConfiguredSection, error)
	Reorder(ctx context.Context, input ReorderSectionsInput) ([]*ConfiguredSection, error)
}

// CatalogReader resolves catalog entries by key. catalog.Service satisfies it.
type CatalogReader interface {
	Get(ctx context.Context, key string) (*catalog.Entry, error)
}

// IDGenerator produces section ids.
type IDGenerator func() uuid.UUID

type ServiceOption func(*service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithIDGenerator(generator IDGenerator) ServiceOption {
	return func(s *service) {
		if generator != nil {
			s.id = generator
		}
	}
}

// WithActivityEmitter wires mutation events.
func WithActivityEmitter(emitter *activity.Emitter) ServiceOption {
	return func(s *service) {
		if emitter != nil {
			s.activity = emitter
		}
	}
}

func NewService(repo Repository, library CatalogReader, opts ...ServiceOption) Service {
	s := &service{
		repo:     repo,
		library:  library,
		logger:   logging.NoOp(),
		now:      time.Now,
		id:       uuid.New,
		activity: activity.NewEmitter(nil, activity.Config{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type service struct {
	repo     Repository
	library  CatalogReader
	logger   interfaces.Logger
	now      func() time.Time
	id       IDGenerator
	activity *activity.Emitter
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID) ([]*ConfiguredSection, error) {
	if err := s.ready(tenantID); err != nil {
		return nil, err
	}
	records, err := s.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	SortByOrder(records)
	return records, nil
}

func (s *service) ListActive(ctx context.Context, tenantID uuid.UUID) ([]*ConfiguredSection, error) {
	records, err := s.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	return slices.DeleteFunc(records, func(record *ConfiguredSection) bool { return !record.IsActive }), nil
}

func (s *service) Get(ctx context.Context, tenantID, id uuid.UUID) (*ConfiguredSection, error) {
	if err := s.ready(tenantID); err != nil {
		return nil, err
	}
	if id == uuid.Nil {
		return nil, ErrSectionIDRequired
	}
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if record.TenantID != tenantID {
		return nil, &NotFoundError{Resource: configuredSectionResource, Key: id.String()}
	}
	return record, nil
}

func (s *service) Create(ctx context.Context, input CreateSectionInput) (*ConfiguredSection, error) {
	if err := s.ready(input.TenantID); err != nil {
		return nil, err
	}
	key := catalog.NormalizeKey(input.SectionKey)
	if key == "" {
		return nil, ErrSectionKeyRequired
	}

	entry, err := s.entry(ctx, key)
	if err != nil {
		return nil, err
	}
	variant := strings.TrimSpace(input.Variant)
	if variant == "" {
		variant = entry.DefaultVariant().Key
	}
	if !entry.HasVariant(variant) {
		return nil, invalidVariant(entry, variant)
	}

	props := entry.PropsFor(variant)
	overrides, err := configschema.NormalizeData(props, input.ConfigData)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.ListByTenant(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}
	next := 1
	for _, record := range existing {
		next = max(next, record.OrderIndex+1)
	}

	now := s.now()
	record, err := s.repo.Create(ctx, &ConfiguredSection{
		ID:         s.id(),
		TenantID:   input.TenantID,
		SectionKey: entry.Key,
		Variant:    variant,
		ConfigData: configschema.Defaults(props).Merge(overrides),
		OrderIndex: next,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		return nil, err
	}

	s.log(record).Info("sections.created", "order_index", record.OrderIndex)
	s.emitActivity(ctx, input.ActorID, "create", record, map[string]any{
		"section_key": record.SectionKey,
		"variant":     record.Variant,
		"order_index": record.OrderIndex,
	})
	return record, nil
}

func (s *service) Update(ctx context.Context, input UpdateSectionInput) (*ConfiguredSection, error) {
	record, err := s.Get(ctx, input.TenantID, input.ID)
	if err != nil {
		return nil, err
	}
	entry, err := s.entry(ctx, record.SectionKey)
	if err != nil {
		return nil, err
	}

	if input.Variant != nil {
		variant := strings.TrimSpace(*input.Variant)
		if !entry.HasVariant(variant) {
			return nil, invalidVariant(entry, variant)
		}
		record.Variant = variant
	}

	patch, err := configschema.NormalizeData(entry.PropsFor(record.Variant), input.ConfigData)
	if err != nil {
		return nil, err
	}
	record.ConfigData = record.ConfigData.Merge(patch)
	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(input.ConfigData))
	for key := range input.ConfigData {
		keys = append(keys, key)
	}
	slices.Sort(keys)
	s.log(updated).Debug("sections.updated", "keys", keys)
	s.emitActivity(ctx, input.ActorID, "update", updated, map[string]any{
		"section_key": updated.SectionKey,
		"variant":     updated.Variant,
		"keys":        keys,
	})
	return updated, nil
}

// Delete removes the section. The order of the remaining sections is left
// untouched, gaps included.
func (s *service) Delete(ctx context.Context, req DeleteSectionRequest) error {
	record, err := s.Get(ctx, req.TenantID, req.ID)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, record.ID); err != nil {
		return err
	}
	s.log(record).Info("sections.deleted")
	s.emitActivity(ctx, req.ActorID, "delete", record, map[string]any{
		"section_key": record.SectionKey,
	})
	return nil
}

func (s *service) Toggle(ctx context.Context, req ToggleSectionRequest) (*ConfiguredSection, error) {
	record, err := s.Get(ctx, req.TenantID, req.ID)
	if err != nil {
		return nil, err
	}
	record.IsActive = !record.IsActive
	record.UpdatedAt = s.now()

	updated, err := s.repo.Update(ctx, record)
	if err != nil {
		return nil, err
	}
	s.log(updated).Debug("sections.toggled", "is_active", updated.IsActive)
	s.emitActivity(ctx, req.ActorID, "toggle", updated, map[string]any{
		"section_key": updated.SectionKey,
		"is_active":   updated.IsActive,
	})
	return updated, nil
}

// Reorder assigns OrderIndex 1..N following OrderedIDs, which must list
// every section of the tenant exactly once.
func (s *service) Reorder(ctx context.Context, input ReorderSectionsInput) ([]*ConfiguredSection, error) {
	current, err := s.List(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(current))
	for i, record := range current {
		ids[i] = record.ID
	}
	if err := ValidatePermutation(ids, input.OrderedIDs); err != nil {
		return nil, err
	}

	positions := make([]Position, len(input.OrderedIDs))
	for i, id := range input.OrderedIDs {
		positions[i] = Position{ID: id, OrderIndex: i + 1}
	}
	if err := s.repo.ApplyOrder(ctx, input.TenantID, positions); err != nil {
		return nil, err
	}

	reordered, err := s.List(ctx, input.TenantID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("sections.reordered", "tenant_id", input.TenantID.String(), "count", len(positions))
	if s.activity.Enabled() {
		order := make([]string, len(input.OrderedIDs))
		for i, id := range input.OrderedIDs {
			order[i] = id.String()
		}
		_ = s.activity.Emit(ctx, activity.Event{
			Verb:       "reorder",
			ActorID:    input.ActorID.String(),
			TenantID:   input.TenantID.String(),
			ObjectType: "landing_page",
			ObjectID:   input.TenantID.String(),
			Metadata:   map[string]any{"order": order},
		})
	}
	return reordered, nil
}

// SortByOrder sorts by OrderIndex keeping the incoming order for ties.
func SortByOrder(records []*ConfiguredSection) {
	slices.SortStableFunc(records, func(a, b *ConfiguredSection) int {
		return a.OrderIndex - b.OrderIndex
	})
}

func (s *service) ready(tenantID uuid.UUID) error {
	if s.repo == nil {
		return ErrRepositoryRequired
	}
	if tenantID == uuid.Nil {
		return ErrTenantRequired
	}
	return nil
}

func (s *service) entry(ctx context.Context, key string) (*catalog.Entry, error) {
	if s.library == nil {
		return nil, ErrCatalogRequired
	}
	entry, err := s.library.Get(ctx, key)
	if err != nil {
		var notFound *catalog.NotFoundError
		if errors.As(err, &notFound) {
			return nil, &unknownSectionError{key: key}
		}
		return nil, err
	}
	return entry, nil
}

type unknownSectionError struct {
	key string
}

func (e *unknownSectionError) Error() string {
	return ErrUnknownSection.Error() + ": " + e.key
}

func (e *unknownSectionError) Unwrap() error { return ErrUnknownSection }

func invalidVariant(entry *catalog.Entry, variant string) error {
	declared := make([]string, len(entry.Variants))
	for i, v := range entry.Variants {
		declared[i] = v.Key
	}
	return &InvalidVariantError{SectionKey: entry.Key, Variant: variant, Declared: declared}
}

func (s *service) log(record *ConfiguredSection) interfaces.Logger {
	return logging.WithSectionContext(s.logger, record.TenantID, record.ID, record.SectionKey, record.Variant)
}

func (s *service) emitActivity(ctx context.Context, actor uuid.UUID, verb string, record *ConfiguredSection, meta map[string]any) {
	if s.activity == nil || !s.activity.Enabled() || record == nil {
		return
	}
	_ = s.activity.Emit(ctx, activity.Event{
		Verb:       verb,
		ActorID:    actor.String(),
		TenantID:   record.TenantID.String(),
		ObjectType: configuredSectionResource,
		ObjectID:   record.ID.String(),
		Metadata:   meta,
	})
}
