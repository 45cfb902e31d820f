package sections

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"
)

// NewMemorySectionRepository returns an in-memory repository that keeps
// insertion order.
func NewMemorySectionRepository() Repository {
	return &memoryRepository{byID: make(map[uuid.UUID]*ConfiguredSection)}
}

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*ConfiguredSection
	order []uuid.UUID
}

func (m *memoryRepository) Create(_ context.Context, section *ConfiguredSection) (*ConfiguredSection, error) {
	if section == nil {
		return nil, ErrSectionIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	record := section.Clone()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	if _, exists := m.byID[record.ID]; exists {
		return nil, ErrDuplicateSectionID
	}
	m.byID[record.ID] = record
	m.order = append(m.order, record.ID)
	return record.Clone(), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*ConfiguredSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: configuredSectionResource, Key: id.String()}
	}
	return record.Clone(), nil
}

func (m *memoryRepository) ListByTenant(_ context.Context, tenantID uuid.UUID) ([]*ConfiguredSection, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*ConfiguredSection, 0)
	for _, id := range m.order {
		if record := m.byID[id]; record.TenantID == tenantID {
			out = append(out, record.Clone())
		}
	}
	return out, nil
}

func (m *memoryRepository) Update(_ context.Context, section *ConfiguredSection) (*ConfiguredSection, error) {
	if section == nil {
		return nil, ErrSectionIDRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[section.ID]; !ok {
		return nil, &NotFoundError{Resource: configuredSectionResource, Key: section.ID.String()}
	}
	record := section.Clone()
	m.byID[record.ID] = record
	return record.Clone(), nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.byID[id]; !ok {
		return &NotFoundError{Resource: configuredSectionResource, Key: id.String()}
	}
	delete(m.byID, id)
	m.order = slices.DeleteFunc(m.order, func(candidate uuid.UUID) bool { return candidate == id })
	return nil
}

func (m *memoryRepository) ApplyOrder(_ context.Context, tenantID uuid.UUID, positions []Position) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, pos := range positions {
		record, ok := m.byID[pos.ID]
		if !ok || record.TenantID != tenantID {
			return &NotFoundError{Resource: configuredSectionResource, Key: pos.ID.String()}
		}
	}
	for _, pos := range positions {
		m.byID[pos.ID].OrderIndex = pos.OrderIndex
	}
	return nil
}
