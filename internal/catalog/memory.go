package catalog

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryRepository returns an in-memory library repository, optionally
// seeded with entries.
func NewMemoryRepository(seed ...*Entry) Repository {
	repo := &memoryRepository{
		byID:  make(map[uuid.UUID]*Entry),
		byKey: make(map[string]uuid.UUID),
	}
	for _, entry := range seed {
		_, _ = repo.Create(context.Background(), entry)
	}
	return repo
}

type memoryRepository struct {
	mu    sync.RWMutex
	byID  map[uuid.UUID]*Entry
	byKey map[string]uuid.UUID
}

func (m *memoryRepository) List(_ context.Context) ([]*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Entry, 0, len(m.byID))
	for _, entry := range m.byID {
		out = append(out, entry.Clone())
	}
	sortEntries(out)
	return out, nil
}

func (m *memoryRepository) GetByKey(_ context.Context, key string) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byKey[key]
	if !ok {
		return nil, &NotFoundError{Resource: "section_library", Key: key}
	}
	return m.byID[id].Clone(), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	entry, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "section_library", Key: id.String()}
	}
	return entry.Clone(), nil
}

func (m *memoryRepository) Create(_ context.Context, entry *Entry) (*Entry, error) {
	if entry == nil || entry.Key == "" {
		return nil, ErrEntryKeyRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.byKey[entry.Key]; exists {
		return nil, ErrDuplicateEntry
	}
	record := entry.Clone()
	if record.ID == uuid.Nil {
		record.ID = uuid.New()
	}
	m.byID[record.ID] = record
	m.byKey[record.Key] = record.ID
	return record.Clone(), nil
}

func (m *memoryRepository) Update(_ context.Context, entry *Entry) (*Entry, error) {
	if entry == nil {
		return nil, ErrEntryKeyRequired
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	current, ok := m.byID[entry.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "section_library", Key: entry.ID.String()}
	}
	if current.Key != entry.Key {
		if _, taken := m.byKey[entry.Key]; taken {
			return nil, ErrDuplicateEntry
		}
		delete(m.byKey, current.Key)
		m.byKey[entry.Key] = entry.ID
	}
	record := entry.Clone()
	m.byID[record.ID] = record
	return record.Clone(), nil
}

func sortEntries(entries []*Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Position != entries[j].Position {
			return entries[i].Position < entries[j].Position
		}
		return entries[i].Key < entries[j].Key
	})
}
