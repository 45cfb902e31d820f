package i18n

import (
	"context"
	"maps"
	"sync"

	"github.com/google/uuid"
)

// MemoryTranslations serves per-restaurant translation tables from memory.
type MemoryTranslations struct {
	mu     sync.RWMutex
	tables map[uuid.UUID]Translations
}

func NewMemoryTranslations() *MemoryTranslations {
	return &MemoryTranslations{tables: make(map[uuid.UUID]Translations)}
}

// Set replaces the table for tenantID.
func (m *MemoryTranslations) Set(tenantID uuid.UUID, table Translations) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tables[tenantID] = cloneTranslations(table)
}

// RestaurantTranslations returns a copy of the tenant table, or an empty
// table when none was set.
func (m *MemoryTranslations) RestaurantTranslations(_ context.Context, tenantID uuid.UUID) (map[string]map[string]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return cloneTranslations(m.tables[tenantID]), nil
}

func cloneTranslations(table Translations) map[string]map[string]string {
	out := make(map[string]map[string]string, len(table))
	for lang, fields := range table {
		out[lang] = maps.Clone(fields)
	}
	return out
}
