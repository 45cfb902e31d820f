package reorder

import (
	"sync"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/sections"
)

// View is the caller-visible copy of a tenant's section list that receives
// optimistic updates.
type View interface {
	Snapshot(tenantID uuid.UUID) []*sections.ConfiguredSection
	Replace(tenantID uuid.UUID, list []*sections.ConfiguredSection)
	// Loaded reports whether the tenant's list has been replaced at least once.
	Loaded(tenantID uuid.UUID) bool
}

// MemoryView keeps per-tenant lists in memory.
type MemoryView struct {
	mu    sync.RWMutex
	lists map[uuid.UUID][]*sections.ConfiguredSection
}

func NewMemoryView() *MemoryView {
	return &MemoryView{lists: make(map[uuid.UUID][]*sections.ConfiguredSection)}
}

// Snapshot returns a deep copy ordered by OrderIndex.
func (v *MemoryView) Snapshot(tenantID uuid.UUID) []*sections.ConfiguredSection {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return cloneList(v.lists[tenantID])
}

func (v *MemoryView) Loaded(tenantID uuid.UUID) bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	_, ok := v.lists[tenantID]
	return ok
}

func (v *MemoryView) Replace(tenantID uuid.UUID, list []*sections.ConfiguredSection) {
	cloned := cloneList(list)
	sections.SortByOrder(cloned)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.lists[tenantID] = cloned
}

func cloneList(list []*sections.ConfiguredSection) []*sections.ConfiguredSection {
	out := make([]*sections.ConfiguredSection, len(list))
	for i, record := range list {
		out[i] = record.Clone()
	}
	return out
}
