package sections

import (
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewConfiguredSectionRepository creates a go-repository-bun repository for
// configured sections.
func NewConfiguredSectionRepository(db *bun.DB) repository.Repository[*ConfiguredSection] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*ConfiguredSection]{
		NewRecord:          func() *ConfiguredSection { return &ConfiguredSection{} },
		GetID:              func(s *ConfiguredSection) uuid.UUID { return s.ID },
		SetID:              func(s *ConfiguredSection, id uuid.UUID) { s.ID = id },
		GetIdentifier:      func() string { return "id" },
		GetIdentifierValue: func(s *ConfiguredSection) string { return s.ID.String() },
	})
}
