// Package identity derives stable UUIDs for catalog records and tenants.
package identity

import (
	"strings"

	hashid "github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
)

// UUID derives a deterministic UUID from a key using go-hashid. Keys must be
// prefixed by entity type to avoid collisions.
func UUID(key string) uuid.UUID {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return uuid.Nil
	}
	uid, err := hashid.NewUUID(trimmed, hashid.WithHashAlgorithm(hashid.SHA256), hashid.WithNormalization(true))
	if err != nil || uid == uuid.Nil {
		return uuid.NewSHA1(uuid.NameSpaceOID, []byte(trimmed))
	}
	return uid
}

// SectionLibraryUUID identifies a catalog entry by its section key.
func SectionLibraryUUID(sectionKey string) uuid.UUID {
	return UUID("go-landing:section_library:" + strings.ToLower(strings.TrimSpace(sectionKey)))
}

// TenantUUID maps a restaurant slug to its tenant identifier.
func TenantUUID(slug string) uuid.UUID {
	return UUID("go-landing:tenant:" + strings.ToLower(strings.TrimSpace(slug)))
}
