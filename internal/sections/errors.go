package sections

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrTenantRequired     = errors.New("sections: tenant id is required")
	ErrSectionKeyRequired = errors.New("sections: section key is required")
	ErrInvalidVariant     = errors.New("sections: variant is not declared by the section")
	ErrUnknownSection     = errors.New("sections: section key is not in the catalog")
	ErrInvalidPermutation = errors.New("sections: order is not a permutation of the tenant sections")
	ErrRepositoryRequired = errors.New("sections: repository is required")
	ErrCatalogRequired    = errors.New("sections: catalog is required")
	ErrSectionIDRequired  = errors.New("sections: section id is required")
	ErrDuplicateSectionID = errors.New("sections: duplicate section id")
)

// NotFoundError is returned when a section does not exist for the tenant.
type NotFoundError struct {
	Resource string
	Key      string
}

func (e *NotFoundError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %q not found", e.Resource, e.Key)
}

// InvalidVariantError names the declared variants so callers can recover.
type InvalidVariantError struct {
	SectionKey string
	Variant    string
	Declared   []string
}

func (e *InvalidVariantError) Error() string {
	return fmt.Sprintf("sections: variant %q is not declared by %q (declared: %s)", e.Variant, e.SectionKey, strings.Join(e.Declared, ", "))
}

func (e *InvalidVariantError) Unwrap() error { return ErrInvalidVariant }

// PermutationError details why a reorder request was rejected.
type PermutationError struct {
	Missing    []uuid.UUID
	Unknown    []uuid.UUID
	Duplicates []uuid.UUID
}

func (e *PermutationError) Error() string {
	parts := make([]string, 0, 3)
	if len(e.Missing) > 0 {
		parts = append(parts, fmt.Sprintf("missing %d", len(e.Missing)))
	}
	if len(e.Unknown) > 0 {
		parts = append(parts, fmt.Sprintf("unknown %d", len(e.Unknown)))
	}
	if len(e.Duplicates) > 0 {
		parts = append(parts, fmt.Sprintf("duplicated %d", len(e.Duplicates)))
	}
	return fmt.Sprintf("%s (%s)", ErrInvalidPermutation.Error(), strings.Join(parts, ", "))
}

func (e *PermutationError) Unwrap() error { return ErrInvalidPermutation }

// ValidatePermutation checks that ordered lists every id of current exactly
// once and nothing else.
func ValidatePermutation(current, ordered []uuid.UUID) error {
	known := make(map[uuid.UUID]bool, len(current))
	for _, id := range current {
		known[id] = false
	}

	var perr PermutationError
	for _, id := range ordered {
		seen, ok := known[id]
		switch {
		case !ok:
			perr.Unknown = append(perr.Unknown, id)
		case seen:
			perr.Duplicates = append(perr.Duplicates, id)
		default:
			known[id] = true
		}
	}
	for _, id := range current {
		if !known[id] {
			perr.Missing = append(perr.Missing, id)
		}
	}

	if len(perr.Missing)+len(perr.Unknown)+len(perr.Duplicates) > 0 {
		return &perr
	}
	return nil
}
