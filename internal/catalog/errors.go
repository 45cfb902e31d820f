package catalog

import (
	"errors"
	"fmt"
)

var (
	ErrEntryKeyRequired   = errors.New("catalog: section key is required")
	ErrStandardVariant    = errors.New("catalog: entry must declare a standard variant")
	ErrDuplicateEntry     = errors.New("catalog: duplicate section key")
	ErrInvalidDocument    = errors.New("catalog: invalid section document")
	ErrRepositoryRequired = errors.New("catalog: repository is required")
)

// NotFoundError is returned when a catalog entry cannot be located.
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
