package configschema

import (
	"errors"
	"fmt"

	"github.com/goliatone/go-landing/internal/catalog"
)

var (
	ErrNoCustomization    = errors.New("configschema: no customization available")
	ErrValidationRejected = errors.New("configschema: value rejected")
	ErrUnknownProperty    = errors.New("configschema: unknown property")
)

// ValidationError reports why a value was rejected for a property.
type ValidationError struct {
	Key    string
	Type   catalog.PropType
	Reason string
	Err    error
}

func (e *ValidationError) Error() string {
	if e.Type == "" {
		return fmt.Sprintf("configschema: %s: %s", e.Key, e.Reason)
	}
	return fmt.Sprintf("configschema: %s (%s): %s", e.Key, e.Type, e.Reason)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidationRejected, e.Err}
	}
	return []error{ErrValidationRejected}
}

func reject(prop catalog.PropDescriptor, reason string, cause error) error {
	return &ValidationError{Key: prop.Key, Type: prop.Type, Reason: reason, Err: cause}
}
