package reorder

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrStoreRequired = errors.New("reorder: store is required")
	ErrPendingClosed = errors.New("reorder: pending reorder already committed or rolled back")
	ErrCanceled      = errors.New("reorder: canceled by caller")
)

// RollbackError reports a reorder whose durable write failed and whose
// optimistic state was discarded. RefetchErr is set when the authoritative
// list could not be reloaded and the pre-reorder snapshot was restored.
type RollbackError struct {
	TenantID   uuid.UUID
	Attempts   int
	Cause      error
	RefetchErr error
}

func (e *RollbackError) Error() string {
	if e.RefetchErr != nil {
		return fmt.Sprintf("reorder: rolled back tenant %s after %d attempt(s): %v (refetch failed: %v)", e.TenantID, e.Attempts, e.Cause, e.RefetchErr)
	}
	return fmt.Sprintf("reorder: rolled back tenant %s after %d attempt(s): %v", e.TenantID, e.Attempts, e.Cause)
}

func (e *RollbackError) Unwrap() []error {
	if e.RefetchErr != nil {
		return []error{e.Cause, e.RefetchErr}
	}
	return []error{e.Cause}
}
