package interfaces

import (
	"context"

	usertypes "github.com/goliatone/go-users/pkg/types"
)

// ActivityRecord mirrors the go-users activity record so downstream packages
// depend on a single type.
type ActivityRecord = usertypes.ActivityRecord

// ActivitySink receives activity records; it satisfies the go-users
// ActivitySink contract.
type ActivitySink interface {
	Log(ctx context.Context, record ActivityRecord) error
}
