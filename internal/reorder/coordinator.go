// Package reorder applies section reorders optimistically to a view and
// reconciles the view with the store when the durable write fails.
package reorder

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/internal/metrics"
	"github.com/goliatone/go-landing/internal/sections"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

const (
	DefaultAttemptTimeout = 5 * time.Second
	DefaultRetries        = 1
)

// Store is the durable side of a reorder. sections.Service satisfies it.
type Store interface {
	List(ctx context.Context, tenantID uuid.UUID) ([]*sections.ConfiguredSection, error)
	Reorder(ctx context.Context, input sections.ReorderSectionsInput) ([]*sections.ConfiguredSection, error)
}

// RollbackFunc is invoked after optimistic state has been discarded.
type RollbackFunc func(ctx context.Context, tenantID uuid.UUID, cause error)

type Option func(*Coordinator)

func WithLogger(logger interfaces.Logger) Option {
	return func(c *Coordinator) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithAttemptTimeout bounds each durable write attempt.
func WithAttemptTimeout(timeout time.Duration) Option {
	return func(c *Coordinator) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// WithRetries sets how many times a transient failure is retried.
func WithRetries(retries int) Option {
	return func(c *Coordinator) {
		if retries >= 0 {
			c.retries = retries
		}
	}
}

func WithRollbackHandler(fn RollbackFunc) Option {
	return func(c *Coordinator) {
		c.onRollback = fn
	}
}

func WithMetrics(recorder metrics.Recorder) Option {
	return func(c *Coordinator) {
		if recorder != nil {
			c.metrics = recorder
		}
	}
}

// Coordinator runs the two-phase optimistic reorder protocol.
type Coordinator struct {
	store      Store
	view       View
	logger     interfaces.Logger
	metrics    metrics.Recorder
	timeout    time.Duration
	retries    int
	onRollback RollbackFunc
}

func NewCoordinator(store Store, view View, opts ...Option) *Coordinator {
	if view == nil {
		view = NewMemoryView()
	}
	c := &Coordinator{
		store:   store,
		view:    view,
		logger:  logging.NoOp(),
		metrics: metrics.NoOp(),
		timeout: DefaultAttemptTimeout,
		retries: DefaultRetries,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// View returns the view the coordinator updates.
func (c *Coordinator) View() View { return c.view }

// Load replaces the tenant's view with the stored list.
func (c *Coordinator) Load(ctx context.Context, tenantID uuid.UUID) ([]*sections.ConfiguredSection, error) {
	if c.store == nil {
		return nil, ErrStoreRequired
	}
	list, err := c.store.List(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	c.view.Replace(tenantID, list)
	return c.view.Snapshot(tenantID), nil
}

// Reorder runs Begin followed by Commit.
func (c *Coordinator) Reorder(ctx context.Context, tenantID uuid.UUID, orderedIDs []uuid.UUID) error {
	pending, err := c.Begin(ctx, tenantID, orderedIDs)
	if err != nil {
		return err
	}
	return pending.Commit(ctx)
}

// Begin validates orderedIDs against the view and applies the new order to
// the view before anything is written durably. A tenant the view has not
// seen yet is loaded from the store first.
func (c *Coordinator) Begin(ctx context.Context, tenantID uuid.UUID, orderedIDs []uuid.UUID) (*Pending, error) {
	if c.store == nil {
		return nil, ErrStoreRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if !c.view.Loaded(tenantID) {
		if _, err := c.Load(ctx, tenantID); err != nil {
			return nil, err
		}
	}

	snapshot := c.view.Snapshot(tenantID)
	current := make([]uuid.UUID, len(snapshot))
	byID := make(map[uuid.UUID]*sections.ConfiguredSection, len(snapshot))
	for i, record := range snapshot {
		current[i] = record.ID
		byID[record.ID] = record
	}
	if err := sections.ValidatePermutation(current, orderedIDs); err != nil {
		c.metrics.ReorderOutcome(metrics.ReorderRejected)
		return nil, err
	}

	optimistic := make([]*sections.ConfiguredSection, len(orderedIDs))
	for i, id := range orderedIDs {
		record := byID[id].Clone()
		record.OrderIndex = i + 1
		optimistic[i] = record
	}
	c.view.Replace(tenantID, optimistic)

	return &Pending{
		coordinator: c,
		tenantID:    tenantID,
		orderedIDs:  append([]uuid.UUID(nil), orderedIDs...),
		snapshot:    snapshot,
	}, nil
}

// Pending is an optimistic reorder awaiting Commit or Rollback.
type Pending struct {
	coordinator *Coordinator
	tenantID    uuid.UUID
	orderedIDs  []uuid.UUID
	snapshot    []*sections.ConfiguredSection

	mu     sync.Mutex
	closed bool
}

// Commit writes the order durably. Transient failures are retried; on final
// failure the view is reconciled with the store and a *RollbackError is
// returned.
func (p *Pending) Commit(ctx context.Context) error {
	if !p.close() {
		return ErrPendingClosed
	}
	c := p.coordinator
	logger := logging.WithFields(c.logger, map[string]any{"tenant_id": p.tenantID.String()})

	input := sections.ReorderSectionsInput{TenantID: p.tenantID, OrderedIDs: p.orderedIDs}
	attempts := 0
	var lastErr error
	for attempt := 0; attempt <= c.retries; attempt++ {
		attempts++
		if attempt > 0 {
			c.metrics.ReorderOutcome(metrics.ReorderRetried)
			logger.Warn("reorder.retry", "attempt", attempts, "error", lastErr)
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
		list, err := c.store.Reorder(attemptCtx, input)
		cancel()
		if err == nil {
			c.view.Replace(p.tenantID, list)
			c.metrics.ReorderOutcome(metrics.ReorderCommitted)
			logger.Debug("reorder.committed", "attempts", attempts, "count", len(list))
			return nil
		}
		lastErr = err
		if !retryable(ctx, err) {
			break
		}
	}

	return p.discard(ctx, attempts, lastErr)
}

// Rollback discards the optimistic order and restores the snapshot taken by
// Begin. Nothing was written durably, so the store is not consulted.
func (p *Pending) Rollback(ctx context.Context) error {
	if !p.close() {
		return ErrPendingClosed
	}
	c := p.coordinator
	c.view.Replace(p.tenantID, p.snapshot)
	c.metrics.ReorderOutcome(metrics.ReorderCanceled)
	if c.onRollback != nil {
		c.onRollback(ctx, p.tenantID, ErrCanceled)
	}
	return nil
}

func (p *Pending) discard(ctx context.Context, attempts int, cause error) error {
	c := p.coordinator
	rollback := &RollbackError{TenantID: p.tenantID, Attempts: attempts, Cause: cause}

	// the caller's context may be the reason the write failed
	refetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.timeout)
	defer cancel()

	fresh, err := c.store.List(refetchCtx, p.tenantID)
	if err != nil {
		rollback.RefetchErr = err
		c.view.Replace(p.tenantID, p.snapshot)
	} else {
		c.view.Replace(p.tenantID, fresh)
	}

	c.metrics.ReorderOutcome(metrics.ReorderRolledBack)
	c.logger.Warn("reorder.rolled_back",
		"tenant_id", p.tenantID.String(),
		"attempts", attempts,
		"error", cause,
		"refetch_error", rollback.RefetchErr,
	)
	if c.onRollback != nil {
		c.onRollback(ctx, p.tenantID, rollback)
	}
	return rollback
}

func (p *Pending) close() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return false
	}
	p.closed = true
	return true
}

// retryable reports whether a failed durable write may succeed when tried
// again. Domain rejections and a finished caller context are final.
func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var notFound *sections.NotFoundError
	switch {
	case errors.Is(err, sections.ErrInvalidPermutation),
		errors.Is(err, sections.ErrTenantRequired),
		errors.As(err, &notFound),
		errors.Is(err, context.Canceled):
		return false
	}
	return true
}
