package catalog

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/goliatone/go-landing/internal/logging"
	"github.com/goliatone/go-landing/pkg/interfaces"
)

// Service exposes the read-mostly section library.
type Service interface {
	List(ctx context.Context) ([]*Entry, error)
	Get(ctx context.Context, key string) (*Entry, error)
	Sync(ctx context.Context, entries []*Entry) (SyncResult, error)
}

// SyncResult counts the outcome of a Sync call.
type SyncResult struct {
	Created   int
	Updated   int
	Unchanged int
}

// ServiceOption configures the catalog service.
type ServiceOption func(*service)

func WithLogger(logger interfaces.Logger) ServiceOption {
	return func(s *service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithClock(clock func() time.Time) ServiceOption {
	return func(s *service) {
		if clock != nil {
			s.now = clock
		}
	}
}

// NewService wraps repo. The loaded library is cached for the lifetime of the
// service; only Sync refreshes it.
func NewService(repo Repository, opts ...ServiceOption) Service {
	s := &service{
		repo:   repo,
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type service struct {
	repo   Repository
	logger interfaces.Logger
	now    func() time.Time

	mu      sync.RWMutex
	loaded  bool
	ordered []*Entry
	byKey   map[string]*Entry
}

func (s *service) List(ctx context.Context) ([]*Entry, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Entry, len(s.ordered))
	for i, entry := range s.ordered {
		out[i] = entry.Clone()
	}
	return out, nil
}

func (s *service) Get(ctx context.Context, key string) (*Entry, error) {
	if err := s.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	normalized := NormalizeKey(key)

	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.byKey[normalized]
	if !ok {
		return nil, &NotFoundError{Resource: "section_library", Key: strings.TrimSpace(key)}
	}
	return entry.Clone(), nil
}

// Sync upserts entries by key and drops the cached library.
func (s *service) Sync(ctx context.Context, entries []*Entry) (SyncResult, error) {
	var result SyncResult
	if s.repo == nil {
		return result, ErrRepositoryRequired
	}

	for _, entry := range entries {
		if entry == nil {
			continue
		}
		candidate := entry.Clone()
		if err := normalizeEntry(candidate); err != nil {
			return result, err
		}

		existing, err := s.repo.GetByKey(ctx, candidate.Key)
		if err != nil {
			var notFound *NotFoundError
			if !errors.As(err, &notFound) {
				return result, err
			}
			now := s.now()
			candidate.CreatedAt, candidate.UpdatedAt = now, now
			if _, err := s.repo.Create(ctx, candidate); err != nil {
				return result, err
			}
			result.Created++
			continue
		}

		if sameDefinition(existing, candidate) {
			result.Unchanged++
			continue
		}
		candidate.ID = existing.ID
		candidate.CreatedAt = existing.CreatedAt
		candidate.UpdatedAt = s.now()
		if _, err := s.repo.Update(ctx, candidate); err != nil {
			return result, err
		}
		result.Updated++
	}

	s.mu.Lock()
	s.loaded = false
	s.ordered = nil
	s.byKey = nil
	s.mu.Unlock()

	s.logger.Info("catalog.synced", "created", result.Created, "updated", result.Updated, "unchanged", result.Unchanged)
	return result, nil
}

func (s *service) ensureLoaded(ctx context.Context) error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()
	if loaded {
		return nil
	}
	if s.repo == nil {
		return ErrRepositoryRequired
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return nil
	}

	entries, err := s.repo.List(ctx)
	if err != nil {
		return err
	}
	sortEntries(entries)
	s.ordered = entries
	s.byKey = make(map[string]*Entry, len(entries))
	for _, entry := range entries {
		s.byKey[entry.Key] = entry
	}
	s.loaded = true
	s.logger.Debug("catalog.loaded", "entries", len(entries))
	return nil
}

func sameDefinition(a, b *Entry) bool {
	return a.Key == b.Key &&
		a.Name == b.Name &&
		a.Description == b.Description &&
		a.Category == b.Category &&
		a.Position == b.Position &&
		reflect.DeepEqual(a.Variants, b.Variants) &&
		reflect.DeepEqual(a.Props, b.Props)
}
