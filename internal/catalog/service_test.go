package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/catalog"
)

type countingRepository struct {
	catalog.Repository
	lists int
}

func (c *countingRepository) List(ctx context.Context) ([]*catalog.Entry, error) {
	c.lists++
	return c.Repository.List(ctx)
}

func TestServiceCachesLibrary(t *testing.T) {
	ctx := context.Background()
	repo := &countingRepository{Repository: catalog.NewMemoryRepository(catalog.MustBuiltin()...)}
	svc := catalog.NewService(repo)

	for i := 0; i < 3; i++ {
		if _, err := svc.List(ctx); err != nil {
			t.Fatalf("list: %v", err)
		}
	}
	if _, err := svc.Get(ctx, "hero"); err != nil {
		t.Fatalf("get: %v", err)
	}
	if repo.lists != 1 {
		t.Fatalf("expected a single repository load, got %d", repo.lists)
	}
}

func TestServiceGetNormalizesKeyAndReportsNotFound(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(catalog.NewMemoryRepository(catalog.MustBuiltin()...))

	entry, err := svc.Get(ctx, "  Hero ")
	if err != nil || entry.Key != "hero" {
		t.Fatalf("expected hero entry got %v (%v)", entry, err)
	}

	_, err = svc.Get(ctx, "reviews")
	var notFound *catalog.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}

func TestServiceListReturnsCopies(t *testing.T) {
	ctx := context.Background()
	svc := catalog.NewService(catalog.NewMemoryRepository(catalog.MustBuiltin()...))

	entries, _ := svc.List(ctx)
	entries[0].Name = "mutated"

	again, _ := svc.List(ctx)
	if again[0].Name == "mutated" {
		t.Fatalf("expected cached entries to be isolated from callers")
	}
}

func TestServiceSyncUpsertsAndRefreshes(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	repo := catalog.NewMemoryRepository()
	svc := catalog.NewService(repo, catalog.WithClock(func() time.Time { return now }))

	if _, err := svc.List(ctx); err != nil {
		t.Fatalf("initial list: %v", err)
	}

	library := catalog.MustBuiltin()
	result, err := svc.Sync(ctx, library)
	if err != nil {
		t.Fatalf("sync: %v", err)
	}
	if result.Created != len(library) || result.Updated != 0 {
		t.Fatalf("unexpected first sync result %+v", result)
	}

	entries, err := svc.List(ctx)
	if err != nil || len(entries) != len(library) {
		t.Fatalf("expected refreshed library of %d got %d (%v)", len(library), len(entries), err)
	}

	library[1].Name = "Hero banner"
	result, err = svc.Sync(ctx, library)
	if err != nil {
		t.Fatalf("second sync: %v", err)
	}
	if result.Updated != 1 || result.Unchanged != len(library)-1 {
		t.Fatalf("unexpected second sync result %+v", result)
	}

	hero, _ := svc.Get(ctx, "hero")
	if hero.Name != "Hero banner" || hero.ID == uuid.Nil || !hero.CreatedAt.Equal(now) {
		t.Fatalf("expected updated hero entry got %+v", hero)
	}
}
