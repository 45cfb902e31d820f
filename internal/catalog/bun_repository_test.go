package catalog_test

import (
	"context"
	"errors"
	"testing"
	"time"

	repocache "github.com/goliatone/go-repository-cache/cache"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/pkg/testsupport"
)

func TestBunRepositoryWithCacheRoundTripsLibrary(t *testing.T) {
	ctx := context.Background()
	db := testsupport.NewMigratedBunDB(t)

	cacheCfg := repocache.DefaultConfig()
	cacheCfg.TTL = time.Minute
	cacheService, err := repocache.NewCacheService(cacheCfg)
	if err != nil {
		t.Fatalf("cache service: %v", err)
	}
	repo := catalog.NewBunRepositoryWithCache(db, cacheService, repocache.NewDefaultKeySerializer())
	svc := catalog.NewService(repo)

	if _, err := svc.Sync(ctx, catalog.MustBuiltin()); err != nil {
		t.Fatalf("sync: %v", err)
	}

	entries, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 7 || entries[0].Key != "header" {
		t.Fatalf("expected ordered library from database, got %d entries", len(entries))
	}

	menu, err := repo.GetByKey(ctx, "menu")
	if err != nil {
		t.Fatalf("get menu: %v", err)
	}
	premium, ok := menu.Variant("premium")
	if !ok || len(premium.Props) != 4 {
		t.Fatalf("expected premium variant props to survive jsonb storage, got %+v", premium)
	}
	if _, err := repo.GetByID(ctx, menu.ID); err != nil {
		t.Fatalf("get by id: %v", err)
	}

	_, err = repo.GetByKey(ctx, "reviews")
	var notFound *catalog.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError got %v", err)
	}
}
