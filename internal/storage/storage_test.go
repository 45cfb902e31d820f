package storage_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-landing/internal/storage"
)

func TestNormalizeDriverAliases(t *testing.T) {
	cases := map[string]string{"": storage.DriverSQLite, "sqlite3": storage.DriverSQLite, "PGX": storage.DriverPostgres, "postgresql": storage.DriverPostgres}
	for input, want := range cases {
		got, err := storage.NormalizeDriver(input)
		if err != nil || got != want {
			t.Fatalf("driver %q: expected %s got %s (%v)", input, want, got, err)
		}
	}
	if _, err := storage.NormalizeDriver("mysql"); !errors.Is(err, storage.ErrUnsupportedDriver) {
		t.Fatalf("expected ErrUnsupportedDriver got %v", err)
	}
}

func TestOpenRequiresDSN(t *testing.T) {
	if _, err := storage.Open(storage.Config{Driver: "sqlite"}); !errors.Is(err, storage.ErrDSNRequired) {
		t.Fatalf("expected ErrDSNRequired got %v", err)
	}
}

func TestMigrateCreatesTablesIdempotently(t *testing.T) {
	db, err := storage.Open(storage.Config{Driver: "sqlite", DSN: "file:storage_migrate_test?mode=memory&cache=shared"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if err := storage.Migrate(ctx, db); err != nil {
			t.Fatalf("migrate run %d: %v", i+1, err)
		}
	}

	var count int
	if err := db.NewSelect().TableExpr("sqlite_master").ColumnExpr("COUNT(*)").Where("type = 'table' AND name IN ('section_library', 'configured_sections')").Scan(ctx, &count); err != nil {
		t.Fatalf("count tables: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected 2 tables got %d", count)
	}
}
