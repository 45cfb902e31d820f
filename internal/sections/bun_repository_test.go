package sections_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/configschema"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/sections"
	"github.com/goliatone/go-landing/pkg/testsupport"
)

func TestBunSectionRepositoryRoundTrip(t *testing.T) {
	db := testsupport.NewMigratedBunDB(t)
	repo := sections.NewBunSectionRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	created, err := repo.Create(ctx, &sections.ConfiguredSection{
		TenantID:   tenantID,
		SectionKey: "hero",
		Variant:    "fullscreen",
		ConfigData: configschema.Data{
			"title":           i18n.Localized(i18n.LocaleText{Lang: "es", Text: "Hola"}, i18n.LocaleText{Lang: "en", Text: "Hello"}),
			"overlay_opacity": i18n.Scalar(0.4),
		},
		OrderIndex: 1,
		IsActive:   true,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	fetched, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	entries := fetched.ConfigData["title"].Entries()
	if len(entries) != 2 || entries[0].Lang != "es" || entries[1].Lang != "en" {
		t.Fatalf("expected language order preserved got %+v", entries)
	}
	if !fetched.ConfigData["overlay_opacity"].Equal(i18n.Scalar(0.4)) {
		t.Fatalf("unexpected scalar %v", fetched.ConfigData["overlay_opacity"].Interface())
	}

	fetched.IsActive = false
	if _, err := repo.Update(ctx, fetched); err != nil {
		t.Fatalf("update: %v", err)
	}
	again, _ := repo.GetByID(ctx, created.ID)
	if again.IsActive {
		t.Fatalf("expected is_active persisted")
	}

	if err := repo.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	var notFound *sections.NotFoundError
	if _, err := repo.GetByID(ctx, created.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected not found after delete got %v", err)
	}
}

func TestBunSectionRepositoryApplyOrderIsAtomic(t *testing.T) {
	db := testsupport.NewMigratedBunDB(t)
	repo := sections.NewBunSectionRepository(db)
	ctx := context.Background()
	tenantID := uuid.New()

	var ids []uuid.UUID
	for i, key := range []string{"header", "hero", "about"} {
		record, err := repo.Create(ctx, &sections.ConfiguredSection{TenantID: tenantID, SectionKey: key, Variant: "standard", OrderIndex: i + 1, IsActive: true})
		if err != nil {
			t.Fatalf("create %s: %v", key, err)
		}
		ids = append(ids, record.ID)
	}

	err := repo.ApplyOrder(ctx, tenantID, []sections.Position{
		{ID: ids[2], OrderIndex: 1},
		{ID: uuid.New(), OrderIndex: 2},
	})
	var notFound *sections.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected not found got %v", err)
	}
	unchanged, _ := repo.GetByID(ctx, ids[2])
	if unchanged.OrderIndex != 3 {
		t.Fatalf("expected rollback to keep order 3 got %d", unchanged.OrderIndex)
	}

	if err := repo.ApplyOrder(ctx, tenantID, []sections.Position{
		{ID: ids[2], OrderIndex: 1},
		{ID: ids[0], OrderIndex: 2},
		{ID: ids[1], OrderIndex: 3},
	}); err != nil {
		t.Fatalf("apply order: %v", err)
	}

	list, err := repo.ListByTenant(ctx, tenantID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	sections.SortByOrder(list)
	if list[0].ID != ids[2] || list[1].ID != ids[0] || list[2].ID != ids[1] {
		t.Fatalf("unexpected order after apply")
	}
}

func TestBunBackedServiceReorder(t *testing.T) {
	db := testsupport.NewMigratedBunDB(t)
	svc := sections.NewService(sections.NewBunSectionRepository(db), newLibrary(t))
	ctx := context.Background()
	tenantID := uuid.New()

	a := mustCreate(t, svc, tenantID, "header", "")
	b := mustCreate(t, svc, tenantID, "menu", "premium")

	list, err := svc.Reorder(ctx, sections.ReorderSectionsInput{TenantID: tenantID, OrderedIDs: []uuid.UUID{b.ID, a.ID}})
	if err != nil {
		t.Fatalf("reorder: %v", err)
	}
	if list[0].ID != b.ID || list[0].OrderIndex != 1 || list[1].OrderIndex != 2 {
		t.Fatalf("unexpected reorder result %v", orderOf(list))
	}
	if !list[0].ConfigData["columns"].Equal(i18n.Scalar(float64(3))) {
		t.Fatalf("expected premium defaults persisted got %v", list[0].ConfigData["columns"].Interface())
	}
}
