package sections_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/configschema"
	"github.com/goliatone/go-landing/internal/i18n"
	"github.com/goliatone/go-landing/internal/sections"
	"github.com/goliatone/go-landing/pkg/activity"
)

func newLibrary(t *testing.T) catalog.Service {
	t.Helper()
	return catalog.NewService(catalog.NewMemoryRepository(catalog.MustBuiltin()...))
}

func newService(t *testing.T, opts ...sections.ServiceOption) sections.Service {
	t.Helper()
	return sections.NewService(sections.NewMemorySectionRepository(), newLibrary(t), opts...)
}

func mustCreate(t *testing.T, svc sections.Service, tenantID uuid.UUID, key, variant string) *sections.ConfiguredSection {
	t.Helper()
	record, err := svc.Create(context.Background(), sections.CreateSectionInput{
		TenantID:   tenantID,
		SectionKey: key,
		Variant:    variant,
	})
	if err != nil {
		t.Fatalf("create %s/%s: %v", key, variant, err)
	}
	return record
}

func orderOf(records []*sections.ConfiguredSection) []int {
	out := make([]int, len(records))
	for i, record := range records {
		out[i] = record.OrderIndex
	}
	return out
}

func TestCreateAppliesVariantDefaults(t *testing.T) {
	svc := newService(t)
	tenantID := uuid.New()

	record := mustCreate(t, svc, tenantID, "menu", "premium")

	if record.OrderIndex != 1 || !record.IsActive {
		t.Fatalf("expected first active section got order %d active %v", record.OrderIndex, record.IsActive)
	}
	if record.Variant != "premium" || record.SectionKey != "menu" {
		t.Fatalf("unexpected placement %s/%s", record.SectionKey, record.Variant)
	}

	entry, _ := newLibrary(t).Get(context.Background(), "menu")
	expected := configschema.Defaults(entry.PropsFor("premium"))
	if len(record.ConfigData) != len(expected) {
		t.Fatalf("expected %d defaults got %d", len(expected), len(record.ConfigData))
	}
	for key, value := range expected {
		if !record.ConfigData[key].Equal(value) {
			t.Fatalf("default %s: expected %v got %v", key, value.Interface(), record.ConfigData[key].Interface())
		}
	}
	if !record.ConfigData["columns"].Equal(i18n.Scalar(float64(3))) {
		t.Fatalf("expected premium columns override got %v", record.ConfigData["columns"].Interface())
	}

	list, err := svc.List(context.Background(), tenantID)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected single section got %d (%v)", len(list), err)
	}
}

func TestCreateAppendsAfterHighestOrder(t *testing.T) {
	svc := newService(t)
	tenantID := uuid.New()

	mustCreate(t, svc, tenantID, "header", "")
	second := mustCreate(t, svc, tenantID, "hero", "")
	mustCreate(t, svc, uuid.New(), "hero", "")

	if err := svc.Delete(context.Background(), sections.DeleteSectionRequest{TenantID: tenantID, ID: second.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	third := mustCreate(t, svc, tenantID, "about", "")
	if third.OrderIndex != 2 {
		t.Fatalf("expected order 2 after deleting the last section got %d", third.OrderIndex)
	}
	if third.Variant != catalog.StandardVariant {
		t.Fatalf("expected first declared variant got %q", third.Variant)
	}
}

func TestCreateRejectsUndeclaredVariantAndUnknownKey(t *testing.T) {
	svc := newService(t)
	tenantID := uuid.New()

	_, err := svc.Create(context.Background(), sections.CreateSectionInput{TenantID: tenantID, SectionKey: "menu", Variant: "deluxe"})
	if !errors.Is(err, sections.ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant got %v", err)
	}
	var invalid *sections.InvalidVariantError
	if !errors.As(err, &invalid) || invalid.Declared[0] != catalog.StandardVariant {
		t.Fatalf("expected declared variants in error got %v", err)
	}

	_, err = svc.Create(context.Background(), sections.CreateSectionInput{TenantID: tenantID, SectionKey: "reservations"})
	if !errors.Is(err, sections.ErrUnknownSection) {
		t.Fatalf("expected ErrUnknownSection got %v", err)
	}

	list, _ := svc.List(context.Background(), tenantID)
	if len(list) != 0 {
		t.Fatalf("expected nothing stored got %d", len(list))
	}
}

func TestUpdateMergesConfigData(t *testing.T) {
	svc := newService(t)
	tenantID := uuid.New()
	record := mustCreate(t, svc, tenantID, "menu", "standard")

	updated, err := svc.Update(context.Background(), sections.UpdateSectionInput{
		TenantID: tenantID,
		ID:       record.ID,
		ConfigData: configschema.Data{
			"columns": i18n.Scalar(7),
			"legacy":  i18n.Text("kept"),
		},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !updated.ConfigData["columns"].Equal(i18n.Scalar(float64(3))) {
		t.Fatalf("expected columns clamped to 3 got %v", updated.ConfigData["columns"].Interface())
	}
	if !updated.ConfigData["show_prices"].Equal(i18n.Scalar(true)) {
		t.Fatalf("expected untouched keys preserved")
	}

	premium := "premium"
	updated, err = svc.Update(context.Background(), sections.UpdateSectionInput{
		TenantID:   tenantID,
		ID:         record.ID,
		Variant:    &premium,
		ConfigData: configschema.Data{"accent_color": i18n.Text("#ABC")},
	})
	if err != nil {
		t.Fatalf("switch variant: %v", err)
	}
	if updated.Variant != "premium" || !updated.ConfigData["accent_color"].Equal(i18n.Text("#abc")) {
		t.Fatalf("unexpected update result %s %v", updated.Variant, updated.ConfigData["accent_color"].Interface())
	}
	if text, _ := updated.ConfigData["legacy"].String(); text != "kept" {
		t.Fatalf("expected undeclared key preserved")
	}

	bogus := "deluxe"
	if _, err := svc.Update(context.Background(), sections.UpdateSectionInput{TenantID: tenantID, ID: record.ID, Variant: &bogus}); !errors.Is(err, sections.ErrInvalidVariant) {
		t.Fatalf("expected ErrInvalidVariant got %v", err)
	}

	_, err = svc.Update(context.Background(), sections.UpdateSectionInput{
		TenantID:   tenantID,
		ID:         record.ID,
		ConfigData: configschema.Data{"currency_position": i18n.Text("middle")},
	})
	if !errors.Is(err, configschema.ErrValidationRejected) {
		t.Fatalf("expected validation rejection got %v", err)
	}
	current, _ := svc.Get(context.Background(), tenantID, record.ID)
	if !current.ConfigData["currency_position"].Equal(i18n.Text("after")) {
		t.Fatalf("expected previous value retained got %v", current.ConfigData["currency_position"].Interface())
	}
}

func TestOperationsAreTenantScoped(t *testing.T) {
	svc := newService(t)
	owner := uuid.New()
	other := uuid.New()
	record := mustCreate(t, svc, owner, "hero", "")

	var notFound *sections.NotFoundError
	if _, err := svc.Get(context.Background(), other, record.ID); !errors.As(err, &notFound) {
		t.Fatalf("expected not found for other tenant got %v", err)
	}
	if _, err := svc.Toggle(context.Background(), sections.ToggleSectionRequest{TenantID: other, ID: record.ID}); !errors.As(err, &notFound) {
		t.Fatalf("expected not found on toggle got %v", err)
	}
	if err := svc.Delete(context.Background(), sections.DeleteSectionRequest{TenantID: other, ID: record.ID}); !errors.As(err, &notFound) {
		t.Fatalf("expected not found on delete got %v", err)
	}
	if _, err := svc.List(context.Background(), uuid.Nil); !errors.Is(err, sections.ErrTenantRequired) {
		t.Fatalf("expected ErrTenantRequired got %v", err)
	}
}

func TestDeleteDoesNotRenumber(t *testing.T) {
	svc := newService(t)
	tenantID := uuid.New()
	mustCreate(t, svc, tenantID, "header", "")
	middle := mustCreate(t, svc, tenantID, "hero", "")
	mustCreate(t, svc, tenantID, "about", "")

	if err := svc.Delete(context.Background(), sections.DeleteSectionRequest{TenantID: tenantID, ID: middle.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	list, _ := svc.List(context.Background(), tenantID)
	if got := orderOf(list); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("expected [1 3] got %v", got)
	}
}

func TestToggleAndListActive(t *testing.T) {
	svc := newService(t)
	tenantID := uuid.New()
	header := mustCreate(t, svc, tenantID, "header", "")
	mustCreate(t, svc, tenantID, "hero", "")

	toggled, err := svc.Toggle(context.Background(), sections.ToggleSectionRequest{TenantID: tenantID, ID: header.ID})
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if toggled.IsActive {
		t.Fatalf("expected section deactivated")
	}

	active, _ := svc.ListActive(context.Background(), tenantID)
	if len(active) != 1 || active[0].SectionKey != "hero" {
		t.Fatalf("expected only hero active got %d", len(active))
	}

	toggled, _ = svc.Toggle(context.Background(), sections.ToggleSectionRequest{TenantID: tenantID, ID: header.ID})
	if !toggled.IsActive {
		t.Fatalf("expected section reactivated")
	}
}

func TestReorderAssignsDensePositions(t *testing.T) {
	svc := newService(t)
	tenantID := uuid.New()
	a := mustCreate(t, svc, tenantID, "header", "")
	b := mustCreate(t, svc, tenantID, "hero", "")
	c := mustCreate(t, svc, tenantID, "about", "")
	if err := svc.Delete(context.Background(), sections.DeleteSectionRequest{TenantID: tenantID, ID: b.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	d := mustCreate(t, svc, tenantID, "contact", "")

	order := []uuid.UUID{d.ID, a.ID, c.ID}
	for range 2 {
		list, err := svc.Reorder(context.Background(), sections.ReorderSectionsInput{TenantID: tenantID, OrderedIDs: order})
		if err != nil {
			t.Fatalf("reorder: %v", err)
		}
		for i, record := range list {
			if record.ID != order[i] || record.OrderIndex != i+1 {
				t.Fatalf("position %d: expected %s@%d got %s@%d", i, order[i], i+1, record.ID, record.OrderIndex)
			}
		}
	}
}

func TestReorderRejectsInvalidPermutations(t *testing.T) {
	svc := newService(t)
	tenantID := uuid.New()
	a := mustCreate(t, svc, tenantID, "header", "")
	b := mustCreate(t, svc, tenantID, "hero", "")

	cases := map[string][]uuid.UUID{
		"subset":    {b.ID},
		"superset":  {b.ID, a.ID, uuid.New()},
		"duplicate": {b.ID, b.ID},
	}
	for name, ids := range cases {
		_, err := svc.Reorder(context.Background(), sections.ReorderSectionsInput{TenantID: tenantID, OrderedIDs: ids})
		if !errors.Is(err, sections.ErrInvalidPermutation) {
			t.Fatalf("%s: expected ErrInvalidPermutation got %v", name, err)
		}
	}

	list, _ := svc.List(context.Background(), tenantID)
	if list[0].ID != a.ID || list[0].OrderIndex != 1 || list[1].OrderIndex != 2 {
		t.Fatalf("expected order untouched")
	}
}

func TestValidatePermutationReportsDetails(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()
	err := sections.ValidatePermutation([]uuid.UUID{a, b}, []uuid.UUID{a, a, c})

	var perr *sections.PermutationError
	if !errors.As(err, &perr) {
		t.Fatalf("expected PermutationError got %v", err)
	}
	if len(perr.Missing) != 1 || perr.Missing[0] != b {
		t.Fatalf("expected missing %s got %v", b, perr.Missing)
	}
	if len(perr.Unknown) != 1 || len(perr.Duplicates) != 1 {
		t.Fatalf("unexpected details %+v", perr)
	}
	if err := sections.ValidatePermutation([]uuid.UUID{a, b}, []uuid.UUID{b, a}); err != nil {
		t.Fatalf("expected valid permutation got %v", err)
	}
}

func TestListBreaksTiesByInsertionOrder(t *testing.T) {
	repo := sections.NewMemorySectionRepository()
	tenantID := uuid.New()
	first, _ := repo.Create(context.Background(), &sections.ConfiguredSection{TenantID: tenantID, SectionKey: "hero", Variant: "standard", OrderIndex: 5})
	second, _ := repo.Create(context.Background(), &sections.ConfiguredSection{TenantID: tenantID, SectionKey: "about", Variant: "standard", OrderIndex: 5})
	third, _ := repo.Create(context.Background(), &sections.ConfiguredSection{TenantID: tenantID, SectionKey: "header", Variant: "standard", OrderIndex: 1})

	svc := sections.NewService(repo, newLibrary(t))
	list, err := svc.List(context.Background(), tenantID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if list[0].ID != third.ID || list[1].ID != first.ID || list[2].ID != second.ID {
		t.Fatalf("unexpected order %v", orderOf(list))
	}
}

func TestMutationsEmitActivity(t *testing.T) {
	hook := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{hook}, activity.Config{Enabled: true, Channel: "landing"})
	fixed := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	svc := newService(t, sections.WithActivityEmitter(emitter), sections.WithClock(func() time.Time { return fixed }))

	actor := uuid.New()
	tenantID := uuid.New()
	record, err := svc.Create(context.Background(), sections.CreateSectionInput{TenantID: tenantID, SectionKey: "hero", ActorID: actor})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !record.CreatedAt.Equal(fixed) {
		t.Fatalf("expected clock applied")
	}
	if _, err := svc.Toggle(context.Background(), sections.ToggleSectionRequest{TenantID: tenantID, ID: record.ID, ActorID: actor}); err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if _, err := svc.Reorder(context.Background(), sections.ReorderSectionsInput{TenantID: tenantID, OrderedIDs: []uuid.UUID{record.ID}, ActorID: actor}); err != nil {
		t.Fatalf("reorder: %v", err)
	}

	verbs := []string{"create", "toggle", "reorder"}
	if len(hook.Events) != len(verbs) {
		t.Fatalf("expected %d events got %d", len(verbs), len(hook.Events))
	}
	for i, verb := range verbs {
		event := hook.Events[i]
		if event.Verb != verb || event.ActorID != actor.String() || event.Channel != "landing" {
			t.Fatalf("event %d: unexpected %+v", i, event)
		}
	}
	if hook.Events[0].ObjectID != record.ID.String() || hook.Events[0].Metadata["section_key"] != "hero" {
		t.Fatalf("unexpected create event %+v", hook.Events[0])
	}
}
