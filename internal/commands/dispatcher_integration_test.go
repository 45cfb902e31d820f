package commands_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-command/dispatcher"
	"github.com/goliatone/go-command/runner"
	"github.com/google/uuid"

	"github.com/goliatone/go-landing/internal/catalog"
	"github.com/goliatone/go-landing/internal/commands"
	sectionscmd "github.com/goliatone/go-landing/internal/commands/sections"
	"github.com/goliatone/go-landing/internal/sections"
)

// unsteadyService fails the first failures calls to Create and Toggle.
type unsteadyService struct {
	sections.Service

	mu       sync.Mutex
	failures int
	creates  int
	toggles  int
}

func (s *unsteadyService) Create(ctx context.Context, input sections.CreateSectionInput) (*sections.ConfiguredSection, error) {
	s.mu.Lock()
	s.creates++
	fail := s.creates <= s.failures
	s.mu.Unlock()
	if fail {
		return nil, errors.New("store unavailable")
	}
	return s.Service.Create(ctx, input)
}

func (s *unsteadyService) Toggle(ctx context.Context, req sections.ToggleSectionRequest) (*sections.ConfiguredSection, error) {
	s.mu.Lock()
	s.toggles++
	fail := s.toggles <= s.failures
	s.mu.Unlock()
	if fail {
		return nil, errors.New("store unavailable")
	}
	return s.Service.Toggle(ctx, req)
}

func newUnsteadyService(failures int) *unsteadyService {
	library := catalog.NewService(catalog.NewMemoryRepository(catalog.MustBuiltin()...))
	return &unsteadyService{
		Service:  sections.NewService(sections.NewMemorySectionRepository(), library),
		failures: failures,
	}
}

func TestDispatcherRetriesTransientSectionFailures(t *testing.T) {
	service := newUnsteadyService(1)
	timeout := commands.WithTimeout[sectionscmd.CreateSectionCommand](time.Second)

	createSub := dispatcher.SubscribeCommand(sectionscmd.NewCreateSectionHandler(service, nil, timeout), runner.WithMaxRetries(1))
	t.Cleanup(createSub.Unsubscribe)
	toggleSub := dispatcher.SubscribeCommand(sectionscmd.NewToggleSectionHandler(service, nil), runner.WithMaxRetries(1))
	t.Cleanup(toggleSub.Unsubscribe)

	ctx := context.Background()
	tenantID := uuid.New()
	created := &sectionscmd.ResultSink{}
	if err := dispatcher.Dispatch(ctx, sectionscmd.CreateSectionCommand{
		TenantID:   tenantID,
		SectionKey: "gallery",
		Variant:    "masonry",
		Result:     created,
	}); err != nil {
		t.Fatalf("dispatch create: expected success after retry, got %v", err)
	}
	if service.creates != 2 {
		t.Fatalf("expected 2 create attempts, got %d", service.creates)
	}
	if created.Section == nil || created.Section.Variant != "masonry" {
		t.Fatalf("expected masonry gallery in result, got %+v", created.Section)
	}

	toggled := &sectionscmd.ResultSink{}
	if err := dispatcher.Dispatch(ctx, sectionscmd.ToggleSectionCommand{
		TenantID:  tenantID,
		SectionID: created.Section.ID,
		Result:    toggled,
	}); err != nil {
		t.Fatalf("dispatch toggle: expected success after retry, got %v", err)
	}
	if service.toggles != 2 {
		t.Fatalf("expected 2 toggle attempts, got %d", service.toggles)
	}
	if toggled.Section == nil || toggled.Section.IsActive {
		t.Fatalf("expected section deactivated once, got %+v", toggled.Section)
	}

	listed, err := service.List(ctx, tenantID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("expected a single stored section, got %d", len(listed))
	}
}

func TestDispatcherRetryExhaustionLeavesSectionUntouched(t *testing.T) {
	service := newUnsteadyService(3)
	ctx := context.Background()
	tenantID := uuid.New()
	record, err := service.Service.Create(ctx, sections.CreateSectionInput{TenantID: tenantID, SectionKey: "contact"})
	if err != nil {
		t.Fatalf("seed contact: %v", err)
	}

	sub := dispatcher.SubscribeCommand(sectionscmd.NewToggleSectionHandler(service, nil), runner.WithMaxRetries(2))
	t.Cleanup(sub.Unsubscribe)

	if err := dispatcher.Dispatch(ctx, sectionscmd.ToggleSectionCommand{TenantID: tenantID, SectionID: record.ID}); err == nil {
		t.Fatal("expected dispatcher to return error after exhausting retries")
	}
	if service.toggles != 3 {
		t.Fatalf("expected 3 toggle attempts (initial + 2 retries), got %d", service.toggles)
	}

	stored, err := service.Get(ctx, tenantID, record.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !stored.IsActive {
		t.Fatalf("expected section to stay active")
	}
}
