package logging

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/goliatone/go-landing/pkg/interfaces"
)

type recordingLogger struct {
	fields   []map[string]any
	contexts []context.Context
}

func (r *recordingLogger) Trace(string, ...any) {}
func (r *recordingLogger) Debug(string, ...any) {}
func (r *recordingLogger) Info(string, ...any)  {}
func (r *recordingLogger) Warn(string, ...any)  {}
func (r *recordingLogger) Error(string, ...any) {}
func (r *recordingLogger) Fatal(string, ...any) {}

func (r *recordingLogger) WithFields(fields map[string]any) interfaces.Logger {
	copied := make(map[string]any, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = append(r.fields, copied)
	return r
}

func (r *recordingLogger) WithContext(ctx context.Context) interfaces.Logger {
	r.contexts = append(r.contexts, ctx)
	return r
}

type stubProvider struct {
	requested []string
	logger    interfaces.Logger
}

func (s *stubProvider) GetLogger(name string) interfaces.Logger {
	s.requested = append(s.requested, name)
	return s.logger
}

func TestModuleLoggerFallsBackToNoOp(t *testing.T) {
	logger := ModuleLogger(nil, "landing.test")
	if _, ok := logger.(noopLogger); !ok {
		t.Fatalf("expected noopLogger fallback, got %T", logger)
	}
	logger = logger.WithContext(context.Background())
	logger.Debug("noop")
}

func TestModuleLoggerAnnotatesModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ComposerLogger(provider)

	if len(provider.requested) != 1 || provider.requested[0] != composerModule {
		t.Fatalf("expected module %s, got %v", composerModule, provider.requested)
	}
	if len(rec.fields) != 1 || rec.fields[0]["module"] != composerModule {
		t.Fatalf("expected module field %s, got %v", composerModule, rec.fields)
	}
}

func TestModuleLoggerDefaultsToRootModule(t *testing.T) {
	rec := &recordingLogger{}
	provider := &stubProvider{logger: rec}

	_ = ModuleLogger(provider, "")

	if provider.requested[0] != rootModule {
		t.Fatalf("expected default module %s, got %v", rootModule, provider.requested)
	}
}

func TestWithSectionContextSkipsEmptyValues(t *testing.T) {
	rec := &recordingLogger{}
	tenant := uuid.MustParse("6f1c7ad2-4a0a-4df5-9d55-2f2c8f0e6a10")

	WithSectionContext(rec, tenant, uuid.Nil, "hero", " ")

	if len(rec.fields) != 1 {
		t.Fatalf("expected one WithFields call, got %d", len(rec.fields))
	}
	fields := rec.fields[0]
	if fields[fieldTenant] != tenant.String() || fields[fieldSectionKey] != "hero" {
		t.Fatalf("unexpected fields %v", fields)
	}
	if _, ok := fields[fieldSectionID]; ok {
		t.Fatalf("expected nil section id to be skipped, got %v", fields)
	}
	if _, ok := fields[fieldVariant]; ok {
		t.Fatalf("expected blank variant to be skipped, got %v", fields)
	}
}

func TestContextFieldsMerge(t *testing.T) {
	ctx := ContextWithFields(context.Background(), map[string]any{"request_id": "a"})
	ctx = ContextWithFields(ctx, map[string]any{"tenant_id": "b"})

	fields := ContextFields(ctx)
	if fields["request_id"] != "a" || fields["tenant_id"] != "b" {
		t.Fatalf("expected merged fields, got %v", fields)
	}

	fields["request_id"] = "mutated"
	if ContextFields(ctx)["request_id"] != "a" {
		t.Fatalf("expected context fields to be copied")
	}
}
