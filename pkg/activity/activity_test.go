package activity_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/goliatone/go-landing/pkg/activity"
)

func TestEmitterDisabledByDefault(t *testing.T) {
	hook := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{hook}, activity.Config{})

	if emitter.Enabled() {
		t.Fatalf("expected emitter to be disabled")
	}
	if err := emitter.Emit(context.Background(), activity.Event{Verb: "create"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(hook.Events) != 0 {
		t.Fatalf("expected no events got %d", len(hook.Events))
	}

	var nilEmitter *activity.Emitter
	if nilEmitter.Enabled() {
		t.Fatalf("expected nil emitter to be disabled")
	}
}

func TestEmitterStampsDefaults(t *testing.T) {
	hook := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{nil, hook}, activity.Config{Enabled: true, Channel: "landing"})

	if err := emitter.Emit(context.Background(), activity.Event{Verb: "reorder", ObjectType: "configured_section"}); err != nil {
		t.Fatalf("emit: %v", err)
	}
	if len(hook.Events) != 1 {
		t.Fatalf("expected 1 event got %d", len(hook.Events))
	}
	event := hook.Events[0]
	if event.Channel != "landing" {
		t.Fatalf("expected channel landing got %q", event.Channel)
	}
	if event.OccurredAt.IsZero() {
		t.Fatalf("expected occurred_at to be set")
	}

	fixed := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_ = emitter.Emit(context.Background(), activity.Event{Verb: "toggle", Channel: "admin", OccurredAt: fixed})
	if hook.Events[1].Channel != "admin" || !hook.Events[1].OccurredAt.Equal(fixed) {
		t.Fatalf("expected explicit fields kept got %+v", hook.Events[1])
	}
}

func TestEmitterJoinsHookErrors(t *testing.T) {
	failing := &activity.CaptureHook{Err: errors.New("sink down")}
	healthy := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{failing, healthy}, activity.Config{Enabled: true})

	err := emitter.Emit(context.Background(), activity.Event{Verb: "delete"})
	if err == nil || err.Error() != "sink down" {
		t.Fatalf("expected hook error got %v", err)
	}
	if len(healthy.Events) != 1 {
		t.Fatalf("expected remaining hooks notified")
	}
}

func TestEmitterSkipsEventsWithoutVerb(t *testing.T) {
	hook := &activity.CaptureHook{}
	emitter := activity.NewEmitter(activity.Hooks{hook}, activity.Config{Enabled: true})
	_ = emitter.Emit(context.Background(), activity.Event{ObjectType: "configured_section"})
	if len(hook.Events) != 0 {
		t.Fatalf("expected event without verb skipped")
	}
}
