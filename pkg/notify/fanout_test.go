package notify

import (
	"context"
	"errors"
	"strings"
	"testing"
)

type stubNotifier struct {
	id     string
	typ    string
	err    error
	events []CatalogEvent
}

func (s *stubNotifier) ID() string   { return s.id }
func (s *stubNotifier) Type() string { return s.typ }

func (s *stubNotifier) Notify(_ context.Context, evt CatalogEvent) error {
	s.events = append(s.events, evt)
	return s.err
}

func TestFanoutDeliversToAllNotifiers(t *testing.T) {
	a := &stubNotifier{id: "a", typ: "http"}
	b := &stubNotifier{id: "b", typ: "sqs"}
	f := NewFanout([]Notifier{a, b, nil})

	if f.Size() != 2 {
		t.Fatalf("nil notifiers should be dropped, size = %d", f.Size())
	}

	evt := NewCatalogEvent("2026-08-01", 42, []string{"c"}, "resources.json")
	delivered, err := f.Notify(context.Background(), evt)
	if err != nil {
		t.Fatalf("notify failed: %v", err)
	}
	if delivered != 2 {
		t.Errorf("expected 2 deliveries, got %d", delivered)
	}
	if len(a.events) != 1 || len(b.events) != 1 {
		t.Error("every notifier should receive the event")
	}
	if a.events[0].Total != 42 {
		t.Errorf("event payload mangled: %+v", a.events[0])
	}
}

func TestFanoutAggregatesFailures(t *testing.T) {
	ok := &stubNotifier{id: "ok", typ: "http"}
	bad1 := &stubNotifier{id: "bad1", typ: "sqs", err: errors.New("queue gone")}
	bad2 := &stubNotifier{id: "bad2", typ: "sns", err: errors.New("topic gone")}
	f := NewFanout([]Notifier{ok, bad1, bad2})

	delivered, err := f.Notify(context.Background(), CatalogEvent{})
	if delivered != 1 {
		t.Errorf("expected 1 successful delivery, got %d", delivered)
	}
	if err == nil {
		t.Fatal("expected aggregated error")
	}
	for _, fragment := range []string{"bad1", "queue gone", "bad2", "topic gone"} {
		if !strings.Contains(err.Error(), fragment) {
			t.Errorf("aggregated error missing %q: %v", fragment, err)
		}
	}
}

func TestFanoutEmpty(t *testing.T) {
	f := NewFanout(nil)
	delivered, err := f.Notify(context.Background(), CatalogEvent{})
	if delivered != 0 || err != nil {
		t.Fatalf("empty fanout should be a no-op, got %d, %v", delivered, err)
	}
}
