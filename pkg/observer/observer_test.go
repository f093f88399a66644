package observer

import "testing"

type recordingObserver struct {
	seen []EventType
}

func (r *recordingObserver) OnEvent(event Event) {
	r.seen = append(r.seen, event.Type)
}

type blockingObserver struct {
	calls *[]string
	name  string
}

func (b *blockingObserver) OnEvent(event Event) {
	*b.calls = append(*b.calls, b.name)
}

func TestManager_NotifyIsSequentialInRegistrationOrder(t *testing.T) {
	var calls []string
	m := NewManager()
	m.Register(&blockingObserver{calls: &calls, name: "first"})
	m.Register(&blockingObserver{calls: &calls, name: "second"})
	m.Register(&blockingObserver{calls: &calls, name: "third"})

	m.Notify(Event{Type: EventNodeStart})

	if len(calls) != 3 || calls[0] != "first" || calls[1] != "second" || calls[2] != "third" {
		t.Fatalf("expected sequential delivery in registration order, got %v", calls)
	}
}

func TestManager_NotifyDeliversToAllObservers(t *testing.T) {
	m := NewManager()
	a := &recordingObserver{}
	b := &recordingObserver{}
	m.Register(a)
	m.Register(b)

	m.Notify(Event{Type: EventNodeStart})
	m.Notify(Event{Type: EventNodeDone})

	for _, r := range []*recordingObserver{a, b} {
		if len(r.seen) != 2 || r.seen[0] != EventNodeStart || r.seen[1] != EventNodeDone {
			t.Fatalf("expected both observers to see [node_start, node_done], got %v", r.seen)
		}
	}
}

func TestManager_HasObserversAndCount(t *testing.T) {
	m := NewManager()
	if m.HasObservers() {
		t.Fatal("expected no observers initially")
	}
	m.Register(&NoOpObserver{})
	if !m.HasObservers() || m.Count() != 1 {
		t.Fatalf("expected one observer, got count=%d", m.Count())
	}
}

func TestManager_RegisterIgnoresNil(t *testing.T) {
	m := NewManager()
	m.Register(nil)
	if m.HasObservers() {
		t.Fatal("expected Register(nil) to be a no-op")
	}
}
