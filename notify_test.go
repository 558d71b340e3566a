package grid

import "testing"

func TestNotifierOrder(t *testing.T) {
	n := NewNotifier()
	var got []EventKind
	n.Subscribe(func(e Event) { got = append(got, e.Kind) })

	emitted := []EventKind{EventWidthChanged, EventSortChanged, EventSelectionChanged, EventWidthChanged}
	for _, k := range emitted {
		n.Emit(Event{Kind: k})
	}

	if len(got) != len(emitted) {
		t.Fatalf("received %d events, want %d", len(got), len(emitted))
	}
	for i := range emitted {
		if got[i] != emitted[i] {
			t.Errorf("event %d = %v, want %v", i, got[i], emitted[i])
		}
	}
}

func TestNotifierKindFilter(t *testing.T) {
	n := NewNotifier()
	var sorts, widths, all int
	n.Subscribe(func(e Event) { sorts++ }, EventSortChanged)
	n.Subscribe(func(e Event) { widths++ }, EventWidthChanged, EventColumnMoved)
	n.Subscribe(func(e Event) { all++ })

	n.Emit(Event{Kind: EventSortChanged})
	n.Emit(Event{Kind: EventWidthChanged})
	n.Emit(Event{Kind: EventColumnMoved})
	n.Emit(Event{Kind: EventSelectionChanged})

	if sorts != 1 {
		t.Errorf("sort subscriber got %d, want 1", sorts)
	}
	if widths != 2 {
		t.Errorf("width subscriber got %d, want 2", widths)
	}
	if all != 4 {
		t.Errorf("catch-all subscriber got %d, want 4", all)
	}
}

func TestNotifierUnsubscribe(t *testing.T) {
	n := NewNotifier()
	var a, b int
	offA := n.Subscribe(func(e Event) { a++ })
	n.Subscribe(func(e Event) { b++ })

	n.Emit(Event{Kind: EventSortChanged})
	offA()
	offA() // idempotent
	n.Emit(Event{Kind: EventSortChanged})

	if a != 1 {
		t.Errorf("unsubscribed listener got %d, want 1", a)
	}
	if b != 2 {
		t.Errorf("remaining listener got %d, want 2", b)
	}
}

func TestNotifierNoReplay(t *testing.T) {
	n := NewNotifier()
	n.Emit(Event{Kind: EventSortChanged})

	var late int
	n.Subscribe(func(e Event) { late++ })
	if late != 0 {
		t.Errorf("late subscriber observed %d past events", late)
	}
}

func TestNotifierClose(t *testing.T) {
	n := NewNotifier()
	var count int
	n.Subscribe(func(e Event) { count++ })

	n.Close()
	n.Emit(Event{Kind: EventSortChanged})
	n.Subscribe(func(e Event) { count++ })
	n.Emit(Event{Kind: EventSortChanged})

	if count != 0 {
		t.Errorf("closed notifier delivered %d events", count)
	}
}

func TestNotifierUnsubscribeDuringEmit(t *testing.T) {
	n := NewNotifier()
	var first, second int
	var offFirst func()
	offFirst = n.Subscribe(func(e Event) {
		first++
		offFirst()
	})
	n.Subscribe(func(e Event) { second++ })

	n.Emit(Event{Kind: EventSortChanged})
	n.Emit(Event{Kind: EventSortChanged})

	if first != 1 {
		t.Errorf("self-removing listener got %d, want 1", first)
	}
	if second != 2 {
		t.Errorf("second listener got %d, want 2", second)
	}
}
