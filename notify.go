package grid

import "fmt"

// EventKind identifies one category of state-change notification.
type EventKind int

const (
	// EventWidthChanged fires after a column resize; carries Widths.
	EventWidthChanged EventKind = iota
	// EventColumnMoved fires after a reorder; carries From and To.
	EventColumnMoved
	// EventSortChanged fires after a sort change; carries Column and Direction.
	EventSortChanged
	// EventSelectionChanged fires after any selection mutation; carries
	// Rows and Columns.
	EventSelectionChanged
	// EventLoadRequested fires when the load controller triggers a fetch.
	EventLoadRequested
	// EventLoadFinished fires when a fetch completes; carries Appended
	// and HasMore.
	EventLoadFinished
	// EventLoadFailed fires when a fetch fails; carries Err.
	EventLoadFailed
	// EventOpRejected fires when a mutation is refused by a constraint;
	// carries Err. Unknown identities stay silent.
	EventOpRejected
)

// String returns the string representation of an EventKind.
func (k EventKind) String() string {
	switch k {
	case EventWidthChanged:
		return "WidthChanged"
	case EventColumnMoved:
		return "ColumnMoved"
	case EventSortChanged:
		return "SortChanged"
	case EventSelectionChanged:
		return "SelectionChanged"
	case EventLoadRequested:
		return "LoadRequested"
	case EventLoadFinished:
		return "LoadFinished"
	case EventLoadFailed:
		return "LoadFailed"
	case EventOpRejected:
		return "OpRejected"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// Event carries the minimal payload describing one state change. Only
// the fields relevant to Kind are populated.
type Event struct {
	Kind EventKind

	Widths    map[string]float64 // WidthChanged: full key -> width mapping
	From, To  int                // ColumnMoved
	Column    string             // SortChanged
	Direction SortDirection      // SortChanged
	Rows      []int              // SelectionChanged: sorted row indices
	Columns   []string           // SelectionChanged: selected column keys
	Appended  int                // LoadFinished
	HasMore   bool               // LoadFinished
	Err       error              // LoadFailed, OpRejected
}

type subscriber struct {
	id    int
	kinds []EventKind // nil means all
	fn    func(Event)
}

// Notifier fans state-change events out to subscribers, synchronously
// and in emission order. One notifier lives per table instance and is
// torn down with it; there is no buffering or replay.
type Notifier struct {
	subs   []subscriber
	nextID int
	closed bool
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{}
}

// Subscribe registers fn for the given kinds (all kinds when none are
// given) and returns a function that removes the subscription.
func (n *Notifier) Subscribe(fn func(Event), kinds ...EventKind) func() {
	if n.closed {
		return func() {}
	}
	id := n.nextID
	n.nextID++
	n.subs = append(n.subs, subscriber{id: id, kinds: kinds, fn: fn})
	return func() {
		// copy-on-write so an Emit iterating the old slice is unaffected
		for i, s := range n.subs {
			if s.id == id {
				next := make([]subscriber, 0, len(n.subs)-1)
				next = append(next, n.subs[:i]...)
				n.subs = append(next, n.subs[i+1:]...)
				return
			}
		}
	}
}

// Emit delivers e to every matching subscriber in registration order.
func (n *Notifier) Emit(e Event) {
	if n.closed {
		return
	}
	// Snapshot so a subscriber unsubscribing mid-emit doesn't skip others.
	subs := n.subs
	for _, s := range subs {
		if s.matches(e.Kind) {
			s.fn(e)
		}
	}
}

// Close drops all subscribers. Further emits and subscribes are no-ops.
func (n *Notifier) Close() {
	n.closed = true
	n.subs = nil
}

func (s subscriber) matches(k EventKind) bool {
	if len(s.kinds) == 0 {
		return true
	}
	for _, want := range s.kinds {
		if want == k {
			return true
		}
	}
	return false
}
