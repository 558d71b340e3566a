package grid

import "fmt"

// SortDirection specifies the direction of a column sort.
type SortDirection int

const (
	// SortNone indicates no sorting.
	SortNone SortDirection = iota
	// SortAscending indicates ascending order.
	SortAscending
	// SortDescending indicates descending order.
	SortDescending
)

// String returns the string representation of a SortDirection.
func (d SortDirection) String() string {
	switch d {
	case SortNone:
		return "None"
	case SortAscending:
		return "Ascending"
	case SortDescending:
		return "Descending"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// SortMode controls how many columns may carry a sort at once.
type SortMode int

const (
	// SortDisabled rejects all sort operations.
	SortDisabled SortMode = iota
	// SortSingle allows one sorted column; setting another clears it.
	SortSingle
	// SortMulti allows several sorted columns with a priority order.
	SortMulti
)

// PinSide pins a column to one edge of the visible set.
type PinSide int

const (
	PinNone PinSide = iota
	PinLeft
	PinRight
)

// Column is one column definition. Identity is the Key, which must be
// unique across the model; position is wherever the column currently
// sits in display order.
type Column struct {
	Key   string
	Label string
	Width float64
	Pin   PinSide
	Sort  SortDirection

	minWidth    float64
	maxWidth    float64
	sortable    bool
	resizable   bool
	movable     bool
	hidden      bool
	defaultSort SortDirection
}

// ColumnOption configures a single column at construction.
type ColumnOption func(*Column)

// Col creates a column definition. Columns are resizable and movable
// unless an option says otherwise, and unsortable unless one opts in.
func Col(key, label string, width float64, opts ...ColumnOption) Column {
	c := Column{
		Key:       key,
		Label:     label,
		Width:     width,
		resizable: true,
		movable:   true,
	}
	for _, opt := range opts {
		opt(&c)
	}
	c.Width = c.clampWidth(c.Width)
	return c
}

// WidthBounds clamps the column width to [min, max]. A zero max means
// unbounded above.
func WidthBounds(min, max float64) ColumnOption {
	return func(c *Column) { c.minWidth, c.maxWidth = min, max }
}

// PinnedLeft pins the column to the left edge.
func PinnedLeft() ColumnOption {
	return func(c *Column) { c.Pin = PinLeft }
}

// PinnedRight pins the column to the right edge.
func PinnedRight() ColumnOption {
	return func(c *Column) { c.Pin = PinRight }
}

// Sortable marks the column as sortable.
func Sortable() ColumnOption {
	return func(c *Column) { c.sortable = true }
}

// DefaultSort marks the column sortable with a preferred first
// direction; toggling cycles dir, its opposite, then none.
func DefaultSort(dir SortDirection) ColumnOption {
	return func(c *Column) {
		c.sortable = true
		c.defaultSort = dir
	}
}

// NoResize makes the column width fixed.
func NoResize() ColumnOption {
	return func(c *Column) { c.resizable = false }
}

// NoMove excludes the column from reordering.
func NoMove() ColumnOption {
	return func(c *Column) { c.movable = false }
}

// Hidden removes the column from the visible set until shown again.
func Hidden() ColumnOption {
	return func(c *Column) { c.hidden = true }
}

// IsHidden reports whether the column is currently hidden.
func (c Column) IsHidden() bool { return c.hidden }

// clampWidth applies the configured bounds to w.
func (c Column) clampWidth(w float64) float64 {
	if w < c.minWidth {
		w = c.minWidth
	}
	if c.maxWidth > 0 && w > c.maxWidth {
		w = c.maxWidth
	}
	return w
}

// ColumnLayout is one column's slot in the horizontal layout.
type ColumnLayout struct {
	Key   string
	X     float64
	Width float64
	Pin   PinSide
}

// ColumnModel owns the ordered column definitions and their layout
// geometry. Display order always keeps the pin zones contiguous:
// left-pinned columns first, then unpinned, then right-pinned, each
// zone preserving its own relative order. Reorders never cross a zone.
type ColumnModel struct {
	cols     []Column
	byKey    map[string]int
	mode     SortMode
	sortKeys []string // most-recently-toggled first
	emit     func(Event)
}

// NewColumnModel creates a model over the given columns, partitioned
// into pin zones in the order given.
func NewColumnModel(mode SortMode, cols ...Column) *ColumnModel {
	m := &ColumnModel{mode: mode, byKey: make(map[string]int)}
	for _, side := range []PinSide{PinLeft, PinNone, PinRight} {
		for _, c := range cols {
			if c.Pin == side {
				m.cols = append(m.cols, c)
			}
		}
	}
	m.reindex()
	return m
}

func (m *ColumnModel) reindex() {
	for i, c := range m.cols {
		m.byKey[c.Key] = i
	}
}

func (m *ColumnModel) notify(e Event) {
	if m.emit != nil {
		m.emit(e)
	}
}

func (m *ColumnModel) reject(err error) error {
	m.notify(Event{Kind: EventOpRejected, Err: err})
	return err
}

// Len returns the number of columns, hidden included.
func (m *ColumnModel) Len() int {
	return len(m.cols)
}

// At returns the column at display position i, or a zero Column if out
// of bounds.
func (m *ColumnModel) At(i int) Column {
	if i < 0 || i >= len(m.cols) {
		return Column{}
	}
	return m.cols[i]
}

// Column looks a column up by key.
func (m *ColumnModel) Column(key string) (Column, bool) {
	i, ok := m.byKey[key]
	if !ok {
		return Column{}, false
	}
	return m.cols[i], true
}

// IndexOf returns the display position of key, or -1.
func (m *ColumnModel) IndexOf(key string) int {
	i, ok := m.byKey[key]
	if !ok {
		return -1
	}
	return i
}

// Resize sets the width of the column with the given key, clamped to
// its bounds. Unknown keys no-op silently; a non-resizable column
// no-ops and surfaces EventOpRejected. On success it emits
// EventWidthChanged carrying the full current width mapping.
func (m *ColumnModel) Resize(key string, width float64) error {
	i, ok := m.byKey[key]
	if !ok {
		return ErrUnknownColumn
	}
	if !m.cols[i].resizable {
		return m.reject(fmt.Errorf("resize %q: %w", key, ErrNotResizable))
	}
	m.cols[i].Width = m.cols[i].clampWidth(width)
	m.notify(Event{Kind: EventWidthChanged, Widths: m.Widths()})
	return nil
}

// Widths returns the current key -> width mapping.
func (m *ColumnModel) Widths() map[string]float64 {
	ws := make(map[string]float64, len(m.cols))
	for _, c := range m.cols {
		ws[c.Key] = c.Width
	}
	return ws
}

// zone returns the pin zone bounds [lo, hi) containing position i.
func (m *ColumnModel) zone(i int) (lo, hi int) {
	lo, hi = 0, len(m.cols)
	for j, c := range m.cols {
		switch {
		case j < i && c.Pin != m.cols[i].Pin:
			lo = j + 1
		case j > i && c.Pin != m.cols[i].Pin && hi == len(m.cols):
			hi = j
		}
	}
	return lo, hi
}

// Reorder moves the column at display position from to position to,
// shifting everything between by one. Out-of-range indices no-op
// silently; an immovable column or a move that would cross a pin
// boundary no-ops and surfaces EventOpRejected. Emits EventColumnMoved.
func (m *ColumnModel) Reorder(from, to int) error {
	if from < 0 || from >= len(m.cols) || to < 0 || to >= len(m.cols) {
		return ErrBadIndex
	}
	if from == to {
		return nil
	}
	if !m.cols[from].movable {
		return m.reject(fmt.Errorf("move %q: %w", m.cols[from].Key, ErrNotMovable))
	}
	if lo, hi := m.zone(from); to < lo || to >= hi {
		return m.reject(fmt.Errorf("move %q to %d: %w", m.cols[from].Key, to, ErrPinBoundary))
	}
	c := m.cols[from]
	if from < to {
		copy(m.cols[from:], m.cols[from+1:to+1])
	} else {
		copy(m.cols[to+1:], m.cols[to:from])
	}
	m.cols[to] = c
	m.reindex()
	m.notify(Event{Kind: EventColumnMoved, From: from, To: to})
	return nil
}

// SetSort sets the sort direction on the column with the given key. In
// SortSingle mode every other column is cleared first. Unknown keys
// no-op silently; unsortable columns and SortDisabled mode no-op and
// surface EventOpRejected. Emits EventSortChanged.
func (m *ColumnModel) SetSort(key string, dir SortDirection) error {
	i, ok := m.byKey[key]
	if !ok {
		return ErrUnknownColumn
	}
	if m.mode == SortDisabled || !m.cols[i].sortable {
		return m.reject(fmt.Errorf("sort %q: %w", key, ErrNotSortable))
	}
	if m.mode == SortSingle {
		for j := range m.cols {
			if j != i {
				m.cols[j].Sort = SortNone
			}
		}
	}
	m.cols[i].Sort = dir
	m.retoggle(key, dir)
	m.notify(Event{Kind: EventSortChanged, Column: key, Direction: dir})
	return nil
}

// retoggle maintains sortKeys with the most recent toggle first. In
// single mode the list holds at most one key and is rebuilt outright,
// so keys cleared by the single-mode sweep never linger.
func (m *ColumnModel) retoggle(key string, dir SortDirection) {
	if m.mode == SortSingle {
		m.sortKeys = m.sortKeys[:0]
	} else {
		for i, k := range m.sortKeys {
			if k == key {
				m.sortKeys = append(m.sortKeys[:i], m.sortKeys[i+1:]...)
				break
			}
		}
	}
	if dir == SortNone {
		return
	}
	m.sortKeys = append([]string{key}, m.sortKeys...)
}

// ToggleSort advances the column's sort through its cycle: none,
// ascending, descending, none. A declared default direction starts the
// cycle there and runs through its opposite instead.
func (m *ColumnModel) ToggleSort(key string) error {
	i, ok := m.byKey[key]
	if !ok {
		return ErrUnknownColumn
	}
	return m.SetSort(key, nextSort(m.cols[i].Sort, m.cols[i].defaultSort))
}

func nextSort(cur, def SortDirection) SortDirection {
	first, second := SortAscending, SortDescending
	if def == SortDescending {
		first, second = SortDescending, SortAscending
	}
	switch cur {
	case SortNone:
		return first
	case first:
		return second
	default:
		return SortNone
	}
}

// SortKeys returns the sorted column keys in priority order, the most
// recently toggled column first.
func (m *ColumnModel) SortKeys() []string {
	out := make([]string, len(m.sortKeys))
	copy(out, m.sortKeys)
	return out
}

// SetHidden hides or shows a column. Hidden columns keep their display
// slot but drop out of VisibleColumns and Layout.
func (m *ColumnModel) SetHidden(key string, hidden bool) error {
	i, ok := m.byKey[key]
	if !ok {
		return ErrUnknownColumn
	}
	m.cols[i].hidden = hidden
	return nil
}

// VisibleColumns returns the non-hidden columns in display order:
// pinned-left first, then unpinned, then pinned-right. The slice is
// rebuilt on every call; mutations invalidate nothing.
func (m *ColumnModel) VisibleColumns() []Column {
	out := make([]Column, 0, len(m.cols))
	for _, c := range m.cols {
		if !c.hidden {
			out = append(out, c)
		}
	}
	return out
}

// Layout returns the horizontal slot of every visible column.
func (m *ColumnModel) Layout() []ColumnLayout {
	var x float64
	out := make([]ColumnLayout, 0, len(m.cols))
	for _, c := range m.VisibleColumns() {
		out = append(out, ColumnLayout{Key: c.Key, X: x, Width: c.Width, Pin: c.Pin})
		x += c.Width
	}
	return out
}

// TotalWidth returns the combined width of the visible columns.
func (m *ColumnModel) TotalWidth() float64 {
	var w float64
	for _, c := range m.VisibleColumns() {
		w += c.Width
	}
	return w
}
