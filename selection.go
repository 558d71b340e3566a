package grid

import "sort"

// SelectionMode controls how many rows may be selected at once.
type SelectionMode int

const (
	// SelectNone disables row selection.
	SelectNone SelectionMode = iota
	// SelectSingle keeps at most one selected row.
	SelectSingle
	// SelectMultiple allows toggling and range selection.
	SelectMultiple
)

// CellRef identifies one cell by row index and column key. A Row of -1
// means no cell.
type CellRef struct {
	Row int
	Col string
}

// SelectionState tracks selected rows and columns plus the focused
// cell. Rows are indices into the current row set and are pruned
// whenever the set shrinks; the state never references a row past the
// current count.
type SelectionState struct {
	mode      SelectionMode
	columnSel bool
	rows      map[int]struct{}
	cols      map[string]struct{}
	anchor    int
	focus     CellRef
	emit      func(Event)
}

// NewSelectionState creates selection state in the given mode.
// columnSelectable enables column header selection.
func NewSelectionState(mode SelectionMode, columnSelectable bool) *SelectionState {
	return &SelectionState{
		mode:      mode,
		columnSel: columnSelectable,
		rows:      make(map[int]struct{}),
		cols:      make(map[string]struct{}),
		anchor:    -1,
		focus:     CellRef{Row: -1},
	}
}

func (s *SelectionState) notify() {
	if s.emit != nil {
		s.emit(Event{Kind: EventSelectionChanged, Rows: s.Rows(), Columns: s.Columns()})
	}
}

// Mode returns the configured selection mode.
func (s *SelectionState) Mode() SelectionMode {
	return s.mode
}

// ActivateRow handles a plain activation of row i: in single mode the
// selection becomes {i}; in multiple mode likewise, with the anchor
// reset for later range selects. Out-of-range rows no-op.
func (s *SelectionState) ActivateRow(i, rowCount int) {
	if s.mode == SelectNone || i < 0 || i >= rowCount {
		return
	}
	clear(s.rows)
	s.rows[i] = struct{}{}
	s.anchor = i
	s.focus.Row = i
	s.notify()
}

// ToggleRow handles a modifier-activation of row i in multiple mode,
// flipping its membership. In single mode it behaves like ActivateRow
// unless i is already selected, in which case it deselects.
func (s *SelectionState) ToggleRow(i, rowCount int) {
	if s.mode == SelectNone || i < 0 || i >= rowCount {
		return
	}
	if _, ok := s.rows[i]; ok {
		delete(s.rows, i)
	} else {
		if s.mode == SelectSingle {
			clear(s.rows)
		}
		s.rows[i] = struct{}{}
	}
	s.anchor = i
	s.focus.Row = i
	s.notify()
}

// SelectRange selects the contiguous span between the anchor and row i.
// Without an anchor it falls back to ActivateRow. The anchor itself
// stays put, so successive range selects pivot around it. Single mode
// treats this as a plain activation.
func (s *SelectionState) SelectRange(i, rowCount int) {
	if s.mode == SelectNone || i < 0 || i >= rowCount {
		return
	}
	if s.mode == SelectSingle || s.anchor < 0 || s.anchor >= rowCount {
		s.ActivateRow(i, rowCount)
		return
	}
	lo, hi := s.anchor, i
	if lo > hi {
		lo, hi = hi, lo
	}
	clear(s.rows)
	for r := lo; r <= hi; r++ {
		s.rows[r] = struct{}{}
	}
	s.focus.Row = i
	s.notify()
}

// ToggleColumn flips column membership when column selection is on.
func (s *SelectionState) ToggleColumn(key string) {
	if !s.columnSel {
		return
	}
	if _, ok := s.cols[key]; ok {
		delete(s.cols, key)
	} else {
		s.cols[key] = struct{}{}
	}
	s.notify()
}

// Clear deselects everything. Focus and anchor are left alone.
func (s *SelectionState) Clear() {
	if len(s.rows) == 0 && len(s.cols) == 0 {
		return
	}
	clear(s.rows)
	clear(s.cols)
	s.notify()
}

// IsRowSelected reports whether row i is selected.
func (s *SelectionState) IsRowSelected(i int) bool {
	_, ok := s.rows[i]
	return ok
}

// IsColumnSelected reports whether the column is selected.
func (s *SelectionState) IsColumnSelected(key string) bool {
	_, ok := s.cols[key]
	return ok
}

// Rows returns the selected row indices in ascending order.
func (s *SelectionState) Rows() []int {
	out := make([]int, 0, len(s.rows))
	for r := range s.rows {
		out = append(out, r)
	}
	sort.Ints(out)
	return out
}

// Columns returns the selected column keys in ascending order.
func (s *SelectionState) Columns() []string {
	out := make([]string, 0, len(s.cols))
	for k := range s.cols {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Focus returns the focused cell, Row -1 if none.
func (s *SelectionState) Focus() CellRef {
	return s.focus
}

// SetFocus moves focus to the given cell without touching selection.
func (s *SelectionState) SetFocus(row int, col string) {
	s.focus = CellRef{Row: row, Col: col}
}

// PruneRows drops selection entries at or past rowCount, clamping the
// anchor and focus with them. Emits only if something was dropped.
func (s *SelectionState) PruneRows(rowCount int) {
	changed := false
	for r := range s.rows {
		if r >= rowCount {
			delete(s.rows, r)
			changed = true
		}
	}
	if s.anchor >= rowCount {
		s.anchor = -1
	}
	if s.focus.Row >= rowCount {
		s.focus.Row = rowCount - 1
	}
	if changed {
		s.notify()
	}
}
