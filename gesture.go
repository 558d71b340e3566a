package grid

// Gestures model in-progress drag interactions explicitly. While a
// gesture is live only the gesture value changes; the column model is
// mutated once, atomically, when the gesture ends, so subscribers
// never observe a half-applied drag.

// ResizeGesture accumulates a width drag on one column.
type ResizeGesture struct {
	t     *Table
	key   string
	start float64
	width float64
	done  bool
}

// BeginResize starts a resize drag on the column with the given key.
// Returns ErrUnknownColumn or ErrNotResizable without starting one.
func (t *Table) BeginResize(key string) (*ResizeGesture, error) {
	if t.closed {
		return nil, ErrClosed
	}
	c, ok := t.cols.Column(key)
	if !ok {
		return nil, ErrUnknownColumn
	}
	if !c.resizable {
		return nil, ErrNotResizable
	}
	return &ResizeGesture{t: t, key: key, start: c.Width, width: c.Width}, nil
}

// Update applies a cumulative drag delta from the gesture start. The
// preview width is clamped to the column's bounds; nothing is emitted.
func (g *ResizeGesture) Update(delta float64) {
	if g.done {
		return
	}
	c, ok := g.t.cols.Column(g.key)
	if !ok {
		return
	}
	g.width = c.clampWidth(g.start + delta)
}

// Width returns the clamped preview width for live feedback.
func (g *ResizeGesture) Width() float64 {
	return g.width
}

// End commits the final width through the column model, emitting a
// single EventWidthChanged.
func (g *ResizeGesture) End() error {
	if g.done {
		return nil
	}
	g.done = true
	return g.t.Resize(g.key, g.width)
}

// Cancel discards the gesture without touching the model.
func (g *ResizeGesture) Cancel() {
	g.done = true
}

// MoveGesture accumulates a reorder drag on one column.
type MoveGesture struct {
	t    *Table
	from int
	to   int
	done bool
}

// BeginMove starts a reorder drag on the column at display position
// from. Returns ErrBadIndex or ErrNotMovable without starting one.
func (t *Table) BeginMove(from int) (*MoveGesture, error) {
	if t.closed {
		return nil, ErrClosed
	}
	if from < 0 || from >= t.cols.Len() {
		return nil, ErrBadIndex
	}
	if !t.cols.At(from).movable {
		return nil, ErrNotMovable
	}
	return &MoveGesture{t: t, from: from, to: from}, nil
}

// Update records the current drop target position; nothing is emitted.
func (g *MoveGesture) Update(to int) {
	if g.done {
		return
	}
	g.to = to
}

// Target returns the current drop position for live feedback.
func (g *MoveGesture) Target() int {
	return g.to
}

// End commits the move through the column model, emitting a single
// EventColumnMoved. A drop across a pin boundary fails the same way a
// direct Reorder would.
func (g *MoveGesture) End() error {
	if g.done {
		return nil
	}
	g.done = true
	return g.t.Reorder(g.from, g.to)
}

// Cancel discards the gesture without touching the model.
func (g *MoveGesture) Cancel() {
	g.done = true
}
