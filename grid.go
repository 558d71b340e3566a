// Package grid implements the state-and-windowing core of a virtualized
// data table: a row window engine over a logically unbounded row set,
// a column model with pinning and sorting, selection state, and an
// infinite-load controller. It is renderer-agnostic; a host feeds it
// viewport updates and user commands and paints from the Frame it
// derives.
//
// All mutations are expected on a single dispatch goroutine, matching
// UI-toolkit event loops. The only asynchronous boundary is the fetch:
// the table hands out a FetchTicket, the host runs the Fetcher wherever
// it likes and delivers the outcome back on the dispatch goroutine via
// CompleteFetch or FailFetch. Tickets issued before Close are stale and
// land on nothing.
package grid

// Option configures a Table at construction.
type Option func(*config)

type config struct {
	cols      []Column
	selMode   SelectionMode
	colSelect bool
	sortMode  SortMode
	overscan  int
	threshold int
	fetcher   Fetcher
	renderer  CellRenderer
	uniformH  float64
}

// WithColumns sets the column definitions.
func WithColumns(cols ...Column) Option {
	return func(c *config) { c.cols = cols }
}

// WithSelectionMode sets the row selection mode (default SelectSingle).
func WithSelectionMode(m SelectionMode) Option {
	return func(c *config) { c.selMode = m }
}

// WithColumnSelection enables selecting whole columns via their headers.
func WithColumnSelection() Option {
	return func(c *config) { c.colSelect = true }
}

// WithSortMode sets the sort mode (default SortSingle).
func WithSortMode(m SortMode) Option {
	return func(c *config) { c.sortMode = m }
}

// WithOverscan sets how many rows stay live past each visible edge.
func WithOverscan(n int) Option {
	return func(c *config) { c.overscan = n }
}

// WithLoadThreshold sets the remaining-row count that triggers a fetch.
func WithLoadThreshold(n int) Option {
	return func(c *config) { c.threshold = n }
}

// WithFetcher sets the collaborator that loads more rows.
func WithFetcher(f Fetcher) Option {
	return func(c *config) { c.fetcher = f }
}

// WithCellRenderer sets the capability used to materialize Frame cells.
func WithCellRenderer(r CellRenderer) Option {
	return func(c *config) { c.renderer = r }
}

// WithUniformRowHeight declares every row h tall, enabling the O(1)
// window path. Without it row heights come from DataSource.RowHeight
// through an incrementally grown prefix-sum index.
func WithUniformRowHeight(h float64) Option {
	return func(c *config) { c.uniformH = h }
}

// Frame is what the render boundary consumes after a recomputation.
type Frame struct {
	Window      RowWindow
	RowOffsets  []float64 // absolute top of each window row, Window.Len() entries
	TotalHeight float64   // scroll extent over all known rows
	Columns     []ColumnLayout
	Cells       [][]any // renderer output per window row, nil without a CellRenderer
}

type windowKey struct {
	scroll, height float64
	overscan       int
	rowCount       int
}

// Table is the engine façade. It owns the five core components, routes
// mutations through them and keeps the derived row window cached for
// the current input tuple.
type Table struct {
	source   DataSource
	fetcher  Fetcher
	renderer CellRenderer

	cols     *ColumnModel
	sel      *SelectionState
	loader   *Loader
	notifier *Notifier
	heights  *HeightIndex

	viewport Viewport
	rowCount int

	win      RowWindow
	winKey   windowKey
	winValid bool

	closed bool
}

// New creates a table over the given data source.
func New(source DataSource, opts ...Option) *Table {
	cfg := config{selMode: SelectSingle, sortMode: SortSingle}
	for _, opt := range opts {
		opt(&cfg)
	}

	t := &Table{
		source:   source,
		fetcher:  cfg.fetcher,
		renderer: cfg.renderer,
		notifier: NewNotifier(),
		rowCount: source.RowCount(),
		viewport: Viewport{Overscan: cfg.overscan},
	}
	if cfg.uniformH > 0 {
		t.heights = NewUniformHeights(cfg.uniformH)
	} else {
		t.heights = NewHeightIndex(source.RowHeight)
	}
	t.cols = NewColumnModel(cfg.sortMode, cfg.cols...)
	t.cols.emit = t.notifier.Emit
	t.sel = NewSelectionState(cfg.selMode, cfg.colSelect)
	t.sel.emit = t.notifier.Emit
	t.loader = NewLoader(cfg.threshold)
	t.loader.emit = t.notifier.Emit
	t.loader.SetHasMore(source.HasMore())
	return t
}

// Subscribe registers fn for the given notification kinds (all kinds
// when none are given) and returns an unsubscribe function.
func (t *Table) Subscribe(fn func(Event), kinds ...EventKind) func() {
	return t.notifier.Subscribe(fn, kinds...)
}

// Columns returns the column model.
func (t *Table) Columns() *ColumnModel { return t.cols }

// Selection returns the selection state.
func (t *Table) Selection() *SelectionState { return t.sel }

// LoadState returns the infinite-load controller's state.
func (t *Table) LoadState() LoadState { return t.loader.State() }

// RowCount returns the row count the engine currently knows about.
func (t *Table) RowCount() int { return t.rowCount }

// Viewport returns the current viewport.
func (t *Table) Viewport() Viewport { return t.viewport }

// SetViewport replaces the viewport wholesale and re-evaluates the
// load trigger against the new window. The returned ticket, when
// non-nil, is a fetch the host should run.
func (t *Table) SetViewport(vp Viewport) *FetchTicket {
	if t.closed {
		return nil
	}
	if vp.ScrollOffset < 0 {
		vp.ScrollOffset = 0
	}
	t.viewport = vp
	return t.checkLoad()
}

// ScrollTo moves the scroll offset, keeping height and overscan.
func (t *Table) ScrollTo(offset float64) *FetchTicket {
	vp := t.viewport
	vp.ScrollOffset = offset
	return t.SetViewport(vp)
}

// ScrollToRow aligns the top of the viewport with row i.
func (t *Table) ScrollToRow(i int) *FetchTicket {
	if t.closed {
		return nil
	}
	i = clampInt(i, 0, t.rowCount)
	return t.ScrollTo(t.heights.OffsetOf(i))
}

// Window returns the row window for the current viewport and row
// count. The result is cached against that input tuple, so repeated
// calls within one interaction frame cost nothing.
func (t *Table) Window() RowWindow {
	key := windowKey{
		scroll:   t.viewport.ScrollOffset,
		height:   t.viewport.Height,
		overscan: t.viewport.Overscan,
		rowCount: t.rowCount,
	}
	if t.winValid && key == t.winKey {
		return t.win
	}
	t.win = ComputeWindow(t.viewport, t.rowCount, t.heights)
	t.winKey = key
	t.winValid = true
	return t.win
}

// Frame derives everything the render boundary needs: the row window,
// the absolute top offset of each window row, the total scroll extent
// and the column layout. With a CellRenderer configured it also
// materializes one opaque value per visible cell; the engine never
// looks inside them.
func (t *Table) Frame() Frame {
	win := t.Window()
	f := Frame{
		Window:      win,
		RowOffsets:  make([]float64, 0, win.Len()),
		TotalHeight: t.heights.TotalHeight(t.rowCount),
		Columns:     t.cols.Layout(),
	}
	y := win.OffsetY
	for i := win.Start; i < win.End; i++ {
		f.RowOffsets = append(f.RowOffsets, y)
		y += t.heights.OffsetOf(i+1) - t.heights.OffsetOf(i)
	}
	if t.renderer != nil {
		f.Cells = make([][]any, 0, win.Len())
		for i := win.Start; i < win.End; i++ {
			row := make([]any, len(f.Columns))
			for j, cl := range f.Columns {
				row[j] = t.renderer.RenderCell(i, cl.Key)
			}
			f.Cells = append(f.Cells, row)
		}
	}
	return f
}

// DataChanged re-reads the source after its row set changed out of
// band. A shrink truncates the height index and prunes selection so
// nothing references rows that no longer exist; any change re-evaluates
// the load trigger.
func (t *Table) DataChanged() *FetchTicket {
	if t.closed {
		return nil
	}
	t.syncRowCount()
	t.loader.SetHasMore(t.source.HasMore())
	return t.checkLoad()
}

// syncRowCount adopts the source's current row count.
func (t *Table) syncRowCount() {
	count := t.source.RowCount()
	if count < t.rowCount {
		t.heights.Truncate(count)
		t.sel.PruneRows(count)
	}
	t.rowCount = count
	t.winValid = false
}

// checkLoad re-evaluates the load trigger against the current window.
func (t *Table) checkLoad() *FetchTicket {
	return t.loader.RangeChanged(t.Window(), t.rowCount)
}

// Fetcher returns the configured fetch collaborator, nil if none.
func (t *Table) Fetcher() Fetcher { return t.fetcher }

// CompleteFetch delivers a successful fetch outcome on the dispatch
// goroutine. The host appends rows to the source before calling this.
// Stale tickets (after Close, or already settled) are ignored. The
// fetch outcome is authoritative for hasMore here: a result reporting
// exhaustion stops further triggers even if the source still claims
// more. The returned ticket, when non-nil, is an immediate follow-up
// fetch the new window still warrants.
func (t *Table) CompleteFetch(tk *FetchTicket, res FetchResult) *FetchTicket {
	if t.closed || !t.loader.Complete(tk, res) {
		return nil
	}
	t.syncRowCount()
	return t.checkLoad()
}

// FailFetch delivers a failed fetch outcome. HasMore is untouched, so
// the next qualifying range change retries.
func (t *Table) FailFetch(tk *FetchTicket, err error) {
	if t.closed {
		return
	}
	t.loader.Fail(tk, err)
}

// Resize sets a column's width through the column model.
func (t *Table) Resize(key string, width float64) error {
	if t.closed {
		return ErrClosed
	}
	return t.cols.Resize(key, width)
}

// Reorder moves a column between display positions.
func (t *Table) Reorder(from, to int) error {
	if t.closed {
		return ErrClosed
	}
	return t.cols.Reorder(from, to)
}

// SetSort sets a column's sort direction.
func (t *Table) SetSort(key string, dir SortDirection) error {
	if t.closed {
		return ErrClosed
	}
	return t.cols.SetSort(key, dir)
}

// ToggleSort advances a column through its sort cycle.
func (t *Table) ToggleSort(key string) error {
	if t.closed {
		return ErrClosed
	}
	return t.cols.ToggleSort(key)
}

// ActivateRow handles a plain activation of row i.
func (t *Table) ActivateRow(i int) {
	if t.closed {
		return
	}
	t.sel.ActivateRow(i, t.rowCount)
}

// ToggleRow handles a modifier-activation of row i.
func (t *Table) ToggleRow(i int) {
	if t.closed {
		return
	}
	t.sel.ToggleRow(i, t.rowCount)
}

// SelectRange selects from the anchor through row i.
func (t *Table) SelectRange(i int) {
	if t.closed {
		return
	}
	t.sel.SelectRange(i, t.rowCount)
}

// ToggleColumn flips a column's selection when column selection is on.
func (t *Table) ToggleColumn(key string) {
	if t.closed {
		return
	}
	if _, ok := t.cols.Column(key); !ok {
		return
	}
	t.sel.ToggleColumn(key)
}

// ClearSelection deselects all rows and columns.
func (t *Table) ClearSelection() {
	if t.closed {
		return
	}
	t.sel.Clear()
}

// MoveFocus moves the focused cell by (drow, dcol), clamped at the
// edges of the row set and the visible columns, never wrapping. With no
// focus yet it lands on the first cell.
func (t *Table) MoveFocus(drow, dcol int) {
	if t.closed || t.rowCount == 0 {
		return
	}
	vis := t.cols.VisibleColumns()
	if len(vis) == 0 {
		return
	}
	f := t.sel.Focus()
	col := 0
	if f.Row < 0 {
		f.Row = 0
	} else {
		for j, c := range vis {
			if c.Key == f.Col {
				col = j
				break
			}
		}
		f.Row = clampInt(f.Row+drow, 0, t.rowCount-1)
		col = clampInt(col+dcol, 0, len(vis)-1)
	}
	t.sel.SetFocus(f.Row, vis[col].Key)
}

// Close tears the table down: outstanding fetch tickets become stale
// and subscribers are dropped. Every operation afterwards is a no-op.
func (t *Table) Close() {
	if t.closed {
		return
	}
	t.closed = true
	t.loader.invalidate()
	t.notifier.Close()
}
