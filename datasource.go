package grid

import "context"

// DataSource provides read-only access to the row set backing a table.
// The engine only ever asks for counts and heights; cell contents stay
// between the data source and the renderer.
type DataSource interface {
	// RowCount returns the total number of rows currently available.
	RowCount() int

	// RowHeight returns the height of the given row. Implementations
	// should answer in constant time; the engine indexes heights
	// incrementally and never rescans the full set.
	RowHeight(row int) float64

	// HasMore reports whether more rows can be fetched beyond the
	// current count.
	HasMore() bool
}

// FetchResult is what a Fetcher reports when a load completes.
type FetchResult struct {
	Appended int  // rows added to the source
	HasMore  bool // whether another fetch could yield more
}

// Fetcher loads more rows on behalf of the infinite-load controller.
// The table guarantees at most one outstanding call; the host runs it
// on whatever goroutine it likes and delivers the result back through
// Table.CompleteFetch or Table.FailFetch on the dispatch turn.
type Fetcher interface {
	RequestMore(ctx context.Context) (FetchResult, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context) (FetchResult, error)

func (f FetcherFunc) RequestMore(ctx context.Context) (FetchResult, error) {
	return f(ctx)
}

// CellRenderer produces an opaque renderable value for one cell. The
// engine calls it for visible cells when building a Frame and never
// inspects the result.
type CellRenderer interface {
	RenderCell(row int, col string) any
}

// CellRendererFunc adapts a function to the CellRenderer interface.
type CellRendererFunc func(row int, col string) any

func (f CellRendererFunc) RenderCell(row int, col string) any {
	return f(row, col)
}

// SliceSource is a slice-backed DataSource with a fixed row height by
// default and an optional per-item height function.
//
// usage:
//
//	src := NewSliceSource(rows, 20).More(true)
//	table := New(src, WithColumns(cols...))
type SliceSource[T any] struct {
	items     []T
	rowHeight float64
	heightOf  func(item T, row int) float64
	hasMore   bool
}

// NewSliceSource creates a source over items with a fixed row height.
func NewSliceSource[T any](items []T, rowHeight float64) *SliceSource[T] {
	return &SliceSource[T]{items: items, rowHeight: rowHeight}
}

// HeightFunc sets a per-item height function, replacing the fixed height.
func (s *SliceSource[T]) HeightFunc(fn func(item T, row int) float64) *SliceSource[T] {
	s.heightOf = fn
	return s
}

// More sets whether the source can grow via fetches.
func (s *SliceSource[T]) More(hasMore bool) *SliceSource[T] {
	s.hasMore = hasMore
	return s
}

// Append adds items and returns the number appended.
func (s *SliceSource[T]) Append(items ...T) int {
	s.items = append(s.items, items...)
	return len(items)
}

// Items returns the backing slice.
func (s *SliceSource[T]) Items() []T {
	return s.items
}

// At returns the item at row i, or the zero value if out of bounds.
func (s *SliceSource[T]) At(i int) T {
	if i < 0 || i >= len(s.items) {
		var zero T
		return zero
	}
	return s.items[i]
}

// RowCount implements DataSource.
func (s *SliceSource[T]) RowCount() int {
	return len(s.items)
}

// RowHeight implements DataSource.
func (s *SliceSource[T]) RowHeight(row int) float64 {
	if s.heightOf != nil && row >= 0 && row < len(s.items) {
		return s.heightOf(s.items[row], row)
	}
	return s.rowHeight
}

// HasMore implements DataSource.
func (s *SliceSource[T]) HasMore() bool {
	return s.hasMore
}
