package grid

import "errors"

// Common errors returned by grid operations. Mutations that fail with
// one of these leave the model untouched; the table surfaces
// constraint violations through EventOpRejected rather than panicking.
var (
	// ErrUnknownColumn is returned when a column key is not in the model.
	ErrUnknownColumn = errors.New("unknown column")

	// ErrNotResizable is returned when resizing a fixed-width column.
	ErrNotResizable = errors.New("column is not resizable")

	// ErrNotMovable is returned when reordering an immovable column.
	ErrNotMovable = errors.New("column is not movable")

	// ErrNotSortable is returned when sorting an unsortable column,
	// or when the table was built with sorting disabled.
	ErrNotSortable = errors.New("column is not sortable")

	// ErrPinBoundary is returned when a reorder would move a column
	// across a pin boundary.
	ErrPinBoundary = errors.New("move crosses pin boundary")

	// ErrBadIndex is returned when a row or column index is out of range.
	ErrBadIndex = errors.New("index out of range")

	// ErrClosed is returned when operating on a closed table.
	ErrClosed = errors.New("table is closed")
)
