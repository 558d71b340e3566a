package grid

import (
	"math"
	"sort"
)

// Viewport describes the visible slice of the scroll area. It has no
// identity beyond "current"; the engine recomputes the row window from
// it on every scroll or resize.
type Viewport struct {
	ScrollOffset float64 // distance scrolled from the top, clamped to >= 0
	Height       float64 // visible height
	Overscan     int     // rows kept alive past each visible edge
}

// RowWindow is the derived set of rows a renderer should materialize.
// End is exclusive, so End-Start is the number of live rows. OffsetY is
// the cumulative height of rows before Start, i.e. where the first live
// row sits in scroll space.
type RowWindow struct {
	Start   int
	End     int
	OffsetY float64
}

// Len returns the number of rows in the window.
func (w RowWindow) Len() int {
	return w.End - w.Start
}

// Contains reports whether row i falls inside the window.
func (w RowWindow) Contains(i int) bool {
	return i >= w.Start && i < w.End
}

// HeightIndex answers cumulative-height queries over the row set.
// A uniform index answers in O(1). A variable index keeps a prefix-sum
// slice that grows incrementally as rows appear, so appends are
// amortized O(1) per row and window queries are O(log n). The slice is
// never rebuilt from scratch.
type HeightIndex struct {
	uniform  float64
	heightOf func(row int) float64
	prefix   []float64 // prefix[i] = total height of rows [0, i)
}

// NewUniformHeights creates an index where every row is h tall.
func NewUniformHeights(h float64) *HeightIndex {
	return &HeightIndex{uniform: h}
}

// NewHeightIndex creates a variable-height index backed by heightOf.
// heightOf must answer in constant time for already-loaded rows.
func NewHeightIndex(heightOf func(row int) float64) *HeightIndex {
	return &HeightIndex{heightOf: heightOf, prefix: []float64{0}}
}

// Uniform reports whether this index uses a single fixed row height.
func (hi *HeightIndex) Uniform() bool {
	return hi.heightOf == nil
}

// Indexed returns the number of rows whose heights have been summed.
// Always 0 for uniform indexes, which need no bookkeeping.
func (hi *HeightIndex) Indexed() int {
	if hi.Uniform() {
		return 0
	}
	return len(hi.prefix) - 1
}

// extend grows the prefix sums to cover rowCount rows.
func (hi *HeightIndex) extend(rowCount int) {
	if hi.Uniform() {
		return
	}
	for i := len(hi.prefix) - 1; i < rowCount; i++ {
		hi.prefix = append(hi.prefix, hi.prefix[i]+hi.heightOf(i))
	}
}

// Truncate discards sums beyond rowCount after the source shrank.
func (hi *HeightIndex) Truncate(rowCount int) {
	if hi.Uniform() || rowCount < 0 {
		return
	}
	if rowCount+1 < len(hi.prefix) {
		hi.prefix = hi.prefix[:rowCount+1]
	}
}

// OffsetOf returns the top edge of row i in scroll space.
func (hi *HeightIndex) OffsetOf(i int) float64 {
	if i <= 0 {
		return 0
	}
	if hi.Uniform() {
		return float64(i) * hi.uniform
	}
	hi.extend(i)
	return hi.prefix[i]
}

// TotalHeight returns the combined height of the first rowCount rows.
func (hi *HeightIndex) TotalHeight(rowCount int) float64 {
	return hi.OffsetOf(rowCount)
}

// firstBelow returns the index of the first row whose bottom edge lies
// strictly below y, clamped to [0, rowCount).
func (hi *HeightIndex) firstBelow(y float64, rowCount int) int {
	if y <= 0 {
		return 0
	}
	if hi.Uniform() {
		// a row boundary exactly at y belongs to the row below it
		i := int(y / hi.uniform)
		return clampInt(i, 0, rowCount-1)
	}
	hi.extend(rowCount)
	i := sort.Search(rowCount, func(i int) bool {
		return hi.prefix[i+1] > y
	})
	return clampInt(i, 0, rowCount-1)
}

// firstAtOrPast returns the lowest index whose top edge is at or past
// y, clamped to [0, rowCount]. Used for the exclusive window end.
func (hi *HeightIndex) firstAtOrPast(y float64, rowCount int) int {
	if y <= 0 {
		return 0
	}
	if hi.Uniform() {
		i := int(math.Ceil(y / hi.uniform))
		return clampInt(i, 0, rowCount)
	}
	hi.extend(rowCount)
	i := sort.Search(rowCount+1, func(i int) bool {
		return hi.prefix[i] >= y
	})
	return clampInt(i, 0, rowCount)
}

// ComputeWindow derives the row window for the given viewport. It is a
// pure function of its inputs: identical arguments always produce the
// identical window, and callers are free to cache on that basis.
func ComputeWindow(vp Viewport, rowCount int, idx *HeightIndex) RowWindow {
	if rowCount <= 0 || idx == nil {
		return RowWindow{}
	}
	scroll := math.Max(0, vp.ScrollOffset)

	start := idx.firstBelow(scroll, rowCount)
	end := idx.firstAtOrPast(scroll+vp.Height, rowCount)
	if end < start {
		end = start
	}

	start = clampInt(start-vp.Overscan, 0, rowCount)
	end = clampInt(end+vp.Overscan, start, rowCount)

	return RowWindow{Start: start, End: end, OffsetY: idx.OffsetOf(start)}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
