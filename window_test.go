package grid

import "testing"

func TestComputeWindowUniform(t *testing.T) {
	idx := NewUniformHeights(20)

	tests := []struct {
		name     string
		vp       Viewport
		rowCount int
		want     RowWindow
	}{
		{
			// 10 visible rows plus 2 overscan each side
			name:     "scrolled with overscan",
			vp:       Viewport{ScrollOffset: 400, Height: 200, Overscan: 2},
			rowCount: 1000,
			want:     RowWindow{Start: 18, End: 32, OffsetY: 360},
		},
		{
			name:     "at top",
			vp:       Viewport{ScrollOffset: 0, Height: 200, Overscan: 2},
			rowCount: 1000,
			want:     RowWindow{Start: 0, End: 12, OffsetY: 0},
		},
		{
			name:     "clamped at bottom",
			vp:       Viewport{ScrollOffset: 19900, Height: 200, Overscan: 2},
			rowCount: 1000,
			want:     RowWindow{Start: 993, End: 1000, OffsetY: 19860},
		},
		{
			name:     "empty set",
			vp:       Viewport{ScrollOffset: 400, Height: 200, Overscan: 2},
			rowCount: 0,
			want:     RowWindow{},
		},
		{
			name:     "fewer rows than viewport",
			vp:       Viewport{ScrollOffset: 0, Height: 200, Overscan: 2},
			rowCount: 3,
			want:     RowWindow{Start: 0, End: 3, OffsetY: 0},
		},
		{
			name:     "mid-row scroll offset",
			vp:       Viewport{ScrollOffset: 30, Height: 40},
			rowCount: 100,
			want:     RowWindow{Start: 1, End: 4, OffsetY: 20},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeWindow(tt.vp, tt.rowCount, idx)
			if got != tt.want {
				t.Errorf("ComputeWindow() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestComputeWindowIdempotent(t *testing.T) {
	idx := NewUniformHeights(20)
	vp := Viewport{ScrollOffset: 400, Height: 200, Overscan: 2}

	a := ComputeWindow(vp, 1000, idx)
	b := ComputeWindow(vp, 1000, idx)
	if a != b {
		t.Errorf("identical inputs gave %+v then %+v", a, b)
	}
}

func TestComputeWindowInvariants(t *testing.T) {
	idx := NewUniformHeights(20)

	for _, rowCount := range []int{0, 1, 5, 100, 1000} {
		for _, scroll := range []float64{0, 10, 399, 400, 100000} {
			vp := Viewport{ScrollOffset: scroll, Height: 200, Overscan: 3}
			w := ComputeWindow(vp, rowCount, idx)
			if w.Start < 0 || w.Start > w.End || w.End > rowCount {
				t.Errorf("rowCount=%d scroll=%v: invalid window %+v", rowCount, scroll, w)
			}
			if want := idx.OffsetOf(w.Start); w.OffsetY != want {
				t.Errorf("rowCount=%d scroll=%v: OffsetY=%v, want %v", rowCount, scroll, w.OffsetY, want)
			}
		}
	}
}

func TestComputeWindowVariableHeights(t *testing.T) {
	// rows cycle 10, 20, 30: prefix 0, 10, 30, 60, 70, 90, 120, ...
	heightOf := func(i int) float64 { return float64(i%3+1) * 10 }
	idx := NewHeightIndex(heightOf)

	got := ComputeWindow(Viewport{ScrollOffset: 25, Height: 30}, 6, idx)
	want := RowWindow{Start: 1, End: 3, OffsetY: 10}
	if got != want {
		t.Errorf("ComputeWindow() = %+v, want %+v", got, want)
	}

	// row boundary exactly at the scroll offset belongs to the row below
	got = ComputeWindow(Viewport{ScrollOffset: 30, Height: 30}, 6, idx)
	want = RowWindow{Start: 2, End: 3, OffsetY: 30}
	if got != want {
		t.Errorf("ComputeWindow() = %+v, want %+v", got, want)
	}

	got = ComputeWindow(Viewport{ScrollOffset: 0, Height: 65, Overscan: 1}, 6, idx)
	want = RowWindow{Start: 0, End: 5, OffsetY: 0}
	if got != want {
		t.Errorf("ComputeWindow() = %+v, want %+v", got, want)
	}
}

func TestHeightIndexIncrementalAppend(t *testing.T) {
	heights := []float64{10, 20, 30, 15}
	idx := NewHeightIndex(func(i int) float64 { return heights[i] })

	// index the first two rows, then grow the set
	if got := idx.TotalHeight(2); got != 30 {
		t.Errorf("TotalHeight(2) = %v, want 30", got)
	}
	if got := idx.Indexed(); got != 2 {
		t.Errorf("Indexed() = %d, want 2", got)
	}

	heights = append(heights, 25)
	if got := idx.TotalHeight(5); got != 100 {
		t.Errorf("TotalHeight(5) = %v, want 100", got)
	}
	if got := idx.OffsetOf(3); got != 60 {
		t.Errorf("OffsetOf(3) = %v, want 60", got)
	}
}

func TestHeightIndexTruncate(t *testing.T) {
	idx := NewHeightIndex(func(i int) float64 { return 10 })
	idx.extend(10)

	idx.Truncate(4)
	if got := idx.Indexed(); got != 4 {
		t.Errorf("Indexed() = %d, want 4", got)
	}
	if got := idx.TotalHeight(4); got != 40 {
		t.Errorf("TotalHeight(4) = %v, want 40", got)
	}
}

func TestRowWindowHelpers(t *testing.T) {
	w := RowWindow{Start: 5, End: 8}
	if w.Len() != 3 {
		t.Errorf("Len() = %d, want 3", w.Len())
	}
	if !w.Contains(5) || !w.Contains(7) {
		t.Error("Contains should include Start and End-1")
	}
	if w.Contains(4) || w.Contains(8) {
		t.Error("Contains should exclude rows outside [Start, End)")
	}
}
