package grid

import "testing"

func testColumns() []Column {
	return []Column{
		Col("id", "ID", 60, PinnedLeft(), NoResize(), NoMove()),
		Col("name", "Name", 150, Sortable()),
		Col("age", "Age", 80, Sortable(), WidthBounds(50, 300)),
		Col("city", "City", 120),
		Col("total", "Total", 90, PinnedRight(), DefaultSort(SortDescending)),
	}
}

// keys returns the display order of column keys.
func keys(m *ColumnModel) []string {
	out := make([]string, 0, m.Len())
	for i := 0; i < m.Len(); i++ {
		out = append(out, m.At(i).Key)
	}
	return out
}

func sameOrder(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestColumnModelOrder(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)

	want := []string{"id", "name", "age", "city", "total"}
	if got := keys(m); !sameOrder(got, want) {
		t.Errorf("display order = %v, want %v", got, want)
	}
	if got := m.IndexOf("age"); got != 2 {
		t.Errorf("IndexOf(age) = %d, want 2", got)
	}
}

func TestResizeClamping(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)

	tests := []struct {
		width float64
		want  float64
	}{
		{20, 50},    // below min
		{1000, 300}, // above max
		{120, 120},  // in bounds
	}
	for _, tt := range tests {
		if err := m.Resize("age", tt.width); err != nil {
			t.Fatalf("Resize(age, %v) error: %v", tt.width, err)
		}
		c, _ := m.Column("age")
		if c.Width != tt.want {
			t.Errorf("Resize(age, %v): width = %v, want %v", tt.width, c.Width, tt.want)
		}
	}
}

func TestResizeRejections(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)
	var rejected []Event
	m.emit = func(e Event) {
		if e.Kind == EventOpRejected {
			rejected = append(rejected, e)
		}
	}

	if err := m.Resize("nope", 100); err != ErrUnknownColumn {
		t.Errorf("unknown column: err = %v, want ErrUnknownColumn", err)
	}
	if len(rejected) != 0 {
		t.Error("unknown column should stay silent")
	}

	before, _ := m.Column("id")
	if err := m.Resize("id", 100); err == nil {
		t.Error("non-resizable column should refuse")
	}
	after, _ := m.Column("id")
	if after.Width != before.Width {
		t.Errorf("width changed on rejected resize: %v -> %v", before.Width, after.Width)
	}
	if len(rejected) != 1 {
		t.Errorf("expected 1 rejection event, got %d", len(rejected))
	}
}

func TestResizeEmitsWidthMapping(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)
	var got Event
	m.emit = func(e Event) { got = e }

	if err := m.Resize("city", 200); err != nil {
		t.Fatal(err)
	}
	if got.Kind != EventWidthChanged {
		t.Fatalf("kind = %v, want WidthChanged", got.Kind)
	}
	if got.Widths["city"] != 200 || got.Widths["name"] != 150 {
		t.Errorf("widths mapping incomplete: %v", got.Widths)
	}
	if len(got.Widths) != m.Len() {
		t.Errorf("widths has %d entries, want %d", len(got.Widths), m.Len())
	}
}

func TestReorder(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)

	if err := m.Reorder(1, 3); err != nil {
		t.Fatal(err)
	}
	want := []string{"id", "age", "city", "name", "total"}
	if got := keys(m); !sameOrder(got, want) {
		t.Errorf("after Reorder(1,3): %v, want %v", got, want)
	}

	if err := m.Reorder(3, 1); err != nil {
		t.Fatal(err)
	}
	want = []string{"id", "name", "age", "city", "total"}
	if got := keys(m); !sameOrder(got, want) {
		t.Errorf("after Reorder(3,1): %v, want %v", got, want)
	}
}

func TestReorderPinBoundary(t *testing.T) {
	m := NewColumnModel(SortSingle,
		Col("a", "A", 50, PinnedLeft()),
		Col("b", "B", 50, PinnedLeft()),
		Col("c", "C", 50),
		Col("d", "D", 50),
		Col("e", "E", 50, PinnedRight()),
	)

	// pinned columns reorder within their own zone
	if err := m.Reorder(0, 1); err != nil {
		t.Fatal(err)
	}
	if got := keys(m); !sameOrder(got, []string{"b", "a", "c", "d", "e"}) {
		t.Errorf("in-zone reorder: %v", got)
	}

	// a left-pinned column cannot move past the last pinned slot
	before := keys(m)
	if err := m.Reorder(0, 3); err == nil {
		t.Error("cross-boundary move should refuse")
	}
	if got := keys(m); !sameOrder(got, before) {
		t.Errorf("order changed on rejected move: %v", got)
	}

	// an unpinned column cannot enter a pin zone
	if err := m.Reorder(2, 4); err == nil {
		t.Error("move into right pin zone should refuse")
	}
	if got := keys(m); !sameOrder(got, before) {
		t.Errorf("order changed on rejected move: %v", got)
	}
}

func TestReorderPermutationInvariant(t *testing.T) {
	m := NewColumnModel(SortSingle,
		Col("a", "A", 50, PinnedLeft()),
		Col("b", "B", 50),
		Col("c", "C", 50),
		Col("d", "D", 50),
		Col("e", "E", 50, PinnedRight()),
	)

	moves := [][2]int{{1, 3}, {3, 2}, {2, 1}, {0, 2}, {4, 1}, {1, 2}}
	for _, mv := range moves {
		m.Reorder(mv[0], mv[1]) // rejected moves are fine, order must survive
		seen := make(map[string]bool)
		for i := 0; i < m.Len(); i++ {
			seen[m.At(i).Key] = true
		}
		if len(seen) != 5 {
			t.Fatalf("after Reorder(%d,%d): lost a column: %v", mv[0], mv[1], keys(m))
		}
		// pin zones stay contiguous
		if m.At(0).Pin != PinLeft || m.At(4).Pin != PinRight {
			t.Fatalf("after Reorder(%d,%d): pin zones interleaved: %v", mv[0], mv[1], keys(m))
		}
		for i := 1; i < 4; i++ {
			if m.At(i).Pin != PinNone {
				t.Fatalf("after Reorder(%d,%d): pinned column in free zone: %v", mv[0], mv[1], keys(m))
			}
		}
	}
}

func TestReorderImmovable(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)
	before := keys(m)
	if err := m.Reorder(0, 0); err != nil {
		t.Errorf("no-op reorder should succeed: %v", err)
	}
	// "id" is NoMove; moving it anywhere refuses
	m2 := NewColumnModel(SortSingle,
		Col("x", "X", 50, NoMove()),
		Col("y", "Y", 50),
	)
	if err := m2.Reorder(0, 1); err == nil {
		t.Error("immovable column should refuse")
	}
	if got := keys(m); !sameOrder(got, before) {
		t.Errorf("order changed: %v", got)
	}
}

func TestSingleSortClearsOthers(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)

	if err := m.SetSort("age", SortAscending); err != nil {
		t.Fatal(err)
	}
	if err := m.SetSort("name", SortDescending); err != nil {
		t.Fatal(err)
	}

	age, _ := m.Column("age")
	name, _ := m.Column("name")
	if age.Sort != SortNone {
		t.Errorf("age sort = %v, want None", age.Sort)
	}
	if name.Sort != SortDescending {
		t.Errorf("name sort = %v, want Descending", name.Sort)
	}
	if got := m.SortKeys(); !sameOrder(got, []string{"name"}) {
		t.Errorf("SortKeys() = %v, want [name]", got)
	}
}

func TestSingleSortClearLeavesNoKeys(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)

	if err := m.SetSort("age", SortAscending); err != nil {
		t.Fatal(err)
	}
	// clearing through another column sweeps age as well, so no key
	// may survive in the priority list
	if err := m.SetSort("name", SortNone); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < m.Len(); i++ {
		if c := m.At(i); c.Sort != SortNone {
			t.Errorf("%s sort = %v, want None", c.Key, c.Sort)
		}
	}
	if got := m.SortKeys(); len(got) != 0 {
		t.Errorf("SortKeys() = %v, want empty", got)
	}
}

func TestMultiSortPriority(t *testing.T) {
	m := NewColumnModel(SortMulti, testColumns()...)

	m.SetSort("age", SortAscending)
	m.SetSort("name", SortDescending)
	if got := m.SortKeys(); !sameOrder(got, []string{"name", "age"}) {
		t.Errorf("SortKeys() = %v, want [name age]", got)
	}

	// re-toggling an existing key promotes it to primary
	m.SetSort("age", SortDescending)
	if got := m.SortKeys(); !sameOrder(got, []string{"age", "name"}) {
		t.Errorf("SortKeys() = %v, want [age name]", got)
	}

	// clearing a key removes it from the priority list
	m.SetSort("age", SortNone)
	if got := m.SortKeys(); !sameOrder(got, []string{"name"}) {
		t.Errorf("SortKeys() = %v, want [name]", got)
	}
}

func TestToggleSortCycle(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)

	want := []SortDirection{SortAscending, SortDescending, SortNone}
	for _, dir := range want {
		if err := m.ToggleSort("age"); err != nil {
			t.Fatal(err)
		}
		c, _ := m.Column("age")
		if c.Sort != dir {
			t.Errorf("cycle step: got %v, want %v", c.Sort, dir)
		}
	}

	// a declared default direction starts the cycle there
	want = []SortDirection{SortDescending, SortAscending, SortNone}
	for _, dir := range want {
		if err := m.ToggleSort("total"); err != nil {
			t.Fatal(err)
		}
		c, _ := m.Column("total")
		if c.Sort != dir {
			t.Errorf("default cycle step: got %v, want %v", c.Sort, dir)
		}
	}
}

func TestSortRejections(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)
	if err := m.SetSort("city", SortAscending); err == nil {
		t.Error("unsortable column should refuse")
	}
	if err := m.SetSort("ghost", SortAscending); err != ErrUnknownColumn {
		t.Errorf("unknown column: err = %v, want ErrUnknownColumn", err)
	}

	off := NewColumnModel(SortDisabled, testColumns()...)
	if err := off.SetSort("age", SortAscending); err == nil {
		t.Error("SortDisabled mode should refuse")
	}
}

func TestVisibleColumnsAndLayout(t *testing.T) {
	m := NewColumnModel(SortSingle, testColumns()...)
	m.SetHidden("city", true)

	vis := m.VisibleColumns()
	if len(vis) != 4 {
		t.Fatalf("visible count = %d, want 4", len(vis))
	}
	for _, c := range vis {
		if c.Key == "city" {
			t.Error("hidden column still visible")
		}
	}

	layout := m.Layout()
	var x float64
	for i, cl := range layout {
		if cl.X != x {
			t.Errorf("layout[%d].X = %v, want %v", i, cl.X, x)
		}
		x += cl.Width
	}
	if m.TotalWidth() != x {
		t.Errorf("TotalWidth() = %v, want %v", m.TotalWidth(), x)
	}

	m.SetHidden("city", false)
	if len(m.VisibleColumns()) != 5 {
		t.Error("column did not come back")
	}
}
