// Command griddemo drives the grid engine from a bubbletea TUI: an
// infinitely loading row set with sortable, resizable, reorderable and
// pinnable columns. Each terminal line is one row, so the engine runs
// with a uniform row height of 1 and the viewport height tracks the
// terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/tigerfsh/grid"
)

// styles
var (
	headerStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("6"))
	focusStyle    = lipgloss.NewStyle().Bold(true).Background(lipgloss.Color("4")).Foreground(lipgloss.Color("15"))
	pinnedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	statusStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type person struct {
	ID    int
	Name  string
	Age   int
	City  string
	Total float64
}

var (
	firstNames = []string{"Ada", "Ben", "Cleo", "Dev", "Elia", "Finn", "Gus", "Hana", "Iris", "Jo"}
	cities     = []string{"Oslo", "Lima", "Kyoto", "Cairo", "Porto", "Quito", "Perth", "Turin"}
)

func makePeople(start, n int) []person {
	out := make([]person, n)
	for i := range out {
		id := start + i
		out[i] = person{
			ID:    id,
			Name:  fmt.Sprintf("%s %c.", firstNames[id%len(firstNames)], 'A'+rune(id%26)),
			Age:   18 + id%60,
			City:  cities[id%len(cities)],
			Total: float64(id%997) * 1.5,
		}
	}
	return out
}

type keymap struct {
	Up, Down         key.Binding
	PageUp, PageDown key.Binding
	Left, Right      key.Binding
	Select, Range    key.Binding
	Sort             key.Binding
	Grow, Shrink     key.Binding
	MoveL, MoveR     key.Binding
	Clear            key.Binding
	Quit             key.Binding
}

var keys = keymap{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "b")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "f")),
	Left:     key.NewBinding(key.WithKeys("left", "h")),
	Right:    key.NewBinding(key.WithKeys("right", "l")),
	Select:   key.NewBinding(key.WithKeys(" ", "x")),
	Range:    key.NewBinding(key.WithKeys("v")),
	Sort:     key.NewBinding(key.WithKeys("s")),
	Grow:     key.NewBinding(key.WithKeys("+", "=")),
	Shrink:   key.NewBinding(key.WithKeys("-")),
	MoveL:    key.NewBinding(key.WithKeys("H", "<")),
	MoveR:    key.NewBinding(key.WithKeys("L", ">")),
	Clear:    key.NewBinding(key.WithKeys("esc")),
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c")),
}

// fetchMsg delivers one fetch outcome back onto the bubbletea loop,
// which is the engine's dispatch turn.
type fetchMsg struct {
	ticket *grid.FetchTicket
	res    grid.FetchResult
	err    error
}

type model struct {
	table   *grid.Table
	src     *grid.SliceSource[person]
	width   int
	height  int
	status  string
	pending *grid.FetchTicket // ticket issued before the program started
}

func newModel(rows int, width, height int) *model {
	src := grid.NewSliceSource(makePeople(0, rows), 1).More(true)
	table := grid.New(src,
		grid.WithColumns(
			grid.Col("id", "ID", 6, grid.PinnedLeft(), grid.NoResize(), grid.NoMove()),
			grid.Col("name", "Name", 18, grid.Sortable(), grid.WidthBounds(8, 40)),
			grid.Col("age", "Age", 6, grid.Sortable(), grid.WidthBounds(4, 10)),
			grid.Col("city", "City", 12, grid.WidthBounds(6, 24)),
			grid.Col("total", "Total", 10, grid.PinnedRight(), grid.DefaultSort(grid.SortDescending)),
		),
		grid.WithUniformRowHeight(1),
		grid.WithSelectionMode(grid.SelectMultiple),
		grid.WithSortMode(grid.SortSingle),
		grid.WithOverscan(2),
		grid.WithLoadThreshold(40),
		grid.WithFetcher(grid.FetcherFunc(func(ctx context.Context) (grid.FetchResult, error) {
			// simulated remote source
			select {
			case <-ctx.Done():
				return grid.FetchResult{}, ctx.Err()
			case <-time.After(300 * time.Millisecond):
			}
			n := src.Append(makePeople(src.RowCount(), 200)...)
			return grid.FetchResult{Appended: n, HasMore: src.RowCount() < 5000}, nil
		})),
	)

	m := &model{table: table, src: src, width: width, height: height}
	table.Subscribe(func(e grid.Event) {
		switch e.Kind {
		case grid.EventLoadRequested:
			m.status = "loading..."
		case grid.EventLoadFinished:
			m.status = fmt.Sprintf("loaded %d rows", e.Appended)
		case grid.EventLoadFailed:
			m.status = "load failed: " + e.Err.Error()
		case grid.EventSortChanged:
			m.status = fmt.Sprintf("sort %s %s", e.Column, e.Direction)
		case grid.EventOpRejected:
			m.status = "rejected: " + e.Err.Error()
		}
	})
	m.pending = table.SetViewport(grid.Viewport{Height: float64(m.viewRows()), Overscan: 2})
	table.MoveFocus(0, 0)
	return m
}

// viewRows is the terminal height minus header and status lines.
func (m *model) viewRows() int {
	if m.height < 4 {
		return 1
	}
	return m.height - 3
}

// runFetch executes one fetch off the dispatch loop and reports back.
func (m *model) runFetch(tk *grid.FetchTicket) tea.Cmd {
	if tk == nil {
		return nil
	}
	return func() tea.Msg {
		res, err := m.table.Fetcher().RequestMore(context.Background())
		return fetchMsg{ticket: tk, res: res, err: err}
	}
}

func (m *model) Init() tea.Cmd {
	// the initial viewport may already have warranted a fetch
	return m.runFetch(m.pending)
}

// followFocus keeps the focused row inside the visible band.
func (m *model) followFocus() tea.Cmd {
	f := m.table.Selection().Focus()
	vp := m.table.Viewport()
	top, bottom := int(vp.ScrollOffset), int(vp.ScrollOffset+vp.Height)
	if f.Row < top {
		return m.runFetch(m.table.ScrollTo(float64(f.Row)))
	}
	if f.Row >= bottom {
		return m.runFetch(m.table.ScrollTo(float64(f.Row+1) - vp.Height))
	}
	return nil
}

func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		vp := m.table.Viewport()
		vp.Height = float64(m.viewRows())
		return m, m.runFetch(m.table.SetViewport(vp))

	case fetchMsg:
		if msg.err != nil {
			m.table.FailFetch(msg.ticket, msg.err)
			return m, nil
		}
		// completion may immediately warrant the next fetch
		return m, m.runFetch(m.table.CompleteFetch(msg.ticket, msg.res))

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			m.table.Close()
			return m, tea.Quit
		case key.Matches(msg, keys.Up):
			m.table.MoveFocus(-1, 0)
			return m, m.followFocus()
		case key.Matches(msg, keys.Down):
			m.table.MoveFocus(1, 0)
			return m, m.followFocus()
		case key.Matches(msg, keys.PageUp):
			m.table.MoveFocus(-m.viewRows(), 0)
			return m, m.followFocus()
		case key.Matches(msg, keys.PageDown):
			m.table.MoveFocus(m.viewRows(), 0)
			return m, m.followFocus()
		case key.Matches(msg, keys.Left):
			m.table.MoveFocus(0, -1)
		case key.Matches(msg, keys.Right):
			m.table.MoveFocus(0, 1)
		case key.Matches(msg, keys.Select):
			m.table.ToggleRow(m.table.Selection().Focus().Row)
		case key.Matches(msg, keys.Range):
			m.table.SelectRange(m.table.Selection().Focus().Row)
		case key.Matches(msg, keys.Sort):
			m.table.ToggleSort(m.table.Selection().Focus().Col)
		case key.Matches(msg, keys.Grow):
			m.resizeFocused(2)
		case key.Matches(msg, keys.Shrink):
			m.resizeFocused(-2)
		case key.Matches(msg, keys.MoveL):
			m.moveFocused(-1)
		case key.Matches(msg, keys.MoveR):
			m.moveFocused(1)
		case key.Matches(msg, keys.Clear):
			m.table.ClearSelection()
		}
	}
	return m, nil
}

// resizeFocused runs a one-step resize gesture on the focused column.
func (m *model) resizeFocused(delta float64) {
	g, err := m.table.BeginResize(m.table.Selection().Focus().Col)
	if err != nil {
		m.status = "rejected: " + err.Error()
		return
	}
	g.Update(delta)
	g.End()
}

// moveFocused runs a one-step move gesture on the focused column.
func (m *model) moveFocused(delta int) {
	from := m.table.Columns().IndexOf(m.table.Selection().Focus().Col)
	g, err := m.table.BeginMove(from)
	if err != nil {
		m.status = "rejected: " + err.Error()
		return
	}
	g.Update(from + delta)
	g.End()
}

func cell(text string, width int, right bool) string {
	w := width - 1 // column gap
	if w < 1 {
		w = 1
	}
	text = runewidth.Truncate(text, w, "…")
	if right {
		return runewidth.FillLeft(text, w) + " "
	}
	return runewidth.FillRight(text, w) + " "
}

func (m *model) fieldOf(p person, col string) (string, bool) {
	switch col {
	case "id":
		return fmt.Sprintf("%d", p.ID), true
	case "name":
		return p.Name, false
	case "age":
		return fmt.Sprintf("%d", p.Age), true
	case "city":
		return p.City, false
	case "total":
		return fmt.Sprintf("%.2f", p.Total), true
	default:
		return "", false
	}
}

func sortMarker(dir grid.SortDirection) string {
	switch dir {
	case grid.SortAscending:
		return " ↑"
	case grid.SortDescending:
		return " ↓"
	default:
		return ""
	}
}

func (m *model) View() string {
	var b strings.Builder
	frame := m.table.Frame()
	cols := m.table.Columns().VisibleColumns()

	// header
	var hdr strings.Builder
	for _, c := range cols {
		label := c.Label + sortMarker(c.Sort)
		s := cell(label, int(c.Width), false)
		if c.Pin != grid.PinNone {
			s = pinnedStyle.Render(s)
		}
		hdr.WriteString(s)
	}
	b.WriteString(headerStyle.Width(m.width).Render(hdr.String()))
	b.WriteString("\n")

	// body: paint only the visible band of the row window
	vp := m.table.Viewport()
	top, bottom := int(vp.ScrollOffset), int(vp.ScrollOffset+vp.Height)
	sel := m.table.Selection()
	focus := sel.Focus()
	painted := 0
	for row := frame.Window.Start; row < frame.Window.End; row++ {
		if row < top || row >= bottom {
			continue // overscan rows stay unpainted in a terminal
		}
		p := m.src.At(row)
		var line strings.Builder
		for _, c := range cols {
			text, right := m.fieldOf(p, c.Key)
			s := cell(text, int(c.Width), right)
			if row == focus.Row && c.Key == focus.Col {
				s = focusStyle.Render(s)
			} else if sel.IsRowSelected(row) {
				s = selectedStyle.Render(s)
			}
			line.WriteString(s)
		}
		b.WriteString(line.String())
		b.WriteString("\n")
		painted++
	}
	for ; painted < m.viewRows(); painted++ {
		b.WriteString(dimStyle.Render("~"))
		b.WriteString("\n")
	}

	// status line
	st := m.table.LoadState()
	status := fmt.Sprintf("rows %d  selected %d  window [%d,%d)  hasMore %v",
		m.table.RowCount(), len(sel.Rows()), frame.Window.Start, frame.Window.End, st.HasMore)
	if m.status != "" {
		status += "  |  " + m.status
	}
	b.WriteString(statusStyle.Render(status))
	return b.String()
}

func main() {
	rows := flag.Int("rows", 300, "initial row count")
	flag.Parse()

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	m := newModel(*rows, width, height)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		log.Fatal(err)
	}
}
