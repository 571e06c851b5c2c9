package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/alexanderramin/kioku/internal/cli/formatter"
	"github.com/alexanderramin/kioku/internal/listtree"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// listKeyMap holds the navigation bindings shared by every list view.
type listKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Home     key.Binding
	End      key.Binding
	Toggle   key.Binding
	Quit     key.Binding
}

func defaultListKeys() listKeyMap {
	return listKeyMap{
		Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:     key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev")),
		Right:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next")),
		PageUp:   key.NewBinding(key.WithKeys("pgup", "ctrl+u"), key.WithHelp("pgup", "page up")),
		PageDown: key.NewBinding(key.WithKeys("pgdown", "ctrl+d"), key.WithHelp("pgdn", "page down")),
		Home:     key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g", "top")),
		End:      key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G", "bottom")),
		Toggle:   key.NewBinding(key.WithKeys("enter", " ", "space"), key.WithHelp("enter", "fold/open")),
		Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k listKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Toggle, k.Quit}
}

// renderHelp formats bindings as "key desc" pairs for the bottom bar.
func renderHelp(bindings []key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		parts = append(parts, formatter.StyleHeader.Render(h.Key)+" "+formatter.Dim(h.Desc))
	}
	return strings.Join(parts, formatter.Dim(" · "))
}

// rowRenderer returns the plain text of a row and the style to paint it with.
type rowRenderer[T any] func(n listtree.Node[T]) (string, lipgloss.Style, error)

// rowBinder is the adapter's Binder: it renders one row into a cell of the
// width and selection state the host prepared.
type rowBinder[T any] struct {
	render   rowRenderer[T]
	width    int
	selected bool
	line     string
}

func (b *rowBinder[T]) Bind(_ int, n listtree.Node[T]) error {
	text, style, err := b.render(n)
	if err != nil {
		return err
	}
	b.line = b.paint(text, style)
	return nil
}

func (b *rowBinder[T]) BindEmpty(int) {
	b.line = b.paint("·", formatter.StyleDim)
}

func (b *rowBinder[T]) paint(text string, style lipgloss.Style) string {
	text = formatter.Fit(text, b.width)
	if b.selected {
		style = style.Background(formatter.ColorCursor)
	}
	return style.Render(text)
}

func (b *rowBinder[T]) prepare(width int, selected bool) {
	b.width = width
	b.selected = selected
	b.line = ""
}

// gridLine is one screen line of the grid layout, holding rows [start, end).
type gridLine struct{ start, end int }

// listHost is a virtualizing host for one adapter. It asks the adapter only
// about the rows it draws, and keeps its cursor on the same row across
// folds and inserts by following the adapter's notifications.
//
// listHost is not a tea.Model itself; list views embed it.
type listHost[T any] struct {
	list    *listtree.Adapter[T]
	binder  *rowBinder[T]
	keys    listKeyMap
	columns int
	width   int
	height  int
	cursor  int
	top     int
	layout  []gridLine
}

func newListHost[T any](list *listtree.Adapter[T], render rowRenderer[T], columns int) *listHost[T] {
	h := &listHost[T]{
		list:    list,
		binder:  &rowBinder[T]{render: render},
		keys:    defaultListKeys(),
		columns: max(columns, 1),
		width:   80,
		height:  24,
	}
	list.SetNotifier(h)
	list.SetBinder(h.binder)
	return h
}

var _ listtree.Notifier = (*listHost[int])(nil)

// ItemChanged keeps the layout: a changed row keeps its kind and span, and
// the adapter reports it alongside any range change that comes with it.
func (h *listHost[T]) ItemChanged(int) {}

func (h *listHost[T]) ItemRangeInserted(pos, count int) {
	h.relayout(pos, pos, count)
	if h.cursor >= pos {
		h.cursor += count
	}
}

func (h *listHost[T]) ItemRangeRemoved(pos, count int) {
	h.relayout(pos, pos+count, -count)
	switch {
	case h.cursor >= pos+count:
		h.cursor -= count
	case h.cursor >= pos:
		h.cursor = max(pos-1, 0)
	}
}

func (h *listHost[T]) DataSetChanged() {
	h.layout = nil
	h.clampCursor()
}

func (h *listHost[T]) Cursor() int { return h.cursor }

func (h *listHost[T]) setSize(width, height int) {
	h.width = max(width, 1)
	h.height = max(height, 1)
}

func (h *listHost[T]) clampCursor() {
	n := h.list.RowCount()
	h.cursor = min(max(h.cursor, 0), max(n-1, 0))
}

// grid packs rows into screen lines by column span. Full-span rows such as
// headers always get a line of their own.
func (h *listHost[T]) grid() []gridLine {
	if h.layout != nil {
		return h.layout
	}
	h.layout = h.pack(0, h.list.RowCount())
	return h.layout
}

// pack lays out rows [from, to), starting on a fresh line.
func (h *listHost[T]) pack(from, to int) []gridLine {
	lines := make([]gridLine, 0, to-from)
	used := 0
	for pos := from; pos < to; pos++ {
		span := h.list.ColumnSpanAt(pos, h.columns)
		if len(lines) == 0 || used+span > h.columns {
			lines = append(lines, gridLine{start: pos, end: pos + 1})
			used = span
			continue
		}
		lines[len(lines)-1].end = pos + 1
		used += span
	}
	return lines
}

// relayout updates the cached grid after the rows that were [pos, oldEnd)
// changed and every later row moved by delta. Only the lines from the one
// holding pos-1 up to the first full-width row past the change are packed
// again: a full-width row always starts a fresh line, so the lines from
// there on are the old ones shifted.
func (h *listHost[T]) relayout(pos, oldEnd, delta int) {
	old := h.layout
	if len(old) == 0 {
		h.layout = nil
		return
	}
	first := 0
	if pos > 0 {
		first = sort.Search(len(old), func(i int) bool { return old[i].end > pos-1 })
		first = min(first, len(old)-1)
	}
	resume := len(old)
	for i := first + 1; i < len(old); i++ {
		if old[i].start >= oldEnd && h.list.ColumnSpanAt(old[i].start+delta, h.columns) == h.columns {
			resume = i
			break
		}
	}
	to := h.list.RowCount()
	if resume < len(old) {
		to = old[resume].start + delta
	}

	lines := make([]gridLine, 0, len(old)+max(delta, 0))
	lines = append(lines, old[:first]...)
	lines = append(lines, h.pack(old[first].start, to)...)
	for _, l := range old[resume:] {
		lines = append(lines, gridLine{start: l.start + delta, end: l.end + delta})
	}
	h.layout = lines
}

func (h *listHost[T]) lineOf(pos int) int {
	grid := h.grid()
	i := sort.Search(len(grid), func(i int) bool { return grid[i].end > pos })
	return min(i, max(len(grid)-1, 0))
}

// moveLines moves the cursor delta screen lines, keeping its column offset
// where the target line is long enough.
func (h *listHost[T]) moveLines(delta int) {
	grid := h.grid()
	if len(grid) == 0 {
		return
	}
	from := h.lineOf(h.cursor)
	to := min(max(from+delta, 0), len(grid)-1)
	offset := h.cursor - grid[from].start
	h.cursor = min(grid[to].start+offset, grid[to].end-1)
}

// handleKey applies navigation keys. It returns false for keys it does not
// own, and for Toggle on rows that are not section headers.
func (h *listHost[T]) handleKey(msg tea.KeyMsg) bool {
	n := h.list.RowCount()
	switch {
	case key.Matches(msg, h.keys.Up):
		h.moveLines(-1)
	case key.Matches(msg, h.keys.Down):
		h.moveLines(1)
	case key.Matches(msg, h.keys.Left):
		h.cursor = max(h.cursor-1, 0)
	case key.Matches(msg, h.keys.Right):
		h.cursor = min(h.cursor+1, max(n-1, 0))
	case key.Matches(msg, h.keys.PageUp):
		h.moveLines(-h.pageLines())
	case key.Matches(msg, h.keys.PageDown):
		h.moveLines(h.pageLines())
	case key.Matches(msg, h.keys.Home):
		h.cursor = 0
	case key.Matches(msg, h.keys.End):
		h.cursor = max(n-1, 0)
	case key.Matches(msg, h.keys.Toggle):
		return h.list.Toggle(h.cursor)
	default:
		return false
	}
	return true
}

func (h *listHost[T]) pageLines() int { return max(h.height-1, 1) }

func (h *listHost[T]) scrollToCursor() {
	line := h.lineOf(h.cursor)
	switch {
	case line < h.top:
		h.top = line
	case line >= h.top+h.height:
		h.top = line - h.height + 1
	}
	h.top = max(min(h.top, len(h.grid())-h.height), 0)
}

// view draws the visible window of the grid. Only rows on screen are bound.
func (h *listHost[T]) view(selectable bool) string {
	grid := h.grid()
	if len(grid) == 0 {
		return ""
	}
	h.scrollToCursor()
	cell := max(h.width/h.columns, 1)

	var b strings.Builder
	for _, line := range grid[h.top:min(h.top+h.height, len(grid))] {
		for pos := line.start; pos < line.end; pos++ {
			span := h.list.ColumnSpanAt(pos, h.columns)
			h.binder.prepare(span*cell, selectable && pos == h.cursor)
			h.list.BindRowAt(pos)
			b.WriteString(h.binder.line)
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// position renders "row/rows" for the status bar.
func (h *listHost[T]) position() string {
	n := h.list.RowCount()
	if n == 0 {
		return "0/0"
	}
	return fmt.Sprintf("%d/%d", h.cursor+1, n)
}
