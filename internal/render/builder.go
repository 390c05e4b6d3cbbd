package render

import (
	"fmt"
	"strings"

	"github.com/hollisk/paperwright/internal/core/wrap"
	"github.com/hollisk/paperwright/internal/util"
)

// screen kinds for transition detection.
const (
	screenNone    = ""
	screenMenu    = "menu"
	screenEditor  = "editor"
	screenList    = "list"
	screenMessage = "message"
	screenInput   = "input"
)

// Builder lays out application screens as frames. It remembers the last
// screen kind so a transition to a different screen requests a full
// refresh, and it owns the editor's scroll offset.
type Builder struct {
	cols int
	rows int

	lastScreen string
	scroll     int
}

// NewBuilder creates a builder for a cols x rows panel. The editor body
// is the panel minus one header and one footer row.
func NewBuilder(cols, rows int) *Builder {
	return &Builder{cols: cols, rows: rows}
}

func (b *Builder) bodyRows() int {
	return b.rows - 2
}

// ResetScroll rewinds the editor viewport, used when a new session opens.
func (b *Builder) ResetScroll() {
	b.scroll = 0
}

// transition records the screen kind and reports whether it changed.
func (b *Builder) transition(kind string) bool {
	changed := b.lastScreen != kind
	b.lastScreen = kind
	return changed
}

// Editor builds the editing screen: title header, wrapped text window,
// status footer. The viewport follows the cursor with typewriter margins
// so the cursor sits in the middle band of the body instead of hugging
// an edge.
func (b *Builder) Editor(title string, m *wrap.Map, cursorRow, cursorCol int, status string) *Frame {
	body := b.bodyRows()
	b.followCursor(cursorRow, m.RowCount(), body)

	rows := make([]string, 0, b.rows)
	rows = append(rows, util.CenterToWidth(title, b.cols))
	for i := 0; i < body; i++ {
		idx := b.scroll + i
		if idx < m.RowCount() {
			rows = append(rows, util.PadToWidth(m.Row(idx).Seg.Text, b.cols))
		} else {
			rows = append(rows, strings.Repeat(" ", b.cols))
		}
	}
	rows = append(rows, util.PadToWidth(status, b.cols))

	col := cursorCol
	if col > b.cols-1 {
		col = b.cols - 1
	}
	return &Frame{
		Rows:          rows,
		CursorRow:     cursorRow - b.scroll + 1,
		CursorCol:     col,
		CursorVisible: true,
		FullRefresh:   b.transition(screenEditor),
	}
}

// followCursor keeps the cursor row inside the 30%/70% band of the body.
func (b *Builder) followCursor(cursorRow, totalRows, body int) {
	top := body * 3 / 10
	bottom := body * 7 / 10

	if cursorRow < b.scroll+top {
		b.scroll = cursorRow - top
	}
	if cursorRow > b.scroll+bottom {
		b.scroll = cursorRow - bottom
	}
	if max := totalRows - body; b.scroll > max {
		b.scroll = max
	}
	if b.scroll < 0 {
		b.scroll = 0
	}
}

// Menu builds a title-plus-choices screen.
func (b *Builder) Menu(title string, items []string, footer string) *Frame {
	rows := make([]string, 0, b.rows)
	rows = append(rows, strings.Repeat(" ", b.cols))
	rows = append(rows, util.CenterToWidth(title, b.cols))
	rows = append(rows, strings.Repeat(" ", b.cols))
	for _, item := range items {
		rows = append(rows, util.CenterToWidth(item, b.cols))
	}
	for len(rows) < b.rows-1 {
		rows = append(rows, strings.Repeat(" ", b.cols))
	}
	rows = append(rows[:b.rows-1], util.CenterToWidth(footer, b.cols))
	return &Frame{Rows: rows, FullRefresh: b.transition(screenMenu)}
}

// List builds a scrollable selection screen. The selected item carries a
// "> " prefix; the window slides to keep it visible.
func (b *Builder) List(title string, items []string, selected int, footer string) *Frame {
	rows := make([]string, 0, b.rows)
	rows = append(rows, util.CenterToWidth(title, b.cols))

	body := b.bodyRows()
	offset := 0
	if selected >= body {
		offset = selected - body + 1
	}
	for i := 0; i < body; i++ {
		idx := offset + i
		if idx >= len(items) {
			rows = append(rows, strings.Repeat(" ", b.cols))
			continue
		}
		prefix := "  "
		if idx == selected {
			prefix = "> "
		}
		rows = append(rows, util.PadToWidth(prefix+items[idx], b.cols))
	}
	rows = append(rows, util.CenterToWidth(footer, b.cols))
	return &Frame{Rows: rows, FullRefresh: b.transition(screenList)}
}

// Message builds a centered notice screen.
func (b *Builder) Message(lines ...string) *Frame {
	rows := make([]string, b.rows)
	for i := range rows {
		rows[i] = strings.Repeat(" ", b.cols)
	}
	start := (b.rows - len(lines)) / 2
	if start < 0 {
		start = 0
	}
	for i, line := range lines {
		if start+i >= b.rows {
			break
		}
		rows[start+i] = util.CenterToWidth(line, b.cols)
	}
	return &Frame{Rows: rows, FullRefresh: b.transition(screenMessage)}
}

// TextInput builds the single-field prompt used for project names.
func (b *Builder) TextInput(prompt, value, footer string) *Frame {
	rows := make([]string, b.rows)
	for i := range rows {
		rows[i] = strings.Repeat(" ", b.cols)
	}
	mid := b.rows / 2
	rows[mid-1] = util.CenterToWidth(prompt, b.cols)
	rows[mid] = util.PadToWidth(fmt.Sprintf("  %s_", value), b.cols)
	rows[b.rows-1] = util.CenterToWidth(footer, b.cols)
	return &Frame{Rows: rows, FullRefresh: b.transition(screenInput)}
}
