package render

import (
	"strings"
	"testing"

	"github.com/hollisk/paperwright/internal/core/document"
	"github.com/hollisk/paperwright/internal/core/wrap"
	"github.com/hollisk/paperwright/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCols = 20
	testRows = 10
)

func editorFrame(t *testing.T, b *Builder, content string, cursorLine, cursorCol int) *Frame {
	t.Helper()
	doc := document.FromBytes([]byte(content))
	doc.SetCursor(document.Position{Line: cursorLine, Col: cursorCol})
	m := wrap.Compute(doc, testCols)
	row, col := m.CursorView(doc.Cursor())
	return b.Editor("Title", m, row, col, "status")
}

func TestFrameShapeInvariant(t *testing.T) {
	b := NewBuilder(testCols, testRows)

	frames := []*Frame{
		editorFrame(t, b, "hello", 0, 5),
		b.Menu("Paperwright", []string{"1. Daily Journal", "2. Projects"}, "Q to Quit"),
		b.List("Projects", []string{"a", "b"}, 0, "Enter=Open"),
		b.Message("Saved"),
		b.TextInput("New Project Name", "dra", "Enter=OK"),
	}

	for _, f := range frames {
		require.Len(t, f.Rows, testRows)
		for _, row := range f.Rows {
			assert.Equal(t, testCols, util.DisplayWidth(row))
		}
	}
}

func TestEditorFrameLayout(t *testing.T) {
	b := NewBuilder(testCols, testRows)
	f := editorFrame(t, b, "hello world", 0, 5)

	assert.Equal(t, util.CenterToWidth("Title", testCols), f.Rows[0])
	assert.Equal(t, "hello world", strings.TrimRight(f.Rows[1], " "))
	assert.Equal(t, "status", strings.TrimRight(f.Rows[testRows-1], " "))
	assert.True(t, f.CursorVisible)
	assert.Equal(t, 1, f.CursorRow, "cursor row is offset past the header")
	assert.Equal(t, 5, f.CursorCol)
}

func TestFullRefreshOnlyOnScreenTransition(t *testing.T) {
	b := NewBuilder(testCols, testRows)

	first := b.Menu("Paperwright", nil, "")
	assert.True(t, first.FullRefresh, "first screen is a transition")

	again := b.Menu("Paperwright", nil, "")
	assert.False(t, again.FullRefresh, "same screen repaints partially")

	editor := editorFrame(t, b, "x", 0, 0)
	assert.True(t, editor.FullRefresh)

	editorAgain := editorFrame(t, b, "xy", 0, 1)
	assert.False(t, editorAgain.FullRefresh)

	backToMenu := b.Menu("Paperwright", nil, "")
	assert.True(t, backToMenu.FullRefresh)
}

func TestEditorScrollFollowsCursorDown(t *testing.T) {
	b := NewBuilder(testCols, testRows) // body of 8 rows
	var sb strings.Builder
	for i := 0; i < 30; i++ {
		sb.WriteString("line\n")
	}
	content := strings.TrimSuffix(sb.String(), "\n")

	// Cursor on display row 20 of 30; the 70% margin (row 5 of the body)
	// pins the viewport so the cursor never reaches the bottom edge.
	f := editorFrame(t, b, content, 20, 0)
	assert.Equal(t, 5+1, f.CursorRow)
	assert.Equal(t, "line", strings.TrimRight(f.Rows[f.CursorRow], " "))
}

func TestEditorScrollFollowsCursorBackUp(t *testing.T) {
	b := NewBuilder(testCols, testRows)
	var lines []string
	for i := 0; i < 30; i++ {
		lines = append(lines, "line")
	}
	content := strings.Join(lines, "\n")

	editorFrame(t, b, content, 25, 0)
	f := editorFrame(t, b, content, 3, 0)

	// Moving far back up drags the viewport with the 30% top margin.
	assert.GreaterOrEqual(t, f.CursorRow, 1)
	assert.LessOrEqual(t, f.CursorRow, 1+2+1)
}

func TestEditorShortDocumentNeverScrolls(t *testing.T) {
	b := NewBuilder(testCols, testRows)

	f := editorFrame(t, b, "one\ntwo", 1, 2)
	assert.Equal(t, 2, f.CursorRow)
	assert.Equal(t, "one", strings.TrimRight(f.Rows[1], " "))
	assert.Equal(t, "two", strings.TrimRight(f.Rows[2], " "))
}

func TestListSelectionWindow(t *testing.T) {
	b := NewBuilder(testCols, testRows) // body of 8 rows
	items := make([]string, 20)
	for i := range items {
		items[i] = string(rune('a' + i))
	}

	f := b.List("Projects", items, 0, "")
	assert.Equal(t, "> a", strings.TrimRight(f.Rows[1], " "))

	// Selecting past the window slides it.
	f = b.List("Projects", items, 10, "")
	found := false
	for _, row := range f.Rows {
		if strings.HasPrefix(row, "> k") {
			found = true
		}
	}
	assert.True(t, found, "selected item stays visible")
}

func TestMessageCentersContent(t *testing.T) {
	b := NewBuilder(testCols, testRows)

	f := b.Message("Saved", "journal")
	assert.Equal(t, util.CenterToWidth("Saved", testCols), f.Rows[4])
	assert.Equal(t, util.CenterToWidth("journal", testCols), f.Rows[5])
	assert.False(t, f.CursorVisible)
}

func TestLongRowsTruncatedToWidth(t *testing.T) {
	b := NewBuilder(testCols, testRows)

	long := strings.Repeat("x", 100)
	f := b.List("T", []string{long}, 0, "")
	for _, row := range f.Rows {
		assert.Equal(t, testCols, util.DisplayWidth(row))
	}
}
