// Package wrap derives the display-line shape of a document for a fixed
// panel width. The map is recomputed from scratch after every mutation;
// documents on this device are small enough that a stateless recompute
// beats maintaining cross-references between the logical and display
// representations.
package wrap

import (
	"strings"

	"github.com/hollisk/paperwright/internal/core/document"
	"github.com/mattn/go-runewidth"
)

// Segment is one display line cut from a logical line. The span
// [Start,End) is in rune offsets and segments of a line concatenate to
// reconstruct it exactly. Text is the rendered form: a trailing run of
// spaces consumed by a word-boundary break stays in the span but is
// dropped from Text, so wrapped views never show doubled spaces.
type Segment struct {
	Start int
	End   int
	Text  string
	Width int
}

// Row locates one display row in the document.
type Row struct {
	Line int
	Seg  Segment
}

// Map is the derived, read-only wrap state for one document at one width.
type Map struct {
	width    int
	segments [][]Segment // indexed by logical line
	rows     []Row
	firstRow []int // first display row of each logical line
}

// Compute builds the wrap map for doc at the given column width.
func Compute(doc *document.Document, width int) *Map {
	if width < 1 {
		width = 1
	}

	m := &Map{
		width:    width,
		segments: make([][]Segment, doc.LineCount()),
		firstRow: make([]int, doc.LineCount()),
	}

	for i := 0; i < doc.LineCount(); i++ {
		segs := wrapLine([]rune(doc.Line(i)), width)
		m.segments[i] = segs
		m.firstRow[i] = len(m.rows)
		for _, seg := range segs {
			m.rows = append(m.rows, Row{Line: i, Seg: seg})
		}
	}
	return m
}

// wrapLine cuts one logical line into display segments using a greedy word
// wrap: break before a word that would overflow when the segment already
// holds one, break mid-word at the width limit otherwise. The mid-word
// rule guarantees progress on words wider than the panel.
func wrapLine(line []rune, width int) []Segment {
	if len(line) == 0 {
		return []Segment{{}}
	}

	var segs []Segment
	segStart := 0      // span start of the segment being built
	renderedEnd := 0   // end of the rendered part of the segment
	renderedWidth := 0 // display width of the rendered part
	hasWord := false   // segment holds at least one complete word
	pos := 0

	flush := func(spanEnd int) {
		segs = append(segs, makeSegment(line, segStart, spanEnd, renderedEnd))
		segStart = spanEnd
		renderedEnd = spanEnd
		renderedWidth = 0
		hasWord = false
	}

	for pos < len(line) {
		if line[pos] == ' ' {
			// Spaces are held pending: they render only if a word still
			// fits after them, otherwise the break consumes them.
			spaceStart := pos
			for pos < len(line) && line[pos] == ' ' {
				pos++
			}
			if pos == len(line) {
				// Trailing spaces at the logical line end: keep them in
				// the span; Text trimming handles the view.
				break
			}

			wordStart := pos
			for pos < len(line) && line[pos] != ' ' {
				pos++
			}
			spacesWidth := runesWidth(line[spaceStart:wordStart])
			wordWidth := runesWidth(line[wordStart:pos])

			if renderedWidth+spacesWidth+wordWidth <= width {
				renderedEnd = pos
				renderedWidth += spacesWidth + wordWidth
				hasWord = true
				continue
			}
			if hasWord {
				// Word-boundary break: the pending spaces stay in this
				// segment's span, dropped from its rendered text.
				flush(wordStart)
				pos = wordStart
				continue
			}
			// No word to break before; fall through to place the word
			// rune by rune after its leading spaces.
			renderedEnd = wordStart
			renderedWidth += spacesWidth
			pos = wordStart
			continue
		}

		wordStart := pos
		for pos < len(line) && line[pos] != ' ' {
			pos++
		}
		wordWidth := runesWidth(line[wordStart:pos])

		if renderedWidth+wordWidth <= width {
			renderedEnd = pos
			renderedWidth += wordWidth
			hasWord = true
			continue
		}
		if hasWord {
			flush(wordStart)
			pos = wordStart
			continue
		}

		// Mid-word break: fill the row to the width limit.
		pos = wordStart
		for pos < len(line) && line[pos] != ' ' {
			rw := runewidth.RuneWidth(line[pos])
			if renderedWidth > 0 && renderedWidth+rw > width {
				flush(pos)
			}
			renderedEnd = pos + 1
			renderedWidth += rw
			pos++
		}
		hasWord = true
	}

	segs = append(segs, makeSegment(line, segStart, len(line), len(line)))
	return segs
}

func makeSegment(line []rune, start, end, renderedEnd int) Segment {
	text := strings.TrimRight(string(line[start:renderedEnd]), " ")
	return Segment{
		Start: start,
		End:   end,
		Text:  text,
		Width: runewidth.StringWidth(text),
	}
}

func runesWidth(rs []rune) int {
	w := 0
	for _, r := range rs {
		w += runewidth.RuneWidth(r)
	}
	return w
}

// Width returns the column width the map was computed for.
func (m *Map) Width() int {
	return m.width
}

// RowCount returns the total number of display rows.
func (m *Map) RowCount() int {
	return len(m.rows)
}

// Row returns display row i.
func (m *Map) Row(i int) Row {
	return m.rows[i]
}

// LineSegments returns the segments of logical line i.
func (m *Map) LineSegments(i int) []Segment {
	if i < 0 || i >= len(m.segments) {
		return nil
	}
	return m.segments[i]
}

// Reconstruct rebuilds logical line i by concatenating its segment spans,
// restoring any whitespace the wrapped view dropped.
func (m *Map) Reconstruct(doc *document.Document, i int) string {
	var b strings.Builder
	line := []rune(doc.Line(i))
	for _, seg := range m.LineSegments(i) {
		b.WriteString(string(line[seg.Start:seg.End]))
	}
	return b.String()
}

// CursorView converts a document cursor into its derived display position:
// the display row index and the screen column within that row. A cursor
// resting inside break-consumed whitespace clamps to the rendered end of
// its row.
func (m *Map) CursorView(p document.Position) (row, col int) {
	if p.Line < 0 || p.Line >= len(m.segments) {
		return 0, 0
	}
	segs := m.segments[p.Line]
	base := m.firstRow[p.Line]

	for i, seg := range segs {
		if p.Col < seg.End || i == len(segs)-1 {
			offset := p.Col - seg.Start
			if offset < 0 {
				offset = 0
			}
			rendered := []rune(seg.Text)
			if offset > len(rendered) {
				offset = len(rendered)
			}
			return base + i, runesWidth(rendered[:offset])
		}
	}
	return base, 0
}

// PositionAt maps a display position back to a document position. The
// screen column clamps to the rendered length of the target row; this is
// the clamp rule visual vertical movement relies on.
func (m *Map) PositionAt(row, col int) document.Position {
	if len(m.rows) == 0 {
		return document.Position{}
	}
	if row < 0 {
		row = 0
	}
	if row >= len(m.rows) {
		row = len(m.rows) - 1
	}

	r := m.rows[row]
	rendered := []rune(r.Seg.Text)
	used := 0
	offset := 0
	for _, rn := range rendered {
		rw := runewidth.RuneWidth(rn)
		if used+rw > col {
			break
		}
		used += rw
		offset++
	}

	// On a mid-word wrap the segment end slot belongs to the next row.
	// Step back so the result still renders on the requested row.
	if offset > 0 && r.Seg.Start+offset == r.Seg.End && !m.lastRowOfLine(row) {
		offset--
	}
	return document.Position{Line: r.Line, Col: r.Seg.Start + offset}
}

// lastRowOfLine reports whether display row i is the final row of its
// logical line.
func (m *Map) lastRowOfLine(i int) bool {
	return i+1 >= len(m.rows) || m.rows[i+1].Line != m.rows[i].Line
}

// RowOf returns the display row that holds the given document position.
func (m *Map) RowOf(p document.Position) int {
	row, _ := m.CursorView(p)
	return row
}
