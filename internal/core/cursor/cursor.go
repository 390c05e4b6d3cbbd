// Package cursor turns navigation intents into document positions. It is
// pure position arithmetic over the document and its wrap map; navigation
// never fails, it clamps at the document edges instead.
package cursor

import (
	"unicode"

	"github.com/hollisk/paperwright/internal/core/document"
	"github.com/hollisk/paperwright/internal/core/wrap"
)

// Intent is one discrete navigation request.
type Intent int

const (
	Left Intent = iota
	Right
	Up
	Down
	Home
	End
	WordLeft
	WordRight
)

// Move resolves intent against the document's current cursor and returns
// the new position. Vertical intents move by display row through the wrap
// map; all others are logical-line moves.
func Move(doc *document.Document, m *wrap.Map, intent Intent) document.Position {
	p := doc.Cursor()

	switch intent {
	case Left:
		return left(doc, p)
	case Right:
		return right(doc, p)
	case Up:
		return vertical(m, p, -1)
	case Down:
		return vertical(m, p, +1)
	case Home:
		return document.Position{Line: p.Line, Col: 0}
	case End:
		return document.Position{Line: p.Line, Col: doc.LineLen(p.Line)}
	case WordLeft:
		return wordLeft(doc, p)
	case WordRight:
		return wordRight(doc, p)
	}
	return p
}

func left(doc *document.Document, p document.Position) document.Position {
	if p.Col > 0 {
		return document.Position{Line: p.Line, Col: p.Col - 1}
	}
	if p.Line > 0 {
		return document.Position{Line: p.Line - 1, Col: doc.LineLen(p.Line - 1)}
	}
	return p
}

func right(doc *document.Document, p document.Position) document.Position {
	if p.Col < doc.LineLen(p.Line) {
		return document.Position{Line: p.Line, Col: p.Col + 1}
	}
	if p.Line < doc.LineCount()-1 {
		return document.Position{Line: p.Line + 1, Col: 0}
	}
	return p
}

// vertical moves one display row and re-resolves the column against the
// target row. Movement tracks rendered rows, not logical lines, so a long
// wrapped line is traversed one screen row at a time.
func vertical(m *wrap.Map, p document.Position, delta int) document.Position {
	row, col := m.CursorView(p)
	target := row + delta
	if target < 0 || target >= m.RowCount() {
		return p
	}
	return m.PositionAt(target, col)
}

// wordLeft skips a run of whitespace, then the run of word runes before it,
// landing at the start of the previous word. Line starts count as a
// whitespace boundary.
func wordLeft(doc *document.Document, p document.Position) document.Position {
	p = prev(doc, p)
	for isSpaceAt(doc, p) {
		q := prev(doc, p)
		if q == p {
			return p
		}
		p = q
	}
	for {
		q := prev(doc, p)
		if q == p || isSpaceAt(doc, q) {
			return p
		}
		p = q
	}
}

// wordRight skips the run of word runes under the cursor, then the
// whitespace after it, landing at the start of the next word.
func wordRight(doc *document.Document, p document.Position) document.Position {
	for !isSpaceAt(doc, p) && !atEnd(doc, p) {
		p = next(doc, p)
	}
	for isSpaceAt(doc, p) && !atEnd(doc, p) {
		p = next(doc, p)
	}
	return p
}

// isSpaceAt treats the end-of-line slot as whitespace: stepping over it is
// stepping over the newline.
func isSpaceAt(doc *document.Document, p document.Position) bool {
	line := []rune(doc.Line(p.Line))
	if p.Col >= len(line) {
		return true
	}
	return unicode.IsSpace(line[p.Col])
}

func atEnd(doc *document.Document, p document.Position) bool {
	return p == doc.End()
}

func next(doc *document.Document, p document.Position) document.Position {
	if p.Col < doc.LineLen(p.Line) {
		return document.Position{Line: p.Line, Col: p.Col + 1}
	}
	if p.Line < doc.LineCount()-1 {
		return document.Position{Line: p.Line + 1, Col: 0}
	}
	return p
}

func prev(doc *document.Document, p document.Position) document.Position {
	if p.Col > 0 {
		return document.Position{Line: p.Line, Col: p.Col - 1}
	}
	if p.Line > 0 {
		return document.Position{Line: p.Line - 1, Col: doc.LineLen(p.Line - 1)}
	}
	return p
}
