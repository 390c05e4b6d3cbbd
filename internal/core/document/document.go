// Package document holds the logical text buffer: an ordered sequence of
// lines and a single cursor. It knows nothing about display width; the
// wrap engine derives the on-screen shape from it.
package document

import (
	"fmt"
	"strings"

	"github.com/hollisk/paperwright/internal/errs"
)

// Position addresses a point in the document as (line index, rune column).
// Col ranges over [0, line length] inclusive: len(line) is the position
// after the last rune.
type Position struct {
	Line int
	Col  int
}

// Before reports whether p comes before q in document order.
func (p Position) Before(q Position) bool {
	return p.Line < q.Line || (p.Line == q.Line && p.Col < q.Col)
}

// Document is the logical text model. An empty document is one empty line;
// the line count is never zero.
type Document struct {
	lines  [][]rune
	cursor Position
	dirty  bool
}

// New creates an empty document.
func New() *Document {
	return &Document{lines: [][]rune{{}}}
}

// FromBytes creates a document from newline-joined UTF-8 content.
func FromBytes(data []byte) *Document {
	parts := strings.Split(string(data), "\n")
	lines := make([][]rune, len(parts))
	for i, part := range parts {
		lines[i] = []rune(part)
	}
	return &Document{lines: lines}
}

// Serialize returns the document as newline-joined UTF-8 bytes.
func (d *Document) Serialize() []byte {
	parts := make([]string, len(d.lines))
	for i, line := range d.lines {
		parts[i] = string(line)
	}
	return []byte(strings.Join(parts, "\n"))
}

// LineCount returns the number of logical lines, always at least 1.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns logical line i as a string. Out-of-range indexes return "".
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return string(d.lines[i])
}

// LineLen returns the rune length of logical line i.
func (d *Document) LineLen(i int) int {
	if i < 0 || i >= len(d.lines) {
		return 0
	}
	return len(d.lines[i])
}

// IsEmpty reports whether the document holds no text at all.
func (d *Document) IsEmpty() bool {
	return len(d.lines) == 1 && len(d.lines[0]) == 0
}

// Cursor returns the current cursor position.
func (d *Document) Cursor() Position {
	return d.cursor
}

// SetCursor moves the cursor, clamping to valid bounds. Setting the cursor
// never fails and never marks the document dirty.
func (d *Document) SetCursor(p Position) {
	d.cursor = d.Clamp(p)
}

// Clamp returns p adjusted to the nearest valid position.
func (d *Document) Clamp(p Position) Position {
	if p.Line < 0 {
		p.Line = 0
	}
	if p.Line >= len(d.lines) {
		p.Line = len(d.lines) - 1
	}
	if p.Col < 0 {
		p.Col = 0
	}
	if p.Col > len(d.lines[p.Line]) {
		p.Col = len(d.lines[p.Line])
	}
	return p
}

// valid reports whether p addresses an existing position, including the
// end-of-line slot.
func (d *Document) valid(p Position) bool {
	return p.Line >= 0 && p.Line < len(d.lines) &&
		p.Col >= 0 && p.Col <= len(d.lines[p.Line])
}

// Insert places text at p and returns the position just after the inserted
// text. Newlines in text split lines. An invalid p is an OutOfRange no-op:
// timer-driven callers must never crash the session over a stale offset.
func (d *Document) Insert(p Position, text string) (Position, error) {
	if !d.valid(p) {
		return d.cursor, errs.OutOfRange(fmt.Sprintf("insert at %d:%d", p.Line, p.Col))
	}
	if text == "" {
		return p, nil
	}

	line := d.lines[p.Line]
	head := append([]rune{}, line[:p.Col]...)
	tail := append([]rune{}, line[p.Col:]...)

	parts := strings.Split(text, "\n")
	if len(parts) == 1 {
		d.lines[p.Line] = append(append(head, []rune(text)...), tail...)
		d.dirty = true
		return Position{Line: p.Line, Col: p.Col + len([]rune(text))}, nil
	}

	// Multi-line insert: head + first part, middle parts as whole lines,
	// last part + tail.
	newLines := make([][]rune, 0, len(parts))
	newLines = append(newLines, append(head, []rune(parts[0])...))
	for _, part := range parts[1 : len(parts)-1] {
		newLines = append(newLines, []rune(part))
	}
	last := []rune(parts[len(parts)-1])
	endCol := len(last)
	newLines = append(newLines, append(last, tail...))

	d.lines = append(d.lines[:p.Line], append(newLines, d.lines[p.Line+1:]...)...)
	d.dirty = true
	return Position{Line: p.Line + len(parts) - 1, Col: endCol}, nil
}

// DeleteRange removes the text between start and end (exclusive). Deleting
// across line boundaries joins the surrounding lines. An invalid or
// inverted range is an OutOfRange no-op.
func (d *Document) DeleteRange(start, end Position) error {
	if !d.valid(start) || !d.valid(end) {
		return errs.OutOfRange(fmt.Sprintf("delete %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col))
	}
	if end.Before(start) {
		return errs.OutOfRange("delete range is inverted")
	}
	if start == end {
		return nil
	}

	head := d.lines[start.Line][:start.Col]
	tail := d.lines[end.Line][end.Col:]
	joined := append(append([]rune{}, head...), tail...)

	d.lines = append(d.lines[:start.Line], append([][]rune{joined}, d.lines[end.Line+1:]...)...)
	d.dirty = true

	// A cursor past the range shifts with the removed span; a cursor
	// inside the range lands at its start.
	switch {
	case d.cursor.Line > end.Line:
		d.cursor.Line -= end.Line - start.Line
	case d.cursor.Line == end.Line && d.cursor.Col >= end.Col:
		d.cursor = Position{Line: start.Line, Col: start.Col + d.cursor.Col - end.Col}
	case d.cursor.Line > start.Line || (d.cursor.Line == start.Line && d.cursor.Col > start.Col):
		d.cursor = d.Clamp(start)
	}
	return nil
}

// SplitLine breaks the line at p into two lines.
func (d *Document) SplitLine(p Position) error {
	if !d.valid(p) {
		return errs.OutOfRange(fmt.Sprintf("split at %d:%d", p.Line, p.Col))
	}

	line := d.lines[p.Line]
	head := append([]rune{}, line[:p.Col]...)
	tail := append([]rune{}, line[p.Col:]...)

	d.lines = append(d.lines[:p.Line], append([][]rune{head, tail}, d.lines[p.Line+1:]...)...)
	d.dirty = true
	return nil
}

// JoinWithNext appends line i+1 onto line i. Joining the last line is an
// OutOfRange no-op.
func (d *Document) JoinWithNext(i int) error {
	if i < 0 || i >= len(d.lines)-1 {
		return errs.OutOfRange(fmt.Sprintf("join line %d", i))
	}

	d.lines[i] = append(d.lines[i], d.lines[i+1]...)
	d.lines = append(d.lines[:i+1], d.lines[i+2:]...)
	d.dirty = true
	return nil
}

// Dirty reports whether the document has unsaved changes.
func (d *Document) Dirty() bool {
	return d.dirty
}

// MarkClean clears the dirty flag after a successful persist.
func (d *Document) MarkClean() {
	d.dirty = false
}

// MarkDirty forces the dirty flag, used when content is seeded at open
// time (journal session markers) and must reach storage.
func (d *Document) MarkDirty() {
	d.dirty = true
}

// WordCount returns the number of whitespace-separated words.
func (d *Document) WordCount() int {
	count := 0
	for _, line := range d.lines {
		count += len(strings.Fields(string(line)))
	}
	return count
}

// End returns the position after the last rune of the last line.
func (d *Document) End() Position {
	last := len(d.lines) - 1
	return Position{Line: last, Col: len(d.lines[last])}
}
