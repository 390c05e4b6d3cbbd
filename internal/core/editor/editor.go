// Package editor applies key events to an open document session. Each
// event is one atomic mutation: the document changes, the wrap map is
// recomputed, and the cursor view is refreshed before the caller renders.
package editor

import (
	"github.com/hollisk/paperwright/internal/core/cursor"
	"github.com/hollisk/paperwright/internal/core/document"
	"github.com/hollisk/paperwright/internal/core/wrap"
	"github.com/hollisk/paperwright/internal/input"
)

// State tracks where the session sits in the edit/persist cycle.
type State int

const (
	StateIdle State = iota
	StateEditing
	StateSaving
)

// Effect tells the caller how much of the display an event invalidated.
type Effect int

const (
	// EffectNone: the event changed nothing visible.
	EffectNone Effect = iota
	// EffectContent: text or cursor changed within the current layout.
	EffectContent
	// EffectView: the line structure changed; rows may have moved.
	EffectView
)

// Engine is one editing session over one document.
type Engine struct {
	doc   *document.Document
	width int
	m     *wrap.Map
	state State
}

// New opens a session on doc at the given display width.
func New(doc *document.Document, width int) *Engine {
	return &Engine{
		doc:   doc,
		width: width,
		m:     wrap.Compute(doc, width),
		state: StateIdle,
	}
}

// Document returns the session's document.
func (e *Engine) Document() *document.Document {
	return e.doc
}

// Map returns the wrap map for the current document content.
func (e *Engine) Map() *wrap.Map {
	return e.m
}

// State returns the session state.
func (e *Engine) State() State {
	return e.state
}

// CursorView returns the cursor's display row and column.
func (e *Engine) CursorView() (row, col int) {
	return e.m.CursorView(e.doc.Cursor())
}

// Apply processes one key event. Out-of-range mutations are no-ops; a
// timer-driven caller must never lose the session over a stale offset.
func (e *Engine) Apply(ev input.Event) Effect {
	switch ev.Key {
	case input.KeyRune:
		return e.insertRune(ev.Rune)
	case input.KeyEnter:
		return e.splitAtCursor()
	case input.KeyBackspace:
		return e.deleteBackward()
	case input.KeyDelete:
		return e.deleteForward()
	case input.KeyLeft:
		return e.navigate(cursor.Left)
	case input.KeyRight:
		return e.navigate(cursor.Right)
	case input.KeyUp:
		return e.navigate(cursor.Up)
	case input.KeyDown:
		return e.navigate(cursor.Down)
	case input.KeyHome:
		return e.navigate(cursor.Home)
	case input.KeyEnd:
		return e.navigate(cursor.End)
	case input.KeyWordLeft:
		return e.navigate(cursor.WordLeft)
	case input.KeyWordRight:
		return e.navigate(cursor.WordRight)
	}
	return EffectNone
}

func (e *Engine) insertRune(r rune) Effect {
	p := e.doc.Cursor()
	end, err := e.doc.Insert(p, string(r))
	if err != nil {
		return EffectNone
	}
	e.doc.SetCursor(end)
	e.afterMutation()
	return EffectContent
}

func (e *Engine) splitAtCursor() Effect {
	p := e.doc.Cursor()
	if err := e.doc.SplitLine(p); err != nil {
		return EffectNone
	}
	e.doc.SetCursor(document.Position{Line: p.Line + 1, Col: 0})
	e.afterMutation()
	return EffectView
}

func (e *Engine) deleteBackward() Effect {
	p := e.doc.Cursor()
	if p.Col > 0 {
		start := document.Position{Line: p.Line, Col: p.Col - 1}
		if err := e.doc.DeleteRange(start, p); err != nil {
			return EffectNone
		}
		e.doc.SetCursor(start)
		e.afterMutation()
		return EffectContent
	}
	if p.Line == 0 {
		return EffectNone
	}

	// Join with the previous line; the cursor lands at the joint.
	joint := document.Position{Line: p.Line - 1, Col: e.doc.LineLen(p.Line - 1)}
	if err := e.doc.JoinWithNext(p.Line - 1); err != nil {
		return EffectNone
	}
	e.doc.SetCursor(joint)
	e.afterMutation()
	return EffectView
}

func (e *Engine) deleteForward() Effect {
	p := e.doc.Cursor()
	if p.Col < e.doc.LineLen(p.Line) {
		end := document.Position{Line: p.Line, Col: p.Col + 1}
		if err := e.doc.DeleteRange(p, end); err != nil {
			return EffectNone
		}
		e.afterMutation()
		return EffectContent
	}
	if err := e.doc.JoinWithNext(p.Line); err != nil {
		return EffectNone
	}
	e.afterMutation()
	return EffectView
}

func (e *Engine) navigate(intent cursor.Intent) Effect {
	before := e.doc.Cursor()
	after := cursor.Move(e.doc, e.m, intent)
	if after == before {
		return EffectNone
	}
	e.doc.SetCursor(after)
	return EffectContent
}

func (e *Engine) afterMutation() {
	e.m = wrap.Compute(e.doc, e.width)
	e.doc.SetCursor(e.doc.Clamp(e.doc.Cursor()))
	e.state = StateEditing
}

// BeginSave marks the session as persisting. The document keeps accepting
// events; the flag only drives the footer indicator.
func (e *Engine) BeginSave() {
	e.state = StateSaving
}

// EndSave records the persist outcome. On success the document is clean
// and the session returns to idle; on failure the dirty flag stays set so
// the next tick retries.
func (e *Engine) EndSave(ok bool) {
	if ok {
		e.doc.MarkClean()
	}
	e.state = StateIdle
}
