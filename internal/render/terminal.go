package render

import (
	"fmt"
	"strings"
)

// ANSI control sequences.
const (
	enterAltScreen = "\033[?1049h"
	exitAltScreen  = "\033[?1049l"
	clearScreen    = "\033[2J"
	cursorHome     = "\033[H"
	hideCursor     = "\033[?25l"
	showCursor     = "\033[?25h"
)

// Terminal simulates the e-paper panel on an ANSI terminal. Partial
// refreshes redraw only the rows that changed since the previous frame,
// mirroring the panel's partial-update behavior; full refreshes clear and
// redraw everything.
type Terminal struct {
	cols int
	rows int

	active   bool
	previous []string
}

// NewTerminal enters the alternate screen and prepares a cols x rows
// panel simulation.
func NewTerminal(cols, rows int) *Terminal {
	fmt.Print(enterAltScreen, clearScreen, cursorHome, hideCursor)
	return &Terminal{cols: cols, rows: rows, active: true}
}

// Render commits one frame.
func (t *Terminal) Render(f *Frame) error {
	if !t.active {
		return nil
	}

	if f.FullRefresh || t.previous == nil {
		fmt.Print(clearScreen, cursorHome)
		t.previous = make([]string, len(f.Rows))
	}

	border := "+" + strings.Repeat("-", t.cols) + "+"
	fmt.Print("\033[1;1H" + border)
	for i, row := range f.Rows {
		if i < len(t.previous) && t.previous[i] == row && !f.FullRefresh {
			continue
		}
		// Panel rows start below the border line.
		fmt.Printf("\033[%d;1H|%s|", i+2, row)
		if i < len(t.previous) {
			t.previous[i] = row
		}
	}
	fmt.Printf("\033[%d;1H%s", len(f.Rows)+2, border)

	if f.CursorVisible {
		fmt.Printf("\033[%d;%dH", f.CursorRow+2, f.CursorCol+2)
		fmt.Print(showCursor)
	} else {
		fmt.Print(hideCursor)
	}
	return nil
}

// Close leaves the alternate screen and restores the cursor.
func (t *Terminal) Close() error {
	if !t.active {
		return nil
	}
	t.active = false
	fmt.Print(showCursor, clearScreen, cursorHome, exitAltScreen)
	return nil
}
