// Package render builds fixed-size frames for the e-paper panel and
// carries the refresh policy: screen transitions request the slow full
// refresh, everything else renders partially. The panel driver itself is
// an external collaborator behind the Target interface.
package render

// Frame is one complete panel image: exactly Rows lines, each padded or
// truncated to the panel width.
type Frame struct {
	Rows []string
	// Cursor position in frame coordinates. CursorVisible is false on
	// screens without a text cursor.
	CursorRow     int
	CursorCol     int
	CursorVisible bool
	// FullRefresh requests the slow, ghost-free panel refresh. Only
	// screen transitions set it.
	FullRefresh bool
}

// Target commits frames to a panel. Render returns once the frame is
// displayed; the application loop treats it as a synchronous call.
type Target interface {
	Render(f *Frame) error
	Close() error
}
