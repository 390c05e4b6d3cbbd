// Package input defines the discrete key-event stream the application
// consumes and the adapters that produce it. The rest of the program never
// sees raw scan codes or terminal escape bytes, only Events.
package input

// Key identifies a semantic key. Printable input uses KeyRune with the
// translated rune in Event.Rune.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyBackspace
	KeyDelete
	KeyEscape
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
	KeyWordLeft
	KeyWordRight
	KeyPageUp
	KeyPageDown
	KeyWordCount // F1, flashes the word count
	KeyClock     // F2, flashes the current time
)

// Event is one discrete key press after keymap translation.
type Event struct {
	Key   Key
	Rune  rune
	Shift bool
}

// Char builds a printable-rune event.
func Char(r rune) Event {
	return Event{Key: KeyRune, Rune: r}
}
