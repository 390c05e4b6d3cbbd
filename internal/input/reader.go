package input

import (
	"os"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/hollisk/paperwright/internal/util"
)

// TerminalReader produces Events from a terminal in raw mode. It is the
// input adapter used when the appliance runs against a terminal instead of
// the device keyboard.
type TerminalReader struct {
	oldState *term.State
	events   chan Event
	stop     chan struct{}
}

// NewTerminalReader switches stdin to raw mode and starts the read
// goroutine.
func NewTerminalReader() (*TerminalReader, error) {
	oldState, err := term.MakeRaw(int(os.Stdin.Fd()))
	if err != nil {
		return nil, err
	}

	tr := &TerminalReader{
		oldState: oldState,
		events:   make(chan Event, 16),
		stop:     make(chan struct{}),
	}
	go tr.readLoop()
	return tr, nil
}

// Events returns the translated key-event channel.
func (tr *TerminalReader) Events() <-chan Event {
	return tr.events
}

// Close stops the reader and restores the terminal state. A blocking
// stdin read cannot be interrupted portably, so the read goroutine may
// linger until one more byte arrives or stdin closes; it exits after
// that read without touching the restored terminal.
func (tr *TerminalReader) Close() error {
	close(tr.stop)
	return term.Restore(int(os.Stdin.Fd()), tr.oldState)
}

func (tr *TerminalReader) readLoop() {
	buf := make([]byte, 64)
	for {
		select {
		case <-tr.stop:
			return
		default:
		}

		n, err := os.Stdin.Read(buf)
		if err != nil {
			util.LogDebugf("terminal read: %v", err)
			return
		}

		for _, ev := range parseBytes(buf[:n]) {
			select {
			case tr.events <- ev:
			case <-tr.stop:
				return
			}
		}
	}
}

// parseBytes decodes one raw read into zero or more events. A lone ESC in
// the chunk is the Escape key; ESC followed by more bytes is a control
// sequence.
func parseBytes(b []byte) []Event {
	var events []Event
	for len(b) > 0 {
		if b[0] == 0x1b {
			ev, consumed := parseEscape(b)
			b = b[consumed:]
			if ev != nil {
				events = append(events, *ev)
			}
			continue
		}

		switch b[0] {
		case '\r', '\n':
			events = append(events, Event{Key: KeyEnter})
			b = b[1:]
		case 0x7f, 0x08:
			events = append(events, Event{Key: KeyBackspace})
			b = b[1:]
		default:
			r, size := utf8.DecodeRune(b)
			b = b[size:]
			if r >= 0x20 && r != utf8.RuneError {
				events = append(events, Char(r))
			}
		}
	}
	return events
}

func parseEscape(b []byte) (*Event, int) {
	if len(b) == 1 {
		return &Event{Key: KeyEscape}, 1
	}

	// ESC O P / ESC O Q are F1 / F2.
	if b[1] == 'O' && len(b) >= 3 {
		switch b[2] {
		case 'P':
			return &Event{Key: KeyWordCount}, 3
		case 'Q':
			return &Event{Key: KeyClock}, 3
		case 'H':
			return &Event{Key: KeyHome}, 3
		case 'F':
			return &Event{Key: KeyEnd}, 3
		}
		return nil, 3
	}

	if b[1] != '[' {
		// Unrecognized two-byte sequence; drop the ESC and reparse.
		return &Event{Key: KeyEscape}, 1
	}

	// CSI: ESC [ params final
	i := 2
	for i < len(b) && (b[i] >= '0' && b[i] <= '9' || b[i] == ';') {
		i++
	}
	if i >= len(b) {
		return nil, len(b)
	}
	params := string(b[2:i])
	final := b[i]
	consumed := i + 1

	switch final {
	case 'A':
		return &Event{Key: KeyUp}, consumed
	case 'B':
		return &Event{Key: KeyDown}, consumed
	case 'C':
		if params == "1;5" {
			return &Event{Key: KeyWordRight}, consumed
		}
		return &Event{Key: KeyRight}, consumed
	case 'D':
		if params == "1;5" {
			return &Event{Key: KeyWordLeft}, consumed
		}
		return &Event{Key: KeyLeft}, consumed
	case 'H':
		return &Event{Key: KeyHome}, consumed
	case 'F':
		return &Event{Key: KeyEnd}, consumed
	case '~':
		switch params {
		case "1", "7":
			return &Event{Key: KeyHome}, consumed
		case "3":
			return &Event{Key: KeyDelete}, consumed
		case "4", "8":
			return &Event{Key: KeyEnd}, consumed
		case "5":
			return &Event{Key: KeyPageUp}, consumed
		case "6":
			return &Event{Key: KeyPageDown}, consumed
		case "11":
			return &Event{Key: KeyWordCount}, consumed
		case "12":
			return &Event{Key: KeyClock}, consumed
		}
	}
	return nil, consumed
}
