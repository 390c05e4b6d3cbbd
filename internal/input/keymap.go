package input

// Linux input-event scan codes for the keys the device keyboard carries.
const (
	ScanEsc       uint16 = 1
	Scan1         uint16 = 2
	Scan2         uint16 = 3
	Scan3         uint16 = 4
	Scan4         uint16 = 5
	Scan5         uint16 = 6
	Scan6         uint16 = 7
	Scan7         uint16 = 8
	Scan8         uint16 = 9
	Scan9         uint16 = 10
	Scan0         uint16 = 11
	ScanMinus     uint16 = 12
	ScanEqual     uint16 = 13
	ScanBackspace uint16 = 14
	ScanQ         uint16 = 16
	ScanW         uint16 = 17
	ScanE         uint16 = 18
	ScanR         uint16 = 19
	ScanT         uint16 = 20
	ScanY         uint16 = 21
	ScanU         uint16 = 22
	ScanI         uint16 = 23
	ScanO         uint16 = 24
	ScanP         uint16 = 25
	ScanLBrace    uint16 = 26
	ScanRBrace    uint16 = 27
	ScanEnter     uint16 = 28
	ScanA         uint16 = 30
	ScanS         uint16 = 31
	ScanD         uint16 = 32
	ScanF         uint16 = 33
	ScanG         uint16 = 34
	ScanH         uint16 = 35
	ScanJ         uint16 = 36
	ScanK         uint16 = 37
	ScanL         uint16 = 38
	ScanSemicolon uint16 = 39
	ScanQuote     uint16 = 40
	ScanGrave     uint16 = 41
	ScanLShift    uint16 = 42
	ScanBackslash uint16 = 43
	ScanZ         uint16 = 44
	ScanX         uint16 = 45
	ScanC         uint16 = 46
	ScanV         uint16 = 47
	ScanB         uint16 = 48
	ScanN         uint16 = 49
	ScanM         uint16 = 50
	ScanComma     uint16 = 51
	ScanDot       uint16 = 52
	ScanSlash     uint16 = 53
	ScanRShift    uint16 = 54
	ScanSpace     uint16 = 57
	ScanF1        uint16 = 59
	ScanF2        uint16 = 60
	ScanHome      uint16 = 102
	ScanUp        uint16 = 103
	ScanPageUp    uint16 = 104
	ScanLeft      uint16 = 105
	ScanRight     uint16 = 106
	ScanEnd       uint16 = 107
	ScanDown      uint16 = 108
	ScanPageDown  uint16 = 109
	ScanDelete    uint16 = 111
)

// Keymap translates a scan code plus the current shift state into an
// Event. Implementations are swappable so alternative physical layouts
// only replace the map, never the input plumbing.
type Keymap interface {
	Translate(code uint16, shift bool) (Event, bool)
}

type runePair struct {
	unshifted rune
	shifted   rune
}

// USKeymap is the default ANSI-US layout.
type USKeymap struct{}

var usRunes = map[uint16]runePair{
	ScanA: {'a', 'A'}, ScanB: {'b', 'B'}, ScanC: {'c', 'C'}, ScanD: {'d', 'D'},
	ScanE: {'e', 'E'}, ScanF: {'f', 'F'}, ScanG: {'g', 'G'}, ScanH: {'h', 'H'},
	ScanI: {'i', 'I'}, ScanJ: {'j', 'J'}, ScanK: {'k', 'K'}, ScanL: {'l', 'L'},
	ScanM: {'m', 'M'}, ScanN: {'n', 'N'}, ScanO: {'o', 'O'}, ScanP: {'p', 'P'},
	ScanQ: {'q', 'Q'}, ScanR: {'r', 'R'}, ScanS: {'s', 'S'}, ScanT: {'t', 'T'},
	ScanU: {'u', 'U'}, ScanV: {'v', 'V'}, ScanW: {'w', 'W'}, ScanX: {'x', 'X'},
	ScanY: {'y', 'Y'}, ScanZ: {'z', 'Z'},
	Scan1: {'1', '!'}, Scan2: {'2', '@'}, Scan3: {'3', '#'}, Scan4: {'4', '$'},
	Scan5: {'5', '%'}, Scan6: {'6', '^'}, Scan7: {'7', '&'}, Scan8: {'8', '*'},
	Scan9: {'9', '('}, Scan0: {'0', ')'},
	ScanMinus:     {'-', '_'},
	ScanEqual:     {'=', '+'},
	ScanLBrace:    {'[', '{'},
	ScanRBrace:    {']', '}'},
	ScanBackslash: {'\\', '|'},
	ScanSemicolon: {';', ':'},
	ScanQuote:     {'\'', '"'},
	ScanGrave:     {'`', '~'},
	ScanComma:     {',', '<'},
	ScanDot:       {'.', '>'},
	ScanSlash:     {'/', '?'},
	ScanSpace:     {' ', ' '},
}

var usSpecial = map[uint16]Key{
	ScanEnter:     KeyEnter,
	ScanBackspace: KeyBackspace,
	ScanDelete:    KeyDelete,
	ScanEsc:       KeyEscape,
	ScanUp:        KeyUp,
	ScanDown:      KeyDown,
	ScanLeft:      KeyLeft,
	ScanRight:     KeyRight,
	ScanHome:      KeyHome,
	ScanEnd:       KeyEnd,
	ScanPageUp:    KeyPageUp,
	ScanPageDown:  KeyPageDown,
	ScanF1:        KeyWordCount,
	ScanF2:        KeyClock,
}

func (USKeymap) Translate(code uint16, shift bool) (Event, bool) {
	if pair, ok := usRunes[code]; ok {
		r := pair.unshifted
		if shift {
			r = pair.shifted
		}
		return Event{Key: KeyRune, Rune: r, Shift: shift}, true
	}
	if key, ok := usSpecial[code]; ok {
		return Event{Key: key, Shift: shift}, true
	}
	return Event{}, false
}

// Tracker folds a raw press/release scan-code stream into translated
// Events, maintaining the shift state the way the device keyboard reports
// it (shift arrives as its own key event, not as a modifier flag).
type Tracker struct {
	keymap Keymap
	shift  bool
}

// NewTracker wraps keymap with shift-state bookkeeping.
func NewTracker(keymap Keymap) *Tracker {
	return &Tracker{keymap: keymap}
}

// Feed consumes one raw key transition. Only presses of mapped keys yield
// an Event; releases and unmapped codes update state silently.
func (t *Tracker) Feed(code uint16, pressed bool) (Event, bool) {
	if code == ScanLShift || code == ScanRShift {
		t.shift = pressed
		return Event{}, false
	}
	if !pressed {
		return Event{}, false
	}
	return t.keymap.Translate(code, t.shift)
}
