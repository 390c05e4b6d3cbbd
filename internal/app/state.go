package app

import "time"

// screen identifies which UI surface owns keyboard input.
type screen int

const (
	screenMenu screen = iota
	screenEditor
	screenProjects
	screenArchive
	screenTrash
	screenInput
)

// inputPurpose tells the text-input screen what the committed value is for.
type inputPurpose int

const (
	inputNewProject inputPurpose = iota
	inputRenameProject
)

// transientTTL is how long flash messages and footer notes stay visible.
const transientTTL = 3 * time.Second

// showFlash replaces the whole panel with a centered notice until the TTL
// expires or a key dismisses it.
func (a *App) showFlash(lines ...string) {
	a.flash = lines
	a.flashUntil = a.now().Add(transientTTL)
}

func (a *App) flashActive() bool {
	return len(a.flash) > 0 && a.now().Before(a.flashUntil)
}

// note puts a short message in the editor footer without leaving the
// editor screen.
func (a *App) note(text string) {
	a.statusNote = text
	a.noteUntil = a.now().Add(transientTTL)
}

func (a *App) noteActive() bool {
	return a.statusNote != "" && a.now().Before(a.noteUntil)
}

// expireTransients clears timed-out flash and note state. It reports
// whether anything was cleared so the caller knows to repaint.
func (a *App) expireTransients() bool {
	changed := false
	if len(a.flash) > 0 && !a.now().Before(a.flashUntil) {
		a.flash = nil
		changed = true
	}
	if a.statusNote != "" && !a.now().Before(a.noteUntil) {
		a.statusNote = ""
		changed = true
	}
	return changed
}
