package app

import (
	"fmt"

	"github.com/hollisk/paperwright/internal/core/editor"
	"github.com/hollisk/paperwright/internal/errs"
	"github.com/hollisk/paperwright/internal/input"
	"github.com/hollisk/paperwright/internal/lifecycle"
	"github.com/hollisk/paperwright/internal/util"
)

// handleKey routes one key event to the focused screen. A visible flash
// notice swallows the first key to dismiss itself.
func (a *App) handleKey(ev input.Event) {
	if a.flashActive() {
		a.flash = nil
		return
	}

	switch a.screen {
	case screenMenu:
		a.menuKey(ev)
	case screenEditor:
		a.editorKey(ev)
	case screenProjects:
		a.projectsKey(ev)
	case screenArchive:
		a.archiveKey(ev)
	case screenTrash:
		a.trashKey(ev)
	case screenInput:
		a.inputKey(ev)
	}
}

func (a *App) menuKey(ev input.Event) {
	if ev.Key != input.KeyRune {
		return
	}
	switch ev.Rune {
	case '1':
		a.openJournal()
	case '2':
		a.showProjects()
	case 'q', 'Q':
		a.quit = true
	}
}

func (a *App) openJournal() {
	id, doc, err := a.manager.OpenJournalForToday()
	if err != nil {
		a.showError(err)
		return
	}
	a.session = &session{id: id, engine: editor.New(doc, a.cfg.DisplayCols)}
	a.builder.ResetScroll()
	a.screen = screenEditor
}

func (a *App) openProject(id string) {
	doc, err := a.manager.OpenProject(id)
	if err != nil {
		a.showError(err)
		return
	}
	a.session = &session{id: id, engine: editor.New(doc, a.cfg.DisplayCols)}
	a.builder.ResetScroll()
	a.screen = screenEditor
}

func (a *App) editorKey(ev input.Event) {
	switch ev.Key {
	case input.KeyEscape:
		a.closeEditor()
	case input.KeyWordCount:
		a.note(fmt.Sprintf("%d words", a.session.engine.Document().WordCount()))
	case input.KeyClock:
		a.note(a.now().Format("03:04pm, January 02, 2006"))
	case input.KeyPageUp:
		a.pageMove(input.KeyUp)
	case input.KeyPageDown:
		a.pageMove(input.KeyDown)
	default:
		a.session.engine.Apply(ev)
	}
}

// pageMove scrolls by one screen body worth of display rows.
func (a *App) pageMove(key input.Key) {
	for i := 0; i < a.cfg.DisplayRows-2; i++ {
		if a.session.engine.Apply(input.Event{Key: key}) == editor.EffectNone {
			return
		}
	}
}

// closeEditor saves the buffer and returns to the menu. The session ends
// even when the save fails; the error is shown so the writer knows the
// last words may not have reached storage.
func (a *App) closeEditor() {
	id := a.session.id
	err := a.manager.CloseSession(id, a.session.engine.Document())
	a.session = nil
	a.screen = screenMenu
	if err != nil {
		util.LogErrorf("save on close failed for %s: %v", id, err)
		a.showError(err)
	}
}

func (a *App) showProjects() {
	a.screen = screenProjects
	a.selected = 0
	a.refreshItems()
}

func (a *App) projectsKey(ev input.Event) {
	switch ev.Key {
	case input.KeyEscape:
		a.screen = screenMenu
		return
	case input.KeyUp:
		a.moveSelection(-1)
		return
	case input.KeyDown:
		a.moveSelection(1)
		return
	case input.KeyEnter:
		if f, ok := a.selectedItem(); ok {
			a.openProject(f.ID)
		}
		return
	case input.KeyDelete:
		a.trashSelected()
		return
	}

	if ev.Key != input.KeyRune {
		return
	}
	switch ev.Rune {
	case 'n', 'N':
		a.startInput(inputNewProject, "")
	case 'r', 'R':
		if f, ok := a.selectedItem(); ok {
			a.renameID = f.ID
			a.startInput(inputRenameProject, f.Name)
		}
	case 'a', 'A':
		if f, ok := a.selectedItem(); ok {
			if err := a.manager.ArchiveProject(f.ID); err != nil {
				a.showError(err)
				return
			}
			a.refreshItems()
		}
	case 'd', 'D':
		a.trashSelected()
	case 'v', 'V':
		a.screen = screenArchive
		a.selected = 0
		a.refreshItems()
	case 't', 'T':
		a.screen = screenTrash
		a.selected = 0
		a.refreshItems()
	}
}

func (a *App) archiveKey(ev input.Event) {
	switch ev.Key {
	case input.KeyEscape:
		a.screen = screenProjects
		a.selected = 0
		a.refreshItems()
	case input.KeyUp:
		a.moveSelection(-1)
	case input.KeyDown:
		a.moveSelection(1)
	case input.KeyEnter:
		if f, ok := a.selectedItem(); ok {
			if err := a.manager.UnarchiveProject(f.ID); err != nil {
				a.showError(err)
				return
			}
			a.refreshItems()
		}
	}
}

func (a *App) trashSelected() {
	f, ok := a.selectedItem()
	if !ok {
		return
	}
	if err := a.manager.DeleteProject(f.ID); err != nil {
		a.showError(err)
		return
	}
	a.refreshItems()
}

func (a *App) trashKey(ev input.Event) {
	switch ev.Key {
	case input.KeyEscape:
		a.screen = screenProjects
		a.selected = 0
		a.refreshItems()
		return
	case input.KeyUp:
		a.moveSelection(-1)
		return
	case input.KeyDown:
		a.moveSelection(1)
		return
	case input.KeyEnter:
		if f, ok := a.selectedItem(); ok {
			if err := a.manager.RestoreProject(f.ID); err != nil {
				a.showError(err)
				return
			}
			a.refreshItems()
		}
		return
	}

	if ev.Key == input.KeyRune && (ev.Rune == 'p' || ev.Rune == 'P') {
		if f, ok := a.selectedItem(); ok {
			if err := a.manager.PurgeTrash(f.ID); err != nil {
				a.showError(err)
				return
			}
			a.refreshItems()
		}
	}
}

func (a *App) startInput(purpose inputPurpose, initial string) {
	a.inputPurpose = purpose
	a.inputValue = []rune(initial)
	a.screen = screenInput
}

func (a *App) inputKey(ev input.Event) {
	switch ev.Key {
	case input.KeyEscape:
		a.screen = screenProjects
	case input.KeyBackspace:
		if len(a.inputValue) > 0 {
			a.inputValue = a.inputValue[:len(a.inputValue)-1]
		}
	case input.KeyEnter:
		a.commitInput()
	case input.KeyRune:
		a.inputValue = append(a.inputValue, ev.Rune)
	}
}

// commitInput applies the entered name. On error the input screen stays
// up with the value intact so the writer can fix it.
func (a *App) commitInput() {
	name := string(a.inputValue)

	var err error
	switch a.inputPurpose {
	case inputNewProject:
		_, err = a.manager.CreateProject(name)
	case inputRenameProject:
		_, err = a.manager.RenameProject(a.renameID, name)
	}
	if err != nil {
		a.showError(err)
		return
	}
	a.screen = screenProjects
	a.refreshItems()
}

func (a *App) refreshItems() {
	var (
		items []lifecycle.ProjectFile
		err   error
	)
	switch a.screen {
	case screenTrash:
		items, err = a.manager.Trashed()
	case screenArchive:
		items, err = a.manager.Archived()
	default:
		items, err = a.manager.ActiveProjects()
	}
	if err != nil {
		util.LogErrorf("listing failed: %v", err)
		a.showError(err)
		return
	}
	a.items = items
	if a.selected >= len(a.items) {
		a.selected = len(a.items) - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

func (a *App) moveSelection(delta int) {
	a.selected += delta
	if a.selected > len(a.items)-1 {
		a.selected = len(a.items) - 1
	}
	if a.selected < 0 {
		a.selected = 0
	}
}

func (a *App) selectedItem() (lifecycle.ProjectFile, bool) {
	if a.selected < 0 || a.selected >= len(a.items) {
		return lifecycle.ProjectFile{}, false
	}
	return a.items[a.selected], true
}

// showError maps the error taxonomy to writer-facing wording.
func (a *App) showError(err error) {
	switch {
	case errs.Is(err, errs.CodeNameConflict):
		a.showFlash("That name is already in use")
	case errs.Is(err, errs.CodeFileBusy):
		a.showFlash("That file is open elsewhere")
	case errs.Is(err, errs.CodeNotFound):
		a.showFlash("File not found")
	case errs.Is(err, errs.CodeBadState):
		a.showFlash("That action is not possible here")
	default:
		a.showFlash("Something went wrong", "Check the log for details")
	}
}
