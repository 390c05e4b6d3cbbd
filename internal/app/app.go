// Package app wires the appliance together. One event loop multiplexes
// the keyboard, the scheduler tick, and filesystem changes, and routes
// each to the screen that has focus.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/hollisk/paperwright/internal/config"
	"github.com/hollisk/paperwright/internal/core/editor"
	"github.com/hollisk/paperwright/internal/core/power"
	"github.com/hollisk/paperwright/internal/input"
	"github.com/hollisk/paperwright/internal/lifecycle"
	"github.com/hollisk/paperwright/internal/render"
	"github.com/hollisk/paperwright/internal/util"
)

// session is one open editing buffer bound to its file.
type session struct {
	id     string
	engine *editor.Engine
}

// App is the appliance orchestrator.
type App struct {
	cfg     *config.Config
	manager *lifecycle.Manager
	builder *render.Builder
	target  render.Target
	events  <-chan input.Event
	sched   *power.Scheduler
	watcher *FileWatcher

	screen   screen
	session  *session
	items    []lifecycle.ProjectFile
	selected int

	inputPurpose inputPurpose
	inputValue   []rune
	renameID     string

	flash      []string
	flashUntil time.Time
	statusNote string
	noteUntil  time.Time

	quit bool
}

// New builds the orchestrator. events is the translated key stream from
// whichever input adapter the command wired up; platform issues the real
// or simulated power-off.
func New(cfg *config.Config, manager *lifecycle.Manager, target render.Target, events <-chan input.Event, platform power.Platform) *App {
	a := &App{
		cfg:     cfg,
		manager: manager,
		builder: render.NewBuilder(cfg.DisplayCols, cfg.DisplayRows),
		target:  target,
		events:  events,
		screen:  screenMenu,
	}
	notify := func() {
		_ = target.Render(a.builder.Message("Shutting down..."))
	}
	a.sched = power.NewScheduler(cfg.AutosaveIdle, cfg.ShutdownIdle, saver{a}, notify, platform)
	return a
}

func (a *App) now() time.Time {
	return util.Now()
}

// Run seeds the device, folds elapsed journal months, and enters the main
// loop. It returns when the user quits, the context is cancelled, or the
// idle shutdown fires.
func (a *App) Run(ctx context.Context) error {
	if err := a.manager.EnsureSeeded(); err != nil {
		return fmt.Errorf("failed to seed projects directory: %w", err)
	}
	if months, err := a.manager.ConsolidateElapsedMonths(); err != nil {
		// A locked daily or a bad bundle must not block startup.
		util.LogWarnf("monthly consolidation failed: %v", err)
	} else if len(months) > 0 {
		util.LogInfof("consolidated journal months: %v", months)
	}

	watcher, err := NewFileWatcher(a.cfg.ProjectsDir)
	if err != nil {
		return fmt.Errorf("failed to watch projects directory: %w", err)
	}
	a.watcher = watcher
	defer a.watcher.Close()
	defer a.target.Close()

	ticker := time.NewTicker(a.cfg.TickInterval)
	defer ticker.Stop()

	a.render()

	for !a.quit {
		select {
		case <-ctx.Done():
			util.LogInfo("context cancelled, closing")
			a.quit = true

		case ev, ok := <-a.events:
			if !ok {
				a.quit = true
				break
			}
			a.sched.Activity(a.now())
			a.handleKey(ev)
			a.render()

		case <-ticker.C:
			switch a.sched.Tick(a.now()) {
			case power.ActionShutdown:
				a.quit = true
			case power.ActionSaved:
				a.note("Saved")
				a.render()
			case power.ActionSaveFailed:
				a.note("Save failed, retrying")
				a.render()
			default:
				if a.expireTransients() {
					a.render()
				}
			}

		case fe := <-a.watcher.Events():
			a.handleFileChange(fe)
		}
	}

	return a.closeDown()
}

// closeDown persists any open session before the loop exits.
func (a *App) closeDown() error {
	if a.session == nil {
		return nil
	}
	id := a.session.id
	err := a.manager.CloseSession(id, a.session.engine.Document())
	a.session = nil
	if err != nil {
		util.LogErrorf("final save failed for %s: %v", id, err)
	}
	return err
}

// handleFileChange refreshes list screens when the transfer surface
// touches the projects directory.
func (a *App) handleFileChange(fe FileEvent) {
	util.LogDebugf("projects directory changed: %s (%s)", fe.Path, fe.Operation)
	if a.screen != screenProjects && a.screen != screenArchive && a.screen != screenTrash {
		return
	}
	a.refreshItems()
	a.render()
}

// render paints the focused screen, or the flash notice when one is up.
func (a *App) render() {
	if err := a.target.Render(a.frame()); err != nil {
		util.LogErrorf("render failed: %v", err)
	}
}

func (a *App) frame() *render.Frame {
	if a.flashActive() {
		return a.builder.Message(a.flash...)
	}

	switch a.screen {
	case screenEditor:
		row, col := a.session.engine.CursorView()
		title := lifecycle.DisplayTitle(a.session.id)
		return a.builder.Editor(title, a.session.engine.Map(), row, col, a.editorStatus())

	case screenProjects:
		return a.builder.List("Projects", a.itemNames(),
			a.selected, "N New  R Rename  A Archive  D Delete")

	case screenArchive:
		return a.builder.List("Archive", a.itemNames(),
			a.selected, "Enter Restore  ESC Back")

	case screenTrash:
		return a.builder.List("Trash", a.itemNames(),
			a.selected, "Enter Restore  P Purge  ESC Back")

	case screenInput:
		prompt := "New Project Name"
		if a.inputPurpose == inputRenameProject {
			prompt = "Rename Project"
		}
		return a.builder.TextInput(prompt, string(a.inputValue), "Enter OK  ESC Cancel")

	default:
		return a.builder.Menu("Paperwright",
			[]string{"1. Daily Journal", "2. Projects"}, "Q to Quit")
	}
}

func (a *App) editorStatus() string {
	if a.noteActive() {
		return a.statusNote
	}
	doc := a.session.engine.Document()
	status := fmt.Sprintf("%d words", doc.WordCount())
	if doc.Dirty() {
		status += " *"
	}
	return status
}

func (a *App) itemNames() []string {
	names := make([]string, len(a.items))
	for i, f := range a.items {
		names[i] = f.Name
	}
	return names
}

// saver adapts the open editor session to the scheduler's persist hook.
// With no session open there is nothing dirty and nothing to save.
type saver struct {
	a *App
}

func (s saver) Dirty() bool {
	return s.a.session != nil && s.a.session.engine.Document().Dirty()
}

func (s saver) Save() error {
	sess := s.a.session
	if sess == nil {
		return nil
	}
	sess.engine.BeginSave()
	err := s.a.manager.SaveDocument(sess.id, sess.engine.Document())
	sess.engine.EndSave(err == nil)
	return err
}
