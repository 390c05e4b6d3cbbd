// Package power drives the autosave and shutdown policy: persist the
// buffer after a short idle gap, power the device off after a long one.
// It is a pure state machine ticked by the application loop; all clock
// reads come in as arguments so tests control time.
package power

import (
	"time"

	"github.com/hollisk/paperwright/internal/util"
)

// State is the scheduler's activity phase.
type State int

const (
	// Active: input arrived within the autosave window.
	Active State = iota
	// Idle: past the autosave window; dirty content is persisted here.
	Idle
	// ShutdownPending: past the shutdown window; the power-off sequence
	// has started.
	ShutdownPending
)

// Action reports what a tick did, mostly for the caller's footer and logs.
type Action int

const (
	ActionNone Action = iota
	ActionSaved
	ActionSaveFailed
	ActionShutdown
)

// Saver is the open session the scheduler persists. Save must leave the
// dirty flag set when it fails so the next tick retries.
type Saver interface {
	Dirty() bool
	Save() error
}

// Platform issues the hardware power-off.
type Platform interface {
	PowerOff() error
}

// Scheduler applies the idle policy. Not safe for concurrent use; the
// application loop owns it.
type Scheduler struct {
	autosaveIdle time.Duration
	shutdownIdle time.Duration

	saver    Saver
	notify   func()
	platform Platform

	lastActivity   time.Time
	state          State
	powerOffIssued bool
}

// NewScheduler builds a scheduler. notify is the terminal render call made
// right before power-off so the panel shows the shutdown notice.
func NewScheduler(autosaveIdle, shutdownIdle time.Duration, saver Saver, notify func(), platform Platform) *Scheduler {
	return &Scheduler{
		autosaveIdle: autosaveIdle,
		shutdownIdle: shutdownIdle,
		saver:        saver,
		notify:       notify,
		platform:     platform,
		lastActivity: util.Now(),
		state:        Active,
	}
}

// State returns the current phase.
func (s *Scheduler) State() State {
	return s.state
}

// Activity records user input at now. It returns the machine to Active
// and cancels a pending shutdown, unless the power-off request has
// already been issued.
func (s *Scheduler) Activity(now time.Time) {
	if s.powerOffIssued {
		return
	}
	s.lastActivity = now
	s.state = Active
}

// Tick evaluates the idle windows at now and performs due work: an
// autosave persist once idle, the full shutdown sequence once the long
// window elapses.
func (s *Scheduler) Tick(now time.Time) Action {
	if s.powerOffIssued {
		return ActionNone
	}

	elapsed := now.Sub(s.lastActivity)
	if elapsed >= s.shutdownIdle {
		return s.shutdown()
	}

	if elapsed >= s.autosaveIdle {
		s.state = Idle
		if !s.saver.Dirty() {
			return ActionNone
		}
		if err := s.saver.Save(); err != nil {
			// Best effort: report and retry on the next tick.
			util.LogWarnf("autosave failed, will retry: %v", err)
			return ActionSaveFailed
		}
		util.LogDebug("autosave persisted buffer")
		return ActionSaved
	}

	s.state = Active
	return ActionNone
}

// shutdown runs the power-down path: final persist, shutdown notice on
// the panel, then the platform power-off. The persist is best effort; a
// failing storage medium must not keep the device awake forever.
func (s *Scheduler) shutdown() Action {
	s.state = ShutdownPending
	util.LogInfo("inactivity timeout reached, shutting down")

	if s.saver.Dirty() {
		if err := s.saver.Save(); err != nil {
			util.LogErrorf("final persist failed: %v", err)
		}
	}
	if s.notify != nil {
		s.notify()
	}

	s.powerOffIssued = true
	if err := s.platform.PowerOff(); err != nil {
		util.LogErrorf("power-off request failed: %v", err)
	}
	return ActionShutdown
}
