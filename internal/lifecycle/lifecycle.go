// Package lifecycle owns every file on the device: journal and project
// creation, rename, archive, trash, restore, purge, and the monthly
// journal consolidation. It is the single choke point for file access;
// the network transfer surface and the editor both go through it, so
// open-session locking here is what keeps them from clobbering each
// other.
package lifecycle

import (
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hollisk/paperwright/internal/errs"
	"github.com/hollisk/paperwright/internal/storage"
	"github.com/hollisk/paperwright/internal/util"
)

// Kind classifies a file by how it was created.
type Kind string

const (
	KindJournal Kind = "journal"
	KindProject Kind = "project"
)

// State is a file's lifecycle state. The state is carried by directory
// placement so the projects folder stays legible as plain files.
type State string

const (
	StateActive   State = "active"
	StateArchived State = "archived"
	StateTrashed  State = "trashed"
)

const (
	archiveDir = ".archive"
	trashDir   = ".trash"
	initFlag   = ".initialized"

	defaultProject = "Project One.txt"
)

var (
	dailyJournalRE = regexp.MustCompile(`^(\d{4}-\d{2})-\d{2}\.txt$`)
	bundleRE       = regexp.MustCompile(`^\d{4}-\d{2}\.txt$`)
)

// allowed lifecycle transitions; purge is handled separately because it
// removes the file instead of moving it.
var transitions = map[State][]State{
	StateActive:   {StateArchived, StateTrashed},
	StateArchived: {StateActive, StateTrashed},
	StateTrashed:  {StateActive},
}

// ProjectFile describes one file in the inventory. Kind and CreatedAt come
// from the metadata index when it has an entry, so a project keeps its kind
// and creation time across renames; without an entry they degrade to the
// name pattern and the filesystem mtime.
type ProjectFile struct {
	ID        string // file name, e.g. "Project One.txt"
	Name      string // display name without extension
	Kind      Kind
	State     State
	Size      int64
	ModTime   time.Time
	CreatedAt time.Time
}

// Manager performs all lifecycle operations against a storage backend.
// Safe for concurrent use; the network surface calls in from its own
// goroutine.
type Manager struct {
	store      storage.Store
	sessionGap time.Duration

	mu           sync.Mutex
	locks        map[string]struct{}
	journalTouch map[string]time.Time
	index        *metaIndex
}

// NewManager builds a manager over store. sessionGap is the idle window
// after which a reopened journal gets a fresh session marker.
func NewManager(store storage.Store, sessionGap time.Duration) *Manager {
	m := &Manager{
		store:        store,
		sessionGap:   sessionGap,
		locks:        make(map[string]struct{}),
		journalTouch: make(map[string]time.Time),
	}
	m.index = loadIndex(store)
	return m
}

// EnsureSeeded creates the first-run files: today's journal with its date
// header and a starter project. Subsequent runs are no-ops, keyed by a
// hidden flag file.
func (m *Manager) EnsureSeeded() error {
	if m.store.Exists(initFlag) {
		return nil
	}
	util.LogInfo("first run detected, creating default files")

	now := util.Now()
	journal := journalName(now)
	content := dateHeader(now) + "\n\n"
	if err := m.store.WriteFile(journal, []byte(content)); err != nil {
		return err
	}
	m.index.touch(journal, KindJournal, now)

	if err := m.store.WriteFile(defaultProject, nil); err != nil {
		return err
	}
	m.index.touch(defaultProject, KindProject, now)
	m.index.save(m.store)

	return m.store.WriteFile(initFlag, []byte("1"))
}

// Inventory lists every file across all lifecycle states, sorted by state
// then name.
func (m *Manager) Inventory() ([]ProjectFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var files []ProjectFile
	for _, loc := range []struct {
		dir   string
		state State
	}{
		{".", StateActive},
		{archiveDir, StateArchived},
		{trashDir, StateTrashed},
	} {
		entries, err := m.store.List(loc.dir)
		if err != nil {
			if errs.Is(err, errs.CodeNotFound) {
				continue
			}
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir || !strings.HasSuffix(e.Name, ".txt") {
				continue
			}
			kind := kindOf(e.Name)
			created := e.ModTime
			if entry, ok := m.index.Entries[e.Name]; ok {
				kind = entry.Kind
				if !entry.CreatedAt.IsZero() {
					created = entry.CreatedAt
				}
			}
			files = append(files, ProjectFile{
				ID:        e.Name,
				Name:      strings.TrimSuffix(e.Name, ".txt"),
				Kind:      kind,
				State:     loc.state,
				Size:      e.Size,
				ModTime:   e.ModTime,
				CreatedAt: created,
			})
		}
	}
	sort.Slice(files, func(i, j int) bool {
		if files[i].State != files[j].State {
			return files[i].State < files[j].State
		}
		return files[i].ID < files[j].ID
	})
	return files, nil
}

// ActiveProjects lists active files of kind project, the set the projects
// screen shows.
func (m *Manager) ActiveProjects() ([]ProjectFile, error) {
	all, err := m.Inventory()
	if err != nil {
		return nil, err
	}
	var out []ProjectFile
	for _, f := range all {
		if f.State == StateActive && f.Kind == KindProject {
			out = append(out, f)
		}
	}
	return out, nil
}

// Archived lists the archive contents.
func (m *Manager) Archived() ([]ProjectFile, error) {
	all, err := m.Inventory()
	if err != nil {
		return nil, err
	}
	var out []ProjectFile
	for _, f := range all {
		if f.State == StateArchived {
			out = append(out, f)
		}
	}
	return out, nil
}

// Trashed lists the trash contents.
func (m *Manager) Trashed() ([]ProjectFile, error) {
	all, err := m.Inventory()
	if err != nil {
		return nil, err
	}
	var out []ProjectFile
	for _, f := range all {
		if f.State == StateTrashed {
			out = append(out, f)
		}
	}
	return out, nil
}

// CreateProject creates an empty active project. The name collides with
// any existing file in any state, so a later restore can never clash.
func (m *Manager) CreateProject(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", errs.BadState("project name is empty")
	}
	id := name + ".txt"

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.existsAnywhere(id) {
		return "", errs.NameConflict(id)
	}
	if err := m.store.WriteFile(id, nil); err != nil {
		return "", err
	}
	m.index.touch(id, KindProject, util.Now())
	m.index.save(m.store)
	util.LogInfof("created project %s", id)
	return id, nil
}

// RenameProject renames an active or archived file. Trashed files must be
// restored first.
func (m *Manager) RenameProject(id, newName string) (string, error) {
	newName = strings.TrimSpace(newName)
	if newName == "" {
		return "", errs.BadState("new name is empty")
	}
	newID := newName + ".txt"
	if newID == id {
		return id, nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked(id) {
		return "", errs.FileBusy(id)
	}
	state, err := m.stateOf(id)
	if err != nil {
		return "", err
	}
	if state == StateTrashed {
		return "", errs.BadState("cannot rename a trashed file")
	}
	if m.existsAnywhere(newID) {
		return "", errs.NameConflict(newID)
	}
	if err := m.store.Move(pathIn(state, id), pathIn(state, newID)); err != nil {
		return "", err
	}
	m.index.rename(id, newID)
	m.index.save(m.store)
	util.LogInfof("renamed %s to %s", id, newID)
	return newID, nil
}

// ArchiveProject moves an active file to the archive.
func (m *Manager) ArchiveProject(id string) error {
	return m.transition(id, StateArchived)
}

// UnarchiveProject moves an archived file back to active.
func (m *Manager) UnarchiveProject(id string) error {
	return m.transition(id, StateActive)
}

// DeleteProject moves a file to the trash. Nothing is purged here; the
// file stays restorable until an explicit purge.
func (m *Manager) DeleteProject(id string) error {
	return m.transition(id, StateTrashed)
}

// RestoreProject returns a trashed file to active, byte-identical.
func (m *Manager) RestoreProject(id string) error {
	return m.transition(id, StateActive)
}

// PurgeTrash permanently removes one trashed file. Terminal and
// irreversible; only valid from the trashed state.
func (m *Manager) PurgeTrash(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked(id) {
		return errs.FileBusy(id)
	}
	state, err := m.stateOf(id)
	if err != nil {
		return err
	}
	if state != StateTrashed {
		return errs.BadState("purge requires the trashed state")
	}
	if err := m.store.Remove(pathIn(StateTrashed, id)); err != nil {
		return err
	}
	m.index.remove(id)
	m.index.save(m.store)
	util.LogInfof("purged %s", id)
	return nil
}

// PurgeAllTrash empties the trash.
func (m *Manager) PurgeAllTrash() error {
	trashed, err := m.Trashed()
	if err != nil {
		return err
	}
	for _, f := range trashed {
		if err := m.PurgeTrash(f.ID); err != nil {
			return err
		}
	}
	return nil
}

// transition moves id into the target state after checking the lock and
// the transition table.
func (m *Manager) transition(id string, to State) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked(id) {
		return errs.FileBusy(id)
	}
	from, err := m.stateOf(id)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}
	if !transitionAllowed(from, to) {
		return errs.BadState(string(from) + " -> " + string(to) + " is not allowed")
	}
	if to == StateActive && m.store.Exists(pathIn(StateActive, id)) {
		return errs.NameConflict(id)
	}
	if err := m.store.Move(pathIn(from, id), pathIn(to, id)); err != nil {
		return err
	}
	util.LogInfof("moved %s from %s to %s", id, from, to)
	return nil
}

func transitionAllowed(from, to State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// stateOf locates id. Caller holds m.mu.
func (m *Manager) stateOf(id string) (State, error) {
	for _, s := range []State{StateActive, StateArchived, StateTrashed} {
		if m.store.Exists(pathIn(s, id)) {
			return s, nil
		}
	}
	return "", errs.NotFound(id)
}

func (m *Manager) existsAnywhere(id string) bool {
	_, err := m.stateOf(id)
	return err == nil
}

func pathIn(state State, id string) string {
	switch state {
	case StateArchived:
		return archiveDir + "/" + id
	case StateTrashed:
		return trashDir + "/" + id
	default:
		return id
	}
}

func kindOf(id string) Kind {
	if dailyJournalRE.MatchString(id) || bundleRE.MatchString(id) {
		return KindJournal
	}
	return KindProject
}
