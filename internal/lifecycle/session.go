package lifecycle

import (
	"strings"

	"github.com/hollisk/paperwright/internal/core/document"
	"github.com/hollisk/paperwright/internal/errs"
	"github.com/hollisk/paperwright/internal/util"
)

// locked reports whether id has an open editing session. Caller holds m.mu.
func (m *Manager) locked(id string) bool {
	_, held := m.locks[id]
	return held
}

// Acquire takes the exclusive session lock for id. Every lifecycle
// operation against a locked file fails with FileBusy until Release.
func (m *Manager) Acquire(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked(id) {
		return errs.FileBusy(id)
	}
	m.locks[id] = struct{}{}
	return nil
}

// Release drops the session lock for id.
func (m *Manager) Release(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, id)
}

// OpenProject opens an editing session on an active file: reads it, seeds
// a document with the cursor at the end, and takes the session lock.
func (m *Manager) OpenProject(id string) (*document.Document, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked(id) {
		return nil, errs.FileBusy(id)
	}
	state, err := m.stateOf(id)
	if err != nil {
		return nil, err
	}
	if state != StateActive {
		return nil, errs.BadState("cannot open a " + string(state) + " file")
	}

	data, err := m.store.ReadFile(id)
	if err != nil {
		return nil, err
	}
	doc := document.FromBytes(data)
	doc.SetCursor(doc.End())
	m.locks[id] = struct{}{}
	return doc, nil
}

// SaveDocument persists an open session's buffer. The session lock must be
// held; the save path is the one place an open buffer reaches storage.
func (m *Manager) SaveDocument(id string, doc *document.Document) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.locked(id) {
		return errs.BadState("no open session on " + id)
	}
	if err := m.store.WriteFile(id, doc.Serialize()); err != nil {
		return err
	}
	if kindOf(id) == KindJournal {
		m.journalTouch[id] = util.Now()
	}
	return nil
}

// CloseSession persists the buffer if dirty and releases the lock. The
// lock is released even when the final save fails; the session is over
// either way and the error is surfaced for the caller to show.
func (m *Manager) CloseSession(id string, doc *document.Document) error {
	var saveErr error
	if doc != nil && doc.Dirty() {
		saveErr = m.SaveDocument(id, doc)
		if saveErr == nil {
			doc.MarkClean()
		}
	}
	m.Release(id)
	return saveErr
}

// DisplayTitle returns the editor header for a file: "Daily Journal" for
// journals, the bare name for projects.
func DisplayTitle(id string) string {
	if kindOf(id) == KindJournal {
		return "Daily Journal"
	}
	return strings.TrimSuffix(id, ".txt")
}
