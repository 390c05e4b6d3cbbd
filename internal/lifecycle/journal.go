package lifecycle

import (
	"regexp"
	"strings"
	"time"

	"github.com/hollisk/paperwright/internal/core/document"
	"github.com/hollisk/paperwright/internal/errs"
	"github.com/hollisk/paperwright/internal/util"
)

// markerRE matches a session marker line, e.g. "--- 09:12am ---".
var markerRE = regexp.MustCompile(`^--- \d{2}:\d{2}(am|pm) ---$`)

// headerRE matches a journal date header, e.g. "October 05, 2023".
var headerRE = regexp.MustCompile(`^[A-Z][a-z]+ \d{2}, \d{4}$`)

func journalName(t time.Time) string {
	return t.Format("2006-01-02") + ".txt"
}

func dateHeader(t time.Time) string {
	return t.Format("January 02, 2006")
}

func sessionMarker(t time.Time) string {
	return "--- " + t.Format("03:04pm") + " ---"
}

// OpenJournalForToday resolves today's journal, creating it with a date
// header if absent, and opens an editing session on it. A session marker
// is appended on the first open of a process run and again whenever the
// journal sat untouched longer than the session gap; reopening within the
// gap continues the existing session without a duplicate marker.
func (m *Manager) OpenJournalForToday() (string, *document.Document, error) {
	now := util.Now()
	id := journalName(now)

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.locked(id) {
		return "", nil, errs.FileBusy(id)
	}

	data, err := m.store.ReadFile(id)
	if err != nil && !errs.Is(err, errs.CodeNotFound) {
		return "", nil, err
	}

	var doc *document.Document
	if errs.Is(err, errs.CodeNotFound) {
		// Missing journal is not an error; today's file starts here.
		content := dateHeader(now) + "\n\n" + sessionMarker(now) + "\n"
		if err := m.store.WriteFile(id, []byte(content)); err != nil {
			return "", nil, err
		}
		m.index.touch(id, KindJournal, now)
		m.index.save(m.store)
		util.LogInfof("created journal %s", id)
		doc = document.FromBytes([]byte(content))
	} else {
		doc = document.FromBytes(data)
		if m.needsSessionMarker(id, now, doc) {
			_, insErr := doc.Insert(doc.End(), "\n\n"+sessionMarker(now)+"\n")
			if insErr == nil {
				util.LogDebugf("new session marker in %s", id)
			}
		}
	}

	doc.SetCursor(doc.End())
	m.journalTouch[id] = now
	m.locks[id] = struct{}{}
	return id, doc, nil
}

// needsSessionMarker decides whether opening the journal starts a new
// session. An idle gap always starts one; a first open of this process
// run starts one unless the file already ends with a marker.
func (m *Manager) needsSessionMarker(id string, now time.Time, doc *document.Document) bool {
	last, seen := m.journalTouch[id]
	if seen {
		return now.Sub(last) > m.sessionGap
	}
	return !endsWithMarker(doc)
}

// endsWithMarker reports whether the last non-blank line is a session
// marker, meaning no text followed the previous session's open.
func endsWithMarker(doc *document.Document) bool {
	for i := doc.LineCount() - 1; i >= 0; i-- {
		line := strings.TrimSpace(doc.Line(i))
		if line == "" {
			continue
		}
		return markerRE.MatchString(line)
	}
	return false
}
