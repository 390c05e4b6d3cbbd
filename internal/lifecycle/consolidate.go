package lifecycle

import (
	"sort"
	"strings"
	"time"

	"github.com/hollisk/paperwright/internal/errs"
	"github.com/hollisk/paperwright/internal/util"
)

// journalSession is one marker-delimited chunk of a journal day.
type journalSession struct {
	key  string // "<date header>|<marker line>"
	text string // raw lines including the marker, newline-joined
}

// ConsolidateMonth merges the daily journal files of month (format
// "2006-01") into the monthly bundle and removes the dailies. The month
// must have fully elapsed. Idempotent: sessions already present in the
// bundle, keyed by (date header, session marker), are never duplicated.
func (m *Manager) ConsolidateMonth(month string) error {
	parsed, err := time.Parse("2006-01", month)
	if err != nil {
		return errs.BadState("bad month " + month + ", want YYYY-MM")
	}
	today := util.Today()
	current := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
	if !parsed.Before(current) {
		return errs.BadState("month " + month + " has not fully elapsed")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	dailies, err := m.dailiesOf(month)
	if err != nil {
		return err
	}
	if len(dailies) == 0 {
		return nil
	}
	for _, id := range dailies {
		if m.locked(id) {
			return errs.FileBusy(id)
		}
	}

	bundleID := month + ".txt"
	bundle := ""
	if data, err := m.store.ReadFile(bundleID); err == nil {
		bundle = string(data)
	} else if !errs.Is(err, errs.CodeNotFound) {
		return err
	}

	headers, sessions := bundleKeys(bundle)
	merged := bundle
	for _, id := range dailies {
		data, err := m.store.ReadFile(id)
		if err != nil {
			return err
		}
		merged = mergeDay(merged, string(data), headers, sessions)
	}

	if err := m.store.WriteFile(bundleID, []byte(merged)); err != nil {
		return err
	}
	m.index.touch(bundleID, KindJournal, util.Now())
	for _, id := range dailies {
		if err := m.store.Remove(id); err != nil {
			return err
		}
		m.index.remove(id)
	}
	m.index.save(m.store)
	util.LogInfof("consolidated %d daily files into %s", len(dailies), bundleID)
	return nil
}

// ConsolidateElapsedMonths bundles every month that has fully elapsed,
// oldest first. Returns the months consolidated. Run at startup so the
// projects folder never accumulates stale daily files.
func (m *Manager) ConsolidateElapsedMonths() ([]string, error) {
	m.mu.Lock()
	entries, err := m.store.List(".")
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	today := util.Today()
	current := today.Format("2006-01")
	seen := make(map[string]bool)
	var months []string
	for _, e := range entries {
		match := dailyJournalRE.FindStringSubmatch(e.Name)
		if match == nil {
			continue
		}
		month := match[1]
		if month < current && !seen[month] {
			seen[month] = true
			months = append(months, month)
		}
	}
	sort.Strings(months)

	for _, month := range months {
		if err := m.ConsolidateMonth(month); err != nil {
			return nil, err
		}
	}
	return months, nil
}

// dailiesOf lists the month's daily journal files in chronological order.
// Caller holds m.mu.
func (m *Manager) dailiesOf(month string) ([]string, error) {
	entries, err := m.store.List(".")
	if err != nil {
		return nil, err
	}
	var dailies []string
	for _, e := range entries {
		if dailyJournalRE.MatchString(e.Name) && strings.HasPrefix(e.Name, month+"-") {
			dailies = append(dailies, e.Name)
		}
	}
	sort.Strings(dailies)
	return dailies, nil
}

// bundleKeys indexes a bundle's date headers and (header, marker) session
// keys for duplicate detection.
func bundleKeys(bundle string) (headers map[string]bool, sessions map[string]bool) {
	headers = make(map[string]bool)
	sessions = make(map[string]bool)
	header := ""
	for _, line := range strings.Split(bundle, "\n") {
		trimmed := strings.TrimSpace(line)
		if headerRE.MatchString(trimmed) {
			header = trimmed
			headers[header] = true
			continue
		}
		if markerRE.MatchString(trimmed) {
			sessions[header+"|"+trimmed] = true
		}
	}
	return headers, sessions
}

// mergeDay appends the parts of one daily file that the bundle does not
// already hold and records the new keys.
func mergeDay(bundle, day string, headers, sessions map[string]bool) string {
	header, parts := splitDay(day)

	if !headers[header] {
		// Whole day is new to the bundle.
		if header != "" {
			headers[header] = true
		}
		for _, s := range parts {
			if s.key != "" {
				sessions[s.key] = true
			}
		}
		return appendChunk(bundle, day)
	}

	for _, s := range parts {
		if s.key == "" || sessions[s.key] {
			continue
		}
		sessions[s.key] = true
		bundle = insertIntoDay(bundle, header, s.text)
	}
	return bundle
}

// insertIntoDay places chunk at the end of header's block in the bundle,
// before the next day's header, so a daily re-uploaded after its month was
// bundled keeps the bundle chronological.
func insertIntoDay(bundle, header, chunk string) string {
	chunk = strings.Trim(chunk, "\n")
	if chunk == "" {
		return bundle
	}

	lines := strings.Split(bundle, "\n")
	day := -1
	insert := len(lines)
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !headerRE.MatchString(trimmed) {
			continue
		}
		if day >= 0 {
			insert = i
			break
		}
		if trimmed == header {
			day = i
		}
	}
	if day < 0 {
		return appendChunk(bundle, chunk)
	}

	head := strings.TrimRight(strings.Join(lines[:insert], "\n"), "\n")
	tail := strings.Trim(strings.Join(lines[insert:], "\n"), "\n")
	out := head + "\n\n" + chunk + "\n"
	if tail != "" {
		out += "\n" + tail + "\n"
	}
	return out
}

// splitDay parses a daily file into its date header and marker-delimited
// sessions. Text before the first marker belongs to no session and is
// only carried when the whole day is appended.
func splitDay(day string) (header string, parts []journalSession) {
	lines := strings.Split(day, "\n")
	var current *journalSession
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if header == "" && headerRE.MatchString(trimmed) {
			header = trimmed
			continue
		}
		if markerRE.MatchString(trimmed) {
			if current != nil {
				parts = append(parts, *current)
			}
			current = &journalSession{key: header + "|" + trimmed, text: line}
			continue
		}
		if current != nil {
			current.text += "\n" + line
		}
	}
	if current != nil {
		parts = append(parts, *current)
	}
	return header, parts
}

// appendChunk joins two journal chunks with a blank line between them.
func appendChunk(bundle, chunk string) string {
	chunk = strings.Trim(chunk, "\n")
	if chunk == "" {
		return bundle
	}
	if bundle == "" {
		return chunk + "\n"
	}
	return strings.TrimRight(bundle, "\n") + "\n\n" + chunk + "\n"
}
