package lifecycle

import (
	"testing"
	"time"

	"github.com/hollisk/paperwright/internal/core/document"
	"github.com/hollisk/paperwright/internal/errs"
	"github.com/hollisk/paperwright/internal/storage"
	"github.com/hollisk/paperwright/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testClock pins the global time provider to a mutable instant.
type testClock struct {
	now time.Time
}

func newTestClock(t *testing.T, at time.Time) *testClock {
	t.Helper()
	c := &testClock{now: at}
	provider := util.GetTimeProvider()
	provider.SetNowFunc(func() time.Time { return c.now })
	t.Cleanup(func() { provider.SetNowFunc(time.Now) })
	return c
}

func (c *testClock) advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newTestManager(t *testing.T) (*Manager, *storage.Local, *testClock) {
	t.Helper()
	clock := newTestClock(t, time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC))
	store, err := storage.NewLocal(t.TempDir())
	require.NoError(t, err)
	return NewManager(store, 5*time.Minute), store, clock
}

func TestEnsureSeededFirstRun(t *testing.T) {
	m, store, _ := newTestManager(t)

	require.NoError(t, m.EnsureSeeded())

	data, err := store.ReadFile("2024-04-10.txt")
	require.NoError(t, err)
	assert.Equal(t, "April 10, 2024\n\n", string(data))
	assert.True(t, store.Exists("Project One.txt"))
	assert.True(t, store.Exists(".initialized"))
}

func TestEnsureSeededIsOncePerDevice(t *testing.T) {
	m, store, _ := newTestManager(t)

	require.NoError(t, m.EnsureSeeded())
	require.NoError(t, store.Remove("Project One.txt"))

	// The flag file, not the file set, gates reseeding.
	require.NoError(t, m.EnsureSeeded())
	assert.False(t, store.Exists("Project One.txt"))
}

func TestOpenJournalCreatesTodayFile(t *testing.T) {
	m, store, _ := newTestManager(t)

	id, doc, err := m.OpenJournalForToday()
	require.NoError(t, err)
	assert.Equal(t, "2024-04-10.txt", id)

	data, err := store.ReadFile(id)
	require.NoError(t, err)
	assert.Equal(t, "April 10, 2024\n\n--- 09:00am ---\n", string(data))
	assert.Equal(t, doc.End(), doc.Cursor())
}

func TestReopenWithinGapKeepsSession(t *testing.T) {
	m, _, clock := newTestManager(t)

	id, doc, err := m.OpenJournalForToday()
	require.NoError(t, err)
	require.NoError(t, m.CloseSession(id, doc))

	clock.advance(time.Minute)
	_, doc, err = m.OpenJournalForToday()
	require.NoError(t, err)

	assert.Equal(t, 1, countMarkers(doc), "no duplicate marker within the gap")
}

func TestReopenAfterGapStartsNewSession(t *testing.T) {
	m, _, clock := newTestManager(t)

	id, doc, err := m.OpenJournalForToday()
	require.NoError(t, err)
	_, err = doc.Insert(doc.End(), "some words")
	require.NoError(t, err)
	require.NoError(t, m.CloseSession(id, doc))

	clock.advance(10 * time.Minute)
	_, doc, err = m.OpenJournalForToday()
	require.NoError(t, err)

	assert.Equal(t, 2, countMarkers(doc))
	assert.Contains(t, string(doc.Serialize()), "--- 09:10am ---")
}

func TestFirstOpenOfRunSkipsMarkerIfFileEndsWithOne(t *testing.T) {
	_, store, _ := newTestManager(t)
	content := "April 10, 2024\n\n--- 08:55am ---\n"
	require.NoError(t, store.WriteFile("2024-04-10.txt", []byte(content)))

	// Fresh manager simulates a process restart.
	m := NewManager(store, 5*time.Minute)
	_, doc, err := m.OpenJournalForToday()
	require.NoError(t, err)

	assert.Equal(t, 1, countMarkers(doc))
}

func TestFirstOpenOfRunAppendsMarkerAfterText(t *testing.T) {
	_, store, _ := newTestManager(t)
	content := "April 10, 2024\n\n--- 07:00am ---\n\nmorning pages"
	require.NoError(t, store.WriteFile("2024-04-10.txt", []byte(content)))

	m := NewManager(store, 5*time.Minute)
	_, doc, err := m.OpenJournalForToday()
	require.NoError(t, err)

	assert.Equal(t, 2, countMarkers(doc))
}

func countMarkers(doc *document.Document) int {
	n := 0
	for i := 0; i < doc.LineCount(); i++ {
		if markerRE.MatchString(doc.Line(i)) {
			n++
		}
	}
	return n
}

func TestCreateProject(t *testing.T) {
	m, store, _ := newTestManager(t)

	id, err := m.CreateProject("Novel Draft")
	require.NoError(t, err)
	assert.Equal(t, "Novel Draft.txt", id)
	assert.True(t, store.Exists(id))
}

func TestCreateProjectNameConflict(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.CreateProject("Twice")
	require.NoError(t, err)
	_, err = m.CreateProject("  Twice ")
	assert.True(t, errs.Is(err, errs.CodeNameConflict))
}

func TestCreateProjectConflictsWithTrashed(t *testing.T) {
	m, _, _ := newTestManager(t)

	id, err := m.CreateProject("Ghost")
	require.NoError(t, err)
	require.NoError(t, m.DeleteProject(id))

	_, err = m.CreateProject("Ghost")
	assert.True(t, errs.Is(err, errs.CodeNameConflict),
		"a trashed file still owns its name until purged")
}

func TestRenameProject(t *testing.T) {
	m, store, _ := newTestManager(t)

	id, err := m.CreateProject("Draft")
	require.NoError(t, err)
	newID, err := m.RenameProject(id, "Final")
	require.NoError(t, err)

	assert.Equal(t, "Final.txt", newID)
	assert.False(t, store.Exists("Draft.txt"))
	assert.True(t, store.Exists("Final.txt"))
}

func TestRenameProjectConflict(t *testing.T) {
	m, _, _ := newTestManager(t)

	_, err := m.CreateProject("A")
	require.NoError(t, err)
	idB, err := m.CreateProject("B")
	require.NoError(t, err)

	_, err = m.RenameProject(idB, "A")
	assert.True(t, errs.Is(err, errs.CodeNameConflict))
	assert.True(t, m.store.Exists("B.txt"), "failed rename mutates nothing")
}

func TestLifecycleTransitions(t *testing.T) {
	m, store, _ := newTestManager(t)
	id, err := m.CreateProject("Cycle")
	require.NoError(t, err)

	require.NoError(t, m.ArchiveProject(id))
	assert.True(t, store.Exists(".archive/Cycle.txt"))

	require.NoError(t, m.UnarchiveProject(id))
	assert.True(t, store.Exists("Cycle.txt"))

	require.NoError(t, m.DeleteProject(id))
	assert.True(t, store.Exists(".trash/Cycle.txt"))

	require.NoError(t, m.RestoreProject(id))
	assert.True(t, store.Exists("Cycle.txt"))
}

func TestDeleteThenRestoreIsByteIdentical(t *testing.T) {
	m, store, _ := newTestManager(t)
	id, err := m.CreateProject("Precious")
	require.NoError(t, err)

	content := []byte("every word\nof this\nmust survive")
	require.NoError(t, store.WriteFile(id, content))

	require.NoError(t, m.DeleteProject(id))
	require.NoError(t, m.RestoreProject(id))

	got, err := store.ReadFile(id)
	require.NoError(t, err)
	assert.Equal(t, content, got)

	inv, err := m.Inventory()
	require.NoError(t, err)
	for _, f := range inv {
		if f.ID == id {
			assert.Equal(t, StateActive, f.State)
		}
	}
}

func TestPurgeRequiresTrashedState(t *testing.T) {
	m, _, _ := newTestManager(t)
	id, err := m.CreateProject("Keep")
	require.NoError(t, err)

	err = m.PurgeTrash(id)
	assert.True(t, errs.Is(err, errs.CodeBadState))
	assert.True(t, m.store.Exists(id))
}

func TestPurgeTrashIsTerminal(t *testing.T) {
	m, store, _ := newTestManager(t)
	id, err := m.CreateProject("Doomed")
	require.NoError(t, err)

	require.NoError(t, m.DeleteProject(id))
	require.NoError(t, m.PurgeTrash(id))

	assert.False(t, store.Exists(".trash/Doomed.txt"))
	err = m.RestoreProject(id)
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestPurgeAllTrash(t *testing.T) {
	m, _, _ := newTestManager(t)
	for _, name := range []string{"One", "Two"} {
		id, err := m.CreateProject(name)
		require.NoError(t, err)
		require.NoError(t, m.DeleteProject(id))
	}

	require.NoError(t, m.PurgeAllTrash())

	trashed, err := m.Trashed()
	require.NoError(t, err)
	assert.Empty(t, trashed)
}

func TestLockExclusivity(t *testing.T) {
	m, _, _ := newTestManager(t)
	id, err := m.CreateProject("Busy")
	require.NoError(t, err)

	doc, err := m.OpenProject(id)
	require.NoError(t, err)

	assert.True(t, errs.Is(m.DeleteProject(id), errs.CodeFileBusy))
	assert.True(t, errs.Is(m.ArchiveProject(id), errs.CodeFileBusy))
	_, err = m.RenameProject(id, "Other")
	assert.True(t, errs.Is(err, errs.CodeFileBusy))

	_, err = m.OpenProject(id)
	assert.True(t, errs.Is(err, errs.CodeFileBusy), "no second session on the same file")

	// After the session closes the same operation succeeds.
	require.NoError(t, m.CloseSession(id, doc))
	assert.NoError(t, m.DeleteProject(id))
}

func TestSaveRequiresOpenSession(t *testing.T) {
	m, _, _ := newTestManager(t)
	id, err := m.CreateProject("Stray")
	require.NoError(t, err)

	err = m.SaveDocument(id, document.New())
	assert.True(t, errs.Is(err, errs.CodeBadState))
}

func TestCloseSessionPersistsDirtyBuffer(t *testing.T) {
	m, store, _ := newTestManager(t)
	id, err := m.CreateProject("Notes")
	require.NoError(t, err)

	doc, err := m.OpenProject(id)
	require.NoError(t, err)
	_, err = doc.Insert(doc.End(), "remember this")
	require.NoError(t, err)

	require.NoError(t, m.CloseSession(id, doc))

	data, err := store.ReadFile(id)
	require.NoError(t, err)
	assert.Equal(t, "remember this", string(data))
	assert.False(t, doc.Dirty())
}

func TestOpenProjectRejectsArchived(t *testing.T) {
	m, _, _ := newTestManager(t)
	id, err := m.CreateProject("Shelved")
	require.NoError(t, err)
	require.NoError(t, m.ArchiveProject(id))

	_, err = m.OpenProject(id)
	assert.True(t, errs.Is(err, errs.CodeBadState))
}

func TestInventoryListsAllStates(t *testing.T) {
	m, _, _ := newTestManager(t)
	require.NoError(t, m.EnsureSeeded())

	idA, err := m.CreateProject("Archived One")
	require.NoError(t, err)
	require.NoError(t, m.ArchiveProject(idA))
	idT, err := m.CreateProject("Trashed One")
	require.NoError(t, err)
	require.NoError(t, m.DeleteProject(idT))

	inv, err := m.Inventory()
	require.NoError(t, err)

	states := make(map[string]State)
	kinds := make(map[string]Kind)
	for _, f := range inv {
		states[f.ID] = f.State
		kinds[f.ID] = f.Kind
	}
	assert.Equal(t, StateActive, states["Project One.txt"])
	assert.Equal(t, StateActive, states["2024-04-10.txt"])
	assert.Equal(t, StateArchived, states["Archived One.txt"])
	assert.Equal(t, StateTrashed, states["Trashed One.txt"])
	assert.Equal(t, KindJournal, kinds["2024-04-10.txt"])
	assert.Equal(t, KindProject, kinds["Project One.txt"])
}

func TestInventoryReadsMetadataFromIndex(t *testing.T) {
	m, store, clock := newTestManager(t)

	_, err := m.CreateProject("Draft")
	require.NoError(t, err)
	created := clock.now

	// A rename to a journal-shaped name two days later: the name pattern
	// now says journal, the index still knows the file is a project
	// created on the original day.
	clock.advance(48 * time.Hour)
	id, err := m.RenameProject("Draft.txt", "2024-02-03")
	require.NoError(t, err)

	// A fresh manager must read the metadata back from disk.
	m2 := NewManager(store, 5*time.Minute)
	inv, err := m2.Inventory()
	require.NoError(t, err)

	var got ProjectFile
	for _, f := range inv {
		if f.ID == id {
			got = f
		}
	}
	require.Equal(t, id, got.ID)
	assert.Equal(t, KindProject, got.Kind)
	assert.True(t, got.CreatedAt.Equal(created),
		"creation time survives the rename, got %v", got.CreatedAt)
}

func TestInventorySurvivesCorruptIndex(t *testing.T) {
	m, store, _ := newTestManager(t)
	_, err := m.CreateProject("Draft")
	require.NoError(t, err)
	require.NoError(t, store.WriteFile(".index.json", []byte("not json")))

	m2 := NewManager(store, 5*time.Minute)
	inv, err := m2.Inventory()
	require.NoError(t, err)

	var got ProjectFile
	for _, f := range inv {
		if f.ID == "Draft.txt" {
			got = f
		}
	}
	require.Equal(t, "Draft.txt", got.ID)
	assert.Equal(t, KindProject, got.Kind, "kind degrades to the name pattern")
	assert.True(t, got.CreatedAt.Equal(got.ModTime), "creation time degrades to mtime")
}

func TestActiveProjectsExcludesJournalsAndHiddenStates(t *testing.T) {
	m, _, _ := newTestManager(t)
	require.NoError(t, m.EnsureSeeded())
	idA, err := m.CreateProject("Visible")
	require.NoError(t, err)
	_ = idA
	idB, err := m.CreateProject("Hidden")
	require.NoError(t, err)
	require.NoError(t, m.ArchiveProject(idB))

	projects, err := m.ActiveProjects()
	require.NoError(t, err)

	var names []string
	for _, p := range projects {
		names = append(names, p.ID)
	}
	assert.Equal(t, []string{"Project One.txt", "Visible.txt"}, names)
}
