package storage

import (
	"testing"

	"github.com/hollisk/paperwright/internal/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Local {
	t.Helper()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestWriteReadRoundTrip(t *testing.T) {
	store := newTestStore(t)

	content := []byte("January 5, 2024\n\n--- 9:12am ---\n\nfirst words")
	require.NoError(t, store.WriteFile("2024-01-05.txt", content))

	got, err := store.ReadFile("2024-01-05.txt")
	require.NoError(t, err)
	assert.Equal(t, content, got)
}

func TestReadMissingFileIsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.ReadFile("absent.txt")
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestWriteOverwritesAtomically(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.WriteFile("draft.txt", []byte("v1")))
	require.NoError(t, store.WriteFile("draft.txt", []byte("v2")))

	got, err := store.ReadFile("draft.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got)

	// No temp files left behind.
	entries, err := store.List(".")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestWriteCreatesParentDirectories(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.WriteFile(".trash/old.txt", []byte("x")))
	assert.True(t, store.Exists(".trash/old.txt"))
}

func TestListSortedByName(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.WriteFile("b.txt", []byte("b")))
	require.NoError(t, store.WriteFile("a.txt", []byte("a")))
	require.NoError(t, store.WriteFile("c.txt", []byte("c")))

	entries, err := store.List(".")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, "a.txt", entries[0].Name)
	assert.Equal(t, "b.txt", entries[1].Name)
	assert.Equal(t, "c.txt", entries[2].Name)
}

func TestListMissingDirIsNotFound(t *testing.T) {
	store := newTestStore(t)

	_, err := store.List("nope")
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestMove(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.WriteFile("Old Name.txt", []byte("body")))
	require.NoError(t, store.Move("Old Name.txt", "New Name.txt"))

	assert.False(t, store.Exists("Old Name.txt"))
	got, err := store.ReadFile("New Name.txt")
	require.NoError(t, err)
	assert.Equal(t, []byte("body"), got)
}

func TestMoveIntoSubdirectory(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.WriteFile("doomed.txt", []byte("x")))
	require.NoError(t, store.Move("doomed.txt", ".trash/doomed.txt"))

	assert.True(t, store.Exists(".trash/doomed.txt"))
}

func TestMoveMissingSourceIsNotFound(t *testing.T) {
	store := newTestStore(t)

	err := store.Move("ghost.txt", "anywhere.txt")
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestRemove(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.WriteFile("gone.txt", []byte("x")))
	require.NoError(t, store.Remove("gone.txt"))
	assert.False(t, store.Exists("gone.txt"))

	err := store.Remove("gone.txt")
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}

func TestStat(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.WriteFile("info.txt", []byte("12345")))

	entry, err := store.Stat("info.txt")
	require.NoError(t, err)
	assert.Equal(t, "info.txt", entry.Name)
	assert.Equal(t, int64(5), entry.Size)
	assert.False(t, entry.IsDir)

	_, err = store.Stat("missing.txt")
	assert.True(t, errs.Is(err, errs.CodeNotFound))
}
