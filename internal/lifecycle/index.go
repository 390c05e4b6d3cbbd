package lifecycle

import (
	"time"

	"github.com/bytedance/sonic"

	"github.com/hollisk/paperwright/internal/storage"
	"github.com/hollisk/paperwright/internal/util"
)

const indexFile = ".index.json"

// metaIndex records per-file metadata the directory layout cannot carry:
// creation kind and timestamps. It is a cache; a missing or corrupt index
// rebuilds over time and never blocks an operation.
type metaIndex struct {
	Entries map[string]indexEntry `json:"entries"`
}

type indexEntry struct {
	Kind      Kind      `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func loadIndex(store storage.Store) *metaIndex {
	idx := &metaIndex{Entries: make(map[string]indexEntry)}
	data, err := store.ReadFile(indexFile)
	if err != nil {
		return idx
	}
	if err := sonic.Unmarshal(data, idx); err != nil {
		util.LogWarnf("discarding unreadable index: %v", err)
		return &metaIndex{Entries: make(map[string]indexEntry)}
	}
	if idx.Entries == nil {
		idx.Entries = make(map[string]indexEntry)
	}
	return idx
}

func (idx *metaIndex) save(store storage.Store) {
	data, err := sonic.Marshal(idx)
	if err != nil {
		util.LogWarnf("index encode failed: %v", err)
		return
	}
	if err := store.WriteFile(indexFile, data); err != nil {
		util.LogWarnf("index write failed: %v", err)
	}
}

func (idx *metaIndex) touch(id string, kind Kind, now time.Time) {
	e, ok := idx.Entries[id]
	if !ok {
		e = indexEntry{Kind: kind, CreatedAt: now}
	}
	e.UpdatedAt = now
	idx.Entries[id] = e
}

func (idx *metaIndex) rename(oldID, newID string) {
	if e, ok := idx.Entries[oldID]; ok {
		delete(idx.Entries, oldID)
		idx.Entries[newID] = e
	}
}

func (idx *metaIndex) remove(id string) {
	delete(idx.Entries, id)
}
