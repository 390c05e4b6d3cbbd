// Package storage defines the file-system primitives the lifecycle manager
// and the autosave path are expressed in. Backing it with the local
// filesystem is the production deployment; tests may substitute a failing
// store to exercise retry behavior.
package storage

import (
	"time"
)

// Entry describes one file in a listing.
type Entry struct {
	Name    string
	Size    int64
	ModTime time.Time
	IsDir   bool
}

// Store is the storage interface. Paths are relative to the store root and
// use forward slashes. Implementations map failures onto the errs
// taxonomy: a missing file is errs.CodeNotFound, anything else is
// errs.CodeIO.
type Store interface {
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	List(dir string) ([]Entry, error)
	Move(src, dst string) error
	Remove(path string) error
	MkdirAll(dir string) error
	Stat(path string) (Entry, error)
	Exists(path string) bool
}
