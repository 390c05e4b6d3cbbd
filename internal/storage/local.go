package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/hollisk/paperwright/internal/errs"
)

// Local is a Store backed by a directory on the local filesystem.
type Local struct {
	root string
}

// NewLocal creates a local store rooted at dir, creating it if needed.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage root %s: %w", dir, err)
	}
	return &Local{root: dir}, nil
}

// Root returns the absolute root directory of the store.
func (l *Local) Root() string {
	return l.root
}

func (l *Local) abs(path string) string {
	return filepath.Join(l.root, filepath.FromSlash(path))
}

// ReadFile reads the file at path.
func (l *Local) ReadFile(path string) ([]byte, error) {
	data, err := os.ReadFile(l.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFound(path)
		}
		return nil, errs.IO("read "+path, err)
	}
	return data, nil
}

// WriteFile writes data to path atomically: the content lands in a
// temporary file first and is renamed into place, so a power loss mid-write
// never leaves a truncated document.
func (l *Local) WriteFile(path string, data []byte) error {
	target := l.abs(path)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errs.IO("write "+path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(target), ".paperwright-*")
	if err != nil {
		return errs.IO("write "+path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errs.IO("write "+path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errs.IO("write "+path, err)
	}
	if err := os.Rename(tmpName, target); err != nil {
		os.Remove(tmpName)
		return errs.IO("write "+path, err)
	}
	return nil
}

// List returns the entries of dir sorted by name.
func (l *Local) List(dir string) ([]Entry, error) {
	dirEntries, err := os.ReadDir(l.abs(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errs.NotFound(dir)
		}
		return nil, errs.IO("list "+dir, err)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		info, err := de.Info()
		if err != nil {
			continue
		}
		entries = append(entries, Entry{
			Name:    de.Name(),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			IsDir:   de.IsDir(),
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name < entries[j].Name })
	return entries, nil
}

// Move renames src to dst, creating dst's parent directory if needed.
func (l *Local) Move(src, dst string) error {
	target := l.abs(dst)
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return errs.IO("move "+src, err)
	}
	if err := os.Rename(l.abs(src), target); err != nil {
		if os.IsNotExist(err) {
			return errs.NotFound(src)
		}
		return errs.IO(fmt.Sprintf("move %s to %s", src, dst), err)
	}
	return nil
}

// Remove deletes the file at path.
func (l *Local) Remove(path string) error {
	if err := os.Remove(l.abs(path)); err != nil {
		if os.IsNotExist(err) {
			return errs.NotFound(path)
		}
		return errs.IO("remove "+path, err)
	}
	return nil
}

// MkdirAll creates dir and any missing parents.
func (l *Local) MkdirAll(dir string) error {
	if err := os.MkdirAll(l.abs(dir), 0755); err != nil {
		return errs.IO("mkdir "+dir, err)
	}
	return nil
}

// Stat returns the entry for path.
func (l *Local) Stat(path string) (Entry, error) {
	info, err := os.Stat(l.abs(path))
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, errs.NotFound(path)
		}
		return Entry{}, errs.IO("stat "+path, err)
	}
	return Entry{
		Name:    info.Name(),
		Size:    info.Size(),
		ModTime: info.ModTime(),
		IsDir:   info.IsDir(),
	}, nil
}

// Exists reports whether path exists.
func (l *Local) Exists(path string) bool {
	_, err := os.Stat(l.abs(path))
	return err == nil
}
