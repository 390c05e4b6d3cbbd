package app

import (
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/hollisk/paperwright/internal/util"
)

// FileEvent is one change under the projects tree.
type FileEvent struct {
	Path      string
	Operation string
}

// FileWatcher reports text-file changes in the projects directory. The
// network transfer surface writes there directly, so list screens refresh
// from these events instead of polling.
type FileWatcher struct {
	watcher *fsnotify.Watcher
	events  chan FileEvent
}

// NewFileWatcher watches root and its subdirectories.
func NewFileWatcher(root string) (*FileWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	fw := &FileWatcher{
		watcher: watcher,
		events:  make(chan FileEvent, 100),
	}
	if err := fw.addTree(root); err != nil {
		watcher.Close()
		return nil, err
	}

	go fw.processEvents()
	return fw, nil
}

func (fw *FileWatcher) addTree(root string) error {
	return filepath.Walk(root, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() {
			return fw.watcher.Add(p)
		}
		return nil
	})
}

func (fw *FileWatcher) processEvents() {
	for {
		select {
		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			// The archive and trash directories appear on first use.
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := fw.watcher.Add(event.Name); err != nil {
						util.LogWarnf("cannot watch %s: %v", event.Name, err)
					}
					continue
				}
			}
			if filepath.Ext(event.Name) == ".txt" {
				fw.events <- FileEvent{
					Path:      event.Name,
					Operation: event.Op.String(),
				}
			}

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			util.LogError("file monitoring error: " + err.Error())
		}
	}
}

func (fw *FileWatcher) Events() <-chan FileEvent {
	return fw.events
}

func (fw *FileWatcher) Close() error {
	return fw.watcher.Close()
}
