// ABOUTME: Watches the music root for file changes and refreshes the index
// ABOUTME: Uses fsnotify with a small debounce to tolerate atomic writes

package library

import (
	"context"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// writeDebounce gives atomic writes a moment to complete before the
// changed file is re-probed.
const writeDebounce = 100 * time.Millisecond

// Watch keeps the index fresh while files under the music root
// change: created and rewritten files are re-probed, removed files
// are dropped, and new directories are added to the watch. It blocks
// until ctx is done.
func (l *Library) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}

	defer func() { _ = watcher.Close() }()

	// fsnotify is not recursive; watch every directory under the root
	err = filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}

		return watcher.Add(path)
	})
	if err != nil {
		return fmt.Errorf("failed to watch music root: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}

			l.handleEvent(watcher, event)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}

			log.Printf("Warning: library watcher error: %v", err)
		}
	}
}

// handleEvent applies a single filesystem event to the index.
func (l *Library) handleEvent(watcher *fsnotify.Watcher, event fsnotify.Event) {
	switch {
	case event.Op&(fsnotify.Create|fsnotify.Write) != 0:
		time.Sleep(writeDebounce)

		if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
			if err := watcher.Add(event.Name); err != nil {
				log.Printf("Warning: failed to watch %s: %v", event.Name, err)
			}

			return
		}

		l.refresh(event.Name)

	case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
		l.remove(event.Name)
	}
}
