// ABOUTME: In-memory music library index keyed by canonical file path
// ABOUTME: Scans a music root in parallel and serves read-only lookups for imports

// Package library maintains an in-memory index of known tracks so
// playlist imports can reuse existing track objects instead of
// re-probing files on disk.
package library

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sync"

	"playlist-importer/playlist"
	"playlist-importer/pool"
)

// Library indexes the tracks under a music root directory. Lookups
// are safe for concurrent use; the index is only mutated by Scan and
// the watcher.
type Library struct {
	root string

	mu     sync.RWMutex
	tracks map[string]*playlist.Track
}

// Open creates a library rooted at dir and performs an initial scan.
func Open(dir string) (*Library, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to absolutize music root: %w", err)
	}

	root, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve music root: %w", err)
	}

	lib := &Library{
		root:   root,
		tracks: make(map[string]*playlist.Track),
	}

	if err := lib.Scan(); err != nil {
		return nil, err
	}

	return lib, nil
}

// Root returns the canonical music root directory.
func (l *Library) Root() string {
	return l.root
}

// Scan walks the music root and probes candidate files in parallel,
// replacing the index with the result. Files that fail probing are
// simply not indexed.
func (l *Library) Scan() error {
	var paths []string

	err := filepath.WalkDir(l.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtree; index what we can reach
			return nil
		}

		if !d.IsDir() {
			paths = append(paths, path)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk music root: %w", err)
	}

	tracks := make(map[string]*playlist.Track, len(paths))

	var mu sync.Mutex

	workers := pool.New(0, len(paths)+1)
	defer workers.Close()

	for _, path := range paths {
		path := path

		workers.Submit(func() {
			canonical, track := probeCanonical(path)
			if track == nil {
				return
			}

			mu.Lock()
			tracks[canonical] = track
			mu.Unlock()
		})
	}

	workers.Wait()

	l.mu.Lock()
	l.tracks = tracks
	l.mu.Unlock()

	return nil
}

// GetByPath returns the track indexed at the canonical path, or nil
// when the library does not know it.
func (l *Library) GetByPath(path string) *playlist.Track {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return l.tracks[path]
}

// Len returns the number of indexed tracks.
func (l *Library) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	return len(l.tracks)
}

// refresh re-probes a single file and updates its index entry,
// dropping the entry when the file is no longer a playable track.
func (l *Library) refresh(path string) {
	canonical, track := probeCanonical(path)
	if track == nil {
		l.remove(path)

		return
	}

	l.mu.Lock()
	l.tracks[canonical] = track
	l.mu.Unlock()
}

// remove drops a file's index entry, if present.
func (l *Library) remove(path string) {
	canonical, err := canonicalPath(path)
	if err != nil {
		return
	}

	l.mu.Lock()
	delete(l.tracks, canonical)
	l.mu.Unlock()
}

// probeCanonical canonicalizes a path and probes it, returning the
// canonical path and the track with its Path rewritten to the
// canonical form. The track is nil when probing fails.
func probeCanonical(path string) (string, *playlist.Track) {
	canonical, err := canonicalPath(path)
	if err != nil {
		return "", nil
	}

	track := playlist.ProbeTrack(canonical)
	if track == nil {
		return canonical, nil
	}

	return canonical, track
}

// canonicalPath resolves a path to its absolute, symlink-free form.
// Missing files keep their cleaned absolute path so removals can
// still find their index key.
func canonicalPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}

	return filepath.Clean(abs), nil
}
