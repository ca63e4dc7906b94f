// ABOUTME: Assembles ordered playlists from resolved locators
// ABOUTME: Handles library sharing, progress ticks, and cooperative cancellation

package playlist

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Library is the external catalog of already-known tracks, queried by
// canonical path so imports reuse existing track objects instead of
// re-probing files. Implementations must be safe for concurrent
// read-only use; this package never mutates the library.
type Library interface {
	// GetByPath returns the track indexed at the canonical path, or
	// nil when the library does not know it.
	GetByPath(path string) *Track
}

// StepFunc is the progress and cancellation seam. It is called once
// per processed entry, successful or not, with the number of entries
// handled so far and the total. Returning true stops the import,
// keeping the tracks resolved up to that point.
type StepFunc func(done, total int) (stop bool)

// Importer drives playlist imports. The zero value imports without a
// library, without progress reporting, and with no fallback base
// directory; all fields are optional.
type Importer struct {
	// Library, when set, is consulted before probing local files.
	Library Library

	// Step, when set, is invoked once per entry and may cancel the
	// import.
	Step StepFunc

	// BaseDir resolves relative entries when the playlist stream has
	// no directory of its own (e.g. piped input).
	BaseDir string

	// Debugf, when set, receives non-fatal per-entry diagnostics.
	Debugf func(format string, args ...any)
}

// ImportFile imports a playlist file from disk. The playlist name is
// derived from the file name and relative entries resolve against the
// file's directory. Files with a .pls extension are parsed as PLS,
// everything else as M3U.
func (im *Importer) ImportFile(path string) (*Playlist, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open playlist: %w", err)
	}

	defer func() { _ = f.Close() }()

	name := NameForFile(path)
	sourceDir := filepath.Dir(path)

	if strings.EqualFold(filepath.Ext(path), ".pls") {
		return im.ParsePLS(f, name, sourceDir), nil
	}

	return im.ParseM3U(f, name, sourceDir), nil
}

// Assemble builds a playlist from locators in their original order,
// which is the playback order. Unresolvable entries are dropped. One
// progress step is reported per locator regardless of outcome; a stop
// request ends assembly immediately with the partial result, which is
// not an error.
func (im *Importer) Assemble(name string, locators []Locator) *Playlist {
	if name == "" {
		name = DefaultName
	}

	pl := &Playlist{Name: name}
	total := len(locators)

	for i, loc := range locators {
		if track := im.resolveTrack(loc); track != nil {
			pl.Tracks = append(pl.Tracks, track)
		}

		if im.Step != nil && im.Step(i+1, total) {
			break
		}
	}

	return pl
}

// resolveTrack turns a locator into a track, preferring the library's
// existing entry for local paths. Remote streams are not locally
// indexed and never consult the library. Returns nil when the entry
// cannot be resolved; this is the single silent-drop point most
// import losses funnel through.
func (im *Importer) resolveTrack(loc Locator) *Track {
	if loc.Kind == RemoteURI {
		return RemoteTrack(loc.URI)
	}

	if im.Library != nil {
		if track := im.Library.GetByPath(loc.Path); track != nil {
			return track
		}
	}

	track := ProbeTrack(loc.Path)
	if track == nil {
		im.debugf("skipping unresolvable entry: %s", loc.Path)
	}

	return track
}

// sourceDir picks the effective source directory for relative
// entries: the stream's own directory when known, otherwise the
// configured fallback. Both empty means relative entries fail.
func (im *Importer) sourceDir(dir string) string {
	if dir != "" {
		return dir
	}

	return im.BaseDir
}

// debugf logs non-fatal diagnostics if a sink is configured.
func (im *Importer) debugf(format string, args ...any) {
	if im.Debugf != nil {
		im.Debugf(format, args...)
	}
}
