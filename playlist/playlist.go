// ABOUTME: Defines the Playlist value type produced by imports
// ABOUTME: Provides name derivation from playlist file paths with a generic fallback

// Package playlist implements import of M3U and PLS playlist files.
// It extracts candidate entries from loosely specified text formats,
// resolves them to canonical local paths or remote stream URIs, and
// assembles ordered playlists of resolved tracks. Nothing in the
// pipeline is fatal: malformed lines, undecodable entries, and
// missing files are dropped so as much as possible is salvaged from
// a damaged playlist file.
package playlist

import (
	"path/filepath"
	"strings"
)

// DefaultName is used when neither an explicit name nor a source file
// name is available.
const DefaultName = "New Playlist"

// Playlist is a named, ordered list of resolved tracks. The order is
// the playback order from the source file. It never contains nil
// entries; anything that failed resolution was dropped during
// assembly.
type Playlist struct {
	Name   string
	Tracks []*Track
}

// Len returns the number of resolved tracks.
func (p *Playlist) Len() int {
	return len(p.Tracks)
}

// NameForFile derives a playlist name from a playlist file path by
// stripping the directory and extension. An empty path (e.g. a
// non-file-backed stream) falls back to DefaultName.
func NameForFile(path string) string {
	if path == "" {
		return DefaultName
	}

	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}
