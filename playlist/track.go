// ABOUTME: Defines the Track type and filesystem probing for imported entries
// ABOUTME: Reads audio tags via dhowden/tag with a filename fallback for untagged files

package playlist

import (
	"fmt"
	"net/url"
	"os"
	gopath "path"
	"path/filepath"
	"strings"

	"github.com/dhowden/tag"
)

// Track is a playable media item referenced by a playlist. Local
// tracks are identified by their canonical absolute path; remote
// stream tracks carry only their URI.
type Track struct {
	Path   string // canonical absolute path, empty for remote streams
	URI    string // stream URI, empty for local files
	Title  string
	Artist string
	Album  string
	Genre  string
}

// audioExtensions lists the file extensions accepted as audio when tag
// probing cannot identify the format itself.
var audioExtensions = map[string]bool{
	".mp3":  true,
	".m4a":  true,
	".m4b":  true,
	".aac":  true,
	".flac": true,
	".ogg":  true,
	".oga":  true,
	".opus": true,
	".wav":  true,
	".aiff": true,
	".aif":  true,
	".wma":  true,
	".ape":  true,
	".wv":   true,
	".mpc":  true,
}

// Remote reports whether the track references a network stream.
func (t *Track) Remote() bool {
	return t.URI != ""
}

// Location returns the track's path for local files or its URI for
// remote streams.
func (t *Track) Location() string {
	if t.Remote() {
		return t.URI
	}

	return t.Path
}

// String returns a short display form of the track.
func (t *Track) String() string {
	if t.Artist != "" {
		return fmt.Sprintf("%s - %s", t.Artist, t.Title)
	}

	return t.Title
}

// ProbeTrack constructs a Track for a local file by reading its tags.
// Returns nil when the file is missing, unreadable, or not a known
// audio format; the import pipeline drops such entries silently.
// Untagged but playable files are common, so a tag read failure on an
// existing file with a known audio extension falls back to a bare
// track titled by filename.
func ProbeTrack(path string) *Track {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}

	defer func() { _ = f.Close() }()

	if fi, err := f.Stat(); err != nil || fi.IsDir() {
		return nil
	}

	md, err := tag.ReadFrom(f)
	if err != nil {
		if !audioExtensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		return &Track{Path: path, Title: titleForPath(path)}
	}

	track := &Track{
		Path:   path,
		Title:  md.Title(),
		Artist: md.Artist(),
		Album:  md.Album(),
		Genre:  md.Genre(),
	}

	// If title is empty, use filename
	if track.Title == "" {
		track.Title = titleForPath(path)
	}

	return track
}

// RemoteTrack constructs a track for a network stream URI. Remote
// streams are never validated locally; playability is the player's
// problem.
func RemoteTrack(uri string) *Track {
	return &Track{URI: uri, Title: titleForURI(uri)}
}

// titleForPath derives a display title from a file path by stripping
// the directory and extension.
func titleForPath(path string) string {
	base := filepath.Base(path)

	return strings.TrimSuffix(base, filepath.Ext(base))
}

// titleForURI derives a display title from the last URL path segment,
// falling back to the full URI for opaque or path-less streams.
func titleForURI(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Path == "" || u.Path == "/" {
		return uri
	}

	return gopath.Base(u.Path)
}
