// ABOUTME: Resolves raw playlist entries into canonical local paths or remote URIs
// ABOUTME: Handles relative paths, file:// URIs, and unrecognized stream schemes

package playlist

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"unicode/utf8"
)

// LocatorKind distinguishes local files from remote streams.
type LocatorKind int

const (
	// LocalPath is a canonical absolute filesystem path.
	LocalPath LocatorKind = iota
	// RemoteURI is an opaque URI referencing a network stream.
	RemoteURI
)

// Locator is the resolved form of a raw playlist entry: either a
// canonical local path or an opaque remote URI. Exactly one of Path
// and URI is set, matching Kind.
type Locator struct {
	Kind LocatorKind
	Path string
	URI  string
}

var (
	errInvalidEncoding = errors.New("entry is not valid UTF-8")
	errRelativeNoBase  = errors.New("relative entry with no source directory")
)

// ResolveEntry normalizes a raw playlist entry against the playlist's
// source directory. Plain paths and file:// URIs become canonical
// absolute paths; URIs that cannot be converted to a local path are
// classified as remote streams rather than rejected, deferring any
// playability check to later stages. An empty sourceDir means no
// relative resolution is possible: relative entries fail and the
// caller drops them.
func ResolveEntry(raw []byte, sourceDir string) (Locator, error) {
	if !utf8.Valid(raw) {
		return Locator{}, errInvalidEncoding
	}

	entry := string(raw)

	if u, ok := parseURI(entry); ok {
		path, err := uriToPath(u)
		if err != nil {
			// Unrecognized scheme or unconvertible URI. Hand the
			// original string off untouched as a remote stream.
			return Locator{Kind: RemoteURI, URI: entry}, nil
		}

		return localLocator(path, sourceDir)
	}

	return localLocator(entry, sourceDir)
}

// parseURI reports whether the entry is syntactically a URI. Schemes
// must be at least two characters so Windows drive prefixes such as
// "C:\Music" stay classified as plain paths.
func parseURI(entry string) (*url.URL, bool) {
	u, err := url.Parse(entry)
	if err != nil || u.Scheme == "" || len(u.Scheme) < 2 {
		return nil, false
	}

	return u, true
}

// uriToPath converts a file-scheme URI to a filesystem path,
// percent-decoding along the way.
func uriToPath(u *url.URL) (string, error) {
	if u.Scheme != "file" {
		return "", fmt.Errorf("scheme %q is not local", u.Scheme)
	}

	if u.Host != "" && u.Host != "localhost" {
		return "", fmt.Errorf("file URI on remote host %q", u.Host)
	}

	if u.Path == "" {
		return "", errors.New("file URI has no path")
	}

	return filepath.FromSlash(u.Path), nil
}

// localLocator joins a path with the source directory and
// canonicalizes it into an absolute path.
func localLocator(path, sourceDir string) (Locator, error) {
	if !filepath.IsAbs(path) {
		if sourceDir == "" {
			return Locator{}, errRelativeNoBase
		}

		path = filepath.Join(sourceDir, path)
	}

	canonical, err := canonicalize(path)
	if err != nil {
		return Locator{}, err
	}

	return Locator{Kind: LocalPath, Path: canonical}, nil
}

// canonicalize resolves relative segments and symlinks to an absolute
// path. A missing target is not an error here: the path keeps its
// cleaned absolute form and probing decides later whether the entry
// is playable.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to absolutize %q: %w", path, err)
	}

	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}

	return filepath.Clean(abs), nil
}
