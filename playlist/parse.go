// ABOUTME: Tolerant line-oriented parsers for M3U and PLS playlist text
// ABOUTME: Extracts candidate entries best-effort and never rejects a malformed file

package playlist

import (
	"bufio"
	"bytes"
	"io"
)

// maxLineBytes caps a single playlist line. Lines beyond this are
// treated as garbage and end extraction with whatever was collected.
const maxLineBytes = 1 << 20

// ParseM3U extracts entries from M3U text and assembles a playlist.
// Lines starting with # are comments; every other non-empty line is
// attempted as an entry. Entries that cannot be decoded or resolved
// are dropped individually, never fatal to the parse. An empty
// sourceDir falls back to the importer's configured base directory.
func (im *Importer) ParseM3U(r io.Reader, name, sourceDir string) *Playlist {
	sourceDir = im.sourceDir(sourceDir)

	var locators []Locator

	scanner := newLineScanner(r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] == '#' {
			continue
		}

		im.attemptAdd(line, sourceDir, &locators)
	}

	if err := scanner.Err(); err != nil {
		// Best-effort extraction: binary garbage ends the scan but
		// keeps everything collected so far.
		im.debugf("playlist scan ended early: %v", err)
	}

	return im.Assemble(name, locators)
}

// ParsePLS extracts entries from PLS text and assembles a playlist.
// Only lines whose trimmed, case-insensitive prefix is "file" are
// candidates (the FileN=value convention); the value is everything
// after the first '=', trimmed. All other lines, including
// [playlist] headers and NumberOfEntries, are ignored.
func (im *Importer) ParsePLS(r io.Reader, name, sourceDir string) *Playlist {
	sourceDir = im.sourceDir(sourceDir)

	var locators []Locator

	scanner := newLineScanner(r)
	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if !bytes.HasPrefix(bytes.ToLower(line), []byte("file")) {
			continue
		}

		idx := bytes.IndexByte(line, '=')
		if idx < 0 {
			continue
		}

		value := bytes.TrimSpace(line[idx+1:])
		if len(value) == 0 {
			continue
		}

		im.attemptAdd(value, sourceDir, &locators)
	}

	if err := scanner.Err(); err != nil {
		im.debugf("playlist scan ended early: %v", err)
	}

	return im.Assemble(name, locators)
}

// attemptAdd resolves one raw entry and collects its locator. Entries
// that fail decoding or resolution are dropped and the parse
// continues.
func (im *Importer) attemptAdd(raw []byte, sourceDir string, locators *[]Locator) {
	loc, err := ResolveEntry(raw, sourceDir)
	if err != nil {
		im.debugf("dropping playlist entry %q: %v", raw, err)

		return
	}

	*locators = append(*locators, loc)
}

// newLineScanner builds a scanner sized for playlist lines.
func newLineScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return scanner
}
