// ABOUTME: Tests for ordered playlist assembly from resolved locators
// ABOUTME: Verifies library sharing, progress ticks, cancellation, and naming

package playlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// fakeLibrary indexes tracks by path and counts lookups
type fakeLibrary struct {
	tracks  map[string]*Track
	lookups int
}

func (l *fakeLibrary) GetByPath(path string) *Track {
	l.lookups++

	return l.tracks[path]
}

func TestImportFileMixedEntries(t *testing.T) {
	// The canonical mixed case: a comment, a resolvable local file, a
	// missing file, and a remote stream, in file order
	tmpDir := t.TempDir()
	writeTracks(t, tmpDir, "song1.mp3")

	content := "#comment\nsong1.mp3\nmissing.mp3\nhttp://stream.example/x.mp3\n"
	path := filepath.Join(tmpDir, "mixed.m3u")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	im := &Importer{}

	pl, err := im.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}

	if pl.Name != "mixed" {
		t.Errorf("Expected name %q, got %q", "mixed", pl.Name)
	}

	if pl.Len() != 2 {
		t.Fatalf("Expected 2 tracks, got %d", pl.Len())
	}

	if pl.Tracks[0].Remote() || pl.Tracks[0].Title != "song1" {
		t.Errorf("Expected local song1 first, got %+v", pl.Tracks[0])
	}

	if !pl.Tracks[1].Remote() || pl.Tracks[1].URI != "http://stream.example/x.mp3" {
		t.Errorf("Expected remote stream second, got %+v", pl.Tracks[1])
	}
}

func TestImportFilePLSExtension(t *testing.T) {
	tmpDir := t.TempDir()
	writeTracks(t, tmpDir, "a.mp3")

	content := "[playlist]\nFile1=a.mp3\nNumberOfEntries=1\n"
	path := filepath.Join(tmpDir, "radio.PLS")

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	im := &Importer{}

	pl, err := im.ImportFile(path)
	if err != nil {
		t.Fatalf("ImportFile failed: %v", err)
	}

	if pl.Name != "radio" {
		t.Errorf("Expected name %q, got %q", "radio", pl.Name)
	}

	if pl.Len() != 1 {
		t.Errorf("Expected 1 track, got %d", pl.Len())
	}
}

func TestAssembleStepPerEntry(t *testing.T) {
	// One tick per locator, successful or not
	tmpDir := t.TempDir()
	writeTracks(t, tmpDir, "a.mp3")

	locators := []Locator{
		{Kind: LocalPath, Path: filepath.Join(tmpDir, "a.mp3")},
		{Kind: LocalPath, Path: filepath.Join(tmpDir, "missing.mp3")},
		{Kind: RemoteURI, URI: "http://stream.example/x"},
	}

	var steps []int

	im := &Importer{
		Step: func(done, total int) bool {
			if total != 3 {
				t.Errorf("Expected total 3, got %d", total)
			}

			steps = append(steps, done)

			return false
		},
	}

	pl := im.Assemble("steps", locators)

	if pl.Len() != 2 {
		t.Errorf("Expected 2 tracks, got %d", pl.Len())
	}

	if len(steps) != 3 || steps[0] != 1 || steps[2] != 3 {
		t.Errorf("Expected steps [1 2 3], got %v", steps)
	}
}

func TestAssembleCancellation(t *testing.T) {
	tmpDir := t.TempDir()
	writeTracks(t, tmpDir, "a.mp3", "b.mp3", "c.mp3", "d.mp3")

	var locators []Locator
	for _, name := range []string{"a.mp3", "b.mp3", "c.mp3", "d.mp3"} {
		locators = append(locators, Locator{Kind: LocalPath, Path: filepath.Join(tmpDir, name)})
	}

	stopAfter := 2
	im := &Importer{
		Step: func(done, total int) bool {
			return done >= stopAfter
		},
	}

	pl := im.Assemble("partial", locators)

	// Partial playlist, not an error: entries after the stop are lost
	if pl.Len() != stopAfter {
		t.Errorf("Expected %d tracks after cancel, got %d", stopAfter, pl.Len())
	}
}

func TestAssembleLibrarySharing(t *testing.T) {
	tmpDir := t.TempDir()
	writeTracks(t, tmpDir, "known.mp3", "fresh.mp3")

	knownPath := filepath.Join(tmpDir, "known.mp3")
	known := &Track{Path: knownPath, Title: "Known", Artist: "Library Artist"}

	lib := &fakeLibrary{tracks: map[string]*Track{knownPath: known}}
	im := &Importer{Library: lib}

	pl := im.Assemble("shared", []Locator{
		{Kind: LocalPath, Path: knownPath},
		{Kind: LocalPath, Path: filepath.Join(tmpDir, "fresh.mp3")},
	})

	if pl.Len() != 2 {
		t.Fatalf("Expected 2 tracks, got %d", pl.Len())
	}

	// The library's track object is reused, not re-probed
	if pl.Tracks[0] != known {
		t.Errorf("Expected the library's track instance, got %+v", pl.Tracks[0])
	}

	// The unknown file was freshly constructed
	if pl.Tracks[1].Title != "fresh" {
		t.Errorf("Expected freshly probed track, got %+v", pl.Tracks[1])
	}

	if lib.lookups != 2 {
		t.Errorf("Expected 2 library lookups, got %d", lib.lookups)
	}
}

func TestAssembleRemoteBypassesLibrary(t *testing.T) {
	lib := &fakeLibrary{tracks: map[string]*Track{}}
	im := &Importer{Library: lib}

	pl := im.Assemble("remote", []Locator{
		{Kind: RemoteURI, URI: "http://stream.example/x.mp3"},
	})

	if pl.Len() != 1 {
		t.Fatalf("Expected 1 track, got %d", pl.Len())
	}

	if lib.lookups != 0 {
		t.Errorf("Remote entries must not consult the library, got %d lookups", lib.lookups)
	}
}

func TestAssembleNameFallback(t *testing.T) {
	im := &Importer{}

	pl := im.Assemble("", nil)
	if pl.Name != DefaultName {
		t.Errorf("Expected default name %q, got %q", DefaultName, pl.Name)
	}

	pl = im.Assemble("My Mix", nil)
	if pl.Name != "My Mix" {
		t.Errorf("Expected name %q, got %q", "My Mix", pl.Name)
	}
}

func TestImporterDebugLogging(t *testing.T) {
	// Drops are reported to the debug sink, never to the caller
	var messages []string

	im := &Importer{
		Debugf: func(format string, args ...any) {
			messages = append(messages, format)
		},
	}

	pl := im.ParseM3U(strings.NewReader("\xff\xfe.mp3\n"), "diag", t.TempDir())

	if pl.Len() != 0 {
		t.Fatalf("Expected 0 tracks, got %d", pl.Len())
	}

	if len(messages) == 0 {
		t.Error("Expected a debug message for the dropped entry")
	}
}
