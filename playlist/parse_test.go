// ABOUTME: Tests for tolerant M3U and PLS entry extraction
// ABOUTME: Verifies comment handling, malformed input, and best-effort semantics

package playlist

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// writeTracks creates dummy audio files in dir and returns it
func writeTracks(t *testing.T, dir string, names ...string) {
	t.Helper()

	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600); err != nil {
			t.Fatalf("Failed to create %s: %v", name, err)
		}
	}
}

func TestParseM3U(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		files       []string
		expectCount int
	}{
		{
			name:        "simple playlist",
			content:     "a.mp3\nb.mp3\nc.mp3\n",
			files:       []string{"a.mp3", "b.mp3", "c.mp3"},
			expectCount: 3,
		},
		{
			name:        "with comments",
			content:     "#EXTM3U\n# a comment\na.mp3\n#EXTINF:123,Artist - Title\nb.mp3\n",
			files:       []string{"a.mp3", "b.mp3"},
			expectCount: 2,
		},
		{
			name:        "with empty lines",
			content:     "a.mp3\n\n\nb.mp3\n\n",
			files:       []string{"a.mp3", "b.mp3"},
			expectCount: 2,
		},
		{
			name:        "empty file",
			content:     "",
			expectCount: 0,
		},
		{
			name:        "only comments",
			content:     "#EXTM3U\n# just comments\n",
			expectCount: 0,
		},
		{
			name:        "invalid utf8 line dropped",
			content:     "a.mp3\n\xff\xfe.mp3\nb.mp3\n",
			files:       []string{"a.mp3", "b.mp3"},
			expectCount: 2,
		},
		{
			name:        "binary garbage is not fatal",
			content:     "a.mp3\n\x00\x01\x02\xfftrash\nb.mp3\n",
			files:       []string{"a.mp3", "b.mp3"},
			expectCount: 2,
		},
		{
			name:        "missing files dropped silently",
			content:     "a.mp3\nmissing.mp3\nb.mp3\n",
			files:       []string{"a.mp3", "b.mp3"},
			expectCount: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeTracks(t, tmpDir, tt.files...)

			im := &Importer{}
			pl := im.ParseM3U(strings.NewReader(tt.content), "test", tmpDir)

			if pl == nil {
				t.Fatal("Expected a playlist, got nil")
			}

			if pl.Len() != tt.expectCount {
				t.Errorf("Expected %d tracks, got %d", tt.expectCount, pl.Len())
			}

			for i, track := range pl.Tracks {
				if track == nil {
					t.Errorf("Track %d is nil", i)
				}
			}
		})
	}
}

func TestParseM3UOrderPreserved(t *testing.T) {
	tmpDir := t.TempDir()
	writeTracks(t, tmpDir, "one.mp3", "two.mp3", "three.mp3")

	im := &Importer{}
	pl := im.ParseM3U(strings.NewReader("one.mp3\ntwo.mp3\nthree.mp3\n"), "order", tmpDir)

	want := []string{"one", "two", "three"}
	if pl.Len() != len(want) {
		t.Fatalf("Expected %d tracks, got %d", len(want), pl.Len())
	}

	for i, title := range want {
		if pl.Tracks[i].Title != title {
			t.Errorf("Track %d: expected title %q, got %q", i, title, pl.Tracks[i].Title)
		}
	}
}

func TestParsePLS(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		files       []string
		expectCount int
	}{
		{
			name: "standard pls",
			content: `[playlist]
File1=a.mp3
Title1=First
File2=b.mp3
NumberOfEntries=2
Version=2
`,
			files:       []string{"a.mp3", "b.mp3"},
			expectCount: 2,
		},
		{
			name:        "case insensitive file prefix",
			content:     "FILE1=a.mp3\nfile2=b.mp3\nFiLe3=c.mp3\n",
			files:       []string{"a.mp3", "b.mp3", "c.mp3"},
			expectCount: 3,
		},
		{
			name:        "file line without equals skipped",
			content:     "File1\nFile2=a.mp3\n",
			files:       []string{"a.mp3"},
			expectCount: 1,
		},
		{
			name:        "value whitespace trimmed",
			content:     "File1=   a.mp3   \n",
			files:       []string{"a.mp3"},
			expectCount: 1,
		},
		{
			name:        "non-file keys ignored",
			content:     "Title1=a.mp3\nLength1=300\nFile1=a.mp3\n",
			files:       []string{"a.mp3"},
			expectCount: 1,
		},
		{
			name:        "empty input",
			content:     "",
			expectCount: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpDir := t.TempDir()
			writeTracks(t, tmpDir, tt.files...)

			im := &Importer{}
			pl := im.ParsePLS(strings.NewReader(tt.content), "test", tmpDir)

			if pl.Len() != tt.expectCount {
				t.Errorf("Expected %d tracks, got %d", tt.expectCount, pl.Len())
			}
		})
	}
}

func TestParsePLSRemoteEntries(t *testing.T) {
	content := "[playlist]\nFile1=http://stream.example/radio\nNumberOfEntries=1\n"

	im := &Importer{}
	pl := im.ParsePLS(strings.NewReader(content), "radio", "")

	if pl.Len() != 1 {
		t.Fatalf("Expected 1 track, got %d", pl.Len())
	}

	if !pl.Tracks[0].Remote() {
		t.Error("Expected a remote track")
	}

	if pl.Tracks[0].URI != "http://stream.example/radio" {
		t.Errorf("Unexpected URI %q", pl.Tracks[0].URI)
	}
}

func TestParseM3UBaseDirFallback(t *testing.T) {
	// A stream with no directory of its own uses the importer's
	// configured base directory for relative entries
	tmpDir := t.TempDir()
	writeTracks(t, tmpDir, "a.mp3")

	im := &Importer{BaseDir: tmpDir}
	pl := im.ParseM3U(strings.NewReader("a.mp3\n"), "piped", "")

	if pl.Len() != 1 {
		t.Fatalf("Expected 1 track, got %d", pl.Len())
	}

	// Without a base directory the relative entry is dropped
	im = &Importer{}
	pl = im.ParseM3U(strings.NewReader("a.mp3\n"), "piped", "")

	if pl.Len() != 0 {
		t.Errorf("Expected 0 tracks without base dir, got %d", pl.Len())
	}
}
