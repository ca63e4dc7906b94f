// ABOUTME: Shared initialization code for CLI and visual modes
// ABOUTME: Provides importer/library construction, debug logging, and output helpers

package main

import (
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"playlist-importer/config"
	"playlist-importer/library"
	"playlist-importer/playlist"
)

var debugLog *log.Logger

// RunOptions contains command-line options for all modes
type RunOptions struct {
	PlaylistPath string
	Name         string
	DebugLog     bool
}

// newImporter builds an importer from config, wiring the optional
// library and debug logging.
func newImporter(cfg config.Config, lib *library.Library) *playlist.Importer {
	im := &playlist.Importer{
		BaseDir: cfg.ImportBaseDir,
		Debugf:  debugf,
	}

	// A nil *Library must not become a non-nil Library interface
	if lib != nil {
		im.Library = lib
	}

	return im
}

// openLibrary opens and scans the configured music root. Returns nil
// without error when no root is configured; imports then probe every
// file themselves.
func openLibrary(cfg config.Config, verbose bool) (*library.Library, error) {
	if cfg.MusicRoot == "" {
		return nil, nil
	}

	lib, err := library.Open(cfg.MusicRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to open music library: %w", err)
	}

	if verbose {
		fmt.Printf("Indexed %d tracks under %s\n", lib.Len(), lib.Root())
	}

	return lib, nil
}

// printPlaylist writes the imported playlist as a table, followed by
// the resolved-versus-total count, the only loss signal imports emit.
func printPlaylist(pl *playlist.Playlist, entryTotal int) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	if _, err := fmt.Fprintln(w, "#\tTitle\tArtist\tAlbum\tLocation"); err != nil {
		log.Printf("Warning: failed to write header: %v", err)
	}

	if _, err := fmt.Fprintln(w, "---\t-----\t------\t-----\t--------"); err != nil {
		log.Printf("Warning: failed to write separator: %v", err)
	}

	for i, track := range pl.Tracks {
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n",
			i+1,
			truncate(track.Title, 30),
			truncate(track.Artist, 20),
			truncate(track.Album, 20),
			truncate(track.Location(), 50),
		); err != nil {
			log.Printf("Warning: failed to write track %d: %v", i+1, err)
		}
	}

	if err := w.Flush(); err != nil {
		log.Printf("Warning: failed to flush output: %v", err)
	}

	if entryTotal > 0 {
		fmt.Printf("\nImported %d of %d entries into %q\n", pl.Len(), entryTotal, pl.Name)
	} else {
		fmt.Printf("\nImported %d tracks into %q\n", pl.Len(), pl.Name)
	}
}

// SetupDebugLog initializes debug logging
func SetupDebugLog(filename string) error {
	if err := InitDebugLog(filename); err != nil {
		return fmt.Errorf("failed to initialize debug log: %w", err)
	}

	fileInfo, _ := os.Stdout.Stat()
	if (fileInfo.Mode() & os.ModeCharDevice) != 0 {
		fmt.Printf("Debug logging enabled: %s\n", filename)
	}

	return nil
}

// InitDebugLog initializes debug logging
func InitDebugLog(filename string) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create debug log file: %w", err)
	}

	debugLog = log.New(f, "", log.Ltime|log.Lmicroseconds)

	return nil
}

// debugf logs debug messages if enabled
func debugf(format string, args ...interface{}) {
	if debugLog != nil {
		debugLog.Printf(format, args...)
	}
}

// truncate shortens string to maxLen, adding "..." if needed
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}

	if maxLen <= 3 {
		return s[:maxLen]
	}

	return s[:maxLen-3] + "..."
}
