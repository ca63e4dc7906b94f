// ABOUTME: Entry point for playlist-importer application
// ABOUTME: Handles command-line parsing, profiling, and routing to CLI or visual mode

// Package main provides the entry point for playlist-importer, which imports
// M3U/PLS playlist files into the music library's playlist model.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"runtime/pprof"

	"playlist-importer/config"
	"playlist-importer/tui"
)

const debugLogName = "playlist-importer-debug.log"

func main() {
	os.Exit(run())
}

func run() int {
	cpuprofile := flag.String("cpuprofile", "", "write cpu profile to file")
	memprofile := flag.String("memprofile", "", "write memory profile to file")
	visual := flag.Bool("visual", false, "run with an interactive progress window")
	debug := flag.Bool("debug", false, "enable debug logging to "+debugLogName)
	name := flag.String("name", "", "playlist name (default: derived from the file name)")
	flag.Parse()

	args := flag.Args()
	if len(args) != 1 {
		fmt.Println("Usage: playlist-importer [flags] <playlist.m3u|playlist.pls>")
		fmt.Println("Example: playlist-importer /Volumes/music/Music/low_energy_liquid_dnb.m3u8")
		fmt.Println("\nFlags:")
		flag.PrintDefaults()

		return 1
	}

	playlistPath := args[0]

	if *cpuprofile != "" {
		stopCPUProfile := setupCPUProfile(*cpuprofile)
		defer stopCPUProfile()
	}

	if *memprofile != "" {
		defer writeMemoryProfile(*memprofile)
	}

	if *visual {
		if *debug {
			if err := SetupDebugLog(debugLogName); err != nil {
				log.Printf("Failed to setup debug log: %v", err)

				return 1
			}
		}

		if err := runVisual(playlistPath, *name); err != nil {
			log.Printf("Import error: %v", err)

			return 1
		}

		return 0
	}

	if err := RunCLI(RunOptions{
		PlaylistPath: playlistPath,
		Name:         *name,
		DebugLog:     *debug,
	}); err != nil {
		log.Printf("Import error: %v", err)

		return 1
	}

	return 0
}

// runVisual imports with the TUI progress window and prints the result
func runVisual(playlistPath, name string) error {
	cfg, err := config.LoadConfig(config.GetConfigPath())
	if err != nil {
		debugf("config load: %v", err)
	}

	lib, err := openLibrary(cfg, false)
	if err != nil {
		return err
	}

	im := newImporter(cfg, lib)

	var entryTotal int
	im.Step = func(done, total int) bool {
		entryTotal = total

		return false
	}

	pl, err := tui.Run(tui.Options{
		PlaylistPath: playlistPath,
		Name:         name,
		Importer:     im,
	})
	if err != nil {
		return err
	}

	if pl == nil {
		return nil
	}

	printPlaylist(pl, entryTotal)

	return nil
}

// setupCPUProfile starts CPU profiling, returns cleanup function
func setupCPUProfile(filename string) func() {
	f, err := os.Create(filename)
	if err != nil {
		log.Fatalf("could not create CPU profile: %v", err)
	}

	if err := pprof.StartCPUProfile(f); err != nil {
		_ = f.Close()
		log.Fatalf("could not start CPU profile: %v", err)
	}

	return func() {
		pprof.StopCPUProfile()

		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close CPU profile: %v", err)
		}
	}
}

// writeMemoryProfile writes memory profile to file
func writeMemoryProfile(filename string) {
	f, err := os.Create(filename)
	if err != nil {
		log.Printf("could not create memory profile: %v", err)

		return
	}

	defer func() {
		if err := f.Close(); err != nil {
			log.Printf("Warning: failed to close memory profile: %v", err)
		}
	}()

	runtime.GC()

	if err := pprof.WriteHeapProfile(f); err != nil {
		log.Printf("could not write memory profile: %v", err)
	}
}
