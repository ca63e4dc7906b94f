// ABOUTME: CLI mode implementation for non-interactive playlist imports
// ABOUTME: Handles progress display, result output, and signal handling

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"playlist-importer/config"
)

// isTTY checks if the given file is a terminal
func isTTY(f *os.File) bool {
	stat, err := f.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

// RunCLI imports a playlist in non-interactive mode. Ctrl+C stops the
// import cooperatively and keeps the tracks resolved so far.
func RunCLI(opts RunOptions) error {
	if opts.DebugLog {
		if err := SetupDebugLog(debugLogName); err != nil {
			return err
		}
	}

	cfg, err := config.LoadConfig(config.GetConfigPath())
	if err != nil {
		debugf("config load: %v", err)
	}

	lib, err := openLibrary(cfg, true)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if lib != nil && cfg.WatchLibrary {
		go func() {
			if err := lib.Watch(ctx); err != nil {
				debugf("library watcher stopped: %v", err)
			}
		}()
	}

	var cancelled atomic.Bool

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(stop)

	go func() {
		<-stop
		cancelled.Store(true)
	}()

	isTerminal := isTTY(os.Stdout)

	im := newImporter(cfg, lib)

	entryTotal := 0
	im.Step = func(done, total int) bool {
		entryTotal = total

		if isTerminal {
			fmt.Printf("\rImporting playlist... %d/%d songs added", done, total)
		}

		return cancelled.Load()
	}

	pl, err := im.ImportFile(opts.PlaylistPath)
	if err != nil {
		return err
	}

	if opts.Name != "" {
		pl.Name = opts.Name
	}

	if isTerminal {
		// Clear the progress line
		fmt.Print("\r\033[K")
	}

	if cancelled.Load() {
		fmt.Println("Import cancelled, keeping tracks imported so far.")
	}

	printPlaylist(pl, entryTotal)

	return nil
}
