package cli

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay lets editors finish writing before the file is re-read.
const debounceDelay = 100 * time.Millisecond

// RunWatch converts opts.Path, then converts it again every time the file changes.
// It returns when ctx is cancelled.
func RunWatch(ctx context.Context, opts Options) error {
	opts.defaults()
	if opts.Path == "" || opts.Path == "-" {
		return errors.New("--watch needs a definition file")
	}

	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file on save, so watch the directory.
	target, err := filepath.Abs(opts.Path)
	if err != nil {
		return fmt.Errorf("failed to resolve %s: %w", opts.Path, err)
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", opts.Path, err)
	}

	logger.Info("Starting Watcher", "path", target)
	convertOnce := func() {
		if err := RunConvert(ctx, opts); err != nil {
			if isInterrupted(err) {
				return
			}
			logger.Error("Conversion failed", "err", err)
			printSystemMessage(opts.ErrOut, "Conversion failed: %v", err)
		}
		printSystemMessage(opts.ErrOut, "Waiting for changes in '%s'...", opts.Path)
	}
	convertOnce()

	var debounce <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			logger.Debug("Change detected", "event", event.String())
			debounce = time.After(debounceDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("Watcher error", "err", err)
		case <-debounce:
			debounce = nil
			printSystemMessage(opts.ErrOut, "Change detected in '%s'.", opts.Path)
			convertOnce()
		}
	}
}
