package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"hourglass/internal/core/model"
)

const watchDebounce = 100 * time.Millisecond

// WatchSettings calls onChange with freshly loaded settings whenever the file
// at path is written, created or replaced. Bursts of events are coalesced.
// It blocks until ctx is done.
func WatchSettings(ctx context.Context, path string, logger *slog.Logger, onChange func(model.Settings)) error {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors and SaveSettings replace the file by rename.
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create settings directory: %w", err)
	}
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch settings directory: %w", err)
	}
	logger.Debug("watching settings", "path", path)

	name := filepath.Base(path)
	debounce := time.NewTimer(watchDebounce)
	debounce.Stop()
	defer debounce.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != name {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			debounce.Reset(watchDebounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("settings watcher error", "error", err)

		case <-debounce.C:
			settings, err := LoadSettings(path)
			if err != nil {
				logger.Warn("reload settings", "error", err)
				continue
			}
			onChange(settings)
		}
	}
}
