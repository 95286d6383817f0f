// Package watch notifies when the history file changes on disk.
package watch

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/bmi-cli/internal/core/ports/driven"
	"github.com/custodia-labs/bmi-cli/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.HistoryWatcher = (*Watcher)(nil)

// DefaultDebounce coalesces the burst of events produced by one save.
const DefaultDebounce = 150 * time.Millisecond

// Watcher watches a history file for changes.
//
// The parent directory is watched rather than the file, because stores
// replace the file by rename and SQLite writes to sidecar files
// (history.db-wal). Any event on a name starting with the file's base name
// counts as a change.
type Watcher struct {
	path     string
	debounce time.Duration
}

// NewWatcher creates a watcher for path.
func NewWatcher(path string) *Watcher {
	return &Watcher{path: path, debounce: DefaultDebounce}
}

// SetDebounce overrides the quiet period before onChange is called.
func (w *Watcher) SetDebounce(d time.Duration) {
	w.debounce = d
}

// Watch blocks until ctx is cancelled, calling onChange after each
// change to the watched file.
func (w *Watcher) Watch(ctx context.Context, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	dir := filepath.Dir(w.path)
	base := filepath.Base(w.path)
	if err := watcher.Add(dir); err != nil {
		return err
	}

	logger.Debug("watching %s for history changes", w.path)

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !strings.HasPrefix(filepath.Base(event.Name), base) {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
				!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
				continue
			}
			timer.Reset(w.debounce)

		case <-timer.C:
			logger.Debug("history changed: %s", w.path)
			onChange()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("history watcher error: %v", err)
		}
	}
}
