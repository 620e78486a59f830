package config

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/stagedoor-ui/stagedoor/internal/logging"
)

// Watcher reports changes to a config file. The demo treats a change as a
// configuration change and recreates every screen.
type Watcher struct {
	watcher  *fsnotify.Watcher
	path     string
	onChange func()
	logger   *logging.Logger
	stopCh   chan struct{}
}

// NewWatcher creates a watcher for the given config file. onChange runs on
// the watcher's goroutine after each (debounced) modification.
func NewWatcher(path string, onChange func(), logger *logging.Logger) (*Watcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	// Watch the file's directory; fsnotify works better with directories,
	// and editors often replace the file instead of writing in place.
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, err
	}

	return &Watcher{
		watcher:  watcher,
		path:     filepath.Clean(path),
		onChange: onChange,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}, nil
}

// Start begins watching for file changes
func (w *Watcher) Start() {
	go w.watchLoop()
}

// Stop stops the watcher and cleans up resources
func (w *Watcher) Stop() {
	close(w.stopCh)
	_ = w.watcher.Close()
}

// watchLoop processes filesystem events
func (w *Watcher) watchLoop() {
	// Debounce events - many editors create multiple events for a single save
	debounceTimer := time.NewTimer(0)
	<-debounceTimer.C // drain initial timer

	pending := false

	for {
		select {
		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}

			// Only care about write/create/rename operations on our file
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}

			pending = true
			debounceTimer.Reset(100 * time.Millisecond)

		case <-debounceTimer.C:
			if pending {
				pending = false
				w.onChange()
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("config watch error", "error", err, "path", w.path)
		}
	}
}
