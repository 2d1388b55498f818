package watch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefinitionWatcher watches the workspace definition directory and invokes a
// callback, debounced, whenever the definition document changes.
type DefinitionWatcher struct {
	watcher  *fsnotify.Watcher
	file     string
	debounce time.Duration
	onChange func()
}

// NewDefinitionWatcher creates a watcher for the given definition file path.
func NewDefinitionWatcher(file string, debounce time.Duration, onChange func()) (*DefinitionWatcher, error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create fsnotify watcher: %w", err)
	}
	if debounce == 0 {
		debounce = 500 * time.Millisecond
	}
	return &DefinitionWatcher{
		watcher:  w,
		file:     filepath.Clean(file),
		debounce: debounce,
		onChange: onChange,
	}, nil
}

// Run starts the event loop. The containing directory is watched rather than
// the file itself so editors that replace the file atomically still trigger.
// It blocks until the context is cancelled.
func (w *DefinitionWatcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.watcher.Add(filepath.Dir(w.file)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(w.file), err)
	}

	debouncer := NewDebouncer(w.debounce, func() {
		if w.onChange != nil {
			w.onChange()
		}
	})
	defer debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.file {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			debouncer.Trigger()
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watch error: %w", err)
		}
	}
}
