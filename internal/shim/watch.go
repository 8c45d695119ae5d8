// pattern: Imperative Shell

package shim

import (
	"context"
	"fmt"
	"os"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange whenever a shim is created, removed or renamed, until
// ctx is cancelled. The shim directory is created if it does not exist yet.
func (r *Registry) Watch(ctx context.Context, onChange func()) error {
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return &FileSystemError{Op: "create", Path: r.dir, Err: err}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create shim watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Add(r.dir); err != nil {
		return &FileSystemError{Op: "watch", Path: r.dir, Err: err}
	}
	r.logger.Debug("watching shim directory", "dir", r.dir)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				onChange()
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.logger.Warn("shim watcher error", "error", err)
		}
	}
}
