package pattern

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch watches searchPath for pattern-file changes and calls onReload
// with a freshly-loaded Library on every write, create, remove or rename
// event in the directory (events are not coalesced). It never mutates an existing *Library in place — a Library is
// read-only once loaded — so callers swap their own pointer inside
// onReload, typically behind an atomic.Pointer or a mutex.
//
// Watch blocks until ctx is done or the watcher fails to start; intended
// to run in its own goroutine from a dev/--watch code path, never in
// production serving.
func Watch(ctx context.Context, log *slog.Logger, searchPath string, onReload func(*Library)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("pattern: start watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(searchPath); err != nil {
		return fmt.Errorf("pattern: watch %s: %w", searchPath, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			lib, err := Load(searchPath)
			if err != nil {
				log.Warn("pattern: reload failed, keeping previous library", "error", err, "path", ev.Name)
				continue
			}
			log.Info("pattern: reloaded families", "path", ev.Name, "families", lib.Names())
			onReload(lib)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warn("pattern: watcher error", "error", err)
		}
	}
}
