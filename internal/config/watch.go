package config

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the store whenever its backing file changes, until ctx is
// cancelled. The parent directory is watched rather than the file itself
// so atomic rename-style rewrites (the common editor and config-push
// pattern) are still observed. Blocks; run it on its own goroutine.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return fmt.Errorf("store has no backing file to watch")
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}

	target := filepath.Clean(s.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Error("configuration reload failed",
					slog.String("path", s.path),
					slog.String("error", err.Error()))
				continue
			}
			s.logger.Info("configuration reloaded",
				slog.String("path", s.path),
				slog.Uint64("version", s.Snapshot().Version))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("configuration watcher error", slog.String("error", err.Error()))
		}
	}
}
