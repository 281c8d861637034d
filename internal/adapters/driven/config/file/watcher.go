package file

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/gwork-cli/internal/logger"
)

// Watch reloads the store whenever its file changes on disk. It blocks
// until the context is cancelled. Intended for long-running modes (MCP
// serve, drive watch) where edits to config.toml should take effect
// without a restart.
func (s *ConfigStore) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	// Watch the directory: editors replace the file on save, which
	// would drop a watch on the file itself.
	if err := watcher.Add(filepath.Dir(s.filePath)); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Name != s.filePath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			if err := s.Load(); err != nil {
				logger.Warn("reloading config: %v", err)
				continue
			}
			logger.Debug("config reloaded from %s", s.filePath)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("config watcher: %v", err)
		}
	}
}
