package drive

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
	"github.com/custodia-labs/gwork-cli/internal/logger"
)

// WatchDir watches a local directory and uploads every regular file
// created in it to the given parent folder. It blocks until the
// context is cancelled. Upload failures are logged and do not stop the
// watch; watcher failures do.
func (g *Gateway) WatchDir(ctx context.Context, dir, parentID string, progress domain.ProgressFunc) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("watch dir %s: %w", dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, dir)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watching %s: %w", dir, err)
	}
	logger.Info("watching %s for new files", dir)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Create) {
				continue
			}
			if fi, err := os.Stat(event.Name); err != nil || !fi.Mode().IsRegular() {
				continue
			}
			mimeType := mime.TypeByExtension(filepath.Ext(event.Name))
			if mimeType == "" {
				mimeType = "application/octet-stream"
			}
			if _, err := g.UploadFile(ctx, event.Name, "", mimeType, parentID, progress); err != nil {
				logger.Warn("upload of %s failed: %v", event.Name, err)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return fmt.Errorf("watcher: %w", err)
		}
	}
}
