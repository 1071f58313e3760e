package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// reloadDebounce coalesces the burst of events some editors and sync tools
// produce for a single save.
const reloadDebounce = 250 * time.Millisecond

// Watch reloads the corpus whenever the payload file changes. It blocks until
// the context is canceled. The directory is watched rather than the file
// itself, so atomic rename-replace writes are picked up too.
func (l *Loader) Watch(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	dir := filepath.Dir(l.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}

	target := filepath.Clean(l.path)
	var timer *time.Timer
	reload := make(chan struct{}, 1)

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
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(reloadDebounce, func() {
				select {
				case reload <- struct{}{}:
				default:
				}
			})

		case <-reload:
			if err := l.Load(); err != nil {
				// Keep serving the previous snapshot.
				if l.logger != nil {
					l.logger.Error("corpus reload failed", "error", err)
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if l.logger != nil {
				l.logger.Error("corpus watcher error", "error", err)
			}
		}
	}
}
