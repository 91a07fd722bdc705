package cli

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchFiles calls rebuild once the files listed by inputs have been quiet
// for debounce after a change. The list is read again before every rebuild
// so files added to a manifest are picked up. Parent directories are
// watched so editors that save by renaming are still seen. It returns when
// ctx is done.
func watchFiles(ctx context.Context, inputs func() ([]string, error), debounce time.Duration, rebuild func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	watched := map[string]bool{}
	dirs := map[string]bool{}
	// refresh keeps the previous list when inputs fails, e.g. while a
	// manifest is half written.
	refresh := func() error {
		paths, err := inputs()
		if err != nil {
			return err
		}
		next := make(map[string]bool, len(paths))
		for _, p := range paths {
			abs, err := filepath.Abs(p)
			if err != nil {
				return err
			}
			next[abs] = true
			d := filepath.Dir(abs)
			if dirs[d] {
				continue
			}
			if err := watcher.Add(d); err != nil {
				return fmt.Errorf("failed to watch %s: %w", d, err)
			}
			dirs[d] = true
		}
		watched = next
		return nil
	}
	if err := refresh(); err != nil {
		return err
	}

	// The timer only signals; rebuilds run on this goroutine.
	var debounceTimer *time.Timer
	fire := make(chan struct{}, 1)
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !watched[filepath.Clean(event.Name)] {
				continue
			}
			if event.Has(fsnotify.Create) ||
				event.Has(fsnotify.Write) ||
				event.Has(fsnotify.Remove) ||
				event.Has(fsnotify.Rename) {
				if debounceTimer != nil {
					debounceTimer.Stop()
				}
				debounceTimer = time.AfterFunc(debounce, func() {
					select {
					case fire <- struct{}{}:
					default:
					}
				})
			}

		case <-fire:
			if err := refresh(); err != nil {
				slog.Warn("keeping previous watch list", "err", err)
			}
			rebuild()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "err", err)

		case <-ctx.Done():
			return nil
		}
	}
}
