package coremain

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const reloadDelay = 500 * time.Millisecond

func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}

// watchScript calls reload after file has been changed. Bursts of events
// are merged into a single call. It returns when ctx is done.
func watchScript(ctx context.Context, file string, lg *zap.Logger, reload func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create script watcher, %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(file); err != nil {
		return fmt.Errorf("failed to watch script file %s, %w", file, err)
	}
	lg.Info("watching script", zap.String("file", file))

	timer := time.NewTimer(reloadDelay)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	needReWatch := false
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			lg.Debug("script event", zap.String("file", e.Name), zap.Stringer("op", e.Op))

			if e.Has(fsnotify.Chmod) && !e.Has(fsnotify.Write) {
				continue
			}
			// Editors often replace the file instead of writing it.
			if e.Has(fsnotify.Remove) || e.Has(fsnotify.Rename) {
				needReWatch = true
			}
			resetTimer(timer, reloadDelay)

		case <-timer.C:
			if needReWatch {
				_ = watcher.Remove(file)
				if err := watcher.Add(file); err != nil {
					lg.Warn("failed to re-watch script file", zap.String("file", file), zap.Error(err))
					resetTimer(timer, reloadDelay)
					continue
				}
				needReWatch = false
			}
			lg.Info("script changed, re-running", zap.String("file", file))
			reload()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			lg.Warn("script watcher error", zap.Error(err))
		}
	}
}
