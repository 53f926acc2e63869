// Package watcher re-triggers audits when new run logs land in the log
// directory.
package watcher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// DefaultDebounce is how long the directory must be quiet before the handler
// fires. Game clients flush logs in bursts.
const DefaultDebounce = 500 * time.Millisecond

// LogWatcher calls its handler once per burst of writes to files matching
// glob inside dir.
type LogWatcher struct {
	dir      string
	glob     string
	handler  func(ctx context.Context, path string)
	logger   *zap.Logger
	debounce time.Duration
}

func New(dir, glob string, handler func(ctx context.Context, path string), logger *zap.Logger) *LogWatcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogWatcher{
		dir:      dir,
		glob:     glob,
		handler:  handler,
		logger:   logger,
		debounce: DefaultDebounce,
	}
}

// WithDebounce overrides the quiet period.
func (w *LogWatcher) WithDebounce(d time.Duration) *LogWatcher {
	w.debounce = d
	return w
}

// Run blocks until ctx is cancelled. The handler runs on the watch loop, so
// audits never overlap.
func (w *LogWatcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer func() { _ = fw.Close() }()

	if err := fw.Add(w.dir); err != nil {
		return fmt.Errorf("watching %s: %w", w.dir, err)
	}
	w.logger.Info("watching run logs", zap.String("dir", w.dir), zap.String("glob", w.glob))

	// Stopped until the first matching event.
	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	var last string
	for {
		select {
		case <-ctx.Done():
			return nil

		case <-timer.C:
			w.logger.Debug("run log settled", zap.String("path", last))
			w.handler(ctx, last)

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if !w.matches(ev.Name) {
				continue
			}
			last = ev.Name
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
			timer.Reset(w.debounce)

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", zap.Error(err))
		}
	}
}

func (w *LogWatcher) matches(path string) bool {
	ok, err := filepath.Match(w.glob, filepath.Base(path))
	return err == nil && ok
}
