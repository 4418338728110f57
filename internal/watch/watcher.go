package watch

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const debounceDefault = 200 * time.Millisecond

// RunFunc executes the watched script once.
type RunFunc func(ctx context.Context) error

// Watcher re-runs a script whenever its file changes.
type Watcher struct {
	path     string
	debounce time.Duration
	run      RunFunc
}

type Option func(*Watcher)

func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) { w.debounce = d }
}

func New(path string, run RunFunc, opts ...Option) *Watcher {
	w := &Watcher{path: path, debounce: debounceDefault, run: run}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run executes the script once, then again after each change to the file,
// until ctx is done. Failed runs are logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	target, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("resolve %s: %w", w.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Editors often replace the file, so watch its directory.
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}

	slog.Info("watching script", "path", target)

	trigger := make(chan struct{}, 1)
	fire := func() {
		select {
		case trigger <- struct{}{}:
		default:
		}
	}
	fire()

	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			slog.Info("watcher stopped")
			return nil

		case <-trigger:
			w.runOnce(ctx)

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("script changed", "path", target, "op", event.Op.String())
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, fire)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			slog.Error("watcher error", "error", err)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	start := time.Now()
	if err := w.run(ctx); err != nil {
		if ctx.Err() != nil {
			return
		}
		slog.Error("script run failed", "path", w.path, "error", err)
		return
	}
	slog.Info("script run succeeded", "path", w.path, "duration", time.Since(start).Round(time.Millisecond))
}
