package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/utils/errutil"
	"github.com/secmon-lab/riskscope/pkg/utils/logging"
)

const defaultReloadDebounce = 500 * time.Millisecond

// Reloader watches the configuration file and hands every successfully
// validated edit to onReload. An edit that fails to load is logged and the
// previous configuration stays live.
type Reloader struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	onReload func(ctx context.Context, cfg *AppConfig)
}

type ReloaderOption func(*Reloader)

// WithReloadDebounce overrides the delay after the last write before reloading
func WithReloadDebounce(d time.Duration) ReloaderOption {
	return func(r *Reloader) {
		r.debounce = d
	}
}

// NewReloader watches the directory of path; editors commonly replace the
// file with a rename, which a watch on the file itself would miss.
func NewReloader(path string, onReload func(ctx context.Context, cfg *AppConfig), opts ...ReloaderOption) (*Reloader, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create file watcher")
	}

	if err := watcher.Add(filepath.Dir(path)); err != nil {
		_ = watcher.Close()
		return nil, goerr.Wrap(err, "failed to watch config directory", goerr.V(ConfigPathKey, path))
	}

	r := &Reloader{
		watcher:  watcher,
		path:     filepath.Clean(path),
		debounce: defaultReloadDebounce,
		onReload: onReload,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Run watches for changes until ctx is cancelled
func (r *Reloader) Run(ctx context.Context) error {
	defer func() {
		if err := r.watcher.Close(); err != nil {
			logging.From(ctx).Error("failed to close file watcher", "error", err)
		}
	}()

	var (
		mu       sync.Mutex
		debounce *time.Timer
	)
	stop := func() {
		mu.Lock()
		defer mu.Unlock()
		if debounce != nil {
			debounce.Stop()
		}
	}

	for {
		select {
		case <-ctx.Done():
			stop()
			return nil

		case event, ok := <-r.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != r.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}

			mu.Lock()
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(r.debounce, func() { r.reload(ctx) })
			mu.Unlock()

		case err, ok := <-r.watcher.Errors:
			if !ok {
				return nil
			}
			logging.From(ctx).Warn("file watcher error", "error", err)
		}
	}
}

func (r *Reloader) reload(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	cfg, err := LoadAppConfiguration(r.path)
	if err != nil {
		_ = errutil.Handle(ctx, err, "config reload failed, keeping previous configuration")
		return
	}

	logging.From(ctx).Info("configuration reloaded",
		slog.String(ConfigPathKey, r.path),
		slog.Int("categories", len(cfg.Categories)),
		slog.Int("teams", len(cfg.Teams)))
	r.onReload(ctx, cfg)
}
