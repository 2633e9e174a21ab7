package worker

import (
	"context"
	"sync"
	"time"

	"github.com/secmon-lab/riskscope/pkg/utils/errutil"
	"github.com/secmon-lab/riskscope/pkg/utils/logging"
)

// ConfigRefresher is satisfied by usecase.ScoringUseCase
type ConfigRefresher interface {
	Refresh(ctx context.Context) (bool, error)
}

// ConfigRefreshWorker periodically re-reads the saved scoring configuration
// so that every server instance converges on the last saved version.
type ConfigRefreshWorker struct {
	refresher ConfigRefresher
	interval  time.Duration
	stopCh    chan struct{}
	doneCh    chan struct{}
	stopOnce  sync.Once
}

// NewConfigRefreshWorker creates a new worker for refreshing the scoring configuration
func NewConfigRefreshWorker(refresher ConfigRefresher, interval time.Duration) *ConfigRefreshWorker {
	return &ConfigRefreshWorker{
		refresher: refresher,
		interval:  interval,
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
	}
}

// Start begins the background refresh loop without blocking
func (w *ConfigRefreshWorker) Start(ctx context.Context) error {
	logging.From(ctx).Info("Config refresh worker starting",
		"interval", w.interval.String())

	go w.run(ctx)

	return nil
}

// Stop signals the worker to stop and waits for completion. Safe to call
// more than once.
func (w *ConfigRefreshWorker) Stop() {
	w.stopOnce.Do(func() {
		logging.Default().Info("Config refresh worker stopping")
		close(w.stopCh)
	})
	<-w.doneCh
}

// Done is closed when the worker loop has exited
func (w *ConfigRefreshWorker) Done() <-chan struct{} {
	return w.doneCh
}

func (w *ConfigRefreshWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.refresh(ctx)

		case <-w.stopCh:
			logging.From(ctx).Info("Config refresh worker received stop signal")
			return

		case <-ctx.Done():
			logging.From(ctx).Info("Config refresh worker context cancelled")
			return
		}
	}
}

// refresh runs one cycle. A failure keeps the current configuration live
// and is retried on the next tick.
func (w *ConfigRefreshWorker) refresh(ctx context.Context) {
	swapped, err := w.refresher.Refresh(ctx)
	if err != nil {
		_ = errutil.Handle(ctx, err, "Config refresh failed (will retry next interval)")
		return
	}
	if swapped {
		logging.From(ctx).Info("Scoring configuration updated by refresh worker")
	}
}
