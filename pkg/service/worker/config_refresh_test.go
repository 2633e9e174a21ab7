package worker_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/repository/memory"
	"github.com/secmon-lab/riskscope/pkg/service/worker"
	"github.com/secmon-lab/riskscope/pkg/usecase"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(ctx context.Context) (bool, error) {
	r.calls.Add(1)
	return false, r.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

func TestConfigRefreshWorker_PicksUpSavedConfiguration(t *testing.T) {
	ctx := context.Background()
	repo := memory.New()

	writer := usecase.NewScoringUseCase(repo, nil)
	reader := usecase.NewScoringUseCase(repo, nil)

	w := worker.NewConfigRefreshWorker(reader, 20*time.Millisecond)
	gt.NoError(t, w.Start(ctx)).Required()
	defer w.Stop()

	cfg := model.DefaultScoringConfiguration()
	cfg.Bands = []model.RiskLevelBand{{Min: 1, Max: 25, Label: "Everything", Color: "#123456"}}
	saved, _, err := writer.Save(ctx, cfg)
	gt.NoError(t, err).Required()

	waitFor(t, func() bool { return reader.Current().Version == saved.Version })
	gt.Value(t, reader.Score(3, 3).LevelLabel).Equal("Everything")
}

func TestConfigRefreshWorker_KeepsRunningAfterErrors(t *testing.T) {
	r := &countingRefresher{err: errors.New("backend down")}
	w := worker.NewConfigRefreshWorker(r, 10*time.Millisecond)
	gt.NoError(t, w.Start(context.Background())).Required()

	waitFor(t, func() bool { return r.calls.Load() >= 3 })
	w.Stop()
	w.Stop()

	select {
	case <-w.Done():
	default:
		t.Fatal("worker loop still running after Stop")
	}
}

func TestConfigRefreshWorker_StopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	w := worker.NewConfigRefreshWorker(&countingRefresher{}, time.Hour)
	gt.NoError(t, w.Start(ctx)).Required()

	cancel()
	select {
	case <-w.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop on context cancel")
	}
}
