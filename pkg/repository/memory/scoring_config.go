package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
)

type scoringConfigRepository struct {
	mu      sync.RWMutex
	active  *model.ScoringConfiguration
	history []*model.ScoringConfiguration
}

func newScoringConfigRepository() *scoringConfigRepository {
	return &scoringConfigRepository{}
}

func (r *scoringConfigRepository) Get(ctx context.Context) (*model.ScoringConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.active == nil {
		return nil, goerr.Wrap(ErrNotFound, "scoring configuration not found")
	}
	return r.active.Clone(), nil
}

func (r *scoringConfigRepository) Save(ctx context.Context, cfg *model.ScoringConfiguration) (*model.ScoringConfiguration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	saved := cfg.Clone()
	saved.Version = uuid.NewString()
	saved.UpdatedAt = time.Now().UTC()

	r.active = saved
	r.history = append(r.history, saved)
	return saved.Clone(), nil
}

func (r *scoringConfigRepository) ListHistory(ctx context.Context, limit int) ([]*model.ScoringConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.history)
	if limit > 0 && limit < n {
		n = limit
	}

	result := make([]*model.ScoringConfiguration, 0, n)
	for i := len(r.history) - 1; i >= 0 && len(result) < n; i-- {
		result = append(result, r.history[i].Clone())
	}
	return result, nil
}
