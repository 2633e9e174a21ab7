package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

type riskRepository struct {
	mu     sync.RWMutex
	risks  map[int64]*model.Risk
	nextID int64
}

func newRiskRepository() *riskRepository {
	return &riskRepository{
		risks:  make(map[int64]*model.Risk),
		nextID: 1,
	}
}

// copyRisk returns a copy to prevent external modification
func copyRisk(r *model.Risk) *model.Risk {
	copied := *r
	return &copied
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := copyRisk(risk)
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.risks[created.ID] = created
	return copyRisk(created), nil
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risk, exists := r.risks[id]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}

	return copyRisk(risk), nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	risks := make([]*model.Risk, 0, len(r.risks))
	for _, risk := range r.risks {
		risks = append(risks, copyRisk(risk))
	}
	sort.Slice(risks, func(i, j int) bool {
		return risks[i].ID < risks[j].ID
	})

	return risks, nil
}

func (r *riskRepository) ListByCategory(ctx context.Context, categoryID types.CategoryID) ([]*model.Risk, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var risks []*model.Risk
	for _, risk := range r.risks {
		if risk.CategoryID == categoryID {
			risks = append(risks, copyRisk(risk))
		}
	}
	sort.Slice(risks, func(i, j int) bool {
		if risks[i].UpdatedAt.Equal(risks[j].UpdatedAt) {
			return risks[i].ID > risks[j].ID
		}
		return risks[i].UpdatedAt.After(risks[j].UpdatedAt)
	})

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	existing, exists := r.risks[risk.ID]
	if !exists {
		return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", risk.ID))
	}

	updated := copyRisk(risk)
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	r.risks[updated.ID] = updated
	return copyRisk(updated), nil
}

func (r *riskRepository) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.risks[id]; !exists {
		return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
	}

	delete(r.risks, id)
	return nil
}
