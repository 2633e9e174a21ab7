package usecase_test

import (
	"context"

	"github.com/secmon-lab/riskscope/pkg/domain/interfaces"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/repository/memory"
)

// failingRepository returns err from every scoring configuration call
type failingRepository struct {
	*memory.Memory
	err error
}

func (r *failingRepository) ScoringConfig() interfaces.ScoringConfigRepository {
	return &failingScoringConfig{err: r.err}
}

type failingScoringConfig struct {
	err error
}

func (f *failingScoringConfig) Get(ctx context.Context) (*model.ScoringConfiguration, error) {
	return nil, f.err
}

func (f *failingScoringConfig) Save(ctx context.Context, cfg *model.ScoringConfiguration) (*model.ScoringConfiguration, error) {
	return nil, f.err
}

func (f *failingScoringConfig) ListHistory(ctx context.Context, limit int) ([]*model.ScoringConfiguration, error) {
	return nil, f.err
}
