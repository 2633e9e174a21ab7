package usecase

import (
	"github.com/secmon-lab/riskscope/pkg/domain/interfaces"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/model/config"
)

type UseCases struct {
	repo        interfaces.Repository
	riskConfig  *config.RiskConfig
	seedScoring *model.ScoringConfiguration
	Scoring     *ScoringUseCase
	Risk        *RiskUseCase
}

type Option func(*UseCases)

func WithRiskConfig(cfg *config.RiskConfig) Option {
	return func(uc *UseCases) {
		uc.riskConfig = cfg
	}
}

// WithSeedScoringConfig sets the configuration served until one is saved
func WithSeedScoringConfig(cfg *model.ScoringConfiguration) Option {
	return func(uc *UseCases) {
		uc.seedScoring = cfg
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Scoring = NewScoringUseCase(repo, uc.seedScoring)
	uc.Risk = NewRiskUseCase(repo, uc.riskConfig, uc.Scoring)

	return uc
}
