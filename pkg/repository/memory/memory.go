package memory

import (
	"github.com/secmon-lab/riskscope/pkg/domain/interfaces"
)

// Repository is an alias for Memory to match the pattern
type Repository = Memory

type Memory struct {
	risk          *riskRepository
	scoringConfig *scoringConfigRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		risk:          newRiskRepository(),
		scoringConfig: newScoringConfigRepository(),
	}
}

func (m *Memory) Risk() interfaces.RiskRepository {
	return m.risk
}

func (m *Memory) ScoringConfig() interfaces.ScoringConfigRepository {
	return m.scoringConfig
}

func (m *Memory) Close() error {
	return nil
}
