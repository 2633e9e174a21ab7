package model

import (
	"time"

	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

// Risk is a risk register entry. Inherent ratings are assessed before
// mitigating controls, residual ratings after.
type Risk struct {
	ID                 int64
	Name               string
	Description        string
	CategoryID         types.CategoryID
	OwnerTeamID        types.TeamID
	InherentLikelihood int
	InherentImpact     int
	ResidualLikelihood int
	ResidualImpact     int
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ScoredRisk pairs a risk with its inherent and residual scores
type ScoredRisk struct {
	Risk     *Risk
	Inherent ScoreResult
	Residual ScoreResult
}

// ScoreRisk scores both rating pairs of r against cfg
func ScoreRisk(r *Risk, cfg *ScoringConfiguration) *ScoredRisk {
	return &ScoredRisk{
		Risk:     r,
		Inherent: Score(r.InherentLikelihood, r.InherentImpact, cfg),
		Residual: Score(r.ResidualLikelihood, r.ResidualImpact, cfg),
	}
}
