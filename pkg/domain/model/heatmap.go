package model

import "github.com/secmon-lab/riskscope/pkg/domain/types"

// HeatmapCell is one likelihood/impact intersection of the risk matrix
type HeatmapCell struct {
	Likelihood int
	Impact     int
	Result     ScoreResult
}

// Heatmap is the 5x5 risk matrix. Rows run from likelihood 5 down to 1 and
// columns from impact 1 up to 5, matching how the matrix is drawn.
type Heatmap struct {
	Rows [types.MaxRating][types.MaxRating]HeatmapCell
}

// BuildHeatmap scores every cell against cfg
func BuildHeatmap(cfg *ScoringConfiguration) *Heatmap {
	var h Heatmap
	for row := range types.MaxRating {
		likelihood := types.MaxRating - row
		for col := range types.MaxRating {
			impact := col + 1
			h.Rows[row][col] = HeatmapCell{
				Likelihood: likelihood,
				Impact:     impact,
				Result:     Score(likelihood, impact, cfg),
			}
		}
	}
	return &h
}

// Cell returns the result for a likelihood/impact pair, clamped into [1,5]
func (h *Heatmap) Cell(likelihood, impact int) HeatmapCell {
	likelihood = types.ClampRating(likelihood)
	impact = types.ClampRating(impact)
	return h.Rows[types.MaxRating-likelihood][impact-1]
}
