package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

func TestBuildHeatmap(t *testing.T) {
	t.Run("rows run from likely to rare", func(t *testing.T) {
		h := model.BuildHeatmap(nil)
		gt.Value(t, h.Rows[0][0].Likelihood).Equal(5)
		gt.Value(t, h.Rows[0][0].Impact).Equal(1)
		gt.Value(t, h.Rows[4][4].Likelihood).Equal(1)
		gt.Value(t, h.Rows[4][4].Impact).Equal(5)
	})

	t.Run("every cell matches Score", func(t *testing.T) {
		cfg := model.DefaultScoringConfiguration()
		cfg.Method = types.ScoringMethodCoordinate
		h := model.BuildHeatmap(cfg)
		for l := 1; l <= 5; l++ {
			for i := 1; i <= 5; i++ {
				cell := h.Cell(l, i)
				gt.Value(t, cell.Likelihood).Equal(l)
				gt.Value(t, cell.Impact).Equal(i)
				gt.Value(t, cell.Result).Equal(model.Score(l, i, cfg))
			}
		}
		gt.Value(t, h.Cell(1, 5).Result.Score).Equal(20)
	})

	t.Run("cell lookup clamps", func(t *testing.T) {
		h := model.BuildHeatmap(nil)
		gt.Value(t, h.Cell(0, 9)).Equal(h.Cell(1, 5))
	})
}

func TestScoreRisk(t *testing.T) {
	r := &model.Risk{
		Name:               "Vendor outage",
		InherentLikelihood: 4,
		InherentImpact:     5,
		ResidualLikelihood: 2,
		ResidualImpact:     3,
	}

	scored := model.ScoreRisk(r, nil)
	gt.Value(t, scored.Risk).Equal(r)
	gt.Value(t, scored.Inherent.Score).Equal(20)
	gt.Value(t, scored.Inherent.LevelLabel).Equal("Very High")
	gt.Value(t, scored.Residual.Score).Equal(6)
	gt.Value(t, scored.Residual.LevelLabel).Equal("Low")
}
