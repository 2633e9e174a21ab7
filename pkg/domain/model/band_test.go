package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

func TestScoringConfiguration_Validate(t *testing.T) {
	band := func(min, max int, label, color string) model.RiskLevelBand {
		return model.RiskLevelBand{Min: min, Max: max, Label: label, Color: color}
	}

	tests := []struct {
		name    string
		cfg     *model.ScoringConfiguration
		wantErr error
	}{
		{
			name:    "default configuration",
			cfg:     model.DefaultScoringConfiguration(),
			wantErr: nil,
		},
		{
			name: "coordinate with gapped bands is still valid",
			cfg: &model.ScoringConfiguration{
				Method: types.ScoringMethodCoordinate,
				Bands:  []model.RiskLevelBand{band(1, 10, "Low", "#00ff00"), band(15, 25, "High", "#FF0000")},
			},
			wantErr: nil,
		},
		{
			name: "unknown method",
			cfg: &model.ScoringConfiguration{
				Method: "sum",
				Bands:  []model.RiskLevelBand{band(1, 25, "All", "#000000")},
			},
			wantErr: model.ErrInvalidScoringMethod,
		},
		{
			name: "empty method",
			cfg: &model.ScoringConfiguration{
				Bands: []model.RiskLevelBand{band(1, 25, "All", "#000000")},
			},
			wantErr: model.ErrInvalidScoringMethod,
		},
		{
			name:    "no bands",
			cfg:     &model.ScoringConfiguration{Method: types.ScoringMethodMultiplication},
			wantErr: model.ErrNoBands,
		},
		{
			name: "empty label",
			cfg: &model.ScoringConfiguration{
				Method: types.ScoringMethodMultiplication,
				Bands:  []model.RiskLevelBand{band(1, 25, "", "#000000")},
			},
			wantErr: model.ErrInvalidBand,
		},
		{
			name: "min greater than max",
			cfg: &model.ScoringConfiguration{
				Method: types.ScoringMethodMultiplication,
				Bands:  []model.RiskLevelBand{band(10, 5, "Bad", "#000000")},
			},
			wantErr: model.ErrInvalidBand,
		},
		{
			name: "below range",
			cfg: &model.ScoringConfiguration{
				Method: types.ScoringMethodMultiplication,
				Bands:  []model.RiskLevelBand{band(0, 5, "Bad", "#000000")},
			},
			wantErr: model.ErrInvalidBand,
		},
		{
			name: "above range",
			cfg: &model.ScoringConfiguration{
				Method: types.ScoringMethodMultiplication,
				Bands:  []model.RiskLevelBand{band(20, 30, "Bad", "#000000")},
			},
			wantErr: model.ErrInvalidBand,
		},
		{
			name: "named color",
			cfg: &model.ScoringConfiguration{
				Method: types.ScoringMethodMultiplication,
				Bands:  []model.RiskLevelBand{band(1, 25, "All", "red")},
			},
			wantErr: model.ErrInvalidBand,
		},
		{
			name: "short hex color",
			cfg: &model.ScoringConfiguration{
				Method: types.ScoringMethodMultiplication,
				Bands:  []model.RiskLevelBand{band(1, 25, "All", "#fff")},
			},
			wantErr: model.ErrInvalidBand,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				gt.NoError(t, err)
				return
			}
			gt.Error(t, err).Is(tt.wantErr)
		})
	}
}

func TestScoringConfiguration_Diagnose(t *testing.T) {
	t.Run("default configuration has no issues", func(t *testing.T) {
		gt.Array(t, model.DefaultScoringConfiguration().Diagnose()).Length(0)
	})

	t.Run("single gap", func(t *testing.T) {
		cfg := &model.ScoringConfiguration{
			Method: types.ScoringMethodMultiplication,
			Bands: []model.RiskLevelBand{
				{Min: 1, Max: 10, Label: "Low", Color: "#00ff00"},
				{Min: 15, Max: 25, Label: "High", Color: "#ff0000"},
			},
		}
		issues := cfg.Diagnose()
		gt.Array(t, issues).Length(1).Required()
		gt.Value(t, issues[0].Kind).Equal(model.BandIssueGap)
		gt.Value(t, issues[0].From).Equal(11)
		gt.Value(t, issues[0].To).Equal(14)
		gt.String(t, issues[0].Message()).Contains("11-14")
	})

	t.Run("gaps at both ends", func(t *testing.T) {
		cfg := &model.ScoringConfiguration{
			Method: types.ScoringMethodMultiplication,
			Bands: []model.RiskLevelBand{
				{Min: 2, Max: 24, Label: "Middle", Color: "#00ff00"},
			},
		}
		issues := cfg.Diagnose()
		gt.Array(t, issues).Length(2).Required()
		gt.Value(t, issues[0]).Equal(model.BandIssue{Kind: model.BandIssueGap, From: 1, To: 1})
		gt.Value(t, issues[1]).Equal(model.BandIssue{Kind: model.BandIssueGap, From: 25, To: 25})
		gt.String(t, issues[0].Message()).Contains("score 1 ")
	})

	t.Run("overlap", func(t *testing.T) {
		cfg := &model.ScoringConfiguration{
			Method: types.ScoringMethodMultiplication,
			Bands: []model.RiskLevelBand{
				{Min: 1, Max: 12, Label: "Low", Color: "#00ff00"},
				{Min: 10, Max: 25, Label: "High", Color: "#ff0000"},
			},
		}
		issues := cfg.Diagnose()
		gt.Array(t, issues).Length(1).Required()
		gt.Value(t, issues[0]).Equal(model.BandIssue{
			Kind:  model.BandIssueOverlap,
			From:  10,
			To:    12,
			Bands: []int{0, 1},
		})
		gt.String(t, issues[0].Message()).Contains("earlier band wins")
	})

	t.Run("no bands is one full gap", func(t *testing.T) {
		cfg := &model.ScoringConfiguration{Method: types.ScoringMethodMultiplication}
		issues := cfg.Diagnose()
		gt.Array(t, issues).Length(1).Required()
		gt.Value(t, issues[0].From).Equal(1)
		gt.Value(t, issues[0].To).Equal(25)
	})
}
