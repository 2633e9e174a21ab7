package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskscope/pkg/cli/config"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

const validConfig = `
[[category]]
id = "data-breach"
name = "Data Breach"
description = "Risk of data leakage"

[[category]]
id = "outage"
name = "Service Outage"

[[likelihood]]
id = "rare"
name = "Rare"
score = 1

[[likelihood]]
id = "likely"
name = "Likely"
score = 4

[[impact]]
id = "minor"
name = "Minor"
score = 2

[[impact]]
id = "severe"
name = "Severe"
score = 5

[[team]]
id = "security"
name = "Security"

[scoring]
method = "coordinate"

[[scoring.band]]
min = 1
max = 10
label = "Low"
color = "#4caf50"

[[scoring.band]]
min = 11
max = 25
label = "High"
color = "#d32f2f"
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0600)).Required()
	return path
}

func TestLoadAppConfiguration(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr error
	}{
		{
			name:    "valid configuration",
			content: validConfig,
		},
		{
			name:    "empty configuration",
			content: "",
		},
		{
			name:    "broken TOML",
			content: "[[category]\nid = ",
			wantErr: config.ErrInvalidConfig,
		},
		{
			name: "duplicate category ID",
			content: `
[[category]]
id = "a"
name = "A"
[[category]]
id = "a"
name = "A again"
`,
			wantErr: config.ErrDuplicateID,
		},
		{
			name: "duplicate likelihood score",
			content: `
[[likelihood]]
id = "low"
name = "Low"
score = 2
[[likelihood]]
id = "lower"
name = "Lower"
score = 2
`,
			wantErr: config.ErrDuplicateScore,
		},
		{
			name: "impact score out of range",
			content: `
[[impact]]
id = "huge"
name = "Huge"
score = 6
`,
			wantErr: config.ErrInvalidLevelScore,
		},
		{
			name: "team without name",
			content: `
[[team]]
id = "sre"
`,
			wantErr: config.ErrMissingName,
		},
		{
			name: "unknown scoring method",
			content: `
[scoring]
method = "sum"
`,
			wantErr: config.ErrInvalidScoring,
		},
		{
			name: "band with bad color",
			content: `
[scoring]
[[scoring.band]]
min = 1
max = 25
label = "All"
color = "red"
`,
			wantErr: config.ErrInvalidScoring,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)

			cfg, err := config.LoadAppConfiguration(path)
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, cfg).NotNil()
			gt.Value(t, cfg.Path()).Equal(path)
		})
	}

	t.Run("config file not found", func(t *testing.T) {
		_, err := config.LoadAppConfiguration(filepath.Join(t.TempDir(), "missing.toml"))
		gt.Error(t, err).Is(config.ErrConfigNotFound)
	})
}

func TestAppConfig_Conversion(t *testing.T) {
	cfg, err := config.LoadAppConfiguration(writeConfig(t, validConfig))
	gt.NoError(t, err).Required()

	risk := cfg.ToDomainRiskConfig()
	gt.Array(t, risk.Categories).Length(2)
	gt.Value(t, risk.Categories[0].Description).Equal("Risk of data leakage")
	gt.Value(t, risk.LikelihoodName(4)).Equal("Likely")
	gt.Value(t, risk.ImpactName(5)).Equal("Severe")
	gt.Value(t, risk.ImpactName(3)).Equal("")
	gt.Array(t, risk.Teams).Length(1)

	scoring := cfg.Scoring.ToScoringConfiguration()
	gt.Value(t, scoring.Method).Equal(types.ScoringMethodCoordinate)
	gt.Array(t, scoring.Bands).Length(2)
	gt.Value(t, scoring.Bands[1].Label).Equal("High")
}

func TestScoring_Defaults(t *testing.T) {
	t.Run("no section", func(t *testing.T) {
		var s *config.Scoring
		gt.Value(t, s.ToScoringConfiguration()).Nil()
	})

	t.Run("method only keeps default bands", func(t *testing.T) {
		s := &config.Scoring{Method: "coordinate"}
		cfg := s.ToScoringConfiguration()
		gt.Value(t, cfg.Method).Equal(types.ScoringMethodCoordinate)
		gt.Array(t, cfg.Bands).Length(6)
	})

	t.Run("empty method means multiplication", func(t *testing.T) {
		s := &config.Scoring{Bands: []config.Band{{Min: 1, Max: 25, Label: "All", Color: "#000000"}}}
		cfg := s.ToScoringConfiguration()
		gt.Value(t, cfg.Method).Equal(types.ScoringMethodMultiplication)
		gt.Array(t, cfg.Bands).Length(1)
	})
}

func TestAppConfig_ConfigureWithoutPath(t *testing.T) {
	var cfg config.AppConfig
	risk, scoring, err := cfg.Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, risk).Nil()
	gt.Value(t, scoring).Nil()
}
