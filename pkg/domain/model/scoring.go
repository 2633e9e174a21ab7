package model

import (
	"time"

	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

const (
	// MinScore and MaxScore bound every score either method can produce
	MinScore = 1
	MaxScore = 25

	// UnknownLevelLabel is returned when no configured band covers a score
	UnknownLevelLabel = "Unknown"
	// UnknownLevelColor is the neutral gray paired with UnknownLevelLabel
	UnknownLevelColor = "#9e9e9e"
)

// RiskLevelBand maps an inclusive score range to a named level and display color
type RiskLevelBand struct {
	Min   int
	Max   int
	Label string
	Color string
}

// Contains reports whether score falls inside the band
func (b RiskLevelBand) Contains(score int) bool {
	return b.Min <= score && score <= b.Max
}

// ScoringConfiguration is the administrator-editable scoring setup.
// Version and UpdatedAt are assigned by the repository on save and are
// not read by Score.
type ScoringConfiguration struct {
	Method    types.ScoringMethod
	Bands     []RiskLevelBand
	Version   string
	UpdatedAt time.Time
}

// ScoreResult is the output of a single scoring call
type ScoreResult struct {
	Score      int
	LevelLabel string
	Color      string
}

// DefaultScoringConfiguration returns a fresh copy of the built-in configuration
func DefaultScoringConfiguration() *ScoringConfiguration {
	return &ScoringConfiguration{
		Method: types.ScoringMethodMultiplication,
		Bands: []RiskLevelBand{
			{Min: 1, Max: 3, Label: "Very Low", Color: "#4caf50"},
			{Min: 4, Max: 6, Label: "Low", Color: "#81c784"},
			{Min: 7, Max: 10, Label: "Medium", Color: "#ffeb3b"},
			{Min: 11, Max: 15, Label: "High", Color: "#f57c00"},
			{Min: 16, Max: 20, Label: "Very High", Color: "#d32f2f"},
			{Min: 21, Max: 25, Label: "Extreme", Color: "#7b1fa2"},
		},
	}
}

// Clone returns a deep copy. Published snapshots are always clones so a
// caller holding the original cannot change bands under concurrent readers.
func (c *ScoringConfiguration) Clone() *ScoringConfiguration {
	if c == nil {
		return nil
	}
	cloned := *c
	cloned.Bands = make([]RiskLevelBand, len(c.Bands))
	copy(cloned.Bands, c.Bands)
	return &cloned
}

// Score converts a likelihood/impact pair into a score and risk level.
//
// It never fails: ratings are clamped into [1,5], a nil or band-less cfg
// falls back to the default bands, and a score no band covers yields
// UnknownLevelLabel. cfg is only read.
func Score(likelihood, impact int, cfg *ScoringConfiguration) ScoreResult {
	likelihood = types.ClampRating(likelihood)
	impact = types.ClampRating(impact)

	method := types.ScoringMethodMultiplication
	bands := defaultBands
	if cfg != nil {
		method = cfg.Method
		if len(cfg.Bands) > 0 {
			bands = cfg.Bands
		}
	}

	score := likelihood * impact
	if method == types.ScoringMethodCoordinate {
		if v, ok := CoordinateScore(likelihood, impact); ok {
			score = v
		}
	}

	for _, band := range bands {
		if band.Contains(score) {
			return ScoreResult{
				Score:      score,
				LevelLabel: band.Label,
				Color:      band.Color,
			}
		}
	}

	return ScoreResult{
		Score:      score,
		LevelLabel: UnknownLevelLabel,
		Color:      UnknownLevelColor,
	}
}

// defaultBands is read-only; DefaultScoringConfiguration hands out copies.
var defaultBands = DefaultScoringConfiguration().Bands
