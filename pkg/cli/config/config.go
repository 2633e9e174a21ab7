package config

import (
	"errors"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	domainConfig "github.com/secmon-lab/riskscope/pkg/domain/model/config"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

// AppConfig represents the application configuration file. The path is set
// by the --config flag.
type AppConfig struct {
	path string

	Categories []Category        `toml:"category"`
	Likelihood []LikelihoodLevel `toml:"likelihood"`
	Impact     []ImpactLevel     `toml:"impact"`
	Teams      []Team            `toml:"team"`
	Scoring    *Scoring          `toml:"scoring"`
}

// Category represents a risk category configuration
type Category struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
}

// Validate checks if the Category is valid
func (c *Category) Validate() error {
	id := types.CategoryID(c.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid category ID")
	}
	if c.Name == "" {
		return goerr.Wrap(ErrMissingName, "category name is required", goerr.V(IDKey, c.ID))
	}
	return nil
}

// LikelihoodLevel represents a likelihood level configuration
type LikelihoodLevel struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Score       int    `toml:"score"`
}

// Validate checks if the LikelihoodLevel is valid
func (l *LikelihoodLevel) Validate() error {
	id := types.LikelihoodID(l.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid likelihood ID")
	}
	if l.Name == "" {
		return goerr.Wrap(ErrMissingName, "likelihood name is required", goerr.V(IDKey, l.ID))
	}
	if err := types.ValidateRating(l.Score); err != nil {
		return goerr.Wrap(ErrInvalidLevelScore, "invalid likelihood score", goerr.V(IDKey, l.ID), goerr.V(ScoreKey, l.Score))
	}
	return nil
}

// ImpactLevel represents an impact level configuration
type ImpactLevel struct {
	ID          string `toml:"id"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Score       int    `toml:"score"`
}

// Validate checks if the ImpactLevel is valid
func (i *ImpactLevel) Validate() error {
	id := types.ImpactID(i.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid impact ID")
	}
	if i.Name == "" {
		return goerr.Wrap(ErrMissingName, "impact name is required", goerr.V(IDKey, i.ID))
	}
	if err := types.ValidateRating(i.Score); err != nil {
		return goerr.Wrap(ErrInvalidLevelScore, "invalid impact score", goerr.V(IDKey, i.ID), goerr.V(ScoreKey, i.Score))
	}
	return nil
}

// Team represents a team configuration
type Team struct {
	ID   string `toml:"id"`
	Name string `toml:"name"`
}

// Validate checks if the Team is valid
func (t *Team) Validate() error {
	id := types.TeamID(t.ID)
	if err := id.Validate(); err != nil {
		return goerr.Wrap(err, "invalid team ID")
	}
	if t.Name == "" {
		return goerr.Wrap(ErrMissingName, "team name is required", goerr.V(IDKey, t.ID))
	}
	return nil
}

// Scoring is the [scoring] section. It seeds the live scoring configuration
// until one is saved through the API.
type Scoring struct {
	Method string `toml:"method"`
	Bands  []Band `toml:"band"`
}

// Band is one [[scoring.band]] entry
type Band struct {
	Min   int    `toml:"min"`
	Max   int    `toml:"max"`
	Label string `toml:"label"`
	Color string `toml:"color"`
}

// ToScoringConfiguration converts the section to the domain type. An empty
// method means multiplication; no bands means the default bands.
func (s *Scoring) ToScoringConfiguration() *model.ScoringConfiguration {
	if s == nil {
		return nil
	}

	cfg := model.DefaultScoringConfiguration()
	cfg.Method = types.ScoringMethod(s.Method).Normalize()
	if len(s.Bands) > 0 {
		cfg.Bands = make([]model.RiskLevelBand, len(s.Bands))
		for i, b := range s.Bands {
			cfg.Bands[i] = model.RiskLevelBand{Min: b.Min, Max: b.Max, Label: b.Label, Color: b.Color}
		}
	}
	return cfg
}

// Flags returns CLI flags for the configuration file
func (a *AppConfig) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML configuration file",
			Sources:     cli.EnvVars("RISKSCOPE_CONFIG"),
			Destination: &a.path,
		},
	}
}

// Path returns the configuration file path given by --config
func (a *AppConfig) Path() string {
	return a.path
}

// Configure loads the file given by --config. Without --config it returns
// nil for both values; the server then runs without label validation and
// with the default scoring configuration.
func (a *AppConfig) Configure() (*domainConfig.RiskConfig, *model.ScoringConfiguration, error) {
	if a.path == "" {
		return nil, nil, nil
	}

	loaded, err := LoadAppConfiguration(a.path)
	if err != nil {
		return nil, nil, err
	}

	path := a.path
	*a = *loaded
	a.path = path

	return a.ToDomainRiskConfig(), a.Scoring.ToScoringConfiguration(), nil
}

// Validate checks if the AppConfig is valid
func (a *AppConfig) Validate() error {
	categoryIDs := make(map[string]bool)
	for _, cat := range a.Categories {
		if err := cat.Validate(); err != nil {
			return goerr.Wrap(err, "invalid category")
		}
		if categoryIDs[cat.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate category ID", goerr.V(IDKey, cat.ID))
		}
		categoryIDs[cat.ID] = true
	}

	likelihoodIDs := make(map[string]bool)
	likelihoodScores := make(map[int]bool)
	for _, lh := range a.Likelihood {
		if err := lh.Validate(); err != nil {
			return goerr.Wrap(err, "invalid likelihood level")
		}
		if likelihoodIDs[lh.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate likelihood ID", goerr.V(IDKey, lh.ID))
		}
		if likelihoodScores[lh.Score] {
			return goerr.Wrap(ErrDuplicateScore, "duplicate likelihood score", goerr.V(IDKey, lh.ID), goerr.V(ScoreKey, lh.Score))
		}
		likelihoodIDs[lh.ID] = true
		likelihoodScores[lh.Score] = true
	}

	impactIDs := make(map[string]bool)
	impactScores := make(map[int]bool)
	for _, imp := range a.Impact {
		if err := imp.Validate(); err != nil {
			return goerr.Wrap(err, "invalid impact level")
		}
		if impactIDs[imp.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate impact ID", goerr.V(IDKey, imp.ID))
		}
		if impactScores[imp.Score] {
			return goerr.Wrap(ErrDuplicateScore, "duplicate impact score", goerr.V(IDKey, imp.ID), goerr.V(ScoreKey, imp.Score))
		}
		impactIDs[imp.ID] = true
		impactScores[imp.Score] = true
	}

	teamIDs := make(map[string]bool)
	for _, team := range a.Teams {
		if err := team.Validate(); err != nil {
			return goerr.Wrap(err, "invalid team")
		}
		if teamIDs[team.ID] {
			return goerr.Wrap(ErrDuplicateID, "duplicate team ID", goerr.V(IDKey, team.ID))
		}
		teamIDs[team.ID] = true
	}

	if a.Scoring != nil {
		if a.Scoring.Method != "" && !types.ScoringMethod(a.Scoring.Method).IsValid() {
			return goerr.Wrap(ErrInvalidScoring, "unsupported scoring method", goerr.V("method", a.Scoring.Method))
		}
		if err := a.Scoring.ToScoringConfiguration().Validate(); err != nil {
			return goerr.Wrap(ErrInvalidScoring, err.Error(), goerr.V(SectionKey, "scoring"))
		}
	}

	return nil
}

// LoadAppConfiguration loads the application configuration from a TOML file
func LoadAppConfiguration(path string) (*AppConfig, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, goerr.Wrap(ErrConfigNotFound, "config file does not exist", goerr.V(ConfigPathKey, path))
		}
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var config AppConfig
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config", goerr.V(ConfigPathKey, path), goerr.V("error", err.Error()))
	}

	if err := config.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	config.path = path
	return &config, nil
}

// ToDomainRiskConfig converts AppConfig to domain RiskConfig
func (a *AppConfig) ToDomainRiskConfig() *domainConfig.RiskConfig {
	categories := make([]domainConfig.Category, len(a.Categories))
	for i, cat := range a.Categories {
		categories[i] = domainConfig.Category{
			ID:          cat.ID,
			Name:        cat.Name,
			Description: cat.Description,
		}
	}

	likelihood := make([]domainConfig.LikelihoodLevel, len(a.Likelihood))
	for i, level := range a.Likelihood {
		likelihood[i] = domainConfig.LikelihoodLevel{
			ID:          level.ID,
			Name:        level.Name,
			Description: level.Description,
			Score:       level.Score,
		}
	}

	impact := make([]domainConfig.ImpactLevel, len(a.Impact))
	for i, level := range a.Impact {
		impact[i] = domainConfig.ImpactLevel{
			ID:          level.ID,
			Name:        level.Name,
			Description: level.Description,
			Score:       level.Score,
		}
	}

	teams := make([]domainConfig.Team, len(a.Teams))
	for i, team := range a.Teams {
		teams[i] = domainConfig.Team{
			ID:   team.ID,
			Name: team.Name,
		}
	}

	return &domainConfig.RiskConfig{
		Categories: categories,
		Likelihood: likelihood,
		Impact:     impact,
		Teams:      teams,
	}
}
