package config

// Category represents a risk category configuration
type Category struct {
	ID          string
	Name        string
	Description string
}

// LikelihoodLevel names one likelihood rating (Score 1..5)
type LikelihoodLevel struct {
	ID          string
	Name        string
	Description string
	Score       int
}

// ImpactLevel names one impact rating (Score 1..5)
type ImpactLevel struct {
	ID          string
	Name        string
	Description string
	Score       int
}

// Team represents a team configuration
type Team struct {
	ID   string
	Name string
}

// RiskConfig holds the labels the register forms and the heatmap axes use
type RiskConfig struct {
	Categories []Category
	Likelihood []LikelihoodLevel
	Impact     []ImpactLevel
	Teams      []Team
}

// LikelihoodName returns the configured name for a likelihood score, or ""
func (c *RiskConfig) LikelihoodName(score int) string {
	if c == nil {
		return ""
	}
	for _, level := range c.Likelihood {
		if level.Score == score {
			return level.Name
		}
	}
	return ""
}

// ImpactName returns the configured name for an impact score, or ""
func (c *RiskConfig) ImpactName(score int) string {
	if c == nil {
		return ""
	}
	for _, level := range c.Impact {
		if level.Score == score {
			return level.Name
		}
	}
	return ""
}
