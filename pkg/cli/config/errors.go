package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound    = goerr.New("configuration file not found")
	ErrInvalidConfig     = goerr.New("invalid configuration")
	ErrDuplicateID       = goerr.New("duplicate ID")
	ErrDuplicateScore    = goerr.New("duplicate level score")
	ErrInvalidScoring    = goerr.New("invalid scoring configuration")
	ErrMissingName       = goerr.New("name is required")
	ErrInvalidLevelScore = goerr.New("level score must be between 1 and 5")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	IDKey         = "id"
	ScoreKey      = "score"
	SectionKey    = "section"
)
