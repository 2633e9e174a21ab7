package usecase

import "errors"

// Sentinel errors for use case layer
var (
	// ErrInvalidInput marks caller mistakes; the HTTP layer maps it to 400
	ErrInvalidInput = errors.New("invalid input")
)

// Context keys for error values
const (
	RiskIDKey     = "risk_id"
	CategoryIDKey = "category_id"
	TeamIDKey     = "team_id"
	RatingKey     = "rating"
	VersionKey    = "version"
)
