package types

import "github.com/m-mizutani/goerr/v2"

// ScoringMethod selects how a likelihood/impact pair becomes a risk score
type ScoringMethod string

const (
	ScoringMethodMultiplication ScoringMethod = "multiplication"
	ScoringMethodCoordinate     ScoringMethod = "coordinate"
)

// AllScoringMethods returns all valid scoring methods
func AllScoringMethods() []ScoringMethod {
	return []ScoringMethod{
		ScoringMethodMultiplication,
		ScoringMethodCoordinate,
	}
}

// IsValid checks if the scoring method is valid
func (m ScoringMethod) IsValid() bool {
	switch m {
	case ScoringMethodMultiplication,
		ScoringMethodCoordinate:
		return true
	default:
		return false
	}
}

// Normalize returns the method, treating empty as ScoringMethodMultiplication.
func (m ScoringMethod) Normalize() ScoringMethod {
	if m == "" {
		return ScoringMethodMultiplication
	}
	return m
}

// String returns the string representation of the scoring method
func (m ScoringMethod) String() string {
	return string(m)
}

// ParseScoringMethod parses a string into a ScoringMethod
func ParseScoringMethod(s string) (ScoringMethod, error) {
	method := ScoringMethod(s)
	if !method.IsValid() {
		return "", goerr.New("invalid scoring method", goerr.V("method", s))
	}
	return method, nil
}
