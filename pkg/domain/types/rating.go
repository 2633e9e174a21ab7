package types

import "github.com/m-mizutani/goerr/v2"

const (
	// MinRating is the lowest likelihood or impact rating
	MinRating = 1
	// MaxRating is the highest likelihood or impact rating
	MaxRating = 5
)

// ClampRating forces a likelihood or impact rating into [MinRating, MaxRating].
// Unselected form values arrive as 0 and must still render.
func ClampRating(v int) int {
	if v < MinRating {
		return MinRating
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}

// ValidateRating returns an error when v is outside [MinRating, MaxRating]
func ValidateRating(v int) error {
	if v < MinRating || v > MaxRating {
		return goerr.New("rating must be between 1 and 5", goerr.V("rating", v))
	}
	return nil
}
