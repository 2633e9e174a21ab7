package model

import "github.com/m-mizutani/goerr/v2"

// Scoring configuration errors
var (
	ErrInvalidScoringMethod = goerr.New("invalid scoring method")
	ErrNoBands              = goerr.New("scoring configuration requires at least one band")
	ErrInvalidBand          = goerr.New("invalid risk level band")
)

// Context keys for scoring configuration error values
const (
	BandIndexKey = "band_index"
	BandLabelKey = "band_label"
	BandMinKey   = "band_min"
	BandMaxKey   = "band_max"
	BandColorKey = "band_color"
	MethodKey    = "method"
)
