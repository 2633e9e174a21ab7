package model

import (
	"fmt"
	"regexp"

	"github.com/m-mizutani/goerr/v2"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Validate checks the configuration before it is saved. Gaps and overlaps
// are not errors here; Diagnose reports them as warnings.
func (c *ScoringConfiguration) Validate() error {
	if !c.Method.IsValid() {
		return goerr.Wrap(ErrInvalidScoringMethod, "unsupported scoring method",
			goerr.V(MethodKey, c.Method))
	}
	if len(c.Bands) == 0 {
		return goerr.Wrap(ErrNoBands, "no bands configured")
	}

	for i, band := range c.Bands {
		if err := band.validate(); err != nil {
			return goerr.Wrap(err, "band validation failed",
				goerr.V(BandIndexKey, i),
				goerr.V(BandLabelKey, band.Label))
		}
	}

	return nil
}

func (b RiskLevelBand) validate() error {
	if b.Label == "" {
		return goerr.Wrap(ErrInvalidBand, "band label is required")
	}
	if b.Min > b.Max {
		return goerr.Wrap(ErrInvalidBand, "band min must not exceed max",
			goerr.V(BandMinKey, b.Min),
			goerr.V(BandMaxKey, b.Max))
	}
	if b.Min < MinScore || b.Max > MaxScore {
		return goerr.Wrap(ErrInvalidBand, "band must lie within 1-25",
			goerr.V(BandMinKey, b.Min),
			goerr.V(BandMaxKey, b.Max))
	}
	if !colorPattern.MatchString(b.Color) {
		return goerr.Wrap(ErrInvalidBand, "band color must be #rrggbb",
			goerr.V(BandColorKey, b.Color))
	}
	return nil
}

// BandIssueKind classifies a non-blocking band coverage problem
type BandIssueKind string

const (
	BandIssueGap     BandIssueKind = "gap"
	BandIssueOverlap BandIssueKind = "overlap"
)

// BandIssue describes scores From..To (inclusive) that no band covers, or
// that two bands both cover. Bands holds the indices of the overlapping
// bands and is empty for gaps.
type BandIssue struct {
	Kind  BandIssueKind
	From  int
	To    int
	Bands []int
}

// Message returns a human readable description for the band editor
func (x BandIssue) Message() string {
	switch x.Kind {
	case BandIssueGap:
		if x.From == x.To {
			return fmt.Sprintf("score %d is not covered by any band", x.From)
		}
		return fmt.Sprintf("scores %d-%d are not covered by any band", x.From, x.To)
	case BandIssueOverlap:
		return fmt.Sprintf("bands %d and %d both cover scores %d-%d; the earlier band wins",
			x.Bands[0], x.Bands[1], x.From, x.To)
	default:
		return string(x.Kind)
	}
}

// Diagnose reports gaps in [1,25] coverage and overlapping bands, in score
// order for gaps followed by band order for overlaps.
func (c *ScoringConfiguration) Diagnose() []BandIssue {
	var issues []BandIssue

	var covered [MaxScore + 1]bool
	for _, band := range c.Bands {
		for s := max(band.Min, MinScore); s <= min(band.Max, MaxScore); s++ {
			covered[s] = true
		}
	}

	for s := MinScore; s <= MaxScore; s++ {
		if covered[s] {
			continue
		}
		from := s
		for s+1 <= MaxScore && !covered[s+1] {
			s++
		}
		issues = append(issues, BandIssue{Kind: BandIssueGap, From: from, To: s})
	}

	for i := 0; i < len(c.Bands); i++ {
		for j := i + 1; j < len(c.Bands); j++ {
			lo := max(c.Bands[i].Min, c.Bands[j].Min, MinScore)
			hi := min(c.Bands[i].Max, c.Bands[j].Max, MaxScore)
			if lo > hi {
				continue
			}
			issues = append(issues, BandIssue{
				Kind:  BandIssueOverlap,
				From:  lo,
				To:    hi,
				Bands: []int{i, j},
			})
		}
	}

	return issues
}
