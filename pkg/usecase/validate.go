package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/interfaces"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

// ValidationIssue represents a single inconsistency between stored data and
// the loaded configuration
type ValidationIssue struct {
	RiskID   int64
	Field    string
	Message  string
	Expected string
	Actual   string
}

// ValidationResult holds the results of DB validation
type ValidationResult struct {
	Issues []ValidationIssue
	// BandIssues are gaps and overlaps in the stored scoring configuration.
	// They are warnings and do not count towards HasIssues.
	BandIssues []model.BandIssue
}

// HasIssues returns true if there are any validation issues
func (r *ValidationResult) HasIssues() bool {
	return len(r.Issues) > 0
}

// AddIssue adds a validation issue to the result
func (r *ValidationResult) AddIssue(issue ValidationIssue) {
	r.Issues = append(r.Issues, issue)
}

// ValidateDB checks stored risks against the risk configuration and the
// stored scoring configuration against the band rules. It does NOT modify
// any data.
func (uc *UseCases) ValidateDB(ctx context.Context) (*ValidationResult, error) {
	result := &ValidationResult{}

	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}

	for _, r := range risks {
		ratings := []struct {
			field string
			value int
			check func(int) error
		}{
			{"inherent_likelihood", r.InherentLikelihood, uc.Risk.ValidateLikelihood},
			{"inherent_impact", r.InherentImpact, uc.Risk.ValidateImpact},
			{"residual_likelihood", r.ResidualLikelihood, uc.Risk.ValidateLikelihood},
			{"residual_impact", r.ResidualImpact, uc.Risk.ValidateImpact},
		}
		for _, rt := range ratings {
			if err := rt.check(rt.value); err != nil {
				result.AddIssue(ValidationIssue{
					RiskID:   r.ID,
					Field:    rt.field,
					Message:  "rating is not a configured level",
					Expected: fmt.Sprintf("%d..%d", types.MinRating, types.MaxRating),
					Actual:   fmt.Sprintf("%d", rt.value),
				})
			}
		}

		if r.CategoryID != "" {
			if err := uc.Risk.ValidateCategoryID(r.CategoryID); err != nil {
				result.AddIssue(ValidationIssue{
					RiskID:  r.ID,
					Field:   "category_id",
					Message: "category is not configured",
					Actual:  r.CategoryID.String(),
				})
			}
		}
		if r.OwnerTeamID != "" {
			if err := uc.Risk.ValidateTeamID(r.OwnerTeamID); err != nil {
				result.AddIssue(ValidationIssue{
					RiskID:  r.ID,
					Field:   "owner_team_id",
					Message: "team is not configured",
					Actual:  r.OwnerTeamID.String(),
				})
			}
		}
	}

	stored, err := uc.repo.ScoringConfig().Get(ctx)
	switch {
	case errors.Is(err, interfaces.ErrNotFound):
		// nothing saved yet
	case err != nil:
		return nil, goerr.Wrap(err, "failed to get scoring configuration")
	default:
		if err := stored.Validate(); err != nil {
			result.AddIssue(ValidationIssue{
				Field:   "scoring",
				Message: err.Error(),
				Actual:  stored.Version,
			})
		}
		result.BandIssues = stored.Diagnose()
	}

	return result, nil
}
