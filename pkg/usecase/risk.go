package usecase

import (
	"context"
	"sync/atomic"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/interfaces"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/model/config"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

// RiskInput carries the editable fields of a risk
type RiskInput struct {
	Name               string
	Description        string
	CategoryID         types.CategoryID
	OwnerTeamID        types.TeamID
	InherentLikelihood int
	InherentImpact     int
	ResidualLikelihood int
	ResidualImpact     int
}

type RiskUseCase struct {
	repo       interfaces.Repository
	riskConfig atomic.Pointer[config.RiskConfig]
	scoring    *ScoringUseCase
}

func NewRiskUseCase(repo interfaces.Repository, cfg *config.RiskConfig, scoring *ScoringUseCase) *RiskUseCase {
	uc := &RiskUseCase{
		repo:    repo,
		scoring: scoring,
	}
	uc.riskConfig.Store(cfg)
	return uc
}

// SetRiskConfig swaps the risk configuration used for validation and labels
func (uc *RiskUseCase) SetRiskConfig(cfg *config.RiskConfig) {
	uc.riskConfig.Store(cfg)
}

func (uc *RiskUseCase) CreateRisk(ctx context.Context, input RiskInput) (*model.Risk, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	risk := input.toModel()
	created, err := uc.repo.Risk().Create(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create risk")
	}

	return created, nil
}

func (uc *RiskUseCase) UpdateRisk(ctx context.Context, id int64, input RiskInput) (*model.Risk, error) {
	if err := uc.validateInput(input); err != nil {
		return nil, err
	}

	risk := input.toModel()
	risk.ID = id

	updated, err := uc.repo.Risk().Update(ctx, risk)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V(RiskIDKey, id))
	}

	return updated, nil
}

func (uc *RiskUseCase) DeleteRisk(ctx context.Context, id int64) error {
	if err := uc.repo.Risk().Delete(ctx, id); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V(RiskIDKey, id))
	}
	return nil
}

func (uc *RiskUseCase) GetRisk(ctx context.Context, id int64) (*model.Risk, error) {
	risk, err := uc.repo.Risk().Get(ctx, id)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V(RiskIDKey, id))
	}
	return risk, nil
}

func (uc *RiskUseCase) ListRisks(ctx context.Context) ([]*model.Risk, error) {
	risks, err := uc.repo.Risk().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks")
	}
	return risks, nil
}

func (uc *RiskUseCase) ListRisksByCategory(ctx context.Context, categoryID types.CategoryID) ([]*model.Risk, error) {
	if err := uc.ValidateCategoryID(categoryID); err != nil {
		return nil, err
	}

	risks, err := uc.repo.Risk().ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks by category", goerr.V(CategoryIDKey, categoryID))
	}
	return risks, nil
}

// GetScoredRisk returns a risk with its inherent and residual scores
func (uc *RiskUseCase) GetScoredRisk(ctx context.Context, id int64) (*model.ScoredRisk, error) {
	risk, err := uc.GetRisk(ctx, id)
	if err != nil {
		return nil, err
	}
	return model.ScoreRisk(risk, uc.scoring.Current()), nil
}

// ListScoredRisks scores every listed risk against a single configuration
// snapshot so one rendered table never mixes two band sets. An empty
// categoryID lists all risks.
func (uc *RiskUseCase) ListScoredRisks(ctx context.Context, categoryID types.CategoryID) ([]*model.ScoredRisk, error) {
	var (
		risks []*model.Risk
		err   error
	)
	if categoryID == "" {
		risks, err = uc.ListRisks(ctx)
	} else {
		risks, err = uc.ListRisksByCategory(ctx, categoryID)
	}
	if err != nil {
		return nil, err
	}

	snapshot := uc.scoring.Current()
	scored := make([]*model.ScoredRisk, len(risks))
	for i, r := range risks {
		scored[i] = model.ScoreRisk(r, snapshot)
	}
	return scored, nil
}

// GetRiskConfiguration returns the live risk configuration
func (uc *RiskUseCase) GetRiskConfiguration() (*config.RiskConfig, error) {
	cfg := uc.riskConfig.Load()
	if cfg == nil {
		return nil, goerr.New("risk configuration not loaded")
	}
	return cfg, nil
}

func (uc *RiskUseCase) validateInput(input RiskInput) error {
	if input.Name == "" {
		return goerr.Wrap(ErrInvalidInput, "risk name is required")
	}

	for _, v := range []int{input.InherentLikelihood, input.ResidualLikelihood} {
		if err := uc.ValidateLikelihood(v); err != nil {
			return err
		}
	}
	for _, v := range []int{input.InherentImpact, input.ResidualImpact} {
		if err := uc.ValidateImpact(v); err != nil {
			return err
		}
	}

	if input.CategoryID != "" {
		if err := uc.ValidateCategoryID(input.CategoryID); err != nil {
			return err
		}
	}
	if input.OwnerTeamID != "" {
		if err := uc.ValidateTeamID(input.OwnerTeamID); err != nil {
			return err
		}
	}

	return nil
}

func (uc *RiskUseCase) ValidateCategoryID(id types.CategoryID) error {
	if err := id.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, err.Error(), goerr.V(CategoryIDKey, id))
	}

	cfg := uc.riskConfig.Load()
	if cfg == nil {
		return nil
	}

	for _, cat := range cfg.Categories {
		if types.CategoryID(cat.ID) == id {
			return nil
		}
	}

	return goerr.Wrap(ErrInvalidInput, "category ID not found in configuration", goerr.V(CategoryIDKey, id))
}

func (uc *RiskUseCase) ValidateTeamID(id types.TeamID) error {
	if err := id.Validate(); err != nil {
		return goerr.Wrap(ErrInvalidInput, err.Error(), goerr.V(TeamIDKey, id))
	}

	cfg := uc.riskConfig.Load()
	if cfg == nil {
		return nil
	}

	for _, team := range cfg.Teams {
		if types.TeamID(team.ID) == id {
			return nil
		}
	}

	return goerr.Wrap(ErrInvalidInput, "team ID not found in configuration", goerr.V(TeamIDKey, id))
}

// ValidateLikelihood checks the rating range and, when likelihood levels
// are configured, that a level with this score exists
func (uc *RiskUseCase) ValidateLikelihood(score int) error {
	if err := types.ValidateRating(score); err != nil {
		return goerr.Wrap(ErrInvalidInput, "invalid likelihood", goerr.V(RatingKey, score))
	}

	cfg := uc.riskConfig.Load()
	if cfg == nil || len(cfg.Likelihood) == 0 {
		return nil
	}
	if cfg.LikelihoodName(score) == "" {
		return goerr.Wrap(ErrInvalidInput, "likelihood level not found in configuration", goerr.V(RatingKey, score))
	}
	return nil
}

// ValidateImpact is the impact counterpart of ValidateLikelihood
func (uc *RiskUseCase) ValidateImpact(score int) error {
	if err := types.ValidateRating(score); err != nil {
		return goerr.Wrap(ErrInvalidInput, "invalid impact", goerr.V(RatingKey, score))
	}

	cfg := uc.riskConfig.Load()
	if cfg == nil || len(cfg.Impact) == 0 {
		return nil
	}
	if cfg.ImpactName(score) == "" {
		return goerr.Wrap(ErrInvalidInput, "impact level not found in configuration", goerr.V(RatingKey, score))
	}
	return nil
}

func (x RiskInput) toModel() *model.Risk {
	return &model.Risk{
		Name:               x.Name,
		Description:        x.Description,
		CategoryID:         x.CategoryID,
		OwnerTeamID:        x.OwnerTeamID,
		InherentLikelihood: x.InherentLikelihood,
		InherentImpact:     x.InherentImpact,
		ResidualLikelihood: x.ResidualLikelihood,
		ResidualImpact:     x.ResidualImpact,
	}
}
