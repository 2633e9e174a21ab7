package usecase

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/interfaces"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/utils/logging"
)

// ScoringUseCase owns the live scoring configuration. Readers get an
// immutable snapshot; a new configuration is published by swapping the
// pointer, so concurrent scoring never observes a half-updated band list.
type ScoringUseCase struct {
	repo    interfaces.Repository
	current atomic.Pointer[model.ScoringConfiguration]
}

// NewScoringUseCase publishes seed, or the default configuration when seed is nil
func NewScoringUseCase(repo interfaces.Repository, seed *model.ScoringConfiguration) *ScoringUseCase {
	uc := &ScoringUseCase{repo: repo}
	if seed == nil {
		seed = model.DefaultScoringConfiguration()
	}
	uc.current.Store(seed.Clone())
	return uc
}

// Current returns the live snapshot. Callers must not modify it.
func (uc *ScoringUseCase) Current() *model.ScoringConfiguration {
	return uc.current.Load()
}

// Load publishes the saved configuration. When nothing has been saved yet
// the seed stays live.
func (uc *ScoringUseCase) Load(ctx context.Context) error {
	cfg, err := uc.repo.ScoringConfig().Get(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			logging.From(ctx).Info("no saved scoring configuration, keeping seed",
				slog.String("method", uc.Current().Method.String()),
				slog.Int("bands", len(uc.Current().Bands)))
			return nil
		}
		return goerr.Wrap(err, "failed to load scoring configuration")
	}

	uc.publish(ctx, cfg)
	return nil
}

// Refresh publishes the saved configuration only when its version differs
// from the live one. It reports whether a swap happened.
func (uc *ScoringUseCase) Refresh(ctx context.Context) (bool, error) {
	cfg, err := uc.repo.ScoringConfig().Get(ctx)
	if err != nil {
		if errors.Is(err, interfaces.ErrNotFound) {
			return false, nil
		}
		return false, goerr.Wrap(err, "failed to refresh scoring configuration")
	}

	if cfg.Version == uc.Current().Version {
		return false, nil
	}

	uc.publish(ctx, cfg)
	return true, nil
}

// Save validates and persists cfg, then publishes the stored copy. Gaps and
// overlaps do not block saving; they are returned as warnings.
func (uc *ScoringUseCase) Save(ctx context.Context, cfg *model.ScoringConfiguration) (*model.ScoringConfiguration, []model.BandIssue, error) {
	if cfg == nil {
		return nil, nil, goerr.Wrap(ErrInvalidInput, "scoring configuration is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, goerr.Wrap(err, "invalid scoring configuration")
	}

	saved, err := uc.repo.ScoringConfig().Save(ctx, cfg)
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to save scoring configuration")
	}

	issues := saved.Diagnose()
	for _, issue := range issues {
		logging.From(ctx).Warn("scoring band issue",
			slog.String("kind", string(issue.Kind)),
			slog.String("message", issue.Message()),
			slog.String(VersionKey, saved.Version))
	}

	uc.publish(ctx, saved)
	return saved.Clone(), issues, nil
}

// History returns saved configurations, newest first. limit <= 0 returns all.
func (uc *ScoringUseCase) History(ctx context.Context, limit int) ([]*model.ScoringConfiguration, error) {
	history, err := uc.repo.ScoringConfig().ListHistory(ctx, limit)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list scoring configuration history", goerr.V("limit", limit))
	}
	return history, nil
}

// Score scores a likelihood/impact pair against the live configuration
func (uc *ScoringUseCase) Score(likelihood, impact int) model.ScoreResult {
	return model.Score(likelihood, impact, uc.Current())
}

// Heatmap builds the 5x5 matrix against the live configuration
func (uc *ScoringUseCase) Heatmap() *model.Heatmap {
	return model.BuildHeatmap(uc.Current())
}

func (uc *ScoringUseCase) publish(ctx context.Context, cfg *model.ScoringConfiguration) {
	prev := uc.current.Swap(cfg.Clone())
	logging.From(ctx).Info("scoring configuration published",
		slog.String(VersionKey, cfg.Version),
		slog.String("previous_version", prev.Version),
		slog.String("method", cfg.Method.String()),
		slog.Int("bands", len(cfg.Bands)))
}
