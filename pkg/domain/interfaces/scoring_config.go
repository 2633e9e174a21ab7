package interfaces

import (
	"context"

	"github.com/secmon-lab/riskscope/pkg/domain/model"
)

type ScoringConfigRepository interface {
	// Get retrieves the active scoring configuration. Returns ErrNotFound
	// when nothing has been saved yet.
	Get(ctx context.Context) (*model.ScoringConfiguration, error)

	// Save replaces the active configuration and appends it to the history.
	// Version and UpdatedAt of the returned value are assigned by the repository.
	Save(ctx context.Context, cfg *model.ScoringConfiguration) (*model.ScoringConfiguration, error)

	// ListHistory returns up to limit saved configurations, newest first
	ListHistory(ctx context.Context, limit int) ([]*model.ScoringConfiguration, error)
}
