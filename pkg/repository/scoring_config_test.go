package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskscope/pkg/domain/interfaces"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

func runScoringConfigRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Get returns ErrNotFound before first save", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.ScoringConfig().Get(context.Background())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, interfaces.ErrNotFound)).True()
	})

	t.Run("Save assigns version and timestamp", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		cfg := model.DefaultScoringConfiguration()
		cfg.Method = types.ScoringMethodCoordinate

		saved, err := repo.ScoringConfig().Save(ctx, cfg)
		gt.NoError(t, err).Required()
		gt.Value(t, saved.Version).NotEqual("")
		gt.Bool(t, saved.UpdatedAt.IsZero()).False()
		gt.Value(t, saved.Method).Equal(types.ScoringMethodCoordinate)
		gt.Array(t, saved.Bands).Length(6)

		// input is left untouched
		gt.Value(t, cfg.Version).Equal("")

		active, err := repo.ScoringConfig().Get(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, active.Version).Equal(saved.Version)
		gt.Value(t, active.Method).Equal(types.ScoringMethodCoordinate)
		gt.Value(t, active.Bands).Equal(saved.Bands)
	})

	t.Run("Save replaces active and keeps history newest first", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.ScoringConfig().Save(ctx, model.DefaultScoringConfiguration())
		gt.NoError(t, err).Required()

		time.Sleep(10 * time.Millisecond)
		next := model.DefaultScoringConfiguration()
		next.Bands = []model.RiskLevelBand{
			{Min: 1, Max: 12, Label: "Low", Color: "#00ff00"},
			{Min: 13, Max: 25, Label: "High", Color: "#ff0000"},
		}
		second, err := repo.ScoringConfig().Save(ctx, next)
		gt.NoError(t, err).Required()
		gt.Value(t, first.Version).NotEqual(second.Version)

		active, err := repo.ScoringConfig().Get(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, active.Version).Equal(second.Version)
		gt.Array(t, active.Bands).Length(2)

		history, err := repo.ScoringConfig().ListHistory(ctx, 0)
		gt.NoError(t, err).Required()
		gt.Array(t, history).Length(2)
		gt.Value(t, history[0].Version).Equal(second.Version)
		gt.Value(t, history[1].Version).Equal(first.Version)

		limited, err := repo.ScoringConfig().ListHistory(ctx, 1)
		gt.NoError(t, err).Required()
		gt.Array(t, limited).Length(1)
		gt.Value(t, limited[0].Version).Equal(second.Version)
	})

	t.Run("returned configuration is a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		saved, err := repo.ScoringConfig().Save(ctx, model.DefaultScoringConfiguration())
		gt.NoError(t, err).Required()
		saved.Bands[0].Label = "mutated"

		active, err := repo.ScoringConfig().Get(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, active.Bands[0].Label).Equal("Very Low")
	})
}

func TestMemoryScoringConfigRepository(t *testing.T) {
	runScoringConfigRepositoryTest(t, newMemoryRepository)
}

func TestFirestoreScoringConfigRepository(t *testing.T) {
	runScoringConfigRepositoryTest(t, newFirestoreRepository)
}
