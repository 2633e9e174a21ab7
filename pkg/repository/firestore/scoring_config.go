package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const activeScoringConfigDoc = "active"

type bandDocument struct {
	Min   int    `firestore:"min"`
	Max   int    `firestore:"max"`
	Label string `firestore:"label"`
	Color string `firestore:"color"`
}

type scoringConfigDocument struct {
	Version   string         `firestore:"version"`
	Method    string         `firestore:"method"`
	Bands     []bandDocument `firestore:"bands"`
	UpdatedAt time.Time      `firestore:"updated_at"`
}

func newScoringConfigDocument(cfg *model.ScoringConfiguration) *scoringConfigDocument {
	doc := &scoringConfigDocument{
		Version:   cfg.Version,
		Method:    cfg.Method.String(),
		Bands:     make([]bandDocument, len(cfg.Bands)),
		UpdatedAt: cfg.UpdatedAt,
	}
	for i, b := range cfg.Bands {
		doc.Bands[i] = bandDocument{Min: b.Min, Max: b.Max, Label: b.Label, Color: b.Color}
	}
	return doc
}

func (d *scoringConfigDocument) toModel() *model.ScoringConfiguration {
	cfg := &model.ScoringConfiguration{
		Method:    types.ScoringMethod(d.Method),
		Bands:     make([]model.RiskLevelBand, len(d.Bands)),
		Version:   d.Version,
		UpdatedAt: d.UpdatedAt,
	}
	for i, b := range d.Bands {
		cfg.Bands[i] = model.RiskLevelBand{Min: b.Min, Max: b.Max, Label: b.Label, Color: b.Color}
	}
	return cfg
}

type scoringConfigRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newScoringConfigRepository(client *firestore.Client) *scoringConfigRepository {
	return &scoringConfigRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *scoringConfigRepository) configCollection() string {
	return collectionName(r.collectionPrefix, "scoring_configs")
}

func (r *scoringConfigRepository) historyCollection() string {
	return collectionName(r.collectionPrefix, "scoring_config_history")
}

func (r *scoringConfigRepository) Get(ctx context.Context) (*model.ScoringConfiguration, error) {
	doc, err := r.client.Collection(r.configCollection()).Doc(activeScoringConfigDoc).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "scoring configuration not found")
		}
		return nil, goerr.Wrap(err, "failed to get scoring configuration")
	}

	var cfgDoc scoringConfigDocument
	if err := doc.DataTo(&cfgDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal scoring configuration")
	}

	return cfgDoc.toModel(), nil
}

func (r *scoringConfigRepository) Save(ctx context.Context, cfg *model.ScoringConfiguration) (*model.ScoringConfiguration, error) {
	doc := newScoringConfigDocument(cfg)
	doc.Version = uuid.NewString()
	doc.UpdatedAt = time.Now().UTC()

	activeRef := r.client.Collection(r.configCollection()).Doc(activeScoringConfigDoc)
	historyRef := r.client.Collection(r.historyCollection()).Doc(doc.Version)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Set(activeRef, doc); err != nil {
			return goerr.Wrap(err, "failed to set active scoring configuration")
		}
		if err := tx.Set(historyRef, doc); err != nil {
			return goerr.Wrap(err, "failed to append scoring configuration history")
		}
		return nil
	})
	if err != nil {
		return nil, goerr.Wrap(err, "failed to save scoring configuration", goerr.V("version", doc.Version))
	}

	return doc.toModel(), nil
}

func (r *scoringConfigRepository) ListHistory(ctx context.Context, limit int) ([]*model.ScoringConfiguration, error) {
	query := r.client.Collection(r.historyCollection()).OrderBy("updated_at", firestore.Desc)
	if limit > 0 {
		query = query.Limit(limit)
	}

	iter := query.Documents(ctx)
	defer iter.Stop()

	history := []*model.ScoringConfiguration{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate scoring configuration history")
		}

		var cfgDoc scoringConfigDocument
		if err := doc.DataTo(&cfgDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal scoring configuration", goerr.V("doc_id", doc.Ref.ID))
		}
		history = append(history, cfgDoc.toModel())
	}

	return history, nil
}
