package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type riskDocument struct {
	ID                 int64     `firestore:"id"`
	Name               string    `firestore:"name"`
	Description        string    `firestore:"description"`
	CategoryID         string    `firestore:"category_id"`
	OwnerTeamID        string    `firestore:"owner_team_id"`
	InherentLikelihood int       `firestore:"inherent_likelihood"`
	InherentImpact     int       `firestore:"inherent_impact"`
	ResidualLikelihood int       `firestore:"residual_likelihood"`
	ResidualImpact     int       `firestore:"residual_impact"`
	CreatedAt          time.Time `firestore:"created_at"`
	UpdatedAt          time.Time `firestore:"updated_at"`
}

func newRiskDocument(r *model.Risk) *riskDocument {
	return &riskDocument{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		CategoryID:         r.CategoryID.String(),
		OwnerTeamID:        r.OwnerTeamID.String(),
		InherentLikelihood: r.InherentLikelihood,
		InherentImpact:     r.InherentImpact,
		ResidualLikelihood: r.ResidualLikelihood,
		ResidualImpact:     r.ResidualImpact,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

func (d *riskDocument) toModel() *model.Risk {
	return &model.Risk{
		ID:                 d.ID,
		Name:               d.Name,
		Description:        d.Description,
		CategoryID:         types.CategoryID(d.CategoryID),
		OwnerTeamID:        types.TeamID(d.OwnerTeamID),
		InherentLikelihood: d.InherentLikelihood,
		InherentImpact:     d.InherentImpact,
		ResidualLikelihood: d.ResidualLikelihood,
		ResidualImpact:     d.ResidualImpact,
		CreatedAt:          d.CreatedAt,
		UpdatedAt:          d.UpdatedAt,
	}
}

type riskRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newRiskRepository(client *firestore.Client) *riskRepository {
	return &riskRepository{
		client:           client,
		collectionPrefix: "",
	}
}

func (r *riskRepository) risksCollection() string {
	return collectionName(r.collectionPrefix, "risks")
}

func (r *riskRepository) counterCollection() string {
	return collectionName(r.collectionPrefix, "counters")
}

func (r *riskRepository) riskCounterDoc() string {
	return "risk_counter"
}

func (r *riskRepository) riskDoc(id int64) *firestore.DocumentRef {
	return r.client.Collection(r.risksCollection()).Doc(fmt.Sprintf("%d", id))
}

func (r *riskRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc(r.riskCounterDoc())

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		current, ok := currentValue.(int64)
		if !ok {
			return goerr.New("unexpected counter value type", goerr.V("value", currentValue))
		}

		nextID = current + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})

	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}

func (r *riskRepository) Create(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	id, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	doc := newRiskDocument(risk)
	doc.ID = id
	doc.CreatedAt = now
	doc.UpdatedAt = now

	if _, err := r.riskDoc(id).Set(ctx, doc); err != nil {
		return nil, goerr.Wrap(err, "failed to create risk", goerr.V("id", id))
	}

	return doc.toModel(), nil
}

func (r *riskRepository) Get(ctx context.Context, id int64) (*model.Risk, error) {
	doc, err := r.riskDoc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	var riskDoc riskDocument
	if err := doc.DataTo(&riskDoc); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", id))
	}

	return riskDoc.toModel(), nil
}

func (r *riskRepository) List(ctx context.Context) ([]*model.Risk, error) {
	iter := r.client.Collection(r.risksCollection()).OrderBy("id", firestore.Asc).Documents(ctx)
	return collectRisks(iter)
}

func (r *riskRepository) ListByCategory(ctx context.Context, categoryID types.CategoryID) ([]*model.Risk, error) {
	iter := r.client.Collection(r.risksCollection()).
		Where("category_id", "==", categoryID.String()).
		OrderBy("updated_at", firestore.Desc).
		Documents(ctx)

	risks, err := collectRisks(iter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list risks by category", goerr.V("category_id", categoryID))
	}
	return risks, nil
}

func collectRisks(iter *firestore.DocumentIterator) ([]*model.Risk, error) {
	defer iter.Stop()

	risks := []*model.Risk{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate risks")
		}

		var riskDoc riskDocument
		if err := doc.DataTo(&riskDoc); err != nil {
			return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("doc_id", doc.Ref.ID))
		}

		risks = append(risks, riskDoc.toModel())
	}

	return risks, nil
}

func (r *riskRepository) Update(ctx context.Context, risk *model.Risk) (*model.Risk, error) {
	docRef := r.riskDoc(risk.ID)

	doc, err := docRef.Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", risk.ID))
		}
		return nil, goerr.Wrap(err, "failed to get risk", goerr.V("id", risk.ID))
	}

	var existing riskDocument
	if err := doc.DataTo(&existing); err != nil {
		return nil, goerr.Wrap(err, "failed to unmarshal risk", goerr.V("id", risk.ID))
	}

	updated := newRiskDocument(risk)
	updated.ID = existing.ID
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now().UTC()

	if _, err := docRef.Set(ctx, updated); err != nil {
		return nil, goerr.Wrap(err, "failed to update risk", goerr.V("id", risk.ID))
	}

	return updated.toModel(), nil
}

func (r *riskRepository) Delete(ctx context.Context, id int64) error {
	docRef := r.riskDoc(id)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "risk not found", goerr.V("id", id))
		}
		return goerr.Wrap(err, "failed to get risk", goerr.V("id", id))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete risk", goerr.V("id", id))
	}

	return nil
}
