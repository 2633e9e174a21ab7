package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
	"github.com/secmon-lab/riskscope/pkg/usecase"
)

type riskRequest struct {
	Name               string `json:"name"`
	Description        string `json:"description"`
	CategoryID         string `json:"category_id"`
	OwnerTeamID        string `json:"owner_team_id"`
	InherentLikelihood int    `json:"inherent_likelihood"`
	InherentImpact     int    `json:"inherent_impact"`
	ResidualLikelihood int    `json:"residual_likelihood"`
	ResidualImpact     int    `json:"residual_impact"`
}

func (x riskRequest) toInput() usecase.RiskInput {
	return usecase.RiskInput{
		Name:               x.Name,
		Description:        x.Description,
		CategoryID:         types.CategoryID(x.CategoryID),
		OwnerTeamID:        types.TeamID(x.OwnerTeamID),
		InherentLikelihood: x.InherentLikelihood,
		InherentImpact:     x.InherentImpact,
		ResidualLikelihood: x.ResidualLikelihood,
		ResidualImpact:     x.ResidualImpact,
	}
}

type riskJSON struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Description        string          `json:"description"`
	CategoryID         string          `json:"category_id"`
	OwnerTeamID        string          `json:"owner_team_id"`
	InherentLikelihood int             `json:"inherent_likelihood"`
	InherentImpact     int             `json:"inherent_impact"`
	ResidualLikelihood int             `json:"residual_likelihood"`
	ResidualImpact     int             `json:"residual_impact"`
	Inherent           scoreResultJSON `json:"inherent"`
	Residual           scoreResultJSON `json:"residual"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

func toRiskJSON(sr *model.ScoredRisk) riskJSON {
	r := sr.Risk
	return riskJSON{
		ID:                 r.ID,
		Name:               r.Name,
		Description:        r.Description,
		CategoryID:         r.CategoryID.String(),
		OwnerTeamID:        r.OwnerTeamID.String(),
		InherentLikelihood: r.InherentLikelihood,
		InherentImpact:     r.InherentImpact,
		ResidualLikelihood: r.ResidualLikelihood,
		ResidualImpact:     r.ResidualImpact,
		Inherent:           toScoreResultJSON(sr.Inherent),
		Residual:           toScoreResultJSON(sr.Residual),
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

type levelJSON struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Score       int    `json:"score,omitempty"`
}

type riskConfigJSON struct {
	Categories []levelJSON `json:"categories"`
	Likelihood []levelJSON `json:"likelihood"`
	Impact     []levelJSON `json:"impact"`
	Teams      []levelJSON `json:"teams"`
}

func (s *Server) getRiskConfig(w http.ResponseWriter, r *http.Request) {
	resp := riskConfigJSON{
		Categories: []levelJSON{},
		Likelihood: []levelJSON{},
		Impact:     []levelJSON{},
		Teams:      []levelJSON{},
	}

	// without a configuration file every list is empty
	if cfg, err := s.uc.Risk.GetRiskConfiguration(); err == nil {
		for _, c := range cfg.Categories {
			resp.Categories = append(resp.Categories, levelJSON{ID: c.ID, Name: c.Name, Description: c.Description})
		}
		for _, l := range cfg.Likelihood {
			resp.Likelihood = append(resp.Likelihood, levelJSON{ID: l.ID, Name: l.Name, Description: l.Description, Score: l.Score})
		}
		for _, i := range cfg.Impact {
			resp.Impact = append(resp.Impact, levelJSON{ID: i.ID, Name: i.Name, Description: i.Description, Score: i.Score})
		}
		for _, t := range cfg.Teams {
			resp.Teams = append(resp.Teams, levelJSON{ID: t.ID, Name: t.Name})
		}
	}

	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) listRisks(w http.ResponseWriter, r *http.Request) {
	category := types.CategoryID(r.URL.Query().Get("category"))

	scored, err := s.uc.Risk.ListScoredRisks(r.Context(), category)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]riskJSON, len(scored))
	for i, sr := range scored {
		resp[i] = toRiskJSON(sr)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) createRisk(w http.ResponseWriter, r *http.Request) {
	var req riskRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	created, err := s.uc.Risk.CreateRisk(r.Context(), req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}

	scored := model.ScoreRisk(created, s.uc.Scoring.Current())
	writeJSON(w, r, http.StatusCreated, toRiskJSON(scored))
}

func (s *Server) getRisk(w http.ResponseWriter, r *http.Request) {
	id, err := riskIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	scored, err := s.uc.Risk.GetScoredRisk(r.Context(), id)
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, toRiskJSON(scored))
}

func (s *Server) updateRisk(w http.ResponseWriter, r *http.Request) {
	id, err := riskIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	var req riskRequest
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	updated, err := s.uc.Risk.UpdateRisk(r.Context(), id, req.toInput())
	if err != nil {
		handleError(w, r, err)
		return
	}

	scored := model.ScoreRisk(updated, s.uc.Scoring.Current())
	writeJSON(w, r, http.StatusOK, toRiskJSON(scored))
}

func (s *Server) deleteRisk(w http.ResponseWriter, r *http.Request) {
	id, err := riskIDParam(r)
	if err != nil {
		handleError(w, r, err)
		return
	}

	if err := s.uc.Risk.DeleteRisk(r.Context(), id); err != nil {
		handleError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func riskIDParam(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(ErrBadRequest, "risk ID must be an integer", goerr.V("id", raw))
	}
	return id, nil
}
