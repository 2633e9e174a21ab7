package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/domain/types"
)

type bandJSON struct {
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Label string `json:"label"`
	Color string `json:"color"`
}

type scoringConfigJSON struct {
	Method    string     `json:"method"`
	Bands     []bandJSON `json:"bands"`
	Version   string     `json:"version,omitempty"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}

type scoreResultJSON struct {
	Score int    `json:"score"`
	Level string `json:"level"`
	Color string `json:"color"`
}

type bandIssueJSON struct {
	Kind    string `json:"kind"`
	From    int    `json:"from"`
	To      int    `json:"to"`
	Bands   []int  `json:"bands,omitempty"`
	Message string `json:"message"`
}

type saveScoringConfigResponse struct {
	Config   scoringConfigJSON `json:"config"`
	Warnings []bandIssueJSON   `json:"warnings"`
}

type heatmapCellJSON struct {
	Likelihood     int             `json:"likelihood"`
	Impact         int             `json:"impact"`
	LikelihoodName string          `json:"likelihood_name,omitempty"`
	ImpactName     string          `json:"impact_name,omitempty"`
	Result         scoreResultJSON `json:"result"`
}

type heatmapJSON struct {
	Method string              `json:"method"`
	Rows   [][]heatmapCellJSON `json:"rows"`
}

func toScoringConfigJSON(cfg *model.ScoringConfiguration) scoringConfigJSON {
	out := scoringConfigJSON{
		Method:  cfg.Method.Normalize().String(),
		Bands:   make([]bandJSON, len(cfg.Bands)),
		Version: cfg.Version,
	}
	if !cfg.UpdatedAt.IsZero() {
		t := cfg.UpdatedAt
		out.UpdatedAt = &t
	}
	for i, b := range cfg.Bands {
		out.Bands[i] = bandJSON{Min: b.Min, Max: b.Max, Label: b.Label, Color: b.Color}
	}
	return out
}

func (x scoringConfigJSON) toModel() *model.ScoringConfiguration {
	cfg := &model.ScoringConfiguration{
		Method: types.ScoringMethod(x.Method),
		Bands:  make([]model.RiskLevelBand, len(x.Bands)),
	}
	for i, b := range x.Bands {
		cfg.Bands[i] = model.RiskLevelBand{Min: b.Min, Max: b.Max, Label: b.Label, Color: b.Color}
	}
	return cfg
}

func toScoreResultJSON(r model.ScoreResult) scoreResultJSON {
	return scoreResultJSON{Score: r.Score, Level: r.LevelLabel, Color: r.Color}
}

func (s *Server) getScoringConfig(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, toScoringConfigJSON(s.uc.Scoring.Current()))
}

func (s *Server) putScoringConfig(w http.ResponseWriter, r *http.Request) {
	var req scoringConfigJSON
	if err := decodeJSON(r, &req); err != nil {
		handleError(w, r, err)
		return
	}

	saved, issues, err := s.uc.Scoring.Save(r.Context(), req.toModel())
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := saveScoringConfigResponse{
		Config:   toScoringConfigJSON(saved),
		Warnings: make([]bandIssueJSON, len(issues)),
	}
	for i, issue := range issues {
		resp.Warnings[i] = bandIssueJSON{
			Kind:    string(issue.Kind),
			From:    issue.From,
			To:      issue.To,
			Bands:   issue.Bands,
			Message: issue.Message(),
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func (s *Server) listScoringConfigHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		handleError(w, r, err)
		return
	}

	history, err := s.uc.Scoring.History(r.Context(), limit)
	if err != nil {
		handleError(w, r, err)
		return
	}

	resp := make([]scoringConfigJSON, len(history))
	for i, cfg := range history {
		resp[i] = toScoringConfigJSON(cfg)
	}
	writeJSON(w, r, http.StatusOK, resp)
}

// getScore scores a pair against the live configuration. A missing
// parameter counts as 0 and is clamped like an unselected form field.
func (s *Server) getScore(w http.ResponseWriter, r *http.Request) {
	likelihood, err := queryInt(r, "likelihood")
	if err != nil {
		handleError(w, r, err)
		return
	}
	impact, err := queryInt(r, "impact")
	if err != nil {
		handleError(w, r, err)
		return
	}

	writeJSON(w, r, http.StatusOK, toScoreResultJSON(s.uc.Scoring.Score(likelihood, impact)))
}

func (s *Server) getHeatmap(w http.ResponseWriter, r *http.Request) {
	cfg := s.uc.Scoring.Current()
	hm := model.BuildHeatmap(cfg)
	riskCfg, _ := s.uc.Risk.GetRiskConfiguration()

	resp := heatmapJSON{
		Method: cfg.Method.Normalize().String(),
		Rows:   make([][]heatmapCellJSON, len(hm.Rows)),
	}
	for i, row := range hm.Rows {
		resp.Rows[i] = make([]heatmapCellJSON, len(row))
		for j, cell := range row {
			resp.Rows[i][j] = heatmapCellJSON{
				Likelihood:     cell.Likelihood,
				Impact:         cell.Impact,
				LikelihoodName: riskCfg.LikelihoodName(cell.Likelihood),
				ImpactName:     riskCfg.ImpactName(cell.Impact),
				Result:         toScoreResultJSON(cell.Result),
			}
		}
	}
	writeJSON(w, r, http.StatusOK, resp)
}

func queryInt(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, goerr.Wrap(ErrBadRequest, "query parameter must be an integer",
			goerr.V("key", key), goerr.V("value", raw))
	}
	return v, nil
}
