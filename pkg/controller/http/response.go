package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskscope/pkg/domain/interfaces"
	"github.com/secmon-lab/riskscope/pkg/domain/model"
	"github.com/secmon-lab/riskscope/pkg/usecase"
	"github.com/secmon-lab/riskscope/pkg/utils/errutil"
	"github.com/secmon-lab/riskscope/pkg/utils/safe"
)

// ErrBadRequest marks malformed requests (bad JSON, non-numeric IDs)
var ErrBadRequest = goerr.New("bad request")

var clientErrors = []error{
	ErrBadRequest,
	usecase.ErrInvalidInput,
	model.ErrInvalidScoringMethod,
	model.ErrNoBands,
	model.ErrInvalidBand,
}

// statusOf maps an error to its HTTP status
func statusOf(err error) int {
	if errors.Is(err, interfaces.ErrNotFound) {
		return http.StatusNotFound
	}
	for _, target := range clientErrors {
		if errors.Is(err, target) {
			return http.StatusBadRequest
		}
	}
	return http.StatusInternalServerError
}

func handleError(w http.ResponseWriter, r *http.Request, err error) {
	errutil.HandleHTTP(r.Context(), w, err, statusOf(err))
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		errutil.HandleHTTP(r.Context(), w, goerr.Wrap(err, "failed to marshal response"), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	safe.Write(r.Context(), w, data)
}

func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return goerr.Wrap(ErrBadRequest, "invalid JSON body", goerr.V("error", err.Error()))
	}
	return nil
}
