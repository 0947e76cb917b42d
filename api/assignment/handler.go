// Package assignment serves POST /api/fleet-assignment.
package assignment

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/routeopt/fleetsim/core/logger"
	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/core/schedule"
	"github.com/routeopt/fleetsim/core/simulation"
)

// MaxBodyBytes caps the size of a request payload.
const MaxBodyBytes = 1 << 20

// RunIDHeader carries the id of the run that produced the response.
const RunIDHeader = "X-Run-ID"

// Runner executes a simulation request.
type Runner interface {
	Run(ctx context.Context, req simulation.Request) (simulation.Run, error)
}

type errorBody struct {
	Detail string `json:"detail"`
}

// NewHandler returns the fleet assignment handler. Parameters missing from
// the payload take their value from defaults.
func NewHandler(runner Runner, defaults schedule.Params, log logger.Logger) http.Handler {
	log = logger.OrNop(log)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		req := simulation.Request{Params: defaults}
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxBodyBytes)).Decode(&req); err != nil {
			writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: "invalid request body: " + err.Error()})
			return
		}
		run, err := runner.Run(r.Context(), req)
		if run.ID != "" {
			w.Header().Set(RunIDHeader, run.ID)
		}
		if err != nil {
			if errors.Is(err, model.ErrValidation) {
				writeJSON(w, http.StatusUnprocessableEntity, errorBody{Detail: err.Error()})
				return
			}
			log.Errorf("fleet assignment %s: %v", run.ID, err)
			writeJSON(w, http.StatusInternalServerError, errorBody{Detail: "simulation failed"})
			return
		}
		writeJSON(w, http.StatusOK, run.Result)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
