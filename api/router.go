// Package api exposes the simulator over HTTP.
package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/routeopt/fleetsim/api/assignment"
	"github.com/routeopt/fleetsim/api/equipment"
	"github.com/routeopt/fleetsim/api/simulations"
	"github.com/routeopt/fleetsim/core/logger"
	"github.com/routeopt/fleetsim/core/schedule"
	"github.com/routeopt/fleetsim/core/simulation"
	"github.com/routeopt/fleetsim/infra/monitoring"
)

// Deps are the collaborators of the HTTP API.
type Deps struct {
	Simulator *simulation.Simulator
	Defaults  schedule.Params
	LogsToken string
	Log       logger.Logger
}

// NewRouter creates and configures a new router with all API endpoints
func NewRouter(d Deps) *mux.Router {
	r := mux.NewRouter()
	r.Use(monitoring.HTTPMiddleware)

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	}).Methods(http.MethodGet)

	api := r.PathPrefix("/api").Subrouter()
	api.Use(requestLogger(logger.OrNop(d.Log)))

	// Method matching on a subrouter answers 404 on mismatch; allow answers 405.
	api.Handle("/fleet-assignment", allow(http.MethodPost, assignment.NewHandler(d.Simulator, d.Defaults, d.Log)))
	api.Handle("/simulations/logs", allow(http.MethodGet, simulations.NewLogHandler(d.Simulator.LogStore(), d.LogsToken)))
	api.Handle("/equipment/{code}", allow(http.MethodGet, equipment.NewProfileHandler(d.Simulator)))

	return r
}

func allow(method string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.Header().Set("Allow", method)
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func requestLogger(log logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Debugw("http request", map[string]any{
				"method": r.Method,
				"path":   r.URL.Path,
				"status": rec.status,
			})
		})
	}
}
