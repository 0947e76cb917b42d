// Package equipment serves GET /api/equipment/{code}.
package equipment

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	coreequipment "github.com/routeopt/fleetsim/core/equipment"
)

// ProfileResolver resolves an equipment code for an airline.
type ProfileResolver interface {
	Resolver() *coreequipment.Resolver
	AirlineSeats(airline string) coreequipment.SeatMap
}

// NewProfileHandler returns the resolved profile of the {code} path
// variable. The optional airline query parameter selects a seat map.
func NewProfileHandler(res ProfileResolver) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		code := strings.TrimSpace(mux.Vars(r)["code"])
		if code == "" {
			http.Error(w, "missing equipment code", http.StatusBadRequest)
			return
		}
		airline := strings.ToUpper(strings.TrimSpace(r.URL.Query().Get("airline")))
		p := res.Resolver().Resolve(code, res.AirlineSeats(airline))
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(p); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}
