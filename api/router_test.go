package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreequipment "github.com/routeopt/fleetsim/core/equipment"
	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/core/report"
	"github.com/routeopt/fleetsim/core/routes"
	"github.com/routeopt/fleetsim/core/schedule"
	"github.com/routeopt/fleetsim/core/simulation"
)

type seatMaps map[string]coreequipment.SeatMap

func (s seatMaps) AirlineSeats(airline string) coreequipment.SeatMap { return s[airline] }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	catalog := coreequipment.SeatMap{"A320": 150, "CR9": 76}
	resolver := coreequipment.NewResolver(45, coreequipment.Stage{Source: model.SourceNormalized, Lookup: catalog})
	src := routes.Static{
		{Source: "ATL", Destination: "MCO", Carrier: "DL", DistanceMiles: 400, TotalSeats: 150, ASM: 60000},
	}
	sim, err := simulation.NewSimulator(resolver, src, nil, nil, nil)
	require.NoError(t, err)
	sim.SetSeatMaps(seatMaps{"DL": {"A320": 157}})
	return NewRouter(Deps{Simulator: sim, Defaults: schedule.DefaultParams()})
}

func TestRouter_FleetAssignment(t *testing.T) {
	h := newTestRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/fleet-assignment",
		strings.NewReader(`{"fleet_config":[{"equipment":"A320","count":1}]}`)))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.NotEmpty(t, rr.Header().Get("X-Run-ID"))
	var res report.Result
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &res))
	assert.Equal(t, 1, res.Summary.ScheduledFlights)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/fleet-assignment",
		strings.NewReader(`{"fleet_config":[{"equipment":"A320","count":1}],"day_hours":0}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Contains(t, rr.Body.String(), "day_hours")

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/fleet-assignment", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, http.MethodPost, rr.Header().Get("Allow"))
}

/*
TestRouter_MethodNotAllowed checks every API route answers 405, not 404,
for a known path with the wrong method.

Cases:
  - GET on the fleet assignment route
  - POST on the equipment profile route
  - DELETE on the logs route
  - unknown path still answers 404
*/
func TestRouter_MethodNotAllowed(t *testing.T) {
	h := newTestRouter(t)
	cases := []struct {
		method, path, allow string
	}{
		{http.MethodGet, "/api/fleet-assignment", http.MethodPost},
		{http.MethodPost, "/api/equipment/CR9", http.MethodGet},
		{http.MethodDelete, "/api/simulations/logs", http.MethodGet},
	}
	for _, c := range cases {
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, httptest.NewRequest(c.method, c.path, nil))
		assert.Equal(t, http.StatusMethodNotAllowed, rr.Code, "%s %s", c.method, c.path)
		assert.Equal(t, c.allow, rr.Header().Get("Allow"), "%s %s", c.method, c.path)
	}

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouter_EquipmentProfile(t *testing.T) {
	h := newTestRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/equipment/CR9", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var p model.EquipmentProfile
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, 76, p.SeatCapacity)
	assert.Equal(t, model.CategoryRegional, p.Category)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/equipment/A320?airline=dl", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &p))
	assert.Equal(t, 157, p.SeatCapacity)
	assert.Equal(t, model.SourceAirline, p.Source)
}

func TestRouter_LogsAndHealth(t *testing.T) {
	h := newTestRouter(t)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/simulations/logs", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `[]`, rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}
