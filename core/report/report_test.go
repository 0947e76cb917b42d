package report

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeopt/fleetsim/core/equipment"
	"github.com/routeopt/fleetsim/core/fleet"
	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/core/schedule"
)

func simulate(t *testing.T, p schedule.Params, flights []model.FlightDemand, entries ...model.FleetEntry) (Result, *fleet.Pool) {
	t.Helper()
	r := equipment.NewResolver(p.DefaultTurnMinutes, equipment.Stage{
		Source: model.SourceNormalized,
		Lookup: equipment.SeatMap{"A320": 150, "CR2": 50},
	})
	pool, err := fleet.Expand(entries, r, nil)
	require.NoError(t, err)
	eng, err := schedule.NewEngine(p, pool, nil)
	require.NoError(t, err)
	out, err := eng.Run(context.Background(), flights)
	require.NoError(t, err)
	return Build(p, pool, out), pool
}

func TestClockLabel(t *testing.T) {
	cases := map[float64]string{
		0:         "05:00",
		4.0 / 3.0: "06:20",
		1.5:       "06:30",
		18.99:     "23:59",
		19:        "00:00",
		20.25:     "01:15",
		43:        "00:00",
	}
	for h, want := range cases {
		assert.Equal(t, want, ClockLabel(h), "hour %v", h)
	}
}

func TestBuild_Summary(t *testing.T) {
	p := schedule.Params{DayHours: 18, MaintenanceHours: 6, CrewMaxHours: 14, TaxiBufferMinutes: 20, DefaultTurnMinutes: 45}
	flights := []model.FlightDemand{
		{Source: "ATL", Destination: "MCO", RequiredSeats: 150, DistanceMiles: 500},
		{Source: "ATL", Destination: "LAX", RequiredSeats: 300, DistanceMiles: 500},
	}
	res, _ := simulate(t, p, flights,
		model.FleetEntry{Equipment: "A320", Count: 1},
		model.FleetEntry{Equipment: "CR2", Count: 1})

	s := res.Summary
	assert.Equal(t, 2, s.TotalFlights)
	assert.Equal(t, 1, s.ScheduledFlights)
	assert.Equal(t, 1, s.UnassignedFlights)
	assert.InDelta(t, 0.5, s.Coverage, 1e-12)
	assert.InDelta(t, 4.0/3.0, s.TotalBlockHours, 1e-9)
	assert.InDelta(t, 24.0, s.AvailableBlockHours, 1e-12)
	assert.InDelta(t, (4.0/3.0)/24.0, s.Utilization, 1e-9)
	assert.Equal(t, 2, s.Tails)
	assert.Equal(t, 12.0, s.CrewLimitHours)
	assert.Equal(t, map[model.Reason]int{model.ReasonCapacity: 1}, s.UnassignedByReason)
	assert.InDelta(t, (4.0/3.0)/12.0/2, s.MeanTailUtilization, 1e-9)
	assert.InDelta(t, (4.0/3.0)/12.0/2, s.TailUtilizationStdDev, 1e-9)
	assert.InDelta(t, 4.0/3.0, s.PeakTailBlockHours, 1e-9)

	require.Len(t, res.Assignments, 1)
	assert.Equal(t, "05:00", res.Assignments[0].StartClock)
	assert.Equal(t, "06:20", res.Assignments[0].EndClock)
	assert.Equal(t, p, res.Parameters)
}

func TestBuild_TailLogs(t *testing.T) {
	p := schedule.DefaultParams()
	flights := []model.FlightDemand{
		{Source: "ATL", Destination: "MCO", RequiredSeats: 150, DistanceMiles: 500},
		{Source: "ATL", Destination: "BOS", RequiredSeats: 150, DistanceMiles: 1000},
	}
	res, pool := simulate(t, p, flights, model.FleetEntry{Equipment: "A320", Count: 1})

	require.Len(t, res.TailLogs, 1)
	tl := res.TailLogs[0]
	assert.Equal(t, "A320-01", tl.TailID)
	assert.Equal(t, model.CategoryNarrowbody, tl.Category)
	assert.Equal(t, 2, tl.Flights)
	assert.Equal(t, []string{"ATL-MCO", "ATL-BOS"}, tl.Routes)
	assert.InDelta(t, pool.Tails[0].AccumulatedBlockHours, tl.BlockHours, 1e-12)
	assert.InDelta(t, pool.Tails[0].NextAvailableHour, tl.DutyHours, 1e-12)
	assert.InDelta(t, tl.BlockHours/p.CrewLimit(), tl.Utilization, 1e-12)
	assert.InDelta(t, p.DayHours-tl.DutyHours, tl.MaintenanceBufferHours, 1e-12)
}

func TestBuild_MaintenanceBufferFloor(t *testing.T) {
	p := schedule.DefaultParams()
	res, _ := simulate(t, p, []model.FlightDemand{{Source: "ATL", Destination: "MCO", RequiredSeats: 40, DistanceMiles: 100}},
		model.FleetEntry{Equipment: "A320", Count: 1},
		model.FleetEntry{Equipment: "CR2", Count: 1})

	for _, tl := range res.TailLogs {
		assert.GreaterOrEqual(t, tl.MaintenanceBufferHours, p.MaintenanceHours)
	}
	idle := res.TailLogs[0]
	if idle.Flights > 0 {
		idle = res.TailLogs[1]
	}
	assert.Equal(t, p.DayHours, idle.MaintenanceBufferHours)
}

func TestBuild_FleetOverview(t *testing.T) {
	res, _ := simulate(t, schedule.DefaultParams(), []model.FlightDemand{{Source: "ATL", Destination: "MCO", DistanceMiles: 300, RequiredSeats: 50}},
		model.FleetEntry{Equipment: "a320", Count: 2},
		model.FleetEntry{Equipment: "CR2", Count: 1})

	require.Len(t, res.Fleet, 2)
	assert.Equal(t, FleetOverview{
		Equipment: "A320", Count: 2, SeatCapacity: 150, Category: model.CategoryNarrowbody,
		CruiseSpeedMPH: 500, MaxRangeMiles: 3500, TurnTimeHours: 1.0, Source: model.SourceNormalized,
	}, res.Fleet[0])
	assert.Equal(t, model.CategoryRegional, res.Fleet[1].Category)
}

func TestBuild_Deterministic(t *testing.T) {
	p := schedule.DefaultParams()
	flights := []model.FlightDemand{
		{Source: "ATL", Destination: "MCO", RequiredSeats: 150, DistanceMiles: 500},
		{Source: "ATL", Destination: "LAX", RequiredSeats: 300, DistanceMiles: 1900},
		{Source: "ATL", Destination: "DCA", RequiredSeats: 60, DistanceMiles: 550},
	}
	entries := []model.FleetEntry{{Equipment: "A320", Count: 2}, {Equipment: "CR2", Count: 1}}
	a, _ := simulate(t, p, flights, entries...)
	b, _ := simulate(t, p, flights, entries...)

	ja, err := json.Marshal(a)
	require.NoError(t, err)
	jb, err := json.Marshal(b)
	require.NoError(t, err)
	assert.Equal(t, string(ja), string(jb))
}
