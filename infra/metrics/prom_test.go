package metrics

import (
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coremetrics "github.com/routeopt/fleetsim/core/metrics"
	"github.com/routeopt/fleetsim/core/model"
)

func TestPromSink_RecordSimulation(t *testing.T) {
	sink, err := NewPromSinkWithRegistry(prometheus.NewRegistry())
	require.NoError(t, err)

	require.NoError(t, sink.RecordSimulation(coremetrics.SimulationRecord{
		RunID:              "r1",
		Flights:            5,
		Scheduled:          3,
		Unassigned:         2,
		Coverage:           0.6,
		Utilization:        0.25,
		UnassignedByReason: map[model.Reason]int{model.ReasonCapacity: 1, model.ReasonCrewDuty: 1},
		Duration:           20 * time.Millisecond,
	}))
	require.NoError(t, sink.RecordSimulationFailure(coremetrics.SimulationFailure{Kind: "validation"}))

	expected := `
# HELP fleetsim_runs_total Simulation runs by outcome
# TYPE fleetsim_runs_total counter
fleetsim_runs_total{outcome="completed"} 1
fleetsim_runs_total{outcome="validation"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(sink.runs, strings.NewReader(expected)))

	expectedReasons := `
# HELP fleetsim_unassigned_flights_total Unassigned flights by reason
# TYPE fleetsim_unassigned_flights_total counter
fleetsim_unassigned_flights_total{reason="capacity"} 1
fleetsim_unassigned_flights_total{reason="crew_duty"} 1
`
	assert.NoError(t, testutil.CollectAndCompare(sink.unassigned, strings.NewReader(expectedReasons)))
	assert.Equal(t, 3.0, testutil.ToFloat64(sink.flights.WithLabelValues("scheduled")))
	assert.Equal(t, 0.6, testutil.ToFloat64(sink.coverage))
	assert.Equal(t, 0.25, testutil.ToFloat64(sink.utilization))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.duration))
}

func TestPromSink_TailsAndFetch(t *testing.T) {
	sink, err := NewPromSinkWithRegistry(prometheus.NewRegistry())
	require.NoError(t, err)
	require.NoError(t, sink.RecordTailUtilization([]coremetrics.TailUtilization{
		{TailID: "A320-01", Category: model.CategoryNarrowbody, Utilization: 0.5},
		{TailID: "CR2-01", Category: model.CategoryRegional, Utilization: 0.1},
	}))
	require.NoError(t, sink.RecordRouteFetch(coremetrics.RouteFetch{Rows: 10, Latency: time.Millisecond}))
	assert.Equal(t, 2, testutil.CollectAndCount(sink.tailUtil))
	assert.Equal(t, 1, testutil.CollectAndCount(sink.fetch))
}

func TestPromSink_ReRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	second, err := NewPromSinkWithRegistry(reg)
	require.NoError(t, err)
	require.NoError(t, first.RecordSimulation(coremetrics.SimulationRecord{}))
	assert.Equal(t, 1.0, testutil.ToFloat64(second.runs.WithLabelValues("completed")), "collectors are shared")
}
