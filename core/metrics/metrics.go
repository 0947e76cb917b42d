package metrics

import (
	"time"

	"github.com/routeopt/fleetsim/core/model"
)

// SimulationRecord summarizes one completed run.
type SimulationRecord struct {
	RunID              string
	Airline            string
	Tails              int
	Flights            int
	Scheduled          int
	Unassigned         int
	BlockHours         float64
	Coverage           float64
	Utilization        float64
	UnassignedByReason map[model.Reason]int
	Duration           time.Duration
	Time               time.Time
}

// MetricsSink records simulation results for observability purposes.
type MetricsSink interface {
	RecordSimulation(rec SimulationRecord) error
}

// TailUtilization is the end-of-day state of one tail.
type TailUtilization struct {
	RunID       string
	TailID      string
	Equipment   string
	Category    model.Category
	Flights     int
	BlockHours  float64
	Utilization float64
	Time        time.Time
}

// TailUtilizationRecorder records per-tail utilization.
type TailUtilizationRecorder interface {
	RecordTailUtilization(tails []TailUtilization) error
}

// SimulationFailure describes an aborted run.
type SimulationFailure struct {
	RunID   string
	Airline string
	// Kind is "validation" or "error".
	Kind  string
	Error string
	Time  time.Time
}

// FailureRecorder records aborted runs.
type FailureRecorder interface {
	RecordSimulationFailure(ev SimulationFailure) error
}

// RouteFetch describes one read from a route source.
type RouteFetch struct {
	Source  string
	Airline string
	Rows    int
	Latency time.Duration
	Err     bool
}

// RouteFetchRecorder records route source reads.
type RouteFetchRecorder interface {
	RecordRouteFetch(ev RouteFetch) error
}

// NopSink implements MetricsSink with no-op methods.
type NopSink struct{}

func (NopSink) RecordSimulation(SimulationRecord) error { return nil }

func (NopSink) RecordTailUtilization([]TailUtilization) error   { return nil }
func (NopSink) RecordSimulationFailure(SimulationFailure) error { return nil }
func (NopSink) RecordRouteFetch(RouteFetch) error               { return nil }
