package events

import (
	"time"

	"github.com/routeopt/fleetsim/core/report"
)

// RunStarted is published once a run has valid parameters.
type RunStarted struct {
	RunID   string
	Airline string
	Tails   int
	Time    time.Time
}

// RunCompleted carries the summary of a finished run.
type RunCompleted struct {
	RunID    string
	Airline  string
	Summary  report.Summary
	Duration time.Duration
	Time     time.Time
}

// RunFailed is published when a run aborts. Validation is true for
// structurally invalid input.
type RunFailed struct {
	RunID      string
	Airline    string
	Err        error
	Validation bool
	Time       time.Time
}
