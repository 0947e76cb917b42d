// Package logging persists one record per simulation run and lets callers
// query them back by time window, airline or run id.
package logging

import (
	"context"
	"strings"
	"time"

	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/core/report"
	"github.com/routeopt/fleetsim/core/schedule"
)

// LogRecord captures one simulation request and its outcome.
type LogRecord struct {
	RunID      string             `json:"run_id"`
	Timestamp  time.Time          `json:"timestamp"`
	Airline    string             `json:"airline,omitempty"`
	DurationMS float64            `json:"duration_ms"`
	Fleet      []model.FleetEntry `json:"fleet_config"`
	Parameters schedule.Params    `json:"parameters"`
	Summary    *report.Summary    `json:"summary,omitempty"`
	Error      string             `json:"error,omitempty"`
}

// Failed reports whether the run aborted.
func (r LogRecord) Failed() bool { return r.Error != "" }

// LogQuery defines filters for retrieving records.
type LogQuery struct {
	Start   time.Time
	End     time.Time
	Airline string
	RunID   string
	// Limit caps the number of records returned, newest last. Zero means no limit.
	Limit int
}

// Match reports whether r satisfies every filter in q.
func (q LogQuery) Match(r LogRecord) bool {
	if !q.Start.IsZero() && r.Timestamp.Before(q.Start) {
		return false
	}
	if !q.End.IsZero() && r.Timestamp.After(q.End) {
		return false
	}
	if q.Airline != "" && !strings.EqualFold(q.Airline, r.Airline) {
		return false
	}
	if q.RunID != "" && q.RunID != r.RunID {
		return false
	}
	return true
}

func (q LogQuery) truncate(recs []LogRecord) []LogRecord {
	if q.Limit > 0 && len(recs) > q.Limit {
		return recs[len(recs)-q.Limit:]
	}
	return recs
}

// LogStore persists LogRecords and supports querying.
type LogStore interface {
	Append(ctx context.Context, rec LogRecord) error
	Query(ctx context.Context, q LogQuery) ([]LogRecord, error)
	Close() error
}

// NopStore discards records.
type NopStore struct{}

func (NopStore) Append(context.Context, LogRecord) error              { return nil }
func (NopStore) Query(context.Context, LogQuery) ([]LogRecord, error) { return nil, nil }
func (NopStore) Close() error                                         { return nil }
