package mqtt

import (
	"context"
	"encoding/json"
	"time"

	"github.com/routeopt/fleetsim/core/events"
	coremqtt "github.com/routeopt/fleetsim/core/mqtt"
	"github.com/routeopt/fleetsim/core/report"
	"github.com/routeopt/fleetsim/infra/logger"
	"github.com/routeopt/fleetsim/internal/eventbus"
)

// RunNotification is the payload published for every finished run.
type RunNotification struct {
	RunID      string          `json:"run_id"`
	Airline    string          `json:"airline,omitempty"`
	Status     string          `json:"status"`
	Error      string          `json:"error,omitempty"`
	DurationMS float64         `json:"duration_ms,omitempty"`
	Summary    *report.Summary `json:"summary,omitempty"`
	Timestamp  time.Time       `json:"timestamp"`
}

// StartRunNotifier publishes run outcomes from the event bus on
// {prefix}/{run_id}. It stops when ctx is canceled; the returned channel is
// closed once it has.
func StartRunNotifier(ctx context.Context, bus eventbus.EventBus, pub Publisher, prefix string, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if bus == nil || pub == nil {
		close(done)
		return done
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer close(done)
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				n, ok := notification(ev)
				if !ok {
					continue
				}
				payload, err := json.Marshal(n)
				if err != nil {
					log.Errorf("encode run notification: %v", err)
					continue
				}
				if err := pub.Publish(coremqtt.RunTopic(prefix, n.RunID), payload); err != nil {
					log.Errorf("publish run %s: %v", n.RunID, err)
				}
			}
		}
	}()
	return done
}

func notification(ev eventbus.Event) (RunNotification, bool) {
	switch e := ev.(type) {
	case events.RunCompleted:
		sum := e.Summary
		return RunNotification{
			RunID:      e.RunID,
			Airline:    e.Airline,
			Status:     "completed",
			DurationMS: float64(e.Duration) / float64(time.Millisecond),
			Summary:    &sum,
			Timestamp:  e.Time,
		}, true
	case events.RunFailed:
		n := RunNotification{RunID: e.RunID, Airline: e.Airline, Status: "failed", Timestamp: e.Time}
		if e.Err != nil {
			n.Error = e.Err.Error()
		}
		return n, true
	}
	return RunNotification{}, false
}
