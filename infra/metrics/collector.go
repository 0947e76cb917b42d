package metrics

import (
	"context"

	"github.com/routeopt/fleetsim/core/events"
	coremetrics "github.com/routeopt/fleetsim/core/metrics"
	"github.com/routeopt/fleetsim/infra/logger"
	"github.com/routeopt/fleetsim/internal/eventbus"
)

// StartEventCollector subscribes to the event bus and records metrics for
// events the simulator does not record itself. It stops when the context is
// canceled. The returned channel is closed once the collector has exited.
// Sink errors are logged and the collector keeps running.
func StartEventCollector(ctx context.Context, bus eventbus.EventBus, sink coremetrics.MetricsSink, log logger.Logger) <-chan struct{} {
	done := make(chan struct{})
	if log == nil {
		log = logger.NopLogger{}
	}
	if bus == nil || sink == nil {
		close(done)
		return done
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
				if e, ok := ev.(events.RunFailed); ok {
					if r, ok := sink.(coremetrics.FailureRecorder); ok {
						kind := "error"
						if e.Validation {
							kind = "validation"
						}
						msg := ""
						if e.Err != nil {
							msg = e.Err.Error()
						}
						if err := r.RecordSimulationFailure(coremetrics.SimulationFailure{
							RunID:   e.RunID,
							Airline: e.Airline,
							Kind:    kind,
							Error:   msg,
							Time:    e.Time,
						}); err != nil {
							log.Errorf("record failure of run %s: %v", e.RunID, err)
						}
					}
				}
			}
		}
	}()
	return done
}
