// Package simulation runs one fleet assignment end to end: parameter
// validation, fleet expansion, route selection, greedy assignment and
// reporting. It also records metrics, persists a run record and announces
// the outcome on the event bus.
package simulation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/routeopt/fleetsim/core/demand"
	"github.com/routeopt/fleetsim/core/equipment"
	"github.com/routeopt/fleetsim/core/events"
	"github.com/routeopt/fleetsim/core/fleet"
	"github.com/routeopt/fleetsim/core/logger"
	"github.com/routeopt/fleetsim/core/metrics"
	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/core/monitoring"
	"github.com/routeopt/fleetsim/core/report"
	"github.com/routeopt/fleetsim/core/routes"
	"github.com/routeopt/fleetsim/core/schedule"
	"github.com/routeopt/fleetsim/core/simulation/logging"
	"github.com/routeopt/fleetsim/internal/eventbus"
)

// DefaultTimeout bounds a single run when no timeout is configured.
const DefaultTimeout = 10 * time.Second

// SeatMapProvider returns the seat map configured for an airline, or nil.
type SeatMapProvider interface {
	AirlineSeats(airline string) equipment.SeatMap
}

// Run is a completed simulation. Result is deterministic for a given
// request and route table; ID and timing are not part of it.
type Run struct {
	ID        string
	StartedAt time.Time
	Duration  time.Duration
	Result    report.Result
}

// Simulator executes simulation requests. It holds no scheduling state
// between runs and is safe for concurrent use.
type Simulator struct {
	resolver *equipment.Resolver
	routes   routes.Source
	seats    SeatMapProvider
	log      logger.Logger
	metrics  metrics.MetricsSink
	bus      eventbus.EventBus
	store    logging.LogStore
	timeout  time.Duration
	now      func() time.Time
	newID    func() string
}

// NewSimulator creates a simulator reading routes from src and resolving
// equipment with resolver. sink, bus and log may be nil.
func NewSimulator(resolver *equipment.Resolver, src routes.Source, sink metrics.MetricsSink, bus eventbus.EventBus, log logger.Logger) (*Simulator, error) {
	if resolver == nil || src == nil {
		return nil, fmt.Errorf("simulation: nil parameter provided to NewSimulator")
	}
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Simulator{
		resolver: resolver,
		routes:   src,
		log:      logger.OrNop(log),
		metrics:  sink,
		bus:      bus,
		store:    logging.NopStore{},
		timeout:  DefaultTimeout,
		now:      time.Now,
		newID:    uuid.NewString,
	}, nil
}

// SetLogStore configures the store used to persist run records.
func (s *Simulator) SetLogStore(store logging.LogStore) {
	if store == nil {
		store = logging.NopStore{}
	}
	s.store = store
}

// SetSeatMaps configures the airline seat maps.
func (s *Simulator) SetSeatMaps(p SeatMapProvider) { s.seats = p }

// SetTimeout bounds each run. Non-positive values restore DefaultTimeout.
func (s *Simulator) SetTimeout(d time.Duration) {
	if d <= 0 {
		d = DefaultTimeout
	}
	s.timeout = d
}

// LogStore returns the configured run record store.
func (s *Simulator) LogStore() logging.LogStore { return s.store }

// Resolver returns the equipment resolver.
func (s *Simulator) Resolver() *equipment.Resolver { return s.resolver }

// AirlineSeats returns the seat map for airline, if any.
func (s *Simulator) AirlineSeats(airline string) equipment.SeatMap {
	if s.seats == nil || airline == "" {
		return nil
	}
	return s.seats.AirlineSeats(airline)
}

// Close releases the run record store.
func (s *Simulator) Close() error {
	return s.store.Close()
}

// Run executes req. Validation problems are returned as *model.ValidationError
// before any route data is read for parameter errors; flights that cannot be
// placed are reported in the result, not as errors.
func (s *Simulator) Run(ctx context.Context, req Request) (Run, error) {
	run := Run{ID: s.newID(), StartedAt: s.now()}
	airline := strings.ToUpper(strings.TrimSpace(req.Airline))
	params := req.Params.Normalize()

	res, err := s.execute(ctx, run.ID, airline, req.FleetConfig, params)
	run.Duration = s.now().Sub(run.StartedAt)
	if err != nil {
		s.fail(ctx, run, airline, req.FleetConfig, params, err)
		return run, err
	}
	run.Result = res
	s.complete(ctx, run, airline, req.FleetConfig)
	return run, nil
}

func (s *Simulator) execute(ctx context.Context, runID, airline string, entries []model.FleetEntry, params schedule.Params) (report.Result, error) {
	if err := params.Validate(); err != nil {
		return report.Result{}, err
	}
	seats := s.AirlineSeats(airline)
	resolver := s.resolver.WithDefaultTurn(params.DefaultTurnMinutes)
	pool, err := fleet.Expand(entries, resolver, seats)
	if err != nil {
		return report.Result{}, err
	}
	s.publish(events.RunStarted{RunID: runID, Airline: airline, Tails: pool.Len(), Time: s.now()})

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	rows, err := s.fetchRoutes(ctx, airline)
	if err != nil {
		return report.Result{}, err
	}
	flights, err := demand.Selector{Estimator: resolver, Airline: seats}.Select(rows, params.RouteLimit)
	if err != nil {
		return report.Result{}, err
	}
	eng, err := schedule.NewEngine(params, pool, s.log)
	if err != nil {
		return report.Result{}, err
	}
	out, err := eng.Run(ctx, flights)
	if err != nil {
		return report.Result{}, fmt.Errorf("assign flights: %w", err)
	}
	s.log.Debugw("run assigned", map[string]any{
		"run_id":     runID,
		"flights":    len(flights),
		"tails":      pool.Len(),
		"assigned":   len(out.Assignments),
		"unassigned": len(out.Unassigned),
	})
	return report.Build(params, pool, out), nil
}

func (s *Simulator) fetchRoutes(ctx context.Context, airline string) ([]model.RouteRow, error) {
	start := time.Now()
	rows, err := s.routes.Routes(ctx, routes.Query{Airline: airline})
	if rec, ok := s.metrics.(metrics.RouteFetchRecorder); ok {
		if merr := rec.RecordRouteFetch(metrics.RouteFetch{
			Source:  fmt.Sprintf("%T", s.routes),
			Airline: airline,
			Rows:    len(rows),
			Latency: time.Since(start),
			Err:     err != nil,
		}); merr != nil {
			s.log.Errorf("route fetch metrics error: %v", merr)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("fetch routes: %w", err)
	}
	return rows, nil
}

func (s *Simulator) complete(ctx context.Context, run Run, airline string, entries []model.FleetEntry) {
	sum := run.Result.Summary
	s.log.Infof("run %s: %d/%d flights scheduled on %d tails (coverage %.2f, utilization %.2f) in %s",
		run.ID, sum.ScheduledFlights, sum.TotalFlights, sum.Tails, sum.Coverage, sum.Utilization, run.Duration)

	if err := s.metrics.RecordSimulation(metrics.SimulationRecord{
		RunID:              run.ID,
		Airline:            airline,
		Tails:              sum.Tails,
		Flights:            sum.TotalFlights,
		Scheduled:          sum.ScheduledFlights,
		Unassigned:         sum.UnassignedFlights,
		BlockHours:         sum.TotalBlockHours,
		Coverage:           sum.Coverage,
		Utilization:        sum.Utilization,
		UnassignedByReason: sum.UnassignedByReason,
		Duration:           run.Duration,
		Time:               run.StartedAt,
	}); err != nil {
		s.log.Errorf("simulation metrics error: %v", err)
	}
	if rec, ok := s.metrics.(metrics.TailUtilizationRecorder); ok {
		tails := make([]metrics.TailUtilization, 0, len(run.Result.TailLogs))
		for _, tl := range run.Result.TailLogs {
			tails = append(tails, metrics.TailUtilization{
				RunID:       run.ID,
				TailID:      tl.TailID,
				Equipment:   tl.Equipment,
				Category:    tl.Category,
				Flights:     tl.Flights,
				BlockHours:  tl.BlockHours,
				Utilization: tl.Utilization,
				Time:        run.StartedAt,
			})
		}
		if err := rec.RecordTailUtilization(tails); err != nil {
			s.log.Errorf("tail utilization metrics error: %v", err)
		}
	}

	s.publish(events.RunCompleted{RunID: run.ID, Airline: airline, Summary: sum, Duration: run.Duration, Time: s.now()})
	s.persist(ctx, logging.LogRecord{
		RunID:      run.ID,
		Timestamp:  run.StartedAt,
		Airline:    airline,
		DurationMS: float64(run.Duration) / float64(time.Millisecond),
		Fleet:      entries,
		Parameters: run.Result.Parameters,
		Summary:    &sum,
	})
}

func (s *Simulator) fail(ctx context.Context, run Run, airline string, entries []model.FleetEntry, params schedule.Params, err error) {
	validation := errors.Is(err, model.ErrValidation)
	if validation {
		s.log.Warnf("run %s rejected: %v", run.ID, err)
	} else {
		s.log.Errorf("run %s failed: %v", run.ID, err)
		monitoring.CaptureException(err, monitoring.RunTags("simulation", run.ID, airline))
	}
	s.publish(events.RunFailed{RunID: run.ID, Airline: airline, Err: err, Validation: validation, Time: s.now()})
	s.persist(ctx, logging.LogRecord{
		RunID:      run.ID,
		Timestamp:  run.StartedAt,
		Airline:    airline,
		DurationMS: float64(run.Duration) / float64(time.Millisecond),
		Fleet:      entries,
		Parameters: params,
		Error:      err.Error(),
	})
}

func (s *Simulator) persist(ctx context.Context, rec logging.LogRecord) {
	// the request context may already be done; the record is still wanted
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()
	if err := s.store.Append(ctx, rec); err != nil {
		s.log.Errorf("run log append error: %v", err)
	}
}

func (s *Simulator) publish(ev eventbus.Event) {
	if s.bus != nil {
		s.bus.Publish(ev)
	}
}
