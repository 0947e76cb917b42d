package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/routeopt/fleetsim/core/metrics"
)

// PromSink records simulation results in Prometheus metrics.
type PromSink struct {
	runs        *prometheus.CounterVec
	duration    prometheus.Histogram
	flights     *prometheus.CounterVec
	unassigned  *prometheus.CounterVec
	coverage    prometheus.Gauge
	utilization prometheus.Gauge
	tailUtil    *prometheus.HistogramVec
	fetch       *prometheus.HistogramVec
}

// NewPromSink registers simulation metrics on the default Prometheus registerer.
// The Prometheus server should be started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetsim_runs_total",
			Help: "Simulation runs by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "fleetsim_run_duration_seconds",
			Help:    "Wall time of completed simulation runs",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
		flights: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetsim_flights_total",
			Help: "Flights considered by completed runs",
		}, []string{"status"}),
		unassigned: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fleetsim_unassigned_flights_total",
			Help: "Unassigned flights by reason",
		}, []string{"reason"}),
		coverage: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleetsim_last_run_coverage_ratio",
			Help: "Coverage of the most recent completed run",
		}),
		utilization: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "fleetsim_last_run_utilization_ratio",
			Help: "Fleet utilization of the most recent completed run",
		}),
		tailUtil: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetsim_tail_utilization_ratio",
			Help:    "Per tail block hours over crew limit",
			Buckets: prometheus.LinearBuckets(0.1, 0.1, 10),
		}, []string{"category"}),
		fetch: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "fleetsim_route_fetch_seconds",
			Help:    "Latency of route source reads",
			Buckets: prometheus.DefBuckets,
		}, []string{"error"}),
	}
	if err := register(reg, &s.runs); err != nil {
		return nil, err
	}
	if err := register(reg, &s.duration); err != nil {
		return nil, err
	}
	if err := register(reg, &s.flights); err != nil {
		return nil, err
	}
	if err := register(reg, &s.unassigned); err != nil {
		return nil, err
	}
	if err := register(reg, &s.coverage); err != nil {
		return nil, err
	}
	if err := register(reg, &s.utilization); err != nil {
		return nil, err
	}
	if err := register(reg, &s.tailUtil); err != nil {
		return nil, err
	}
	if err := register(reg, &s.fetch); err != nil {
		return nil, err
	}
	return s, nil
}

// register adds *c to reg, reusing an identical collector that is already
// registered.
func register[C prometheus.Collector](reg prometheus.Registerer, c *C) error {
	if err := reg.Register(*c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				*c = existing
				return nil
			}
		}
		return err
	}
	return nil
}

// RecordSimulation updates run counters and last-run gauges.
func (s *PromSink) RecordSimulation(rec coremetrics.SimulationRecord) error {
	s.runs.WithLabelValues("completed").Inc()
	s.duration.Observe(rec.Duration.Seconds())
	s.flights.WithLabelValues("scheduled").Add(float64(rec.Scheduled))
	s.flights.WithLabelValues("unassigned").Add(float64(rec.Unassigned))
	for reason, n := range rec.UnassignedByReason {
		s.unassigned.WithLabelValues(string(reason)).Add(float64(n))
	}
	s.coverage.Set(rec.Coverage)
	s.utilization.Set(rec.Utilization)
	return nil
}

// RecordTailUtilization observes each tail's utilization.
func (s *PromSink) RecordTailUtilization(tails []coremetrics.TailUtilization) error {
	for _, t := range tails {
		s.tailUtil.WithLabelValues(t.Category.String()).Observe(t.Utilization)
	}
	return nil
}

// RecordSimulationFailure counts aborted runs by kind.
func (s *PromSink) RecordSimulationFailure(ev coremetrics.SimulationFailure) error {
	s.runs.WithLabelValues(ev.Kind).Inc()
	return nil
}

// RecordRouteFetch observes route source latency.
func (s *PromSink) RecordRouteFetch(ev coremetrics.RouteFetch) error {
	s.fetch.WithLabelValues(strconv.FormatBool(ev.Err)).Observe(ev.Latency.Seconds())
	return nil
}
