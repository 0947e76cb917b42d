package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/routeopt/fleetsim/core/metrics"
	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/infra/logger"
)

// InfluxSink writes simulation results to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordSimulation writes one point per run.
func (s *InfluxSink) RecordSimulation(rec coremetrics.SimulationRecord) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("simulation_run").
		AddTag("run_id", rec.RunID).
		AddTag("airline", airlineTag(rec.Airline)).
		AddField("tails", rec.Tails).
		AddField("flights", rec.Flights).
		AddField("scheduled", rec.Scheduled).
		AddField("unassigned", rec.Unassigned).
		AddField("block_hours", round3(rec.BlockHours)).
		AddField("coverage", round3(rec.Coverage)).
		AddField("utilization", round3(rec.Utilization)).
		AddField("duration_ms", round3(rec.Duration.Seconds()*1000))
	for _, r := range model.Reasons {
		if n := rec.UnassignedByReason[r]; n > 0 {
			p = p.AddField("unassigned_"+string(r), n)
		}
	}
	return s.writeAPI.WritePoint(ctx, p.SetTime(rec.Time))
}

// RecordTailUtilization writes one point per tail.
func (s *InfluxSink) RecordTailUtilization(tails []coremetrics.TailUtilization) error {
	if len(tails) == 0 {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	points := make([]*write.Point, 0, len(tails))
	for _, t := range tails {
		points = append(points, write.NewPointWithMeasurement("tail_utilization").
			AddTag("run_id", t.RunID).
			AddTag("tail_id", t.TailID).
			AddTag("equipment", t.Equipment).
			AddTag("category", t.Category.String()).
			AddField("flights", t.Flights).
			AddField("block_hours", round3(t.BlockHours)).
			AddField("utilization", round3(t.Utilization)).
			SetTime(t.Time))
	}
	return s.writeAPI.WritePoint(ctx, points...)
}

// RecordSimulationFailure records an aborted run.
func (s *InfluxSink) RecordSimulationFailure(ev coremetrics.SimulationFailure) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("simulation_failure").
		AddTag("run_id", ev.RunID).
		AddTag("airline", airlineTag(ev.Airline)).
		AddTag("kind", ev.Kind).
		AddField("error", ev.Error).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordRouteFetch records a route source read.
func (s *InfluxSink) RecordRouteFetch(ev coremetrics.RouteFetch) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("route_fetch").
		AddTag("source", ev.Source).
		AddTag("airline", airlineTag(ev.Airline)).
		AddTag("error", strconv.FormatBool(ev.Err)).
		AddField("rows", ev.Rows).
		AddField("latency_ms", round3(ev.Latency.Seconds()*1000)).
		SetTime(time.Now())
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the HTTP client.
func (s *InfluxSink) Close() { s.client.Close() }

func airlineTag(a string) string {
	if a == "" {
		return "all"
	}
	return a
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
