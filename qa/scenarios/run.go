package scenarios

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/routeopt/fleetsim/core/model"
	coremqtt "github.com/routeopt/fleetsim/core/mqtt"
	"github.com/routeopt/fleetsim/core/routes"
	"github.com/routeopt/fleetsim/core/simulation"
	"github.com/routeopt/fleetsim/infra/equipment"
	"github.com/routeopt/fleetsim/infra/logger"
	"github.com/routeopt/fleetsim/infra/metrics"
	"github.com/routeopt/fleetsim/infra/mqtt"
	"github.com/routeopt/fleetsim/internal/eventbus"
)

const blockHoursTolerance = 1e-3

type countingSource struct {
	rows  routes.Static
	calls atomic.Int32
}

func (c *countingSource) Routes(ctx context.Context, q routes.Query) ([]model.RouteRow, error) {
	c.calls.Add(1)
	return c.rows.Routes(ctx, q)
}

func RunScenario(t *testing.T, sc *Scenario) {
	t.Helper()
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	pub := mqtt.NewMockPublisher()
	bus := eventbus.New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	notified := mqtt.StartRunNotifier(ctx, bus, pub, "", logger.NopLogger{})

	catalog := equipment.DefaultCatalog()
	src := &countingSource{rows: sc.Routes}
	sim, err := simulation.NewSimulator(catalog.Resolver(sc.Params.DefaultTurnMinutes), src, sink, bus, logger.NopLogger{})
	if err != nil {
		t.Fatalf("simulator: %v", err)
	}
	sim.SetSeatMaps(catalog)

	run, err := sim.Run(ctx, sc.Request())
	exp := sc.Expected

	if exp.RouteFetches != nil && int(src.calls.Load()) != *exp.RouteFetches {
		t.Errorf("scenario %s expected %d route fetches, got %d", sc.Name, *exp.RouteFetches, src.calls.Load())
	}
	if exp.Error != "" {
		if err == nil {
			t.Fatalf("scenario %s expected %s error, got success", sc.Name, exp.Error)
		}
		if exp.Error == "validation" && !errors.Is(err, model.ErrValidation) {
			t.Fatalf("scenario %s expected validation error, got %v", sc.Name, err)
		}
		return
	}
	if err != nil {
		t.Fatalf("scenario %s: %v", sc.Name, err)
	}

	res := run.Result
	if res.Summary.ScheduledFlights != exp.Scheduled {
		t.Errorf("scenario %s expected %d scheduled, got %d", sc.Name, exp.Scheduled, res.Summary.ScheduledFlights)
	}
	if res.Summary.UnassignedFlights != exp.Unassigned {
		t.Errorf("scenario %s expected %d unassigned, got %d", sc.Name, exp.Unassigned, res.Summary.UnassignedFlights)
	}
	for reason, n := range exp.Reasons {
		if got := res.Summary.UnassignedByReason[model.Reason(reason)]; got != n {
			t.Errorf("scenario %s expected %d %s, got %d", sc.Name, n, reason, got)
		}
	}
	if len(exp.BlockHours) > 0 {
		if len(exp.BlockHours) != len(res.Assignments) {
			t.Fatalf("scenario %s expected %d assignments, got %d", sc.Name, len(exp.BlockHours), len(res.Assignments))
		}
		for i, want := range exp.BlockHours {
			if d := res.Assignments[i].BlockHours - want; d > blockHoursTolerance || d < -blockHoursTolerance {
				t.Errorf("scenario %s assignment %d expected %.3f block hours, got %.4f", sc.Name, i, want, res.Assignments[i].BlockHours)
			}
		}
	}
	if n, err := testutil.GatherAndCount(reg, "fleetsim_runs_total"); err != nil || n != 1 {
		t.Errorf("scenario %s expected one run series, got %d (%v)", sc.Name, n, err)
	}

	topic := coremqtt.RunTopic("", run.ID)
	deadline := time.Now().Add(time.Second)
	for !published(pub, topic) {
		if time.Now().After(deadline) {
			t.Errorf("scenario %s: no notification on %s", sc.Name, topic)
			break
		}
		time.Sleep(5 * time.Millisecond)
	}
	cancel()
	<-notified
}

func published(pub *mqtt.MockPublisher, topic string) bool {
	for _, m := range pub.Sent() {
		if m.Topic == topic {
			return true
		}
	}
	return false
}
