package metrics

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeopt/fleetsim/core/events"
	corelogger "github.com/routeopt/fleetsim/core/logger"
	coremetrics "github.com/routeopt/fleetsim/core/metrics"
	"github.com/routeopt/fleetsim/internal/eventbus"
)

type failureSink struct {
	coremetrics.NopSink
	mu  sync.Mutex
	evs []coremetrics.SimulationFailure
}

func (f *failureSink) RecordSimulationFailure(ev coremetrics.SimulationFailure) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.evs = append(f.evs, ev)
	return nil
}

func (f *failureSink) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.evs)
}

func TestStartEventCollector(t *testing.T) {
	bus := eventbus.New()
	sink := &failureSink{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartEventCollector(ctx, bus, sink, nil)

	bus.Publish(events.RunCompleted{RunID: "ok"})
	bus.Publish(events.RunFailed{RunID: "r1", Err: errors.New("empty fleet"), Validation: true})
	bus.Publish(events.RunFailed{RunID: "r2", Err: errors.New("db down")})

	require.Eventually(t, func() bool { return sink.count() == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, "validation", sink.evs[0].Kind)
	assert.Equal(t, "empty fleet", sink.evs[0].Error)
	assert.Equal(t, "error", sink.evs[1].Kind)
}

func TestStartEventCollector_NilBus(t *testing.T) {
	done := StartEventCollector(context.Background(), nil, coremetrics.NopSink{}, nil)
	_, ok := <-done
	assert.False(t, ok)
}

type brokenFailureSink struct {
	coremetrics.NopSink
	mu    sync.Mutex
	calls int
}

func (b *brokenFailureSink) RecordSimulationFailure(coremetrics.SimulationFailure) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.calls++
	return errors.New("influx unreachable")
}

func (b *brokenFailureSink) count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

type errorLog struct {
	corelogger.Nop
	mu   sync.Mutex
	msgs []string
}

func (l *errorLog) Errorf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.msgs = append(l.msgs, fmt.Sprintf(format, args...))
}

func (l *errorLog) lines() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.msgs...)
}

/*
TestStartEventCollector_SinkErrorLogged verifies that a failing sink write is
logged rather than discarded.

Cases:
  - both failed runs reach the sink even though the first write errors
  - each write error is logged with its run ID and cause
*/
func TestStartEventCollector_SinkErrorLogged(t *testing.T) {
	bus := eventbus.New()
	sink := &brokenFailureSink{}
	log := &errorLog{}
	ctx, cancel := context.WithCancel(context.Background())
	done := StartEventCollector(ctx, bus, sink, log)

	bus.Publish(events.RunFailed{RunID: "r1", Err: errors.New("empty fleet")})
	bus.Publish(events.RunFailed{RunID: "r2", Err: errors.New("db down")})

	require.Eventually(t, func() bool { return len(log.lines()) == 2 }, time.Second, 5*time.Millisecond)
	cancel()
	<-done

	assert.Equal(t, 2, sink.count())
	lines := log.lines()
	assert.Contains(t, lines[0], "r1")
	assert.Contains(t, lines[0], "influx unreachable")
	assert.Contains(t, lines[1], "r2")
}
