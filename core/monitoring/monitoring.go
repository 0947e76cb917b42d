// Package monitoring reports unexpected failures of simulation runs and
// their adapters. The process wide Monitor defaults to NopMonitor until the
// CLI installs a Sentry backed one.
package monitoring

import (
	"sync"
	"time"
)

// Monitor receives errors worth reporting outside the logs.
type Monitor interface {
	CaptureException(err error, tags map[string]string)
	Recover()
	Flush(timeout time.Duration)
}

// NopMonitor drops everything.
type NopMonitor struct{}

func (NopMonitor) CaptureException(error, map[string]string) {}
func (NopMonitor) Recover()                                  {}
func (NopMonitor) Flush(time.Duration)                       {}

var (
	mu      sync.RWMutex
	current Monitor = NopMonitor{}
)

// Init installs m. A nil m keeps the current monitor.
func Init(m Monitor) {
	if m == nil {
		return
	}
	mu.Lock()
	current = m
	mu.Unlock()
}

// Current returns the installed monitor.
func Current() Monitor {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// CaptureException reports a non-nil err with tags.
func CaptureException(err error, tags map[string]string) {
	if err == nil {
		return
	}
	Current().CaptureException(err, tags)
}

// RunTags builds the tag set attached to errors raised while running a
// simulation.
func RunTags(module, runID, airline string) map[string]string {
	tags := map[string]string{"module": module, "run_id": runID}
	if airline != "" {
		tags["airline"] = airline
	}
	return tags
}

// Recover captures a panic in the calling goroutine.
func Recover() { Current().Recover() }

// Flush waits up to d for buffered events to be sent.
func Flush(d time.Duration) { Current().Flush(d) }
