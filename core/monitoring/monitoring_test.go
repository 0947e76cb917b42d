package monitoring

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type recordMonitor struct {
	err  error
	tags map[string]string
}

func (r *recordMonitor) CaptureException(err error, tags map[string]string) {
	r.err = err
	r.tags = tags
}
func (r *recordMonitor) Recover()            {}
func (r *recordMonitor) Flush(time.Duration) {}

func TestCaptureExceptionUsesCurrent(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	defer Init(NopMonitor{})

	Init(nil)
	CaptureException(errors.New("boom"), RunTags("simulation", "r1", "DL"))
	assert.EqualError(t, mon.err, "boom")
	assert.Equal(t, map[string]string{"module": "simulation", "run_id": "r1", "airline": "DL"}, mon.tags)
}

func TestRunTagsWithoutAirline(t *testing.T) {
	assert.Equal(t, map[string]string{"module": "api", "run_id": "r2"}, RunTags("api", "r2", ""))
}

func TestCaptureExceptionIgnoresNil(t *testing.T) {
	mon := &recordMonitor{}
	Init(mon)
	defer Init(NopMonitor{})

	CaptureException(nil, map[string]string{"module": "x"})
	assert.Nil(t, mon.tags)
	assert.Same(t, mon, Current())
}
