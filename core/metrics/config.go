package metrics

import (
	"fmt"

	"github.com/routeopt/fleetsim/core/factory"
)

// Config lists the sinks every simulation run is recorded to. PrometheusAddr,
// when set, serves /metrics on its own listener.
type Config struct {
	Sinks          []factory.ModuleConfig `json:"sinks" yaml:"sinks"`
	PrometheusAddr string                 `json:"prometheus_addr" yaml:"prometheus_addr"`
}

// Validate requires a type on every sink.
func (c Config) Validate() error {
	for i, s := range c.Sinks {
		if s.Type == "" {
			return fmt.Errorf("metrics.sinks[%d]: type is required", i)
		}
	}
	return nil
}
