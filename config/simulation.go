package config

import (
	"fmt"
	"time"

	"github.com/routeopt/fleetsim/core/schedule"
	"github.com/routeopt/fleetsim/core/simulation"
)

// SimulationConfig holds the request defaults and the run timeout.
type SimulationConfig struct {
	TimeoutSeconds int `json:"timeout_seconds"`
	// Defaults pre-fill request parameters. Unset fields keep the built-in
	// defaults.
	Defaults schedule.Params `json:"defaults"`
}

// SetDefaults applies built-in defaults to unset fields.
func (c *SimulationConfig) SetDefaults() {
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = int(simulation.DefaultTimeout / time.Second)
	}
	d := schedule.DefaultParams()
	if c.Defaults.RouteLimit == 0 {
		c.Defaults.RouteLimit = d.RouteLimit
	}
	if c.Defaults.DayHours == 0 {
		c.Defaults.DayHours = d.DayHours
	}
	if c.Defaults.MaintenanceHours == 0 {
		c.Defaults.MaintenanceHours = d.MaintenanceHours
	}
	if c.Defaults.CrewMaxHours == 0 {
		c.Defaults.CrewMaxHours = d.CrewMaxHours
	}
	if c.Defaults.TaxiBufferMinutes == 0 {
		c.Defaults.TaxiBufferMinutes = d.TaxiBufferMinutes
	}
	if c.Defaults.DefaultTurnMinutes == 0 {
		c.Defaults.DefaultTurnMinutes = d.DefaultTurnMinutes
	}
}

// Validate checks the defaults are a runnable parameter set.
func (c SimulationConfig) Validate() error {
	if c.TimeoutSeconds < 0 {
		return fmt.Errorf("simulation.timeout_seconds must be >= 0")
	}
	if err := c.Defaults.Normalize().Validate(); err != nil {
		return fmt.Errorf("simulation.defaults: %w", err)
	}
	return nil
}

// Timeout returns the run timeout.
func (c SimulationConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}
