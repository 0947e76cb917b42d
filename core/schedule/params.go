package schedule

import (
	"github.com/routeopt/fleetsim/core/demand"
	"github.com/routeopt/fleetsim/core/model"
)

// Params holds the operating parameters of a simulation run.
type Params struct {
	RouteLimit         int     `json:"route_limit" yaml:"route_limit"`
	DayHours           float64 `json:"day_hours" yaml:"day_hours"`
	MaintenanceHours   float64 `json:"maintenance_hours" yaml:"maintenance_hours"`
	CrewMaxHours       float64 `json:"crew_max_hours" yaml:"crew_max_hours"`
	TaxiBufferMinutes  int     `json:"taxi_buffer_minutes" yaml:"taxi_buffer_minutes"`
	DefaultTurnMinutes int     `json:"default_turn_minutes" yaml:"default_turn_minutes"`
}

// DefaultParams returns the parameters used when a request omits them.
func DefaultParams() Params {
	return Params{
		RouteLimit:         demand.DefaultRouteLimit,
		DayHours:           18,
		MaintenanceHours:   6,
		CrewMaxHours:       14,
		TaxiBufferMinutes:  20,
		DefaultTurnMinutes: 45,
	}
}

// Normalize clamps the route limit. Duration fields are left untouched so
// that Validate can reject them.
func (p Params) Normalize() Params {
	p.RouteLimit = demand.ClampRouteLimit(p.RouteLimit)
	return p
}

// WindowHours is the part of the day tails may be scheduled in.
func (p Params) WindowHours() float64 { return p.DayHours - p.MaintenanceHours }

// CrewLimit is the maximum block hours one tail may fly in the day.
func (p Params) CrewLimit() float64 {
	if w := p.WindowHours(); w < p.CrewMaxHours {
		return w
	}
	return p.CrewMaxHours
}

// TaxiBufferHours converts the taxi buffer to hours.
func (p Params) TaxiBufferHours() float64 { return float64(p.TaxiBufferMinutes) / 60 }

// Validate rejects structurally invalid parameters.
func (p Params) Validate() error {
	switch {
	case p.DayHours <= 0:
		return model.NewValidationError("day_hours", "must be positive, got %g", p.DayHours)
	case p.MaintenanceHours < 0:
		return model.NewValidationError("maintenance_hours", "must not be negative, got %g", p.MaintenanceHours)
	case p.MaintenanceHours >= p.DayHours:
		return model.NewValidationError("maintenance_hours", "must be less than day_hours (%g >= %g)", p.MaintenanceHours, p.DayHours)
	case p.CrewMaxHours <= 0:
		return model.NewValidationError("crew_max_hours", "must be positive, got %g", p.CrewMaxHours)
	case p.TaxiBufferMinutes < 0:
		return model.NewValidationError("taxi_buffer_minutes", "must not be negative, got %d", p.TaxiBufferMinutes)
	case p.DefaultTurnMinutes < 0:
		return model.NewValidationError("default_turn_minutes", "must not be negative, got %d", p.DefaultTurnMinutes)
	}
	if p.CrewLimit() <= 0 {
		return model.NewValidationError("crew_max_hours", "resulting crew limit %g is not positive", p.CrewLimit())
	}
	return nil
}
