// Package scenarios runs YAML described simulation scenarios against the
// full simulator stack.
package scenarios

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/core/schedule"
	"github.com/routeopt/fleetsim/core/simulation"
)

type Expected struct {
	// Error is "validation" when the run must be rejected as invalid input.
	Error      string         `yaml:"error,omitempty"`
	Scheduled  int            `yaml:"scheduled"`
	Unassigned int            `yaml:"unassigned"`
	Reasons    map[string]int `yaml:"reasons,omitempty"`
	// BlockHours lists the expected block time of each assignment in order.
	BlockHours []float64 `yaml:"block_hours,omitempty"`
	// RouteFetches is the number of route source reads, when checked.
	RouteFetches *int `yaml:"route_fetches,omitempty"`
}

type Scenario struct {
	Name        string             `yaml:"name"`
	Description string             `yaml:"description,omitempty"`
	Airline     string             `yaml:"airline,omitempty"`
	Fleet       []model.FleetEntry `yaml:"fleet"`
	// Params overrides the default parameters field by field.
	Params   schedule.Params  `yaml:"params"`
	Routes   []model.RouteRow `yaml:"routes"`
	Expected Expected         `yaml:"expected"`
}

// Request builds the simulation request of the scenario.
func (s Scenario) Request() simulation.Request {
	return simulation.Request{Airline: s.Airline, FleetConfig: s.Fleet, Params: s.Params}
}

func Load(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	sc := Scenario{Params: schedule.DefaultParams()}
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, err
	}
	return &sc, nil
}
