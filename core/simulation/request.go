package simulation

import (
	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/core/schedule"
)

// Request is the input of one simulation run. Parameter fields are inlined
// so the JSON form is flat.
type Request struct {
	Airline         string             `json:"airline,omitempty" yaml:"airline"`
	FleetConfig     []model.FleetEntry `json:"fleet_config" yaml:"fleet_config"`
	schedule.Params `yaml:",inline"`
}

// NewRequest returns a request pre-filled with the default parameters.
// Decoding a payload into it overrides only the fields the payload sets.
func NewRequest() Request {
	return Request{Params: schedule.DefaultParams()}
}
