package model

import "fmt"

// RouteRow is one row of the externally supplied route/cost table.
type RouteRow struct {
	Source        string  `json:"source" yaml:"source"`
	Destination   string  `json:"destination" yaml:"destination"`
	Carrier       string  `json:"carrier,omitempty" yaml:"carrier"`
	Equipment     string  `json:"equipment,omitempty" yaml:"equipment"`
	DistanceMiles float64 `json:"distance_miles" yaml:"distance_miles"`
	TotalSeats    float64 `json:"total_seats" yaml:"total_seats"`
	ASM           float64 `json:"asm" yaml:"asm"`
}

// FleetEntry requests count tails of a given equipment type.
type FleetEntry struct {
	Equipment string `json:"equipment" yaml:"equipment"`
	Count     int    `json:"count" yaml:"count"`
}

// FlightDemand is a candidate flight derived from a route row.
type FlightDemand struct {
	Source             string  `json:"source"`
	Destination        string  `json:"destination"`
	EquipmentRequested string  `json:"equipment_requested"`
	RequiredSeats      int     `json:"required_seats"`
	DistanceMiles      float64 `json:"distance_miles"`
	ASM                float64 `json:"asm"`
}

// Route returns the "SRC-DST" label used throughout reports.
func (f FlightDemand) Route() string {
	return fmt.Sprintf("%s-%s", f.Source, f.Destination)
}
