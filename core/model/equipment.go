package model

import "fmt"

// Category buckets equipment by resolved seat count.
type Category int

const (
	CategoryRegional Category = iota
	CategoryCrossover
	CategoryNarrowbody
	CategoryWidebody
)

// String returns the lower-case category name used in reports.
func (c Category) String() string {
	switch c {
	case CategoryRegional:
		return "regional"
	case CategoryCrossover:
		return "crossover"
	case CategoryNarrowbody:
		return "narrowbody"
	case CategoryWidebody:
		return "widebody"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler so categories serialize by name.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText parses a category name.
func (c *Category) UnmarshalText(b []byte) error {
	switch string(b) {
	case "regional":
		*c = CategoryRegional
	case "crossover":
		*c = CategoryCrossover
	case "narrowbody":
		*c = CategoryNarrowbody
	case "widebody":
		*c = CategoryWidebody
	default:
		return fmt.Errorf("unknown category %q", string(b))
	}
	return nil
}

// ResolutionSource records which lookup stage produced a seat count.
type ResolutionSource string

const (
	SourceAirline    ResolutionSource = "airline"
	SourceNormalized ResolutionSource = "normalized"
	SourceFuzzy      ResolutionSource = "fuzzy"
	SourceDefault    ResolutionSource = "default"
)

// EquipmentProfile describes the performance envelope of an equipment code.
type EquipmentProfile struct {
	Code           string           `json:"equipment"`
	Category       Category         `json:"category"`
	SeatCapacity   int              `json:"seat_capacity"`
	CruiseSpeedMPH float64          `json:"cruise_speed_mph"`
	TurnTimeHours  float64          `json:"turn_time_hours"`
	MaxRangeMiles  float64          `json:"max_range_miles"`
	Source         ResolutionSource `json:"source"`
}
