package model

// Reason identifies why a flight could not be placed on any tail.
type Reason string

const (
	ReasonCapacity       Reason = "capacity"
	ReasonScheduleWindow Reason = "schedule_window"
	ReasonCrewDuty       Reason = "crew_duty"
	ReasonNoAircraft     Reason = "no_available_aircraft"
)

// Reasons lists every reason in stage order.
var Reasons = []Reason{ReasonCapacity, ReasonScheduleWindow, ReasonCrewDuty, ReasonNoAircraft}

// Describe returns the human readable explanation shown to planners.
func (r Reason) Describe() string {
	switch r {
	case ReasonCapacity:
		return "No aircraft with sufficient range or seat capacity"
	case ReasonScheduleWindow:
		return "No aircraft available within the operating window"
	case ReasonCrewDuty:
		return "Crew duty limit would be exceeded"
	default:
		return "No available aircraft"
	}
}

// Assignment places one flight on one tail. Assignments are never modified
// after creation.
type Assignment struct {
	Route              string  `json:"route"`
	TailID             string  `json:"tail_id"`
	Equipment          string  `json:"equipment"`
	EquipmentRequested string  `json:"equipment_requested"`
	BlockHours         float64 `json:"block_hours"`
	TurnHours          float64 `json:"turn_hours"`
	StartHour          float64 `json:"start_hour"`
	EndHour            float64 `json:"end_hour"`
	StartClock         string  `json:"start_time"`
	EndClock           string  `json:"end_time"`
	DistanceMiles      float64 `json:"distance_miles"`
	RequiredSeats      int     `json:"required_seats"`
}

// UnassignedFlight records a flight the scheduler could not place.
type UnassignedFlight struct {
	Route              string  `json:"route"`
	EquipmentRequested string  `json:"equipment_requested"`
	DistanceMiles      float64 `json:"distance_miles"`
	RequiredSeats      int     `json:"required_seats"`
	ReasonCode         Reason  `json:"reason_code"`
	Reason             string  `json:"reason"`
}
