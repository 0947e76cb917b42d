package schedule

import (
	"math"

	"github.com/routeopt/fleetsim/core/model"
)

// CapacityTolerance is the fraction of required seats a tail must offer.
// Undersizing by up to 25% is accepted; oversizing is never penalized.
const CapacityTolerance = 0.75

// MinFlightHours is the shortest airborne time charged for any flight.
const MinFlightHours = 0.5

// Candidate is a tail being considered for one flight, with the timing it
// would have if selected.
type Candidate struct {
	Index        int
	Tail         *model.Tail
	BlockHours   float64
	TentativeEnd float64
	NextFree     float64
}

// Stage is one filter of the evaluation pipeline. When Keep rejects every
// remaining candidate the flight is unassigned with Reason.
type Stage struct {
	Name   string
	Reason model.Reason
	Keep   func(c Candidate, f model.FlightDemand) bool
}

// BlockHours returns flight plus taxi time for a tail flying distance miles.
func BlockHours(distance, cruiseMPH, taxiHours float64) float64 {
	return math.Max(distance/cruiseMPH, MinFlightHours) + taxiHours
}

// DefaultStages returns the range, capacity, schedule window and crew duty
// filters in evaluation order.
func DefaultStages(p Params) []Stage {
	window := p.WindowHours()
	crew := p.CrewLimit()
	return []Stage{
		{
			Name:   "range",
			Reason: model.ReasonCapacity,
			Keep: func(c Candidate, f model.FlightDemand) bool {
				return c.Tail.MaxRangeMiles >= f.DistanceMiles
			},
		},
		{
			Name:   "capacity",
			Reason: model.ReasonCapacity,
			Keep: func(c Candidate, f model.FlightDemand) bool {
				return float64(c.Tail.SeatCapacity) >= float64(f.RequiredSeats)*CapacityTolerance
			},
		},
		{
			Name:   "schedule_window",
			Reason: model.ReasonScheduleWindow,
			Keep: func(c Candidate, _ model.FlightDemand) bool {
				return c.NextFree <= window
			},
		},
		{
			Name:   "crew_duty",
			Reason: model.ReasonCrewDuty,
			Keep: func(c Candidate, _ model.FlightDemand) bool {
				return c.Tail.AccumulatedBlockHours+c.BlockHours <= crew
			},
		},
	}
}

// filter runs the stages in order. It returns the surviving candidates, or
// the reason of the first stage that left none.
func filter(stages []Stage, cands []Candidate, f model.FlightDemand) ([]Candidate, model.Reason) {
	if len(cands) == 0 {
		return nil, model.ReasonNoAircraft
	}
	for _, st := range stages {
		next := make([]Candidate, 0, len(cands))
		for _, c := range cands {
			if st.Keep(c, f) {
				next = append(next, c)
			}
		}
		if len(next) == 0 {
			return nil, st.Reason
		}
		cands = next
	}
	return cands, ""
}

// better reports whether a should be preferred over b for a flight needing
// required seats. The key order is load-bearing for determinism.
func better(a, b Candidate, required int) bool {
	if a.Tail.NextAvailableHour != b.Tail.NextAvailableHour {
		return a.Tail.NextAvailableHour < b.Tail.NextAvailableHour
	}
	if ga, gb := a.Tail.SeatGap(required), b.Tail.SeatGap(required); ga != gb {
		return ga < gb
	}
	if a.Tail.AccumulatedBlockHours != b.Tail.AccumulatedBlockHours {
		return a.Tail.AccumulatedBlockHours < b.Tail.AccumulatedBlockHours
	}
	return a.Index < b.Index
}

func best(cands []Candidate, required int) Candidate {
	pick := cands[0]
	for _, c := range cands[1:] {
		if better(c, pick, required) {
			pick = c
		}
	}
	return pick
}
