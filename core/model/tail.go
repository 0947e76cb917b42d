package model

// Tail is one physical aircraft tracked during a simulation run. Tails live in
// a pool owned by a single run and are addressed by their pool index.
type Tail struct {
	ID             string
	Equipment      string
	Category       Category
	SeatCapacity   int
	CruiseSpeedMPH float64
	TurnTimeHours  float64
	MaxRangeMiles  float64

	// NextAvailableHour only ever moves forward.
	NextAvailableHour float64
	// AccumulatedBlockHours never exceeds the run's crew limit.
	AccumulatedBlockHours float64
	// Assignments holds indices into the run's assignment list, in flight order.
	Assignments []int
}

// SeatGap returns the absolute difference between the tail's seats and the
// requested seats.
func (t Tail) SeatGap(required int) int {
	gap := t.SeatCapacity - required
	if gap < 0 {
		return -gap
	}
	return gap
}
