// Package demand turns the route/cost table into the ordered list of
// candidate flights the scheduler works through.
package demand

import (
	"math"
	"sort"
	"strings"

	"github.com/routeopt/fleetsim/core/equipment"
	"github.com/routeopt/fleetsim/core/model"
)

const (
	DefaultRouteLimit    = 80
	MinRouteLimit        = 1
	MaxRouteLimit        = 500
	DefaultSeats         = 120
	MinSeats             = 40
	DefaultDistanceMiles = 500.0
	// MaxRequiredSeats caps row seat counts before conversion to int.
	MaxRequiredSeats = math.MaxInt32
)

// SeatEstimator guesses seats per departure from a route's equipment code.
type SeatEstimator interface {
	EstimateSeats(code string, airline equipment.SeatMap) (int, bool)
}

// ClampRouteLimit applies the default for zero and clamps to [1, 500].
func ClampRouteLimit(n int) int {
	if n == 0 {
		return DefaultRouteLimit
	}
	if n < MinRouteLimit {
		return MinRouteLimit
	}
	if n > MaxRouteLimit {
		return MaxRouteLimit
	}
	return n
}

// Selector ranks route rows by ASM and derives flight requirements.
type Selector struct {
	Estimator SeatEstimator
	Airline   equipment.SeatMap
}

// Select returns at most limit flights ordered by ASM descending. Rows with
// equal ASM keep their input order. A row holding NaN or an infinity is
// rejected as a ValidationError.
func (s Selector) Select(rows []model.RouteRow, limit int) ([]model.FlightDemand, error) {
	if len(rows) == 0 {
		return nil, model.NewValidationError("routes", "no route data available")
	}
	for _, r := range rows {
		if err := checkFinite(r); err != nil {
			return nil, err
		}
	}
	limit = ClampRouteLimit(limit)
	ranked := make([]model.RouteRow, len(rows))
	copy(ranked, rows)
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].ASM > ranked[j].ASM })
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	flights := make([]model.FlightDemand, 0, len(ranked))
	for _, r := range ranked {
		flights = append(flights, model.FlightDemand{
			Source:             strings.TrimSpace(r.Source),
			Destination:        strings.TrimSpace(r.Destination),
			EquipmentRequested: strings.TrimSpace(r.Equipment),
			RequiredSeats:      s.requiredSeats(r),
			DistanceMiles:      distance(r),
			ASM:                r.ASM,
		})
	}
	return flights, nil
}

func checkFinite(r model.RouteRow) error {
	for _, v := range []struct {
		name string
		val  float64
	}{
		{"asm", r.ASM},
		{"distance_miles", r.DistanceMiles},
		{"total_seats", r.TotalSeats},
	} {
		if math.IsNaN(v.val) || math.IsInf(v.val, 0) {
			return model.NewValidationError("routes", "%s-%s: %s is not a finite number",
				strings.TrimSpace(r.Source), strings.TrimSpace(r.Destination), v.name)
		}
	}
	return nil
}

func (s Selector) requiredSeats(r model.RouteRow) int {
	var seats int
	switch {
	case r.TotalSeats >= MaxRequiredSeats:
		seats = MaxRequiredSeats
	case r.TotalSeats >= 1:
		seats = int(r.TotalSeats)
	default:
		seats = DefaultSeats
		if code := strings.TrimSpace(r.Equipment); code != "" && s.Estimator != nil {
			if est, ok := s.Estimator.EstimateSeats(code, s.Airline); ok && est > 0 {
				seats = est
			}
		}
	}
	if seats < MinSeats {
		seats = MinSeats
	}
	return seats
}

func distance(r model.RouteRow) float64 {
	if r.DistanceMiles > 0 {
		return r.DistanceMiles
	}
	return DefaultDistanceMiles
}
