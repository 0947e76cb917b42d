package equipment

import "github.com/routeopt/fleetsim/core/model"

// DefaultSeats is used when no lookup stage recognizes the equipment.
const DefaultSeats = 150

type categoryDefaults struct {
	category model.Category
	minSeats int
	speed    float64
	turn     float64
	rangeMi  float64
}

// ordered from largest to smallest seat threshold
var categoryTable = []categoryDefaults{
	{category: model.CategoryWidebody, minSeats: 260, speed: 515, turn: 1.5, rangeMi: 6500},
	{category: model.CategoryNarrowbody, minSeats: 150, speed: 500, turn: 1.0, rangeMi: 3500},
	{category: model.CategoryCrossover, minSeats: 90, speed: 470, turn: 0.75, rangeMi: 2200},
	{category: model.CategoryRegional, minSeats: 0, speed: 430, turn: 0.5, rangeMi: 1200},
}

func defaultsFor(seats int) categoryDefaults {
	for _, c := range categoryTable {
		if seats >= c.minSeats {
			return c
		}
	}
	return categoryTable[len(categoryTable)-1]
}

// CategoryForSeats returns the category a seat count falls into.
func CategoryForSeats(seats int) model.Category {
	return defaultsFor(seats).category
}

// ProfileForSeats builds the profile of an aircraft with the given seat count.
// defaultTurnMinutes raises the category turn time when it is longer.
func ProfileForSeats(code string, seats int, defaultTurnMinutes int, src model.ResolutionSource) model.EquipmentProfile {
	d := defaultsFor(seats)
	turn := d.turn
	if cfg := float64(defaultTurnMinutes) / 60; cfg > turn {
		turn = cfg
	}
	return model.EquipmentProfile{
		Code:           code,
		Category:       d.category,
		SeatCapacity:   seats,
		CruiseSpeedMPH: d.speed,
		TurnTimeHours:  turn,
		MaxRangeMiles:  d.rangeMi,
		Source:         src,
	}
}
