// Package report aggregates an engine outcome into the summary, fleet
// overview and per-tail logs returned to callers.
package report

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/routeopt/fleetsim/core/fleet"
	"github.com/routeopt/fleetsim/core/model"
	"github.com/routeopt/fleetsim/core/schedule"
)

// DayStartHour anchors hour zero of the schedule on the wall clock.
const DayStartHour = 5.0

// Summary holds the run-level counters.
type Summary struct {
	TotalFlights          int                  `json:"total_flights"`
	ScheduledFlights      int                  `json:"scheduled_flights"`
	UnassignedFlights     int                  `json:"unassigned_flights"`
	Coverage              float64              `json:"coverage"`
	TotalBlockHours       float64              `json:"total_block_hours"`
	AvailableBlockHours   float64              `json:"available_block_hours"`
	Utilization           float64              `json:"utilization"`
	Tails                 int                  `json:"tails"`
	CrewLimitHours        float64              `json:"crew_limit_hours"`
	MeanTailUtilization   float64              `json:"mean_tail_utilization"`
	TailUtilizationStdDev float64              `json:"tail_utilization_stddev"`
	PeakTailBlockHours    float64              `json:"peak_tail_block_hours"`
	UnassignedByReason    map[model.Reason]int `json:"unassigned_by_reason"`
}

// TailLog describes how one tail was used.
type TailLog struct {
	TailID                 string         `json:"tail_id"`
	Equipment              string         `json:"equipment"`
	Category               model.Category `json:"category"`
	SeatCapacity           int            `json:"seat_capacity"`
	Flights                int            `json:"flights"`
	BlockHours             float64        `json:"block_hours"`
	DutyHours              float64        `json:"duty_hours"`
	Utilization            float64        `json:"utilization"`
	MaintenanceBufferHours float64        `json:"maintenance_buffer_hours"`
	Routes                 []string       `json:"routes"`
}

// FleetOverview describes one accepted fleet entry.
type FleetOverview struct {
	Equipment      string                 `json:"equipment"`
	Count          int                    `json:"count"`
	SeatCapacity   int                    `json:"seat_capacity"`
	Category       model.Category         `json:"category"`
	CruiseSpeedMPH float64                `json:"cruise_speed_mph"`
	MaxRangeMiles  float64                `json:"max_range_miles"`
	TurnTimeHours  float64                `json:"turn_time_hours"`
	Source         model.ResolutionSource `json:"resolution_source"`
}

// Result is the complete, deterministic output of a simulation.
type Result struct {
	Summary     Summary                  `json:"summary"`
	Fleet       []FleetOverview          `json:"fleet"`
	Assignments []model.Assignment       `json:"assignments"`
	Unassigned  []model.UnassignedFlight `json:"unassigned"`
	TailLogs    []TailLog                `json:"tail_logs"`
	Parameters  schedule.Params          `json:"parameters"`
}

// Build assembles the result of an engine pass over pool.
func Build(p schedule.Params, pool *fleet.Pool, out schedule.Outcome) Result {
	crew := p.CrewLimit()
	res := Result{
		Fleet:       fleetOverview(pool),
		Assignments: make([]model.Assignment, len(out.Assignments)),
		Unassigned:  append([]model.UnassignedFlight{}, out.Unassigned...),
		TailLogs:    make([]TailLog, 0, pool.Len()),
		Parameters:  p,
	}
	for i, a := range out.Assignments {
		a.StartClock = ClockLabel(a.StartHour)
		a.EndClock = ClockLabel(a.EndHour)
		res.Assignments[i] = a
	}

	utils := make([]float64, 0, pool.Len())
	blocks := make([]float64, 0, pool.Len())
	for _, t := range pool.Tails {
		tl := TailLog{
			TailID:                 t.ID,
			Equipment:              t.Equipment,
			Category:               t.Category,
			SeatCapacity:           t.SeatCapacity,
			Flights:                len(t.Assignments),
			BlockHours:             t.AccumulatedBlockHours,
			DutyHours:              t.NextAvailableHour,
			Utilization:            ratio(t.AccumulatedBlockHours, crew),
			MaintenanceBufferHours: math.Max(p.DayHours-t.NextAvailableHour, p.MaintenanceHours),
			Routes:                 make([]string, 0, len(t.Assignments)),
		}
		for _, idx := range t.Assignments {
			tl.Routes = append(tl.Routes, out.Assignments[idx].Route)
		}
		res.TailLogs = append(res.TailLogs, tl)
		utils = append(utils, tl.Utilization)
		blocks = append(blocks, tl.BlockHours)
	}

	total := len(out.Assignments) + len(out.Unassigned)
	available := float64(pool.Len()) * crew
	s := Summary{
		TotalFlights:        total,
		ScheduledFlights:    len(out.Assignments),
		UnassignedFlights:   len(out.Unassigned),
		Coverage:            ratio(float64(len(out.Assignments)), float64(total)),
		TotalBlockHours:     out.TotalBlockHours,
		AvailableBlockHours: available,
		Utilization:         ratio(out.TotalBlockHours, available),
		Tails:               pool.Len(),
		CrewLimitHours:      crew,
		UnassignedByReason:  map[model.Reason]int{},
	}
	if len(utils) > 0 {
		s.MeanTailUtilization = stat.Mean(utils, nil)
	}
	if len(utils) > 1 {
		s.TailUtilizationStdDev = stat.PopStdDev(utils, nil)
	}
	if len(blocks) > 0 {
		s.PeakTailBlockHours = floats.Max(blocks)
	}
	for _, u := range out.Unassigned {
		s.UnassignedByReason[u.ReasonCode]++
	}
	res.Summary = s
	return res
}

func fleetOverview(pool *fleet.Pool) []FleetOverview {
	out := make([]FleetOverview, 0, len(pool.Groups))
	for _, g := range pool.Groups {
		out = append(out, FleetOverview{
			Equipment:      g.Equipment,
			Count:          g.Count,
			SeatCapacity:   g.Profile.SeatCapacity,
			Category:       g.Profile.Category,
			CruiseSpeedMPH: g.Profile.CruiseSpeedMPH,
			MaxRangeMiles:  g.Profile.MaxRangeMiles,
			TurnTimeHours:  g.Profile.TurnTimeHours,
			Source:         g.Profile.Source,
		})
	}
	return out
}

func ratio(num, den float64) float64 {
	if den <= 0 {
		return 0
	}
	return num / den
}

// ClockLabel formats a schedule hour as HH:MM after DayStartHour, wrapping at
// midnight.
func ClockLabel(hour float64) string {
	minutes := int(math.Round((hour + DayStartHour) * 60))
	minutes %= 24 * 60
	if minutes < 0 {
		minutes += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
