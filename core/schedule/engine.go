package schedule

import (
	"context"

	"github.com/routeopt/fleetsim/core/fleet"
	"github.com/routeopt/fleetsim/core/logger"
	"github.com/routeopt/fleetsim/core/model"
)

// Outcome is the raw result of one engine pass.
type Outcome struct {
	Assignments     []model.Assignment
	Unassigned      []model.UnassignedFlight
	TotalBlockHours float64
}

// Engine assigns flights to the tails of a single pool. An Engine mutates its
// pool and must not be shared between runs.
type Engine struct {
	params Params
	pool   *fleet.Pool
	stages []Stage
	log    logger.Logger
}

// NewEngine validates p and returns an engine using the default stages.
func NewEngine(p Params, pool *fleet.Pool, log logger.Logger) (*Engine, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if pool == nil || pool.Len() == 0 {
		return nil, model.NewValidationError("fleet_config", "empty fleet")
	}
	return &Engine{params: p, pool: pool, stages: DefaultStages(p), log: logger.OrNop(log)}, nil
}

// Pool returns the tail pool the engine schedules.
func (e *Engine) Pool() *fleet.Pool { return e.pool }

// Run processes flights in order. It returns ctx.Err() if the context ends
// before every flight has been considered.
func (e *Engine) Run(ctx context.Context, flights []model.FlightDemand) (Outcome, error) {
	if len(flights) == 0 {
		return Outcome{}, model.NewValidationError("routes", "no flights to schedule")
	}
	out := Outcome{
		Assignments: make([]model.Assignment, 0, len(flights)),
	}
	for _, f := range flights {
		if err := ctx.Err(); err != nil {
			return Outcome{}, err
		}
		if ok := e.place(f, &out); !ok {
			last := out.Unassigned[len(out.Unassigned)-1]
			e.log.Debugw("flight unassigned", map[string]any{
				"route":  last.Route,
				"reason": string(last.ReasonCode),
				"seats":  f.RequiredSeats,
			})
		}
	}
	return out, nil
}

func (e *Engine) candidates(f model.FlightDemand) []Candidate {
	taxi := e.params.TaxiBufferHours()
	cands := make([]Candidate, 0, e.pool.Len())
	for i := range e.pool.Tails {
		t := e.pool.Tail(i)
		block := BlockHours(f.DistanceMiles, t.CruiseSpeedMPH, taxi)
		end := t.NextAvailableHour + block
		cands = append(cands, Candidate{
			Index:        i,
			Tail:         t,
			BlockHours:   block,
			TentativeEnd: end,
			NextFree:     end + t.TurnTimeHours,
		})
	}
	return cands
}

func (e *Engine) place(f model.FlightDemand, out *Outcome) bool {
	survivors, reason := filter(e.stages, e.candidates(f), f)
	if len(survivors) == 0 {
		out.Unassigned = append(out.Unassigned, model.UnassignedFlight{
			Route:              f.Route(),
			EquipmentRequested: f.EquipmentRequested,
			DistanceMiles:      f.DistanceMiles,
			RequiredSeats:      f.RequiredSeats,
			ReasonCode:         reason,
			Reason:             reason.Describe(),
		})
		return false
	}

	c := best(survivors, f.RequiredSeats)
	t := c.Tail
	start := t.NextAvailableHour
	out.Assignments = append(out.Assignments, model.Assignment{
		Route:              f.Route(),
		TailID:             t.ID,
		Equipment:          t.Equipment,
		EquipmentRequested: f.EquipmentRequested,
		BlockHours:         c.BlockHours,
		TurnHours:          t.TurnTimeHours,
		StartHour:          start,
		EndHour:            c.TentativeEnd,
		DistanceMiles:      f.DistanceMiles,
		RequiredSeats:      f.RequiredSeats,
	})
	t.NextAvailableHour = c.TentativeEnd + t.TurnTimeHours
	t.AccumulatedBlockHours += c.BlockHours
	t.Assignments = append(t.Assignments, len(out.Assignments)-1)
	out.TotalBlockHours += c.BlockHours
	return true
}
