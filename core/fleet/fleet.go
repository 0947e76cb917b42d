// Package fleet expands fleet configuration entries into a pool of
// individually tracked tails.
package fleet

import (
	"fmt"
	"strings"

	"github.com/routeopt/fleetsim/core/equipment"
	"github.com/routeopt/fleetsim/core/model"
)

// ProfileResolver resolves an equipment code, optionally against an airline
// seat map.
type ProfileResolver interface {
	Resolve(code string, airline equipment.SeatMap) model.EquipmentProfile
}

// Group is one accepted fleet entry together with its resolved profile.
type Group struct {
	Equipment string
	Count     int
	Profile   model.EquipmentProfile
}

// Pool is the arena of tails owned by a single simulation run. Tails are
// addressed by index and never shared between runs.
type Pool struct {
	Tails  []model.Tail
	Groups []Group
}

// Len returns the number of tails in the pool.
func (p *Pool) Len() int { return len(p.Tails) }

// Tail returns a pointer to the tail at index i.
func (p *Pool) Tail(i int) *model.Tail { return &p.Tails[i] }

// Expand builds a pool with one tail per unit. Entries with a blank equipment
// code or a non-positive count are ignored; an empty result is a validation
// error. Tail ids are numbered per equipment code starting at 01.
func Expand(entries []model.FleetEntry, resolver ProfileResolver, airline equipment.SeatMap) (*Pool, error) {
	pool := &Pool{}
	counters := make(map[string]int)
	for _, e := range entries {
		code := strings.ToUpper(strings.TrimSpace(e.Equipment))
		if code == "" || e.Count <= 0 {
			continue
		}
		prof := resolver.Resolve(code, airline)
		pool.Groups = append(pool.Groups, Group{Equipment: code, Count: e.Count, Profile: prof})
		for i := 0; i < e.Count; i++ {
			counters[code]++
			pool.Tails = append(pool.Tails, model.Tail{
				ID:             fmt.Sprintf("%s-%02d", code, counters[code]),
				Equipment:      code,
				Category:       prof.Category,
				SeatCapacity:   prof.SeatCapacity,
				CruiseSpeedMPH: prof.CruiseSpeedMPH,
				TurnTimeHours:  prof.TurnTimeHours,
				MaxRangeMiles:  prof.MaxRangeMiles,
			})
		}
	}
	if len(pool.Tails) == 0 {
		return nil, model.NewValidationError("fleet_config", "empty fleet")
	}
	return pool, nil
}
