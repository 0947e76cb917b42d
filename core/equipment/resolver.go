package equipment

import (
	"strings"

	"github.com/routeopt/fleetsim/core/model"
)

// EquipmentCapacityLookup returns the seat count for a single equipment token.
// Implementations report ok=false when they do not recognize the token.
type EquipmentCapacityLookup interface {
	Seats(token string) (seats int, ok bool)
}

// LookupFunc adapts a function to EquipmentCapacityLookup.
type LookupFunc func(token string) (int, bool)

// Seats implements EquipmentCapacityLookup.
func (f LookupFunc) Seats(token string) (int, bool) { return f(token) }

// Stage is one named step of the resolution chain.
type Stage struct {
	Source model.ResolutionSource
	Lookup EquipmentCapacityLookup
}

// SeatMap is an airline specific equipment to seat count table. Keys are
// matched exactly.
type SeatMap map[string]int

// Seats implements EquipmentCapacityLookup.
func (m SeatMap) Seats(token string) (int, bool) {
	s, ok := m[token]
	if !ok || s <= 0 {
		return 0, false
	}
	return s, true
}

// Resolver maps equipment identifiers to profiles. It is safe for concurrent
// use as long as its stages are.
type Resolver struct {
	stages             []Stage
	defaultTurnMinutes int
}

// NewResolver returns a resolver running the given catalog stages after any
// airline seat map supplied per call.
func NewResolver(defaultTurnMinutes int, stages ...Stage) *Resolver {
	return &Resolver{stages: stages, defaultTurnMinutes: defaultTurnMinutes}
}

// WithDefaultTurn returns a copy of r using a different default turn time.
func (r *Resolver) WithDefaultTurn(minutes int) *Resolver {
	cp := *r
	cp.defaultTurnMinutes = minutes
	return &cp
}

// Tokens splits a possibly multi-token identifier such as "738 M88".
func Tokens(code string) []string {
	return strings.FieldsFunc(code, func(r rune) bool {
		switch r {
		case ' ', '\t', '/', ',', ';':
			return true
		}
		return false
	})
}

// Resolve returns the profile for code. airline may be nil. Stages are tried
// in order across every token so that an airline match on a later token beats
// a catalog match on the first one.
func (r *Resolver) Resolve(code string, airline SeatMap) model.EquipmentProfile {
	code = strings.TrimSpace(code)
	tokens := Tokens(code)
	stages := r.stages
	if len(airline) > 0 {
		stages = append([]Stage{{Source: model.SourceAirline, Lookup: airline}}, stages...)
	}
	for _, st := range stages {
		for _, tok := range tokens {
			if seats, ok := st.Lookup.Seats(tok); ok {
				return ProfileForSeats(code, seats, r.defaultTurnMinutes, st.Source)
			}
		}
	}
	return ProfileForSeats(code, DefaultSeats, r.defaultTurnMinutes, model.SourceDefault)
}

// EstimateSeats returns the seat count for code and whether any lookup stage
// recognized it.
func (r *Resolver) EstimateSeats(code string, airline SeatMap) (int, bool) {
	p := r.Resolve(code, airline)
	return p.SeatCapacity, p.Source != model.SourceDefault
}
