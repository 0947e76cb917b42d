// Package schedule implements the greedy one-day fleet assignment engine.
//
// Flights are processed in the order supplied by the caller. For every flight
// the tail pool is narrowed by an ordered list of filter stages (range,
// capacity, schedule window, crew duty). When a stage eliminates every
// remaining tail the flight is recorded as unassigned with that stage's
// reason. Otherwise the surviving tail with the lowest
// (next available hour, seat gap, accumulated block hours, pool index) key is
// selected and its state advanced. There is no backtracking.
package schedule
