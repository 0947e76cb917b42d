// Package routes defines where the simulator reads its route/cost table
// from. Implementations live in infra/routes and register themselves by
// type name.
package routes

import (
	"context"
	"strings"

	"github.com/routeopt/fleetsim/core/factory"
	"github.com/routeopt/fleetsim/core/model"
)

// Query narrows the rows a Source returns.
type Query struct {
	// Airline is a carrier code. Empty means every carrier.
	Airline string
}

// Source provides route/cost rows.
type Source interface {
	Routes(ctx context.Context, q Query) ([]model.RouteRow, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context, q Query) ([]model.RouteRow, error)

func (f SourceFunc) Routes(ctx context.Context, q Query) ([]model.RouteRow, error) { return f(ctx, q) }

// Static serves a fixed table.
type Static []model.RouteRow

// Routes returns the rows matching q.
func (s Static) Routes(_ context.Context, q Query) ([]model.RouteRow, error) {
	return Filter(s, q), nil
}

// Filter returns the rows of rows matching q. Carrier comparison ignores case.
func Filter(rows []model.RouteRow, q Query) []model.RouteRow {
	if q.Airline == "" {
		out := make([]model.RouteRow, len(rows))
		copy(out, rows)
		return out
	}
	out := make([]model.RouteRow, 0, len(rows))
	for _, r := range rows {
		if strings.EqualFold(strings.TrimSpace(r.Carrier), q.Airline) {
			out = append(out, r)
		}
	}
	return out
}

var sourceRegistry = factory.NewRegistry[Source]()

// RegisterSource adds a route source factory identified by name.
func RegisterSource(name string, f factory.Factory[Source]) error {
	return sourceRegistry.Register(name, f)
}

// NewSource creates the Source described by cfg.
func NewSource(cfg factory.ModuleConfig) (Source, error) {
	return sourceRegistry.Create(cfg)
}
