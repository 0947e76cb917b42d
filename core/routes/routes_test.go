package routes

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeopt/fleetsim/core/factory"
	"github.com/routeopt/fleetsim/core/model"
)

var table = Static{
	{Source: "ATL", Destination: "MCO", Carrier: "DL", ASM: 10},
	{Source: "DFW", Destination: "LAX", Carrier: "AA", ASM: 20},
	{Source: "ATL", Destination: "LGA", Carrier: " dl ", ASM: 5},
}

func TestStatic_Filter(t *testing.T) {
	rows, err := table.Routes(context.Background(), Query{Airline: "DL"})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "MCO", rows[0].Destination)
	assert.Equal(t, "LGA", rows[1].Destination)

	all, err := table.Routes(context.Background(), Query{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
	all[0].ASM = 999
	assert.Equal(t, 10.0, table[0].ASM, "returned rows are a copy")
}

func TestRegistry(t *testing.T) {
	require.NoError(t, RegisterSource("routes-test-static", func(map[string]any) (Source, error) {
		return table, nil
	}))
	src, err := NewSource(factory.ModuleConfig{Type: "routes-test-static"})
	require.NoError(t, err)
	rows, err := src.Routes(context.Background(), Query{Airline: "AA"})
	require.NoError(t, err)
	assert.Equal(t, []model.RouteRow{table[1]}, rows)

	_, err = NewSource(factory.ModuleConfig{Type: "nope"})
	assert.Error(t, err)
}
