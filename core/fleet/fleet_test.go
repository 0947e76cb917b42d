package fleet

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeopt/fleetsim/core/equipment"
	"github.com/routeopt/fleetsim/core/model"
)

func testResolver() *equipment.Resolver {
	return equipment.NewResolver(45, equipment.Stage{
		Source: model.SourceNormalized,
		Lookup: equipment.SeatMap{"A320": 150, "CR2": 50},
	})
}

func TestExpand(t *testing.T) {
	pool, err := Expand([]model.FleetEntry{
		{Equipment: "a320", Count: 2},
		{Equipment: "CR2", Count: 1},
	}, testResolver(), nil)
	require.NoError(t, err)
	require.Equal(t, 3, pool.Len())

	ids := []string{pool.Tails[0].ID, pool.Tails[1].ID, pool.Tails[2].ID}
	assert.Equal(t, []string{"A320-01", "A320-02", "CR2-01"}, ids)
	for _, tl := range pool.Tails {
		assert.Zero(t, tl.NextAvailableHour)
		assert.Zero(t, tl.AccumulatedBlockHours)
	}
	assert.Equal(t, 150, pool.Tails[0].SeatCapacity)
	assert.Equal(t, model.CategoryRegional, pool.Tails[2].Category)
	assert.Len(t, pool.Groups, 2)
}

func TestExpand_RepeatedEquipmentContinuesNumbering(t *testing.T) {
	pool, err := Expand([]model.FleetEntry{
		{Equipment: "A320", Count: 1},
		{Equipment: "CR2", Count: 1},
		{Equipment: "A320", Count: 1},
	}, testResolver(), nil)
	require.NoError(t, err)
	assert.Equal(t, "A320-02", pool.Tails[2].ID)
}

func TestExpand_DropsInvalidEntries(t *testing.T) {
	pool, err := Expand([]model.FleetEntry{
		{Equipment: " ", Count: 3},
		{Equipment: "A320", Count: 0},
		{Equipment: "CR2", Count: -1},
		{Equipment: "CR2", Count: 1},
	}, testResolver(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, pool.Len())
	assert.Len(t, pool.Groups, 1)
}

func TestExpand_EmptyFleet(t *testing.T) {
	_, err := Expand([]model.FleetEntry{{Equipment: "", Count: 2}}, testResolver(), nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, model.ErrValidation))

	_, err = Expand(nil, testResolver(), nil)
	assert.ErrorIs(t, err, model.ErrValidation)
}
