package routes

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeopt/fleetsim/core/factory"
	coreroutes "github.com/routeopt/fleetsim/core/routes"
)

func TestRegisteredSources(t *testing.T) {
	path := filepath.Join(t.TempDir(), "routes.csv")
	require.NoError(t, os.WriteFile(path, []byte("source,destination,asm\nJFK,LAX,10\n"), 0o644))

	src, err := coreroutes.NewSource(factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": path}})
	require.NoError(t, err)
	rows, err := src.Routes(context.Background(), coreroutes.Query{})
	require.NoError(t, err)
	assert.Len(t, rows, 1)

	src, err = coreroutes.NewSource(factory.ModuleConfig{Type: "static", Conf: map[string]any{
		"rows": []any{
			map[string]any{"source": "SEA", "destination": "PDX", "carrier": "AS", "distance_miles": 129, "asm": "500"},
		},
	}})
	require.NoError(t, err)
	rows, err = src.Routes(context.Background(), coreroutes.Query{Airline: "as"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, 129.0, rows[0].DistanceMiles)
	assert.Equal(t, 500.0, rows[0].ASM)

	src, err = coreroutes.NewSource(factory.ModuleConfig{Type: "sqlite", Conf: map[string]any{
		"path":          filepath.Join(t.TempDir(), "r.db"),
		"create_schema": "true",
	}})
	require.NoError(t, err)
	rows, err = src.Routes(context.Background(), coreroutes.Query{})
	require.NoError(t, err)
	assert.Empty(t, rows)
	require.NoError(t, src.(*SQLSource).Close())

	_, err = coreroutes.NewSource(factory.ModuleConfig{Type: "postgres", Conf: map[string]any{}})
	assert.Error(t, err)

	_, err = coreroutes.NewSource(factory.ModuleConfig{Type: "kafka"})
	assert.Error(t, err)
}
