package plugins

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routeopt/fleetsim/config"
	"github.com/routeopt/fleetsim/core/simulation/logging"
)

func TestNewLogStore_Builtins(t *testing.T) {
	dir := t.TempDir()
	for _, backend := range []string{"jsonl", "rotating", "sqlite"} {
		t.Run(backend, func(t *testing.T) {
			cfg := config.LoggingConfig{Backend: backend, Path: filepath.Join(dir, backend+".log")}
			cfg.SetDefaults()
			store, err := NewLogStore(cfg)
			require.NoError(t, err)
			defer store.Close()

			rec := logging.LogRecord{RunID: "r1", Timestamp: time.Now().UTC(), Airline: "DL"}
			require.NoError(t, store.Append(context.Background(), rec))
			got, err := store.Query(context.Background(), logging.LogQuery{RunID: "r1"})
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, "DL", got[0].Airline)
		})
	}
}

func TestNewLogStore_Unknown(t *testing.T) {
	_, err := NewLogStore(config.LoggingConfig{Backend: "kafka"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jsonl")

	store, err := NewLogStore(config.LoggingConfig{Backend: "nop"})
	require.NoError(t, err)
	assert.IsType(t, logging.NopStore{}, store)
}
