package plugins

import (
	"github.com/routeopt/fleetsim/config"
	"github.com/routeopt/fleetsim/core/simulation/logging"
)

func init() {
	RegisterLogStore("nop", func(config.LoggingConfig) (logging.LogStore, error) {
		return logging.NopStore{}, nil
	})
	RegisterLogStore("jsonl", func(lc config.LoggingConfig) (logging.LogStore, error) {
		return logging.NewJSONLStore(lc.Path)
	})
	RegisterLogStore("rotating", func(lc config.LoggingConfig) (logging.LogStore, error) {
		return logging.NewRotatingJSONLStore(lc.Path, lc.MaxSizeMB, lc.MaxBackups, lc.MaxAgeDays)
	})
	RegisterLogStore("sqlite", func(lc config.LoggingConfig) (logging.LogStore, error) {
		return logging.NewSQLiteStore(lc.Path)
	})
}
