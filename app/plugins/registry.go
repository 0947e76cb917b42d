package plugins

import (
	"fmt"
	"sort"
	"strings"

	"github.com/routeopt/fleetsim/config"
	"github.com/routeopt/fleetsim/core/simulation/logging"
)

// LogStoreFactory builds a run log store from its configuration.
type LogStoreFactory func(cfg config.LoggingConfig) (logging.LogStore, error)

var LogStores = map[string]LogStoreFactory{}

func RegisterLogStore(name string, f LogStoreFactory) { LogStores[name] = f }

// NewLogStore builds the store selected by cfg.Backend.
func NewLogStore(cfg config.LoggingConfig) (logging.LogStore, error) {
	f, ok := LogStores[cfg.Backend]
	if !ok {
		names := make([]string, 0, len(LogStores))
		for n := range LogStores {
			names = append(names, n)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("unknown log store %q (known: %s)", cfg.Backend, strings.Join(names, ", "))
	}
	return f(cfg)
}
