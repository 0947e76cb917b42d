package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/routeopt/fleetsim/core/factory"
	"github.com/routeopt/fleetsim/core/metrics"
	"github.com/routeopt/fleetsim/infra/equipment"
	"github.com/routeopt/fleetsim/infra/logger"
	"github.com/routeopt/fleetsim/infra/mqtt"
)

type Config struct {
	Server     ServerConfig         `json:"server"`
	Simulation SimulationConfig     `json:"simulation"`
	Equipment  equipment.Config     `json:"equipment"`
	Routes     factory.ModuleConfig `json:"routes"`
	Metrics    metrics.Config       `json:"metrics"`
	RunLog     LoggingConfig        `json:"run_log"`
	MQTT       mqtt.Config          `json:"mqtt"`
	Sentry     SentryConfig         `json:"sentry"`
	Log        logger.Options       `json:"log"`
}

// Load reads the configuration file at path and applies K_ prefixed
// environment overrides (K_SERVER__ADDR sets server.addr). An empty path
// loads environment overrides only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		ext := strings.ToLower(filepath.Ext(path))
		var parser koanf.Parser
		switch ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("K_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "k_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// SetDefaults fills every section's unset fields.
func (c *Config) SetDefaults() {
	c.Server.SetDefaults()
	c.Simulation.SetDefaults()
	c.Equipment.SetDefaults()
	c.RunLog.SetDefaults()
	c.MQTT.SetDefaults()
	c.Sentry.SetDefaults()
	if c.Routes.Type == "" {
		c.Routes = factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": "data/routes.csv"}}
	}
}

// Validate checks every section.
func (c Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return err
	}
	if err := c.Simulation.Validate(); err != nil {
		return err
	}
	if err := c.Equipment.Validate(); err != nil {
		return err
	}
	if err := c.RunLog.Validate(); err != nil {
		return err
	}
	if err := c.MQTT.Validate(); err != nil {
		return err
	}
	if err := c.Sentry.Validate(); err != nil {
		return err
	}
	return c.Metrics.Validate()
}
