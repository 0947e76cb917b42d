// Package cmd implements the fleetsim command line.
package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/routeopt/fleetsim/config"
	coremon "github.com/routeopt/fleetsim/core/monitoring"
	"github.com/routeopt/fleetsim/infra/logger"
	"github.com/routeopt/fleetsim/infra/monitoring"
)

var (
	cfgPath string
	envFile string
)

var rootCmd = &cobra.Command{
	Use:          "fleetsim",
	Short:        "Fleet assignment simulator",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the configuration")
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

// loadConfig reads the dotenv file and the configuration, then applies the
// log options and installs the error monitor. The returned func flushes
// pending monitoring events.
func loadConfig() (*config.Config, func(), error) {
	log := logger.New("cli")
	if err := godotenv.Load(envFile); err != nil {
		log.Debugf("env file %s not loaded: %v", envFile, err)
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Configure(cfg.Log); err != nil {
		return nil, nil, err
	}
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		log.Warnf("sentry disabled: %v", err)
		mon = coremon.NopMonitor{}
	}
	coremon.Init(mon)
	return cfg, func() { mon.Flush(2 * time.Second) }, nil
}
