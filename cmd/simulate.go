package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/routeopt/fleetsim/config"
	"github.com/routeopt/fleetsim/core/factory"
	"github.com/routeopt/fleetsim/core/routes"
	"github.com/routeopt/fleetsim/core/schedule"
	"github.com/routeopt/fleetsim/core/simulation"
	"github.com/routeopt/fleetsim/infra/equipment"
	"github.com/routeopt/fleetsim/infra/logger"
	_ "github.com/routeopt/fleetsim/infra/routes"
	"github.com/routeopt/fleetsim/pkg/export"
)

var simulateOpts struct {
	request  string
	routes   string
	format   string
	out      string
	tailLogs bool
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run one simulation offline and export the result",
	RunE:  runSimulate,
}

func init() {
	f := simulateCmd.Flags()
	f.StringVarP(&simulateOpts.request, "request", "r", "", "request file (JSON or YAML)")
	f.StringVar(&simulateOpts.routes, "routes", "", "route CSV file overriding the configured source")
	f.StringVarP(&simulateOpts.format, "format", "f", "json", "output format: json, csv or html")
	f.StringVarP(&simulateOpts.out, "out", "o", "", "output file (default stdout)")
	f.BoolVar(&simulateOpts.tailLogs, "tail-logs", false, "with csv, write the per-tail log instead of assignments")
	_ = simulateCmd.MarkFlagRequired("request")
	rootCmd.AddCommand(simulateCmd)
}

func runSimulate(cmd *cobra.Command, args []string) error {
	format, err := export.ParseFormat(simulateOpts.format)
	if err != nil {
		return err
	}
	cfg, flush, err := loadConfig()
	if err != nil {
		return err
	}
	defer flush()

	req, err := readRequest(simulateOpts.request, cfg.Simulation.Defaults)
	if err != nil {
		return err
	}
	sim, closeFn, err := offlineSimulator(cfg, simulateOpts.routes)
	if err != nil {
		return err
	}
	defer closeFn()

	ctx, cancel := context.WithTimeout(cmd.Context(), cfg.Simulation.Timeout())
	defer cancel()
	run, err := sim.Run(ctx, req)
	if err != nil {
		return err
	}
	logger.New("cli").Infof("run %s: %d/%d flights scheduled",
		run.ID, run.Result.Summary.ScheduledFlights, run.Result.Summary.TotalFlights)

	w := cmd.OutOrStdout()
	if simulateOpts.out != "" {
		f, err := os.Create(simulateOpts.out)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeResult(w, format, simulateOpts.tailLogs, run)
}

func writeResult(w io.Writer, format export.Format, tailLogs bool, run simulation.Run) error {
	switch {
	case format == export.FormatJSON:
		return export.WriteJSON(w, run.Result)
	case format == export.FormatHTML:
		return export.WriteUtilizationHTML(w, run.Result)
	case tailLogs:
		return export.WriteTailLogsCSV(w, run.Result.TailLogs)
	default:
		return export.WriteAssignmentsCSV(w, run.Result.Assignments, run.Result.Unassigned)
	}
}

// readRequest decodes a request file over defaults. Files ending in .yaml or
// .yml are read as YAML, anything else as JSON.
func readRequest(path string, defaults schedule.Params) (simulation.Request, error) {
	req := simulation.Request{Params: defaults}
	data, err := os.ReadFile(path)
	if err != nil {
		return req, fmt.Errorf("read request: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &req)
	default:
		err = json.Unmarshal(data, &req)
	}
	if err != nil {
		return req, fmt.Errorf("decode request %s: %w", path, err)
	}
	return req, nil
}

// offlineSimulator builds a simulator without metrics, run log or MQTT.
// A non-empty csvPath replaces the configured route source.
func offlineSimulator(cfg *config.Config, csvPath string) (*simulation.Simulator, func(), error) {
	catalog, err := equipment.Load(cfg.Equipment)
	if err != nil {
		return nil, nil, fmt.Errorf("equipment catalog: %w", err)
	}
	srcCfg := cfg.Routes
	if csvPath != "" {
		srcCfg = factory.ModuleConfig{Type: "csv", Conf: map[string]any{"path": csvPath}}
	}
	src, err := routes.NewSource(srcCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("route source: %w", err)
	}
	closeFn := func() {
		if c, ok := src.(io.Closer); ok {
			_ = c.Close()
		}
	}
	sim, err := simulation.NewSimulator(catalog.Resolver(cfg.Simulation.Defaults.DefaultTurnMinutes), src, nil, nil, logger.New("simulator"))
	if err != nil {
		closeFn()
		return nil, nil, err
	}
	sim.SetSeatMaps(catalog)
	sim.SetTimeout(cfg.Simulation.Timeout())
	return sim, closeFn, nil
}
