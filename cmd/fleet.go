package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	coreequipment "github.com/routeopt/fleetsim/core/equipment"
	"github.com/routeopt/fleetsim/infra/equipment"
)

var profileAirline string

var fleetCmd = &cobra.Command{
	Use:   "fleet",
	Short: "Fleet related commands",
}

var fleetProfileCmd = &cobra.Command{
	Use:   "profile <code>...",
	Short: "Print the resolved profile of equipment codes",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFleetProfile,
}

func init() {
	fleetProfileCmd.Flags().StringVarP(&profileAirline, "airline", "a", "", "airline whose seat map is consulted first")
	fleetCmd.AddCommand(fleetProfileCmd)
	rootCmd.AddCommand(fleetCmd)
}

func runFleetProfile(cmd *cobra.Command, args []string) error {
	cfg, flush, err := loadConfig()
	if err != nil {
		return err
	}
	defer flush()
	catalog, err := equipment.Load(cfg.Equipment)
	if err != nil {
		return fmt.Errorf("equipment catalog: %w", err)
	}
	return printProfiles(cmd.OutOrStdout(), catalog.Resolver(cfg.Simulation.Defaults.DefaultTurnMinutes), catalog.AirlineSeats(profileAirline), args)
}

func printProfiles(w io.Writer, r *coreequipment.Resolver, seats coreequipment.SeatMap, codes []string) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CODE\tSEATS\tCATEGORY\tCRUISE_MPH\tRANGE_MI\tTURN_H\tSOURCE")
	for _, code := range codes {
		p := r.Resolve(code, seats)
		fmt.Fprintf(tw, "%s\t%d\t%s\t%.0f\t%.0f\t%.2f\t%s\n",
			code, p.SeatCapacity, p.Category, p.CruiseSpeedMPH, p.MaxRangeMiles, p.TurnTimeHours, p.Source)
	}
	return tw.Flush()
}
