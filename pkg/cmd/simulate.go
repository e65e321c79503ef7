package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seismolab/etas/pkg/catalogio"
	"github.com/seismolab/etas/pkg/etas"
	"github.com/seismolab/etas/pkg/etasconfig"
)

func init() {
	simulateCmd.Flags().String("output", "", "write the catalog table to this file instead of stdout")
	simulateCmd.Flags().Uint64("seed", 0, "override the scenario random seed")
	RootCmd.AddCommand(simulateCmd)
}

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "generate a synthetic ETAS catalog",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}

		output, err := cmd.Flags().GetString("output")
		if err != nil {
			return err
		}

		config, err := etasconfig.LoadConfig(configFile)
		if err != nil {
			return err
		}
		if err := config.ValidateSimulation(); err != nil {
			return err
		}

		sim := config.Simulation
		seed := sim.Seed
		if cmd.Flags().Changed("seed") {
			if seed, err = cmd.Flags().GetUint64("seed"); err != nil {
				return err
			}
		}

		result, err := etas.Simulate(
			sim.Parameters,
			sim.Magnitudes,
			sim.BackgroundWindow,
			sim.ReturnWindow,
			etas.NewRand(seed),
		)
		if err != nil {
			return err
		}

		log.Infof("simulated %d events (%d background, %d generations), branching ratio %.4f",
			result.Catalog.Len(), result.Background, result.Generations, result.BranchingRatio)

		if output == "" {
			return catalogio.Write(os.Stdout, result.Catalog)
		}

		if err := catalogio.WriteFile(output, result.Catalog); err != nil {
			return err
		}
		log.Infof("catalog written to %s", output)
		return nil
	},
}
