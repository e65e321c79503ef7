package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/jedib0t/go-pretty/v6/table"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/seismolab/etas/pkg/catalogio"
	"github.com/seismolab/etas/pkg/etas"
	"github.com/seismolab/etas/pkg/etasconfig"
	"github.com/seismolab/etas/pkg/style"
)

func init() {
	fitCmd.Flags().String("catalog", "", "catalog table file (required)")
	fitCmd.Flags().Bool("json", false, "print the estimate in json format")
	RootCmd.AddCommand(fitCmd)
}

var fitCmd = &cobra.Command{
	Use:   "fit",
	Short: "fit ETAS parameters to an observed catalog",

	// SilenceUsage is an option to silence usage when an error occurs.
	SilenceUsage: true,

	RunE: func(cmd *cobra.Command, args []string) error {
		configFile, err := cmd.Flags().GetString("config")
		if err != nil {
			return err
		}

		catalogFile, err := cmd.Flags().GetString("catalog")
		if err != nil {
			return err
		}
		if catalogFile == "" {
			return fmt.Errorf("--catalog is required")
		}

		printJsonFormat, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}

		config, err := etasconfig.LoadConfig(configFile)
		if err != nil {
			return err
		}
		if err := config.ValidateEstimation(); err != nil {
			return err
		}

		catalog, err := catalogio.ReadFile(catalogFile)
		if err != nil {
			return err
		}
		log.Infof("loaded %d events from %s", catalog.Len(), catalogFile)

		est := config.Estimation
		opts := est.Options()

		bar := pb.Full.Start(opts.NarrowingRounds)
		opts.RoundHook = func(round int, current etas.ModelParameters) {
			bar.Set("log", fmt.Sprintf("mu=%.5g k=%.5g alpha=%.5g c=%.5g p=%.5g",
				current.Mu, current.K, current.Alpha, current.C, current.P))
			bar.Increment()
		}
		bar.SetTemplateString(`{{ string . "log" | green}} | {{counters . }} {{bar . }} {{percent . }} {{etime . }}`)

		result, err := etas.Estimate(context.Background(), catalog, est.M0, est.Window, est.Start, opts)
		bar.Finish()
		if err != nil {
			return err
		}

		log.Infof("fit finished after %d outer iterations (%d omori steps)",
			result.OuterIterations, result.InnerIterations)

		if printJsonFormat {
			out, err := json.MarshalIndent(result.Params, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		}

		writeEstimateTable(result)
		return nil
	},
}

func writeEstimateTable(result *etas.EstimateResult) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(*style.NewDefaultTableStyle())
	t.AppendHeader(table.Row{"parameter", "estimate"})
	t.AppendRows([]table.Row{
		{"mu", result.Params.Mu},
		{"k", result.Params.K},
		{"alpha", result.Params.Alpha},
		{"c", result.Params.C},
		{"p", result.Params.P},
	})
	t.AppendFooter(table.Row{"outer iterations", result.OuterIterations})
	t.Render()
}
