package main

import (
	"fmt"
	"runtime"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"atmos-ca/internal/sims/atmos"
)

func newSweepCmd() *cobra.Command {
	var (
		flags   worldFlags
		key     string
		values  []float64
		seeds   int
		steps   int
		workers int
	)
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Compare fire outcomes across values of one parameter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if len(values) == 0 {
				return fmt.Errorf("--values is required")
			}
			world, err := flags.build()
			if err != nil {
				return err
			}
			points, err := atmos.Sweep(cmd.Context(), world.Config(), key, values, seeds, steps, workers)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(tw, "%s\truns\tpeak_burning\tignitions\tmax_temp_k\tfinal_moles\n", key)
			for _, p := range points {
				fmt.Fprintf(tw, "%g\t%d\t%.1f\t%.1f\t%.1f\t%.1f\n",
					p.Value, len(p.Runs), p.MeanPeakBurning, p.MeanIgnitions, p.MeanMaxTemperature, p.MeanFinalMoles)
			}
			return tw.Flush()
		},
	}
	flags.bind(cmd.Flags())
	cmd.Flags().StringVar(&key, "param", "leak_moles", "float parameter to vary")
	cmd.Flags().Float64SliceVar(&values, "values", nil, "comma separated values to try")
	cmd.Flags().IntVar(&seeds, "seeds", 4, "seeds evaluated per value")
	cmd.Flags().IntVar(&steps, "steps", 200, "ticks simulated per run")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel runs")
	return cmd
}
