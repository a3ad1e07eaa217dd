package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"atmos-ca/internal/gas"
)

func newProbeCmd() *cobra.Command {
	var (
		flags worldFlags
		x, y  int
		steps int
	)
	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Step the station and print one cell's gas each tick",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			world, err := flags.build()
			if err != nil {
				return err
			}
			m := world.Mixture(x, y)
			if m == nil {
				return fmt.Errorf("cell (%d,%d) outside %dx%d station", x, y, world.Size().W, world.Size().H)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			header := []string{"tick", "temp_k", "pressure", "burning"}
			for _, s := range gas.AllSpecies() {
				header = append(header, s.String())
			}
			fmt.Fprintln(tw, strings.Join(header, "\t"))
			printRow := func() {
				row := []string{
					fmt.Sprint(world.Tick()),
					fmt.Sprintf("%.2f", m.Temperature()),
					fmt.Sprintf("%.2f", m.Pressure()),
					fmt.Sprint(m.Burning()),
				}
				for _, s := range gas.AllSpecies() {
					row = append(row, fmt.Sprintf("%.4f", m.Moles(s)))
				}
				fmt.Fprintln(tw, strings.Join(row, "\t"))
			}
			printRow()
			for i := 0; i < steps; i++ {
				world.Step()
				printRow()
			}
			return tw.Flush()
		},
	}
	flags.bind(cmd.Flags())
	cmd.Flags().IntVar(&x, "x", 1, "cell column")
	cmd.Flags().IntVar(&y, "y", 1, "cell row")
	cmd.Flags().IntVar(&steps, "steps", 10, "ticks to simulate")
	return cmd
}
