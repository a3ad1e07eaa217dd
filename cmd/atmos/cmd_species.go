package main

import (
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSpeciesCmd() *cobra.Command {
	var flags worldFlags
	cmd := &cobra.Command{
		Use:   "species",
		Short: "Print the species table as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg, err := flags.registry()
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(reg); err != nil {
				return err
			}
			return enc.Close()
		},
	}
	cmd.Flags().StringVar(&flags.speciesFile, "species-file", "", "YAML species table to validate and print")
	return cmd
}
