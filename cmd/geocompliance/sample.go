package main

import (
	"fmt"

	"github.com/FrenchMajesty/geo-compliance/pkg/batch"
	"github.com/FrenchMajesty/geo-compliance/pkg/tabular"
	"github.com/spf13/cobra"
)

var sampleOutput string

var createSampleCmd = &cobra.Command{
	Use:   "create-sample",
	Short: "Write a CSV of example features",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		table := batch.SampleTable()
		if err := tabular.WriteFile(sampleOutput, table); err != nil {
			return fmt.Errorf("failed to create sample file: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Sample CSV file created: %q\n", sampleOutput)
		fmt.Fprintf(out, "Contains %d example features\n", len(table.Rows))
		fmt.Fprintf(out, "\nAnalyze it with:\n   geocompliance analyze %s\n", sampleOutput)
		return nil
	},
}

func init() {
	createSampleCmd.Flags().StringVarP(&sampleOutput, "output", "o", "sample_features.csv", "output CSV path")
}
