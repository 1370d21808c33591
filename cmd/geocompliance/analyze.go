package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/FrenchMajesty/geo-compliance/pkg/batch"
	"github.com/FrenchMajesty/geo-compliance/pkg/tabular"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var analyzeOutput string

var analyzeCmd = &cobra.Command{
	Use:   "analyze <input.csv>",
	Short: "Analyze every feature in a CSV file",
	Long: `Reads a CSV with Title and Description columns (and an optional Documents
column holding inline text or a path to a PDF), classifies each feature and
prints a summary. Results are written to --output when given, otherwise
printed as CSV.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "output CSV path")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	input := args[0]
	if _, err := os.Stat(input); err != nil {
		return fmt.Errorf("input file %q not found", input)
	}

	clf, err := newClassifier()
	if err != nil {
		return err
	}
	runner, err := batch.NewRunner(batch.Config{Classifier: clf, Workers: cfg.Batch.Workers, Logger: log})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Analyzing features from %q...\n", input)

	results, err := runner.Analyze(cmd.Context(), input, analyzeOutput)
	if err != nil {
		return err
	}

	s := batch.Summarize(results)
	fmt.Fprintln(out, "\nAnalysis Summary:")
	fmt.Fprintf(out, "Total features analyzed: %d\n", s.Total)
	fmt.Fprintf(out, "Features needing compliance: %d\n", s.Yes)
	fmt.Fprintf(out, "Features not needing compliance: %d\n", s.No)
	fmt.Fprintf(out, "Features needing review: %d\n", s.NeedsReview)

	if analyzeOutput != "" {
		fmt.Fprintf(out, "\nResults saved to %q\n", analyzeOutput)
	} else {
		fmt.Fprintln(out, "\nResults:")
		if err := tabular.Write(out, results); err != nil {
			return err
		}
	}

	if verbose {
		printDetails(cmd, results)
	}
	return nil
}

func printDetails(cmd *cobra.Command, results *tabular.Table) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "\nDetailed Results:")
	for _, row := range results.Rows {
		fmt.Fprintf(out, "\n%s\n", row[batch.ColumnTitle])
		fmt.Fprintf(out, "   Needs Compliance: %s\n", row[batch.ColumnNeedsCompliance])
		fmt.Fprintf(out, "   Reasoning: %s\n", row[batch.ColumnReasoning])

		var regs []string
		for _, r := range gjson.Parse(row[batch.ColumnRelatedRegulations]).Array() {
			regs = append(regs, r.String())
		}
		if len(regs) > 0 {
			fmt.Fprintf(out, "   Related Regulations: %s\n", strings.Join(regs, ", "))
		}
		if kw := row[batch.ColumnKeywords]; kw != "" && kw != "{}" {
			fmt.Fprintf(out, "   Keywords Found: %s\n", kw)
		}
	}
}
