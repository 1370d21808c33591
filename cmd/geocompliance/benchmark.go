package main

import (
	"fmt"

	"github.com/FrenchMajesty/geo-compliance/pkg/benchmark"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	benchmarkLimit  int
	benchmarkOutDir string
)

var benchmarkCmd = &cobra.Command{
	Use:   "benchmark <labeled.csv>",
	Short: "Score the classifier against features with known verdicts",
	Long: `Reads a CSV with Title, Description and Expected columns (Expected is one of
Yes, No, Needs Review), classifies each feature and reports accuracy. Metrics
are saved as JSON in --out-dir.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dataset, err := benchmark.LoadDataset(args[0], benchmarkLimit)
		if err != nil {
			return err
		}

		clf, err := newClassifier()
		if err != nil {
			return err
		}

		metrics, err := benchmark.Run(cmd.Context(), clf, dataset)
		if err != nil {
			return err
		}

		path, err := benchmark.SaveMetrics(benchmarkOutDir, metrics)
		if err != nil {
			return fmt.Errorf("failed to save metrics: %w", err)
		}
		log.Info("metrics saved", zap.String("path", path))

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Features: %d\n", metrics.TotalFeatures)
		fmt.Fprintf(out, "Accuracy: %.1f%% (%d correct)\n", metrics.Accuracy*100, metrics.Correct)
		fmt.Fprintf(out, "Overrides: %d\n", metrics.Overrides)
		fmt.Fprintf(out, "Needs Review: %d\n", metrics.NeedsReview)
		fmt.Fprintf(out, "Duration: %s\n", metrics.TotalDuration)
		return nil
	},
}

func init() {
	benchmarkCmd.Flags().IntVar(&benchmarkLimit, "limit", 0, fmt.Sprintf("max features to score (default %d)", benchmark.MaxDatasetSize))
	benchmarkCmd.Flags().StringVar(&benchmarkOutDir, "out-dir", ".", "directory for the metrics JSON")
}
