package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/FrenchMajesty/geo-compliance/internal/config"
	"github.com/FrenchMajesty/geo-compliance/internal/logger"
	"github.com/FrenchMajesty/geo-compliance/pkg/adapters"
	"github.com/FrenchMajesty/geo-compliance/pkg/classifier"
	"github.com/FrenchMajesty/geo-compliance/pkg/extract"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Global flags
	configPath string
	apiKey     string
	verbose    bool

	cfg *config.Config
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "geocompliance",
	Short: "Flag product features that need geo-specific compliance logic",
	Long: `geocompliance reads feature descriptions and decides whether each one needs
geo-specific compliance logic. A keyword pass over a fixed taxonomy and a
generative model each give an opinion; strong keyword evidence overrides a
negative model answer.

Examples:
  geocompliance analyze features.csv
  geocompliance analyze features.csv -o results.csv
  geocompliance classify --title "Teen Mode" --description "Limits for minors"
  geocompliance create-sample
  geocompliance serve --addr :8080`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		level := cfg.Log.Level
		if verbose {
			level = "debug"
		}
		log, err = logger.New(level, cfg.Log.Format)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "LLM provider API key (defaults to the provider's environment variable)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(analyzeCmd, classifyCmd, createSampleCmd, serveCmd, benchmarkCmd)
}

// newClassifier wires the configured provider, PDF extraction and taxonomies into a Classifier
func newClassifier() (*classifier.Classifier, error) {
	opts := cfg.AdapterOptions()
	if apiKey != "" {
		opts.APIKey = apiKey
	}
	opts.Logger = log

	completer, err := adapters.New(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	return classifier.NewClassifier(classifier.Config{
		Completer:   completer,
		Extractor:   extract.NewPDFExtractor(log),
		Temperature: &cfg.LLM.Temperature,
		MaxTokens:   cfg.LLM.MaxTokens,
		Logger:      log,
	})
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
