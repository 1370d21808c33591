// Package batch classifies every feature of an input table and renders the results table.
package batch

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/FrenchMajesty/geo-compliance/pkg/tabular"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Input column names
const (
	ColumnTitle       = "Title"
	ColumnDescription = "Description"
	ColumnDocuments   = "Documents"
)

// RequiredColumns must all be present in an input table
var RequiredColumns = []string{ColumnTitle, ColumnDescription}

// ErrMissingColumns is wrapped by every ValidationError
var ErrMissingColumns = errors.New("missing required columns")

// ValidationError reports every required column absent from the input table
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", ErrMissingColumns, strings.Join(e.Missing, ", "))
}

func (e *ValidationError) Unwrap() error {
	return ErrMissingColumns
}

// FeatureClassifier produces the final verdict for a single feature
type FeatureClassifier interface {
	Classify(ctx context.Context, feature types.Feature) types.FinalVerdict
}

// Config holds configuration for the Runner
type Config struct {
	Classifier FeatureClassifier

	// Workers bounds how many rows are classified at once. If 0, rows run one at a time.
	Workers int

	Logger *zap.Logger
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.Workers <= 0 {
		c.Workers = 1
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}

// Runner drives a table of features through a FeatureClassifier
type Runner struct {
	classifier FeatureClassifier
	workers    int
	logger     *zap.Logger
}

// NewRunner creates a new Runner with the given configuration
func NewRunner(cfg Config) (*Runner, error) {
	if cfg.Classifier == nil {
		return nil, fmt.Errorf("batch runner requires a classifier")
	}
	cfg.applyDefaults()

	return &Runner{
		classifier: cfg.Classifier,
		workers:    cfg.Workers,
		logger:     cfg.Logger,
	}, nil
}

// Validate checks that every required column is present
func Validate(table *tabular.Table) error {
	var missing []string
	for _, column := range RequiredColumns {
		if !table.Has(column) {
			missing = append(missing, column)
		}
	}
	if len(missing) > 0 {
		return &ValidationError{Missing: missing}
	}
	return nil
}

// Run classifies every usable row of table. Results follow input order; rows with an
// empty title or description are skipped. Only validation and cancellation are errors.
func (r *Runner) Run(ctx context.Context, table *tabular.Table) ([]types.FinalVerdict, error) {
	if err := Validate(table); err != nil {
		return nil, err
	}

	logger := r.logger.With(zap.String("run_id", uuid.New().String()[:8]))
	features := collectFeatures(table, logger)
	results := make([]types.FinalVerdict, len(features))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(r.workers)

	for i, f := range features {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			logger.Info("analyzing feature",
				zap.Int("row", f.row),
				zap.Int("total", len(table.Rows)),
				zap.String("title", f.feature.Title),
			)
			results[i] = r.classifier.Classify(gctx, f.feature)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("batch cancelled: %w", err)
	}

	logger.Info("batch complete", zap.Int("classified", len(results)), zap.Int("skipped", len(table.Rows)-len(results)))
	return results, nil
}

// Analyze reads the features at inputPath, classifies them and writes the results
// table to outputPath when it is non-empty. The results table is always returned.
func (r *Runner) Analyze(ctx context.Context, inputPath, outputPath string) (*tabular.Table, error) {
	input, err := tabular.ReadFile(inputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read features: %w", err)
	}

	results, err := r.Run(ctx, input)
	if err != nil {
		return nil, err
	}

	output := ToTable(results)
	if outputPath != "" {
		if err := tabular.WriteFile(outputPath, output); err != nil {
			return nil, fmt.Errorf("failed to write results: %w", err)
		}
		r.logger.Info("results saved", zap.String("path", outputPath))
	}

	return output, nil
}

type indexedFeature struct {
	row     int
	feature types.Feature
}

func collectFeatures(table *tabular.Table, logger *zap.Logger) []indexedFeature {
	features := make([]indexedFeature, 0, len(table.Rows))
	for i, row := range table.Rows {
		title := strings.TrimSpace(row[ColumnTitle])
		description := strings.TrimSpace(row[ColumnDescription])
		if title == "" || description == "" {
			logger.Warn("skipping row: missing title or description", zap.Int("row", i+1))
			continue
		}

		features = append(features, indexedFeature{
			row: i + 1,
			feature: types.Feature{
				Title:          title,
				Description:    description,
				SupportingText: strings.TrimSpace(row[ColumnDocuments]),
			},
		})
	}
	return features
}
