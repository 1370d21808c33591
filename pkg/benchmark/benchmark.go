// Package benchmark measures classifier accuracy and latency against a labeled dataset.
package benchmark

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/FrenchMajesty/geo-compliance/pkg/batch"
	"github.com/FrenchMajesty/geo-compliance/pkg/tabular"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"github.com/google/uuid"
)

// MaxDatasetSize caps the dataset when no limit is given
const MaxDatasetSize = 500

// ColumnExpected holds the labeled verdict for each feature
const ColumnExpected = "Expected"

// DatasetItem is a feature with its expected verdict
type DatasetItem struct {
	Feature  types.Feature
	Expected types.Verdict
}

// Metrics summarizes one benchmark run
type Metrics struct {
	TotalDuration time.Duration
	TotalFeatures int
	Correct       int
	Accuracy      float64
	Overrides     int
	NeedsReview   int

	// Confusion counts results by expected verdict, then by actual verdict
	Confusion map[types.Verdict]map[types.Verdict]int

	Latency []time.Duration
}

// LoadDataset reads a labeled CSV with Title, Description, Expected and an optional Documents column
func LoadDataset(path string, limit int) ([]DatasetItem, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset file: %w", err)
	}
	if err := batch.Validate(table); err != nil {
		return nil, err
	}
	if !table.Has(ColumnExpected) {
		return nil, &batch.ValidationError{Missing: []string{ColumnExpected}}
	}

	dataset := make([]DatasetItem, 0, len(table.Rows))
	for _, row := range table.Rows {
		item := DatasetItem{
			Feature: types.Feature{
				Title:          strings.TrimSpace(row[batch.ColumnTitle]),
				Description:    strings.TrimSpace(row[batch.ColumnDescription]),
				SupportingText: strings.TrimSpace(row[batch.ColumnDocuments]),
			},
			Expected: types.Verdict(strings.TrimSpace(row[ColumnExpected])),
		}
		if item.Feature.Title == "" || item.Feature.Description == "" || !item.Expected.Valid() {
			continue // Skip unusable rows
		}
		dataset = append(dataset, item)
	}

	return trimDataset(dataset, limit), nil
}

// trimDataset trims the dataset to the specified limit
func trimDataset(dataset []DatasetItem, limit int) []DatasetItem {
	if limit <= 0 {
		limit = MaxDatasetSize
	}
	if len(dataset) > limit {
		return dataset[:limit]
	}
	return dataset
}

// Run classifies every item one at a time and scores the verdicts
func Run(ctx context.Context, clf batch.FeatureClassifier, dataset []DatasetItem) (Metrics, error) {
	metrics := Metrics{
		TotalFeatures: len(dataset),
		Confusion:     make(map[types.Verdict]map[types.Verdict]int),
	}

	start := time.Now()
	for _, item := range dataset {
		if err := ctx.Err(); err != nil {
			return metrics, fmt.Errorf("benchmark cancelled: %w", err)
		}

		itemStart := time.Now()
		verdict := clf.Classify(ctx, item.Feature)
		metrics.Latency = append(metrics.Latency, time.Since(itemStart))

		if metrics.Confusion[item.Expected] == nil {
			metrics.Confusion[item.Expected] = make(map[types.Verdict]int)
		}
		metrics.Confusion[item.Expected][verdict.NeedsCompliance]++

		if verdict.NeedsCompliance == item.Expected {
			metrics.Correct++
		}
		if verdict.Overridden {
			metrics.Overrides++
		}
		if verdict.NeedsCompliance == types.VerdictNeedsReview {
			metrics.NeedsReview++
		}
	}
	metrics.TotalDuration = time.Since(start)

	if metrics.TotalFeatures > 0 {
		metrics.Accuracy = float64(metrics.Correct) / float64(metrics.TotalFeatures)
	}
	return metrics, nil
}

// SaveMetrics writes metrics as JSON into dir and returns the file path
func SaveMetrics(dir string, metrics Metrics) (string, error) {
	timestamp := time.Now().Format("20060102_150405")
	random := uuid.New().String()[:8]
	filename := filepath.Join(dir, fmt.Sprintf("metrics_%s_%s.json", timestamp, random))

	jsonData, err := json.Marshal(metrics)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(filename, jsonData, 0644); err != nil {
		return "", err
	}

	return filename, nil
}
