package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"github.com/spf13/cobra"
)

var feature types.Feature

var classifyCmd = &cobra.Command{
	Use:   "classify",
	Short: "Classify a single feature and print the verdict as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		f := types.Feature{
			Title:          strings.TrimSpace(feature.Title),
			Description:    strings.TrimSpace(feature.Description),
			SupportingText: strings.TrimSpace(feature.SupportingText),
		}
		if f.Title == "" || f.Description == "" {
			return errors.New("title and description are required")
		}

		clf, err := newClassifier()
		if err != nil {
			return err
		}

		verdict := clf.Classify(cmd.Context(), f)

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		if err := enc.Encode(verdict); err != nil {
			return fmt.Errorf("failed to encode verdict: %w", err)
		}
		return nil
	},
}

func init() {
	classifyCmd.Flags().StringVar(&feature.Title, "title", "", "feature title")
	classifyCmd.Flags().StringVar(&feature.Description, "description", "", "feature description")
	classifyCmd.Flags().StringVar(&feature.SupportingText, "documents", "", "supporting text or a path to a PDF")
	_ = classifyCmd.MarkFlagRequired("title")
	_ = classifyCmd.MarkFlagRequired("description")
}
