package batch

import (
	"encoding/json"

	"github.com/FrenchMajesty/geo-compliance/pkg/tabular"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
)

// Output column names, in write order
const (
	ColumnNeedsCompliance    = "Needs Geo-Compliance Logic?"
	ColumnReasoning          = "Reasoning"
	ColumnRelatedRegulations = "Related Regulations"
	ColumnKeywords           = "Rule-Based Keywords"
	ColumnConfidence         = "Confidence"
)

// OutputColumns is the fixed header of a results table
var OutputColumns = []string{
	ColumnTitle,
	ColumnNeedsCompliance,
	ColumnReasoning,
	ColumnRelatedRegulations,
	ColumnKeywords,
	ColumnConfidence,
}

// ToTable renders verdicts as a results table. Regulations are a JSON array and
// keywords a JSON object in taxonomy order.
func ToTable(results []types.FinalVerdict) *tabular.Table {
	table := tabular.New(OutputColumns...)
	for _, v := range results {
		table.Append(map[string]string{
			ColumnTitle:              v.Title,
			ColumnNeedsCompliance:    string(v.NeedsCompliance),
			ColumnReasoning:          v.Reasoning,
			ColumnRelatedRegulations: encodeList(v.RelatedRegulations),
			ColumnKeywords:           v.FoundKeywords.String(),
			ColumnConfidence:         string(v.Confidence),
		})
	}
	return table
}

func encodeList(items []string) string {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// Summary counts results per verdict
type Summary struct {
	Total       int `json:"total"`
	Yes         int `json:"yes"`
	No          int `json:"no"`
	NeedsReview int `json:"needs_review"`
}

// Summarize counts the verdicts of a results table
func Summarize(table *tabular.Table) Summary {
	s := Summary{Total: len(table.Rows)}
	for _, row := range table.Rows {
		switch types.Verdict(row[ColumnNeedsCompliance]) {
		case types.VerdictYes:
			s.Yes++
		case types.VerdictNo:
			s.No++
		case types.VerdictNeedsReview:
			s.NeedsReview++
		}
	}
	return s
}
