package classifier_test

import (
	"strings"
	"testing"

	"github.com/FrenchMajesty/geo-compliance/pkg/classifier"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"github.com/google/go-cmp/cmp"
)

var ageGateKeywords = types.FoundKeywords{
	{Category: "age_gate", Phrases: []string{"age gate", "under 18"}},
}

func strongRule() types.RuleVerdict {
	return types.RuleVerdict{NeedsCompliance: true, FoundKeywords: ageGateKeywords, Confidence: types.ConfidenceHigh}
}

func weakRule() types.RuleVerdict {
	return types.RuleVerdict{
		FoundKeywords: types.FoundKeywords{{Category: "ecommerce", Phrases: []string{"payments"}}},
		Confidence:    types.ConfidenceLow,
	}
}

func modelSaid(v types.Verdict) types.ModelVerdict {
	return types.ModelVerdict{
		NeedsCompliance:    v,
		Reasoning:          "model reasoning",
		RelatedRegulations: []string{"COPPA"},
		Confidence:         types.ConfidenceMedium,
	}
}

func TestReconcile_DecisionTable(t *testing.T) {
	tests := []struct {
		name           string
		rule           types.RuleVerdict
		model          types.ModelVerdict
		wantVerdict    types.Verdict
		wantOverridden bool
	}{
		{"strong rule promotes No", strongRule(), modelSaid(types.VerdictNo), types.VerdictYes, true},
		{"strong rule keeps Yes", strongRule(), modelSaid(types.VerdictYes), types.VerdictYes, false},
		{"strong rule never downgrades Needs Review", strongRule(), modelSaid(types.VerdictNeedsReview), types.VerdictNeedsReview, false},
		{"weak rule keeps No", weakRule(), modelSaid(types.VerdictNo), types.VerdictNo, false},
		{"weak rule keeps Yes", weakRule(), modelSaid(types.VerdictYes), types.VerdictYes, false},
		{"weak rule keeps Needs Review", weakRule(), modelSaid(types.VerdictNeedsReview), types.VerdictNeedsReview, false},
		{"out-of-range model value passes through", strongRule(), modelSaid("Maybe"), "Maybe", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.Reconcile("Feature", tt.rule, tt.model)

			if got.NeedsCompliance != tt.wantVerdict {
				t.Errorf("Expected verdict %q, got %q", tt.wantVerdict, got.NeedsCompliance)
			}
			if got.Overridden != tt.wantOverridden {
				t.Errorf("Expected overridden=%v, got %v", tt.wantOverridden, got.Overridden)
			}
			if !tt.wantOverridden && got.Reasoning != tt.model.Reasoning {
				t.Errorf("Expected model reasoning verbatim, got %q", got.Reasoning)
			}
			if got.Confidence != tt.model.Confidence {
				t.Errorf("Expected model confidence %q, got %q", tt.model.Confidence, got.Confidence)
			}
		})
	}
}

func TestReconcile_OverrideNoteNamesKeywords(t *testing.T) {
	got := classifier.Reconcile("Teen Mode", strongRule(), modelSaid(types.VerdictNo))

	want := `model reasoning (Overridden by rule-based analysis: found keywords {"age_gate":["age gate","under 18"]})`
	if got.Reasoning != want {
		t.Errorf("Unexpected reasoning:\n got: %s\nwant: %s", got.Reasoning, want)
	}
	if !strings.Contains(got.Reasoning, "under 18") {
		t.Error("Expected override note to contain the matched keywords")
	}
}

func TestReconcile_CarriesFields(t *testing.T) {
	rule := strongRule()
	got := classifier.Reconcile("Teen Mode", rule, modelSaid(types.VerdictYes))

	want := types.FinalVerdict{
		Title:              "Teen Mode",
		NeedsCompliance:    types.VerdictYes,
		Reasoning:          "model reasoning",
		RelatedRegulations: []string{"COPPA"},
		FoundKeywords:      rule.FoundKeywords,
		Confidence:         types.ConfidenceMedium,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Reconcile() mismatch (-want +got):\n%s", diff)
	}
}

func TestReconcile_NilRegulationsBecomeEmpty(t *testing.T) {
	model := modelSaid(types.VerdictNo)
	model.RelatedRegulations = nil

	got := classifier.Reconcile("Calc", weakRule(), model)
	if got.RelatedRegulations == nil || len(got.RelatedRegulations) != 0 {
		t.Errorf("Expected empty non-nil regulations, got %#v", got.RelatedRegulations)
	}
}

func TestReconcile_Idempotent(t *testing.T) {
	rule, model := strongRule(), modelSaid(types.VerdictNo)

	first := classifier.Reconcile("Feature", rule, model)
	for i := 0; i < 5; i++ {
		if diff := cmp.Diff(first, classifier.Reconcile("Feature", rule, model)); diff != "" {
			t.Fatalf("Reconcile is not deterministic (-first +later):\n%s", diff)
		}
	}
}
