package classifier

import (
	"fmt"

	"github.com/FrenchMajesty/geo-compliance/pkg/types"
)

type action int

const (
	keepModel action = iota
	promoteToYes
)

type decisionKey struct {
	strongRule bool
	model      types.Verdict
}

// decisions lists every (rule, model) pair that departs from the model's verdict.
// A strong rule is one that found a high-priority category.
var decisions = map[decisionKey]action{
	{strongRule: true, model: types.VerdictNo}: promoteToYes,
}

// Reconcile merges the keyword and model opinions. Keyword evidence for a high-priority
// category promotes a model "No" to "Yes"; every other combination keeps the model verdict.
func Reconcile(title string, rule types.RuleVerdict, model types.ModelVerdict) types.FinalVerdict {
	regulations := model.RelatedRegulations
	if regulations == nil {
		regulations = []string{}
	}

	final := types.FinalVerdict{
		Title:              title,
		NeedsCompliance:    model.NeedsCompliance,
		Reasoning:          model.Reasoning,
		RelatedRegulations: regulations,
		FoundKeywords:      rule.FoundKeywords,
		Confidence:         model.Confidence,
	}

	key := decisionKey{
		strongRule: rule.NeedsCompliance && rule.Confidence == types.ConfidenceHigh,
		model:      model.NeedsCompliance,
	}

	switch decisions[key] {
	case promoteToYes:
		final.NeedsCompliance = types.VerdictYes
		final.Reasoning += fmt.Sprintf(" (Overridden by rule-based analysis: found keywords %s)", rule.FoundKeywords)
		final.Overridden = true
	case keepModel:
	}

	return final
}
