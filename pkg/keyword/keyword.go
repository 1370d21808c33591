package keyword

import (
	"strings"

	"github.com/FrenchMajesty/geo-compliance/pkg/taxonomy"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
)

// Classifier flags features by substring-matching a fixed keyword taxonomy
type Classifier struct {
	categories *taxonomy.Categories
}

// NewClassifier creates a keyword classifier over categories. If nil, uses the default taxonomy.
func NewClassifier(categories *taxonomy.Categories) *Classifier {
	if categories == nil {
		categories = taxonomy.DefaultCategories()
	}
	return &Classifier{categories: categories}
}

// Classify matches the feature text against every category in taxonomy order.
// The verdict needs compliance iff a high-priority category has a match.
func (c *Classifier) Classify(title, description, supportingText string) types.RuleVerdict {
	combined := strings.ToLower(title + " " + description + " " + supportingText)

	var found types.FoundKeywords
	needsCompliance := false

	c.categories.Each(func(cat taxonomy.Category) {
		var matched []string
		for _, phrase := range cat.Phrases {
			if strings.Contains(combined, strings.ToLower(phrase)) {
				matched = append(matched, phrase)
			}
		}
		if len(matched) == 0 {
			return
		}
		found = append(found, types.CategoryMatch{Category: cat.Name, Phrases: matched})
		if cat.HighPriority {
			needsCompliance = true
		}
	})

	confidence := types.ConfidenceLow
	if needsCompliance {
		confidence = types.ConfidenceHigh
	}

	return types.RuleVerdict{
		NeedsCompliance: needsCompliance,
		FoundKeywords:   found,
		Confidence:      confidence,
	}
}
