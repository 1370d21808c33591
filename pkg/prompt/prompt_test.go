package prompt

import (
	"strings"
	"testing"

	"github.com/FrenchMajesty/geo-compliance/pkg/taxonomy"
	"github.com/stretchr/testify/assert"
)

func TestBuild_EmbedsFeature(t *testing.T) {
	b := NewBuilder(nil)

	got := b.Build("Age Verification System", "Implement age gates", "PRD text here")

	assert.Contains(t, got, "Title: Age Verification System\n")
	assert.Contains(t, got, "Description: Implement age gates\n")
	assert.Contains(t, got, "Additional Documents: PRD text here\n")
	assert.NotContains(t, got, NoSupportingText)
}

func TestBuild_NoSupportingText(t *testing.T) {
	b := NewBuilder(nil)

	for _, supporting := range []string{"", "   \n"} {
		got := b.Build("T", "D", supporting)
		assert.Contains(t, got, "Additional Documents: None provided\n")
	}
}

func TestBuild_ListsEveryRegulation(t *testing.T) {
	b := NewBuilder(nil)
	got := b.Build("T", "D", "")

	for _, reg := range taxonomy.DefaultRegulations().All() {
		assert.Contains(t, got, "- "+reg.Code+": "+reg.Name+"\n")
	}
}

func TestBuild_RequiresJSONKeysAndEnums(t *testing.T) {
	got := NewBuilder(nil).Build("T", "D", "")

	for _, key := range []string{`"needs_compliance"`, `"reasoning"`, `"related_regulations"`, `"confidence"`} {
		assert.Equal(t, 1, strings.Count(got, key), "key %s should appear once", key)
	}
	assert.Contains(t, got, `"Yes" | "No" | "Needs Review"`)
	assert.Contains(t, got, `"high" | "medium" | "low"`)
	assert.Contains(t, got, "Respond only with the JSON object")
	assert.Contains(t, got, "- Age verification or age-gating features\n")
}

func TestBuild_Deterministic(t *testing.T) {
	b := NewBuilder(nil)
	assert.Equal(t, b.Build("T", "D", "S"), b.Build("T", "D", "S"))
}
