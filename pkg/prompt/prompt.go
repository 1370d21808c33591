package prompt

import (
	"fmt"
	"strings"

	"github.com/FrenchMajesty/geo-compliance/pkg/taxonomy"
)

// SystemInstruction is sent as the system message on every classification call
const SystemInstruction = "You are an expert in digital compliance and regulations. Analyze features to determine if they require geo-specific compliance logic."

// NoSupportingText marks a feature that came without supporting documents
const NoSupportingText = "None provided"

// complianceProneFeatures lists the kinds of features that usually need geo-compliance logic
var complianceProneFeatures = []string{
	"Age verification or age-gating features",
	"Location-based content blocking or restrictions",
	"Data localization requirements",
	"Content moderation systems",
	"User-generated content platforms",
	"Advertising or monetization features",
	"Social media features",
	"Live streaming capabilities",
	"E-commerce or payment features",
}

// Builder renders the user prompt for the model classifier
type Builder struct {
	regulations *taxonomy.Regulations
}

// NewBuilder creates a prompt builder. If regulations is nil, uses the default list.
func NewBuilder(regulations *taxonomy.Regulations) *Builder {
	if regulations == nil {
		regulations = taxonomy.DefaultRegulations()
	}
	return &Builder{regulations: regulations}
}

// Build renders the analysis prompt for a single feature
func (b *Builder) Build(title, description, supportingText string) string {
	if strings.TrimSpace(supportingText) == "" {
		supportingText = NoSupportingText
	}

	var sb strings.Builder
	sb.WriteString("Analyze the following feature to determine if it requires geo-specific compliance logic:\n\n")
	fmt.Fprintf(&sb, "Title: %s\n", title)
	fmt.Fprintf(&sb, "Description: %s\n", description)
	fmt.Fprintf(&sb, "Additional Documents: %s\n\n", supportingText)

	sb.WriteString("Respond with a JSON object containing exactly these keys:\n")
	sb.WriteString("{\n")
	sb.WriteString(`    "needs_compliance": "Yes" | "No" | "Needs Review",` + "\n")
	sb.WriteString(`    "reasoning": "Clear explanation of your decision",` + "\n")
	sb.WriteString(`    "related_regulations": ["List of relevant regulation codes"],` + "\n")
	sb.WriteString(`    "confidence": "high" | "medium" | "low"` + "\n")
	sb.WriteString("}\n\n")

	sb.WriteString("Consider the following regulations (use the codes on the left):\n")
	for _, reg := range b.regulations.All() {
		fmt.Fprintf(&sb, "- %s: %s\n", reg.Code, reg.Name)
	}

	sb.WriteString("\nFeatures that typically need geo-compliance logic include:\n")
	for _, kind := range complianceProneFeatures {
		fmt.Fprintf(&sb, "- %s\n", kind)
	}

	sb.WriteString("\nRespond only with the JSON object and nothing else.\n")
	return sb.String()
}
