package classifier

import (
	"context"
	"fmt"

	"github.com/FrenchMajesty/geo-compliance/pkg/parser"
	"github.com/FrenchMajesty/geo-compliance/pkg/prompt"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"go.uber.org/zap"
)

// ModelClassifier asks a generative model whether a feature needs geo-compliance logic
type ModelClassifier struct {
	completer   TextCompleter
	prompts     *prompt.Builder
	parser      *parser.Parser
	temperature float32
	maxTokens   int
	logger      *zap.Logger
}

// NewModelClassifier creates a ModelClassifier over completer. Unset config fields take defaults.
func NewModelClassifier(completer TextCompleter, cfg Config) *ModelClassifier {
	cfg.applyDefaults()

	return &ModelClassifier{
		completer:   completer,
		prompts:     prompt.NewBuilder(cfg.Regulations),
		parser:      parser.New(cfg.Logger),
		temperature: *cfg.Temperature,
		maxTokens:   cfg.MaxTokens,
		logger:      cfg.Logger,
	}
}

// Classify makes exactly one model call. It never fails: a call error becomes a "Needs Review" verdict.
func (m *ModelClassifier) Classify(ctx context.Context, title, description, supportingText string) types.ModelVerdict {
	userPrompt := m.prompts.Build(title, description, supportingText)

	raw, err := m.completer.Complete(ctx, prompt.SystemInstruction, userPrompt, m.temperature, m.maxTokens)
	if err != nil {
		m.logger.Error("model call failed", zap.String("title", title), zap.Error(err))
		return types.ModelVerdict{
			NeedsCompliance:    types.VerdictNeedsReview,
			Reasoning:          fmt.Sprintf("Analysis failed due to error: %v", err),
			RelatedRegulations: []string{},
			Confidence:         types.ConfidenceLow,
		}
	}

	return m.parser.Parse(raw)
}
