package classifier

import (
	"github.com/FrenchMajesty/geo-compliance/pkg/taxonomy"
	"go.uber.org/zap"
)

const (
	// DefaultTemperature is the sampling temperature sent with every model call
	DefaultTemperature float32 = 0.1

	// DefaultMaxTokens caps the length of the model's reply
	DefaultMaxTokens = 1000
)

// Config holds configuration for the Classifier
type Config struct {
	// Completer runs the generative model. If nil, uses the default (OpenAI via OPENAI_API_KEY).
	Completer TextCompleter
	Model     string

	// Extractor turns PDF document paths into text. If nil, PDF paths resolve to empty supporting text.
	Extractor Extractor

	// Temperature is optional; nil means DefaultTemperature. An explicit 0 is sent as 0.
	Temperature *float32
	MaxTokens   int

	// Categories and Regulations default to the built-in taxonomies when nil
	Categories  *taxonomy.Categories
	Regulations *taxonomy.Regulations

	Logger *zap.Logger
}

// applyDefaults fills in default values for unset config fields
func (c *Config) applyDefaults() {
	if c.Temperature == nil {
		t := DefaultTemperature
		c.Temperature = &t
	}

	if c.MaxTokens == 0 {
		c.MaxTokens = DefaultMaxTokens
	}

	if c.Categories == nil {
		c.Categories = taxonomy.DefaultCategories()
	}

	if c.Regulations == nil {
		c.Regulations = taxonomy.DefaultRegulations()
	}

	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
}
