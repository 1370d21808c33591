package classifier

import (
	"context"
	"fmt"
	"strings"

	"github.com/FrenchMajesty/geo-compliance/pkg/adapters"
	"github.com/FrenchMajesty/geo-compliance/pkg/keyword"
	"github.com/FrenchMajesty/geo-compliance/pkg/taxonomy"
	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"go.uber.org/zap"
)

// Classifier runs the keyword and model classifiers on a feature and reconciles their opinions
type Classifier struct {
	keywords  *keyword.Classifier
	model     *ModelClassifier
	extractor Extractor
	logger    *zap.Logger

	categories  *taxonomy.Categories
	regulations *taxonomy.Regulations
}

// NewClassifier creates a new Classifier with the given configuration
func NewClassifier(cfg Config) (*Classifier, error) {
	cfg.applyDefaults()

	var completer TextCompleter
	if cfg.Completer != nil {
		completer = cfg.Completer
	} else {
		client, err := adapters.NewOpenAICompleter(adapters.Options{Model: cfg.Model, Logger: cfg.Logger})
		if err != nil {
			return nil, fmt.Errorf("failed to create default LLM client: %w", err)
		}
		completer = client
	}

	return &Classifier{
		keywords:  keyword.NewClassifier(cfg.Categories),
		model:     NewModelClassifier(completer, cfg),
		extractor: cfg.Extractor,
		logger:    cfg.Logger,

		categories:  cfg.Categories,
		regulations: cfg.Regulations,
	}, nil
}

// Classify produces the final verdict for one feature. SupportingText may be a PDF path.
func (c *Classifier) Classify(ctx context.Context, feature types.Feature) types.FinalVerdict {
	supporting := c.resolveDocuments(feature.SupportingText)

	rule := c.keywords.Classify(feature.Title, feature.Description, supporting)
	model := c.model.Classify(ctx, feature.Title, feature.Description, supporting)

	final := Reconcile(feature.Title, rule, model)
	if final.Overridden {
		c.logger.Info("model verdict overridden by keyword evidence",
			zap.String("title", feature.Title),
			zap.Stringer("keywords", rule.FoundKeywords),
		)
	}
	return final
}

// resolveDocuments treats a value ending in ".pdf" as a file to extract, anything else as literal text
func (c *Classifier) resolveDocuments(documents string) string {
	if documents == "" || !IsPDFPath(documents) {
		return documents
	}
	if c.extractor == nil {
		c.logger.Warn("no extractor configured, ignoring PDF document", zap.String("path", documents))
		return ""
	}
	return c.extractor.Extract(documents)
}

// IsPDFPath reports whether documents names a PDF file rather than inline text
func IsPDFPath(documents string) bool {
	return strings.HasSuffix(strings.ToLower(documents), ".pdf")
}

// Taxonomy exposes the categories and regulations the classifier was built with
func (c *Classifier) Taxonomy() (*taxonomy.Categories, *taxonomy.Regulations) {
	return c.categories, c.regulations
}
