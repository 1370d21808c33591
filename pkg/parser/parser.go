// Package parser turns a model's free-form reply into a ModelVerdict.
// Parsing never fails: anything it cannot read degrades to a "Needs Review" verdict.
package parser

import (
	"strings"

	"github.com/FrenchMajesty/geo-compliance/pkg/types"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

const (
	DefaultReasoning  = "No reasoning provided"
	parseFailedPrefix = "Failed to parse response: "
)

// Parser extracts the JSON verdict embedded in a model reply
type Parser struct {
	logger *zap.Logger
}

// New creates a parser. If logger is nil, logging is discarded.
func New(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// Parse reads the first-'{'-to-last-'}' span of raw as the verdict object.
// Missing keys take defaults; present values pass through unvalidated.
func (p *Parser) Parse(raw string) types.ModelVerdict {
	span, ok := jsonSpan(raw)
	if !ok {
		p.logger.Warn("model reply contains no JSON object", zap.Int("length", len(raw)))
		return fallback(raw)
	}

	if !gjson.Valid(span) {
		p.logger.Error("failed to decode model reply", zap.String("span", span))
		return fallback(parseFailedPrefix + raw)
	}

	doc := gjson.Parse(span)
	verdict := types.ModelVerdict{
		NeedsCompliance:    types.VerdictNeedsReview,
		Reasoning:          DefaultReasoning,
		RelatedRegulations: []string{},
		Confidence:         types.ConfidenceMedium,
	}

	fields := lastValues(doc)
	if v := fields["needs_compliance"]; present(v) {
		verdict.NeedsCompliance = types.Verdict(v.String())
	}
	if v := fields["reasoning"]; present(v) {
		verdict.Reasoning = v.String()
	}
	if v := fields["related_regulations"]; present(v) {
		verdict.RelatedRegulations = stringList(v)
	}
	if v := fields["confidence"]; present(v) {
		verdict.Confidence = types.Confidence(v.String())
	}

	if !verdict.NeedsCompliance.Valid() || !verdict.Confidence.Valid() {
		p.logger.Warn("model reply carries out-of-range values",
			zap.String("needs_compliance", string(verdict.NeedsCompliance)),
			zap.String("confidence", string(verdict.Confidence)))
	}

	return verdict
}

// jsonSpan returns raw from its first '{' through its last '}'
func jsonSpan(raw string) (string, bool) {
	start := strings.Index(raw, "{")
	if start < 0 {
		return "", false
	}
	end := strings.LastIndex(raw, "}")
	if end < start {
		return "", false
	}
	return raw[start : end+1], true
}

// lastValues maps each top-level key to its value. A key repeated in the
// object resolves to its last occurrence.
func lastValues(doc gjson.Result) map[string]gjson.Result {
	fields := make(map[string]gjson.Result)
	doc.ForEach(func(key, value gjson.Result) bool {
		fields[key.String()] = value
		return true
	})
	return fields
}

// present treats explicit nulls like missing keys
func present(v gjson.Result) bool {
	return v.Exists() && v.Type != gjson.Null
}

func stringList(v gjson.Result) []string {
	if !v.IsArray() {
		if s := v.String(); s != "" {
			return []string{s}
		}
		return []string{}
	}
	items := v.Array()
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, item.String())
	}
	return out
}

func fallback(reasoning string) types.ModelVerdict {
	return types.ModelVerdict{
		NeedsCompliance:    types.VerdictNeedsReview,
		Reasoning:          reasoning,
		RelatedRegulations: []string{},
		Confidence:         types.ConfidenceLow,
	}
}
