package types

import (
	"bytes"
	"encoding/json"
)

// Verdict is the answer to "does this feature need geo-specific compliance logic?"
type Verdict string

const (
	VerdictYes         Verdict = "Yes"
	VerdictNo          Verdict = "No"
	VerdictNeedsReview Verdict = "Needs Review"
)

// Valid reports whether v is one of the three known verdicts
func (v Verdict) Valid() bool {
	switch v {
	case VerdictYes, VerdictNo, VerdictNeedsReview:
		return true
	}
	return false
}

// Confidence is the certainty attached to a verdict
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// Valid reports whether c is one of the three known confidence levels
func (c Confidence) Valid() bool {
	switch c {
	case ConfidenceHigh, ConfidenceMedium, ConfidenceLow:
		return true
	}
	return false
}

// Feature is a single product feature to classify
type Feature struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	SupportingText string `json:"supporting_text,omitempty"`
}

// CategoryMatch holds the trigger phrases of one category found in a feature
type CategoryMatch struct {
	Category string
	Phrases  []string
}

// FoundKeywords is the ordered set of matched categories, in taxonomy order
type FoundKeywords []CategoryMatch

// Has reports whether category has at least one matched phrase
func (f FoundKeywords) Has(category string) bool {
	for _, m := range f {
		if m.Category == category && len(m.Phrases) > 0 {
			return true
		}
	}
	return false
}

// String renders the keywords as a JSON object that keeps category order
func (f FoundKeywords) String() string {
	data, err := f.MarshalJSON()
	if err != nil {
		return "{}"
	}
	return string(data)
}

// MarshalJSON encodes the matches as an object while preserving taxonomy order
func (f FoundKeywords) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range f {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(m.Category)
		if err != nil {
			return nil, err
		}
		phrases := m.Phrases
		if phrases == nil {
			phrases = []string{}
		}
		value, err := json.Marshal(phrases)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// RuleVerdict is the keyword classifier's opinion
type RuleVerdict struct {
	NeedsCompliance bool          `json:"needs_compliance"`
	FoundKeywords   FoundKeywords `json:"found_keywords"`
	Confidence      Confidence    `json:"confidence"`
}

// ModelVerdict is the generative model's opinion
type ModelVerdict struct {
	NeedsCompliance    Verdict    `json:"needs_compliance"`
	Reasoning          string     `json:"reasoning"`
	RelatedRegulations []string   `json:"related_regulations"`
	Confidence         Confidence `json:"confidence"`
}

// FinalVerdict is the reconciled result written out for each feature
type FinalVerdict struct {
	Title              string        `json:"title"`
	NeedsCompliance    Verdict       `json:"needs_compliance"`
	Reasoning          string        `json:"reasoning"`
	RelatedRegulations []string      `json:"related_regulations"`
	FoundKeywords      FoundKeywords `json:"rule_based_keywords"`
	Confidence         Confidence    `json:"confidence"`

	// Overridden is true when keyword evidence promoted a model "No" to "Yes"
	Overridden bool `json:"overridden"`
}
