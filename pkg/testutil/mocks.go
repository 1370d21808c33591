package testutil

import (
	"context"
	"sync"
)

// MockCompleter is a mock implementation of TextCompleter for testing
type MockCompleter struct {
	CompleteFunc func(ctx context.Context, system, user string) (string, error)

	mu              sync.Mutex
	CallCount       int
	LastSystem      string
	LastUser        string
	LastTemperature float32
	LastMaxTokens   int
}

func (m *MockCompleter) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastSystem = system
	m.LastUser = user
	m.LastTemperature = temperature
	m.LastMaxTokens = maxTokens
	m.mu.Unlock()

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, system, user)
	}

	// Default: a well-formed negative answer
	return `{"needs_compliance": "No", "reasoning": "No geo-specific obligations", "related_regulations": [], "confidence": "medium"}`, nil
}

// Reply returns a CompleteFunc that always answers with raw
func Reply(raw string) func(ctx context.Context, system, user string) (string, error) {
	return func(context.Context, string, string) (string, error) {
		return raw, nil
	}
}

// MockExtractor is a mock implementation of Extractor for testing
type MockExtractor struct {
	ExtractFunc func(path string) string

	mu        sync.Mutex
	CallCount int
	LastPath  string
}

func (m *MockExtractor) Extract(path string) string {
	m.mu.Lock()
	m.CallCount++
	m.LastPath = path
	m.mu.Unlock()

	if m.ExtractFunc != nil {
		return m.ExtractFunc(path)
	}
	return ""
}
