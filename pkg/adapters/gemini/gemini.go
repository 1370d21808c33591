// Package gemini adapts Google's Gemini models to the text-completion interface.
package gemini

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// ErrEmptyResponse is returned when Gemini answers without any text
var ErrEmptyResponse = errors.New("no text in gemini response")

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// Completer sends prompts to a Gemini model
type Completer struct {
	models contentGenerator
	model  string
}

// New creates a Gemini completer. An empty model uses the default.
func New(ctx context.Context, apiKey, model string) (*Completer, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}

	return newCompleter(client.Models, model), nil
}

func newCompleter(models contentGenerator, model string) *Completer {
	if model == "" {
		model = defaultModel
	}
	return &Completer{models: models, model: model}
}

// Complete generates a single response for user under the system instruction
func (c *Completer) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		Temperature:       genai.Ptr(temperature),
		MaxOutputTokens:   int32(maxTokens),
	}

	resp, err := c.models.GenerateContent(ctx, c.model, genai.Text(user), config)
	if err != nil {
		return "", fmt.Errorf("failed to get gemini response: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
