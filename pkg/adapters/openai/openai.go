package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/FrenchMajesty/geo-compliance/internal/retry"
	"go.uber.org/zap"
)

const (
	OpenAIBaseURL = "https://api.openai.com/v1"
	GroqBaseURL   = "https://api.groq.com/openai/v1"

	defaultDumpDir = "debug_llm_requests"
)

// NewClient creates an OpenAIClient that makes a single attempt per request
func NewClient(apiKey string) *OpenAIClient {
	return &OpenAIClient{
		APIKey:      apiKey,
		HTTPClient:  http.DefaultClient,
		RetryConfig: retry.NoRetry(),
		BaseURL:     OpenAIBaseURL,
		DumpDir:     defaultDumpDir,
		Logger:      zap.NewNop(),
	}
}

var _ LanguageModelClient = (*OpenAIClient)(nil)

// ChatCompletion sends a chat completion request, retrying per RetryConfig
func (c *OpenAIClient) ChatCompletion(ctx context.Context, req ChatCompletionRequest) (*ChatCompletionResponse, error) {
	url := strings.TrimRight(c.BaseURL, "/") + "/chat/completions"

	bodyBytes, err := c.createAndRunRetryableRequest(ctx, url, req, "chat")
	if err != nil {
		return nil, err
	}

	var chatResp ChatCompletionResponse
	if err := json.Unmarshal(bodyBytes, &chatResp); err != nil {
		return nil, &ChatCompletionError{
			Message: fmt.Sprintf("failed to parse chat completion response: %v", err),
			RawBody: json.RawMessage(bodyBytes),
		}
	}

	return &chatResp, nil
}

// SetBaseURL points the client at another OpenAI-compatible endpoint
func (c *OpenAIClient) SetBaseURL(baseUrl string) {
	c.BaseURL = baseUrl
}

func (c *OpenAIClient) logger() *zap.Logger {
	if c.Logger == nil {
		return zap.NewNop()
	}
	return c.Logger
}
