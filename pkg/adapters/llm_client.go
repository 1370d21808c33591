package adapters

import (
	"context"
	"errors"
	"fmt"

	"github.com/FrenchMajesty/geo-compliance/pkg/adapters/openai"
	"go.uber.org/zap"
)

const (
	defaultOpenAIModel = "gpt-4"
	defaultGroqModel   = "llama-3.3-70b-versatile"
)

// ErrNoChoices is returned when the provider answers without any message content
var ErrNoChoices = errors.New("no response from LLM")

// OpenAICompleter implements Completer over an OpenAI-compatible chat API
type OpenAICompleter struct {
	client openai.LanguageModelClient
	model  string
	logger *zap.Logger
}

// NewOpenAICompleter creates a completer for OpenAI, reading OPENAI_API_KEY when no key is given
func NewOpenAICompleter(opts Options) (*OpenAICompleter, error) {
	key, err := loadEnvVar(optional(opts.APIKey), "OPENAI_API_KEY")
	if err != nil {
		return nil, err
	}
	return newChatCompleter(*key, opts, openai.OpenAIBaseURL, defaultOpenAIModel), nil
}

// NewGroqCompleter creates a completer for Groq's OpenAI-compatible endpoint
func NewGroqCompleter(opts Options) (*OpenAICompleter, error) {
	key, err := loadEnvVar(optional(opts.APIKey), "GROQ_API_KEY")
	if err != nil {
		return nil, err
	}
	return newChatCompleter(*key, opts, openai.GroqBaseURL, defaultGroqModel), nil
}

func newChatCompleter(apiKey string, opts Options, baseURL, model string) *OpenAICompleter {
	client := openai.NewClient(apiKey)
	client.SetBaseURL(baseURL)
	if opts.BaseURL != "" {
		client.SetBaseURL(opts.BaseURL)
	}
	if opts.MaxRetries > 0 {
		client.RetryConfig.MaxRetries = opts.MaxRetries
	}
	client.DumpRequests = opts.DumpRequests
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	client.Logger = logger
	if opts.Model != "" {
		model = opts.Model
	}

	return &OpenAICompleter{client: client, model: model, logger: logger}
}

// Model returns the model name sent with every request
func (c *OpenAICompleter) Model() string { return c.model }

// Complete sends one chat completion and returns the first choice's content
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatMessage{
			{Role: openai.MessageRoleSystem, Content: &system},
			{Role: openai.MessageRoleUser, Content: &user},
		},
		MaxTokens:   maxTokens,
		Temperature: &temperature,
	}

	resp, err := c.client.ChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("failed to get LLM response: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == nil {
		return "", ErrNoChoices
	}

	c.log().Debug("chat completion",
		zap.String("model", c.model),
		zap.Int("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int("completion_tokens", resp.Usage.CompletionTokens),
		zap.String("finish_reason", resp.Choices[0].FinishReason),
	)

	return *resp.Choices[0].Message.Content, nil
}

func (c *OpenAICompleter) log() *zap.Logger {
	if c.logger == nil {
		return zap.NewNop()
	}
	return c.logger
}
