package adapters

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/FrenchMajesty/geo-compliance/pkg/adapters/openai"
)

// Tests for unexported fields; these live in the package to inject a fake chat client

type mockChatClient struct {
	chatCompletionFunc func(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error)
	lastRequest        openai.ChatCompletionRequest
}

func (m *mockChatClient) ChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	m.lastRequest = req
	if m.chatCompletionFunc != nil {
		return m.chatCompletionFunc(ctx, req)
	}
	return nil, errors.New("not implemented")
}

func (m *mockChatClient) SetBaseURL(string) {}

func respondWith(content *string) func(context.Context, openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
	return func(context.Context, openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
		resp := &openai.ChatCompletionResponse{ID: "test-id", Object: "chat.completion"}
		if content != nil {
			resp.Choices = []openai.ChatCompletionChoice{{Message: openai.ChatMessage{Content: content}}}
		}
		return resp, nil
	}
}

func TestOpenAICompleter_Complete(t *testing.T) {
	reply := `{"needs_compliance": "Yes"}`
	mock := &mockChatClient{chatCompletionFunc: respondWith(&reply)}
	c := &OpenAICompleter{client: mock, model: "gpt-4"}

	got, err := c.Complete(context.Background(), "system text", "user text", 0.1, 1000)
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}
	if got != reply {
		t.Errorf("Expected raw reply %q, got %q", reply, got)
	}

	req := mock.lastRequest
	if req.Model != "gpt-4" || req.MaxTokens != 1000 {
		t.Errorf("Unexpected request: %+v", req)
	}
	if req.Temperature == nil || *req.Temperature != 0.1 {
		t.Errorf("Expected temperature 0.1, got %v", req.Temperature)
	}
	if len(req.Messages) != 2 || *req.Messages[0].Content != "system text" || *req.Messages[1].Content != "user text" {
		t.Errorf("Unexpected messages: %+v", req.Messages)
	}
}

func TestOpenAICompleter_Complete_Error(t *testing.T) {
	mock := &mockChatClient{
		chatCompletionFunc: func(context.Context, openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
			return nil, errors.New("API error")
		},
	}
	c := &OpenAICompleter{client: mock, model: "gpt-4"}

	_, err := c.Complete(context.Background(), "s", "u", 0.1, 10)
	if err == nil || !strings.Contains(err.Error(), "failed to get LLM response") {
		t.Errorf("Expected 'failed to get LLM response' error, got: %v", err)
	}
}

func TestOpenAICompleter_Complete_EmptyChoices(t *testing.T) {
	c := &OpenAICompleter{client: &mockChatClient{chatCompletionFunc: respondWith(nil)}, model: "gpt-4"}

	_, err := c.Complete(context.Background(), "s", "u", 0.1, 10)
	if !errors.Is(err, ErrNoChoices) {
		t.Errorf("Expected ErrNoChoices, got: %v", err)
	}
}

func TestOpenAICompleter_Complete_NilContent(t *testing.T) {
	mock := &mockChatClient{
		chatCompletionFunc: func(context.Context, openai.ChatCompletionRequest) (*openai.ChatCompletionResponse, error) {
			return &openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{{Message: openai.ChatMessage{Content: nil}}},
			}, nil
		},
	}
	c := &OpenAICompleter{client: mock, model: "gpt-4"}

	if _, err := c.Complete(context.Background(), "s", "u", 0.1, 10); !errors.Is(err, ErrNoChoices) {
		t.Errorf("Expected ErrNoChoices, got: %v", err)
	}
}

func TestNewChatCompleter_AppliesOptions(t *testing.T) {
	c := newChatCompleter("key", Options{Model: "custom", BaseURL: "http://localhost:9999", MaxRetries: 2, DumpRequests: true}, openai.GroqBaseURL, defaultGroqModel)

	client, ok := c.client.(*openai.OpenAIClient)
	if !ok {
		t.Fatalf("Expected *openai.OpenAIClient, got %T", c.client)
	}
	if client.BaseURL != "http://localhost:9999" {
		t.Errorf("Expected overridden base URL, got %s", client.BaseURL)
	}
	if client.RetryConfig.MaxRetries != 2 || !client.DumpRequests {
		t.Errorf("Expected retries and dumping to be applied, got %+v", client)
	}
	if c.model != "custom" {
		t.Errorf("Expected custom model, got %s", c.model)
	}
}
