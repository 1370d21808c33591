package adapters

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/FrenchMajesty/geo-compliance/pkg/adapters/gemini"
	"go.uber.org/zap"
)

const (
	ProviderOpenAI = "openai"
	ProviderGroq   = "groq"
	ProviderGemini = "gemini"
)

// Completer turns a system instruction and user prompt into free-form text
type Completer interface {
	Complete(ctx context.Context, system, user string, temperature float32, maxTokens int) (string, error)
}

// Options selects and configures a text-completion provider
type Options struct {
	Provider     string
	APIKey       string
	Model        string
	BaseURL      string
	MaxRetries   int
	DumpRequests bool
	Logger       *zap.Logger
}

// New creates the Completer for opts.Provider. An empty provider means OpenAI.
func New(opts Options) (Completer, error) {
	switch strings.ToLower(opts.Provider) {
	case "", ProviderOpenAI:
		return NewOpenAICompleter(opts)
	case ProviderGroq:
		return NewGroqCompleter(opts)
	case ProviderGemini:
		key, err := loadEnvVar(optional(opts.APIKey), "GEMINI_API_KEY")
		if err != nil {
			return nil, err
		}
		client, err := gemini.New(context.Background(), *key, opts.Model)
		if err != nil {
			return nil, fmt.Errorf("failed to create gemini client: %w", err)
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown LLM provider %q", opts.Provider)
	}
}

// loadEnvVar loads an environment variable into a pointer if no value is provided
func loadEnvVar(target *string, envKey string) (*string, error) {
	if target == nil {
		envVar := os.Getenv(envKey)
		if envVar == "" {
			return nil, fmt.Errorf("%s environment variable not set and no value provided", envKey)
		}
		return &envVar, nil
	}
	return target, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
