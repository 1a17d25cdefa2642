package metadata

import (
	"context"
	"fmt"
	"strings"
)

// interface for text generation backends
type Assistant interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// assistant backend
type Provider string

const (
	ProviderGemini    Provider = "gemini"
	ProviderOpenAI    Provider = "openai"
	ProviderAnthropic Provider = "anthropic"
	ProviderCommand   Provider = "command"
)

// Providers lists every supported backend.
var Providers = []Provider{
	ProviderGemini,
	ProviderOpenAI,
	ProviderAnthropic,
	ProviderCommand,
}

type Options struct {
	Model     string
	Command   string // command line for ProviderCommand
	MaxTokens int64  // reply budget for providers that require one
}

// APIKeyEnv returns the environment variable holding the provider's API key,
// or "" for providers that do not need one.
func APIKeyEnv(provider Provider) string {
	switch provider {
	case ProviderGemini:
		return "GEMINI_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	default:
		return ""
	}
}

// creates Assistant based on provider
func Factory(
	ctx context.Context,
	provider Provider,
	apiKey string,
	opts Options,
) (Assistant, error) {
	switch Provider(strings.ToLower(string(provider))) {
	case ProviderGemini:
		return NewGeminiAssistant(ctx, apiKey, opts)
	case ProviderOpenAI:
		return NewOpenAIAssistant(ctx, apiKey, opts)
	case ProviderAnthropic:
		return NewAnthropicAssistant(ctx, apiKey, opts)
	case ProviderCommand:
		return NewCommandAssistant(opts)
	default:
		return nil, fmt.Errorf("unsupported assistant provider: %s", provider)
	}
}

// DefaultModel returns the model a provider uses when none is configured.
func DefaultModel(provider Provider) string {
	switch provider {
	case ProviderGemini:
		return defaultGeminiModel
	case ProviderOpenAI:
		return defaultOpenAIModel
	case ProviderAnthropic:
		return string(defaultAnthropicModel)
	default:
		return ""
	}
}
