package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel     = anthropic.ModelClaudeHaiku4_5
	defaultAnthropicMaxTokens = 4096
)

// implements Assistant using Anthropic Claude
type AnthropicAssistant struct {
	client    anthropic.Client
	model     anthropic.Model
	maxTokens int64
}

func NewAnthropicAssistant(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*AnthropicAssistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = defaultAnthropicModel
	}

	maxTokens := opts.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	return &AnthropicAssistant{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
	}, nil
}

func (a *AnthropicAssistant) Complete(
	ctx context.Context,
	prompt string,
) (string, error) {
	message, err := a.client.Messages.New(
		ctx,
		anthropic.MessageNewParams{
			Model:     a.model,
			MaxTokens: a.maxTokens,
			Messages: []anthropic.MessageParam{
				anthropic.NewUserMessage(
					anthropic.NewTextBlock(prompt),
				),
			},
		},
	)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	if message == nil || len(message.Content) == 0 {
		return "", fmt.Errorf("empty response from Anthropic")
	}

	var sb strings.Builder
	for _, block := range message.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no text in Anthropic response")
	}
	return sb.String(), nil
}
