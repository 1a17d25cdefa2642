package metadata

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-5-mini"

// implements Assistant using OpenAI Chat Completions
type OpenAIAssistant struct {
	client openai.Client
	model  string
}

func NewOpenAIAssistant(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*OpenAIAssistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	return &OpenAIAssistant{
		client: client,
		model:  model,
	}, nil
}

func (a *OpenAIAssistant) Complete(
	ctx context.Context,
	prompt string,
) (string, error) {
	completion, err := a.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.UserMessage(prompt),
			},
			Model: a.model,
		},
	)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	if completion == nil || len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from OpenAI")
	}

	text := completion.Choices[0].Message.Content
	if text == "" {
		return "", fmt.Errorf("no text in OpenAI response")
	}
	return text, nil
}
