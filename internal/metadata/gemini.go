package metadata

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const defaultGeminiModel = "gemini-2.5-flash"

// implements Assistant using Google Gemini
type GeminiAssistant struct {
	client *genai.Client
	model  string
}

func NewGeminiAssistant(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*GeminiAssistant, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := opts.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &GeminiAssistant{
		client: client,
		model:  model,
	}, nil
}

func (a *GeminiAssistant) Complete(
	ctx context.Context,
	prompt string,
) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generation failed: %w", err)
	}

	return geminiResponseText(result)
}

func geminiResponseText(result *genai.GenerateContentResponse) (string, error) {
	if result == nil || len(result.Candidates) == 0 {
		return "", fmt.Errorf("empty response from Gemini")
	}

	var sb strings.Builder
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			sb.WriteString(part.Text)
		}
		if sb.Len() > 0 {
			break
		}
	}

	if sb.Len() == 0 {
		return "", fmt.Errorf("no text in Gemini response")
	}
	return sb.String(), nil
}
