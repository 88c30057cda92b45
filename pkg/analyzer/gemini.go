package analyzer

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"github.com/umputun/ainews/pkg/config"
)

// GeminiCompleter talks to the Google Gemini API. Not safe for concurrent use,
// the system instruction is set on the shared model per call.
type GeminiCompleter struct {
	client *genai.Client
	model  *genai.GenerativeModel
}

// NewGeminiCompleter creates a gemini client for the configured model
func NewGeminiCompleter(ctx context.Context, cfg config.LLMConfig) (*GeminiCompleter, error) {
	opts := []option.ClientOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := genai.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := client.GenerativeModel(cfg.Model)
	model.SetTemperature(float32(cfg.Temperature))
	model.SetTopP(float32(cfg.TopP))
	if cfg.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(cfg.MaxTokens)) //nolint:gosec // bounded by config validation
	}
	return &GeminiCompleter{client: client, model: model}, nil
}

// Complete generates content for the user prompt with the given system instruction
func (g *GeminiCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	g.model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	resp, err := g.model.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}
	return responseText(resp)
}

// Close closes the underlying client
func (g *GeminiCompleter) Close() error {
	return g.client.Close()
}

// responseText joins text parts of the first candidate
func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", ErrEmptyResponse
	}
	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", ErrEmptyResponse
	}
	return sb.String(), nil
}
