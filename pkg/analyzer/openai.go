package analyzer

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"

	"github.com/umputun/ainews/pkg/config"
)

// OpenAICompleter talks to any OpenAI-compatible chat completion API, including
// the Zhipu GLM endpoint
type OpenAICompleter struct {
	client *openai.Client
	config config.LLMConfig
}

// NewOpenAICompleter creates a completer for an OpenAI-compatible endpoint
func NewOpenAICompleter(cfg config.LLMConfig) *OpenAICompleter {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.Endpoint != "" {
		clientConfig.BaseURL = cfg.Endpoint
	}
	return &OpenAICompleter{client: openai.NewClientWithConfig(clientConfig), config: cfg}
}

// Complete sends a single chat completion request and returns the first choice
func (c *OpenAICompleter) Complete(ctx context.Context, system, user string) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:       c.config.Model,
		Temperature: float32(c.config.Temperature),
		TopP:        float32(c.config.TopP),
		MaxTokens:   c.config.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	resp, err := c.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("llm request failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", ErrEmptyResponse
	}
	return resp.Choices[0].Message.Content, nil
}
