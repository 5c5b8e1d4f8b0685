package openai

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/leavehq/leave-backend-go/internal/config"
	openaiSDK "github.com/sashabaranov/go-openai"
)

// ErrMissingAPIKey is returned when a completion is attempted without a
// configured credential.
var ErrMissingAPIKey = errors.New("openai: API key is not configured")

// Client wraps the go-openai SDK behind the text-in/text-out surface the
// assistant service needs.
type Client struct {
	sdk   *openaiSDK.Client
	model string
}

// NewClient creates a new OpenAI client. A missing API key does not fail
// here; the first Complete call reports it instead.
func NewClient(cfg config.OpenAIConfig) *Client {
	if cfg.APIKey == "" {
		return &Client{model: cfg.Model}
	}

	sdkCfg := openaiSDK.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		sdkCfg.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		sdkCfg.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	return &Client{
		sdk:   openaiSDK.NewClientWithConfig(sdkCfg),
		model: cfg.Model,
	}
}

// Complete sends a chat completion request and returns the reply text.
func (c *Client) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.sdk == nil {
		return "", ErrMissingAPIKey
	}

	resp, err := c.sdk.CreateChatCompletion(ctx, openaiSDK.ChatCompletionRequest{
		Model: c.model,
		Messages: []openaiSDK.ChatCompletionMessage{
			{Role: openaiSDK.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openaiSDK.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	return resp.Choices[0].Message.Content, nil
}
