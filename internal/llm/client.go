// Package llm wraps the remote model API behind a single synchronous call.
//
// The call is treated as a black box: no retry, no backoff. A transport
// or API failure surfaces as a REMOTE_ERROR with the underlying cause and
// the caller decides what to do next.
package llm

import (
	"context"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"cbx/internal/config"
	"cbx/internal/errors"
)

// Completer is the interface the dispatcher depends on. The production
// implementation is Client; tests substitute a fake.
type Completer interface {
	Complete(ctx context.Context, prompt string, temperature float32) (string, error)
}

// Client talks to an OpenAI-compatible chat completion endpoint.
type Client struct {
	api       *openai.Client
	model     string
	maxTokens int
	timeout   time.Duration
}

// NewClient builds a client from model configuration. The API key comes
// from the environment variable the config names.
func NewClient(cfg config.ModelConfig, apiKey string) *Client {
	clientConfig := openai.DefaultConfig(apiKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		api:       openai.NewClientWithConfig(clientConfig),
		model:     cfg.ChatModel,
		maxTokens: cfg.MaxOutputTokens,
		timeout:   timeout,
	}
}

// Complete sends one prompt and returns the model's text answer.
func (c *Client) Complete(ctx context.Context, prompt string, temperature float32) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", errors.NewRemoteError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New(errors.RemoteError, "model returned no choices", nil)
	}

	return resp.Choices[0].Message.Content, nil
}
