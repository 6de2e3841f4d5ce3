// Package llm wraps the language-model client used for outline planning and
// slide composition. Callers build prompts and parse responses; this package
// only knows how to complete a prompt within the service rate limit.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"github.com/presenton/presenton-go/internal/ratelimit"
)

// Generator completes a single prompt. Implemented by Client in production
// and by fixture-backed stubs in tests.
type Generator interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Options configures the production client.
type Options struct {
	BaseURL     string
	Model       string
	APIKey      string
	Temperature float64
	MaxTokens   int
}

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	model       llms.Model
	limiter     *ratelimit.ServiceLimiter
	temperature float64
	maxTokens   int
}

// Compile-time check.
var _ Generator = (*Client)(nil)

// New creates a production client. BaseURL may point at any
// OpenAI-compatible server; empty means the OpenAI default.
func New(opts Options, limiter *ratelimit.ServiceLimiter) (*Client, error) {
	if opts.Model == "" {
		return nil, fmt.Errorf("llm: model is required")
	}
	if opts.APIKey == "" {
		return nil, fmt.Errorf("llm: api key is required")
	}
	clientOpts := []openai.Option{
		openai.WithModel(opts.Model),
		openai.WithToken(opts.APIKey),
	}
	if opts.BaseURL != "" {
		clientOpts = append(clientOpts, openai.WithBaseURL(opts.BaseURL))
	}
	model, err := openai.New(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("llm: create client: %w", err)
	}
	temperature := opts.Temperature
	if temperature == 0 {
		temperature = 0.7
	}
	maxTokens := opts.MaxTokens
	if maxTokens == 0 {
		maxTokens = 4096
	}
	return &Client{
		model:       model,
		limiter:     limiter,
		temperature: temperature,
		maxTokens:   maxTokens,
	}, nil
}

// Complete sends the prompt and returns the raw completion text. The call
// blocks on the llm service limiter before dispatching.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, ratelimit.ServiceLLM); err != nil {
			return "", fmt.Errorf("llm: rate limit wait: %w", err)
		}
	}
	out, err := llms.GenerateFromSinglePrompt(ctx, c.model, prompt,
		llms.WithTemperature(c.temperature),
		llms.WithMaxTokens(c.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("llm: completion: %w", err)
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return "", fmt.Errorf("llm: empty completion")
	}
	return out, nil
}
