// Package client constructs a chat.Client backed by a configured model
// provider, with automatic retry on transient errors.
package client

import (
	"context"
	"fmt"

	ai "github.com/agilbank/assistant"
	"github.com/agilbank/assistant/chat"
	"github.com/agilbank/assistant/internal/provider/anthropic"
	"github.com/agilbank/assistant/internal/provider/google"
	"github.com/agilbank/assistant/internal/provider/openai"
	"github.com/agilbank/assistant/internal/retry"
)

// ErrMissingAPIKey is returned when no API key is configured for the
// selected provider. This is the only configuration error treated as fatal
// at startup.
type ErrMissingAPIKey struct {
	Provider string
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// Config holds configuration for creating a client.
type Config struct {
	// Provider selects the backend. Defaults to ai.ProviderGoogle.
	Provider ai.Provider

	// APIKey authenticates against the selected provider. Required.
	APIKey string

	// Model overrides the provider's default model when non-empty.
	Model string

	// RetryConfig configures retry behavior for transient errors.
	// If nil, uses default retry configuration.
	RetryConfig *ai.RetryConfig
}

// Client wraps a provider adapter with retry logic.
type Client struct {
	backend     chat.Client
	retryConfig retry.Config
	defaultOpts []ai.Option
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithDefaultTemperature sets the default temperature for chat requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for chat requests.
// Per-request options override this default.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithMaxTokens(n))
	}
}

// WithDefaultChatOptions sets default options for all chat requests.
// Per-request options override these defaults.
func WithDefaultChatOptions(opts ...ai.Option) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, opts...)
	}
}

// New creates a client for the configured provider.
// Returns ErrMissingAPIKey if no API key is set.
func New(ctx context.Context, cfg Config, opts ...ClientOption) (*Client, error) {
	provider := cfg.Provider
	if provider == "" {
		provider = ai.ProviderGoogle
	}

	if cfg.APIKey == "" {
		return nil, &ErrMissingAPIKey{Provider: provider.String()}
	}

	var backend chat.Client
	switch provider {
	case ai.ProviderGoogle:
		var googleOpts []google.ClientOption
		if cfg.Model != "" {
			googleOpts = append(googleOpts, google.WithModel(cfg.Model))
		}
		g, err := google.New(ctx, cfg.APIKey, googleOpts...)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google client: %w", err)
		}
		backend = g
	case ai.ProviderOpenAI:
		var openaiOpts []openai.ClientOption
		if cfg.Model != "" {
			openaiOpts = append(openaiOpts, openai.WithModel(cfg.Model))
		}
		backend = openai.New(cfg.APIKey, openaiOpts...)
	case ai.ProviderAnthropic:
		var anthropicOpts []anthropic.ClientOption
		if cfg.Model != "" {
			anthropicOpts = append(anthropicOpts, anthropic.WithModel(cfg.Model))
		}
		backend = anthropic.New(cfg.APIKey, anthropicOpts...)
	default:
		return nil, fmt.Errorf("unsupported provider: %s", provider)
	}

	retryConfig := retry.DefaultConfig()
	if cfg.RetryConfig != nil {
		retryConfig = retry.FromRetryConfig(*cfg.RetryConfig)
	}

	c := &Client{
		backend:     backend,
		retryConfig: retryConfig,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Chat sends a conversation and returns a complete response.
// Transient errors are retried according to the client's retry configuration.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	// Prepend default options so per-request options override them
	opts = append(append([]ai.Option{}, c.defaultOpts...), opts...)

	return retry.Do(ctx, c.retryConfig, func() (*ai.Response, error) {
		return c.backend.Chat(ctx, messages, opts...)
	})
}

// IsTransientError determines if an error is transient and should be retried.
func IsTransientError(err error) bool {
	return retry.IsTransient(err)
}

var _ chat.Client = (*Client)(nil)
