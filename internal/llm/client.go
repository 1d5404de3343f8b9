package llm

import (
	"context"
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the model produced no text at all.
var ErrEmptyResponse = errors.New("empty response from model")

// Request is one structured generation call. Instructions and user content are
// kept apart so providers can send them through their own separate channels.
type Request struct {
	// SystemInstruction holds the fixed task instructions.
	SystemInstruction string
	// Prompt holds the user-supplied content.
	Prompt string
	// Schema constrains the JSON reply; nil means any JSON.
	Schema *Schema
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateJSON returns the raw JSON text of the model's reply
	GenerateJSON(ctx context.Context, req Request) (string, error)
	// Provider returns the provider this client talks to
	Provider() Provider
	// Model returns the model name used for requests
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderGeminiLegacy:
		return NewLegacyGeminiClient(ctx, config, apiKey)
	case ProviderClaude:
		return NewClaudeClient(config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}
