package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/jonathan/resumate/internal/prompts"
)

// schemaInstruction tells Claude to answer with JSON matching {{.Schema}}.
var schemaInstruction = prompts.MustGet("generation.json", "json-schema-instruction")

// ClaudeClient implements Client for Anthropic Claude.
// The Messages API has no response schema parameter, so the schema is rendered
// into the system prompt and the reply is validated downstream.
type ClaudeClient struct {
	client anthropic.Client
	config *Config
}

// NewClaudeClient creates a new Claude client
func NewClaudeClient(config *Config, apiKey string) (*ClaudeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	return &ClaudeClient{
		client: anthropic.NewClient(option.WithAPIKey(apiKey)),
		config: config,
	}, nil
}

// GenerateJSON asks the model for a JSON reply described by req.Schema
func (c *ClaudeClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel()
	if modelName == "" {
		return "", fmt.Errorf("no model configured for provider %s", c.config.Provider)
	}

	system, err := buildSystemPrompt(req)
	if err != nil {
		return "", err
	}

	response, err := c.client.Messages.New(ctx, c.messageParams(modelName, system, req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	var parts []string
	for _, block := range response.Content {
		if block.Type == "text" {
			parts = append(parts, block.AsText().Text)
		}
	}

	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text content in response: %w", ErrEmptyResponse)
	}

	return CleanJSONBlock(text), nil
}

func (c *ClaudeClient) messageParams(model, system, prompt string) anthropic.MessageNewParams {
	maxTokens := int64(defaultClaudeMaxTokens)
	if c.config.MaxOutputTokens > 0 {
		maxTokens = int64(c.config.MaxOutputTokens)
	}

	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		Messages: []anthropic.MessageParam{{
			Content: []anthropic.ContentBlockParamUnion{{
				OfText: &anthropic.TextBlockParam{Text: prompt},
			}},
			Role: anthropic.MessageParamRoleUser,
		}},
	}
	if system != "" {
		params.System = []anthropic.TextBlockParam{{Text: system}}
	}
	if c.config.Temperature != nil {
		params.Temperature = anthropic.Float(float64(*c.config.Temperature))
	}
	return params
}

// Provider returns ProviderClaude
func (c *ClaudeClient) Provider() Provider {
	return ProviderClaude
}

// Model returns the model name used for requests
func (c *ClaudeClient) Model() string {
	return c.config.GetModel()
}

// Close is a no-op for the HTTP-based Anthropic client
func (c *ClaudeClient) Close() error {
	return nil
}

// buildSystemPrompt appends the JSON Schema instruction to the system instruction.
func buildSystemPrompt(req Request) (string, error) {
	if req.Schema == nil {
		return req.SystemInstruction, nil
	}

	schemaJSON, err := json.MarshalIndent(req.Schema.JSONSchema(), "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to render response schema: %w", err)
	}

	instruction := prompts.Format(schemaInstruction, map[string]string{"Schema": string(schemaJSON)})

	if req.SystemInstruction == "" {
		return instruction, nil
	}
	return req.SystemInstruction + "\n\n" + instruction, nil
}
