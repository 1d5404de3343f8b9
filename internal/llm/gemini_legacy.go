package llm

import (
	"context"
	"fmt"
	"strings"

	legacygenai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// LegacyGeminiClient implements Client for Google Gemini on the generative-ai-go SDK
type LegacyGeminiClient struct {
	client *legacygenai.Client
	config *Config
}

// NewLegacyGeminiClient creates a new Gemini client on the older SDK
func NewLegacyGeminiClient(ctx context.Context, config *Config, apiKey string) (*LegacyGeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := legacygenai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &LegacyGeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateJSON asks the model for a JSON reply constrained by req.Schema
func (c *LegacyGeminiClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel()
	if modelName == "" {
		return "", fmt.Errorf("no model configured for provider %s", c.config.Provider)
	}

	model := c.client.GenerativeModel(modelName)
	if c.config.Temperature != nil {
		model.SetTemperature(*c.config.Temperature)
	}
	if c.config.MaxOutputTokens > 0 {
		model.SetMaxOutputTokens(c.config.MaxOutputTokens)
	}
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = toLegacySchema(req.Schema)
	if req.SystemInstruction != "" {
		model.SystemInstruction = &legacygenai.Content{
			Parts: []legacygenai.Part{legacygenai.Text(req.SystemInstruction)},
		}
	}

	resp, err := model.GenerateContent(ctx, legacygenai.Text(req.Prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return "", err
	}

	// Clean any markdown code block wrappers
	return CleanJSONBlock(text), nil
}

// Provider returns ProviderGeminiLegacy
func (c *LegacyGeminiClient) Provider() Provider {
	return ProviderGeminiLegacy
}

// Model returns the model name used for requests
func (c *LegacyGeminiClient) Model() string {
	return c.config.GetModel()
}

// Close releases resources held by the client
func (c *LegacyGeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *legacygenai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response: %w", ErrEmptyResponse)
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response: %w", ErrEmptyResponse)
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(legacygenai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	text := strings.Join(parts, "")
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("no text parts in response: %w", ErrEmptyResponse)
	}

	return text, nil
}

// toLegacySchema converts a Schema to the generative-ai-go representation.
func toLegacySchema(s *Schema) *legacygenai.Schema {
	if s == nil {
		return nil
	}

	out := &legacygenai.Schema{
		Type:        legacyType(s.Type),
		Description: s.Description,
		Nullable:    s.Nullable,
		Required:    s.Required,
	}
	if s.Items != nil {
		out.Items = toLegacySchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*legacygenai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toLegacySchema(prop)
		}
	}
	return out
}

func legacyType(t SchemaType) legacygenai.Type {
	switch t {
	case TypeObject:
		return legacygenai.TypeObject
	case TypeArray:
		return legacygenai.TypeArray
	default:
		return legacygenai.TypeString
	}
}
