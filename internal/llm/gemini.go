package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

// GeminiClient implements Client for Google Gemini on the google.golang.org/genai SDK
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		client: client,
		config: config,
	}, nil
}

// GenerateJSON asks the model for a JSON reply constrained by req.Schema
func (c *GeminiClient) GenerateJSON(ctx context.Context, req Request) (string, error) {
	modelName := c.config.GetModel()
	if modelName == "" {
		return "", fmt.Errorf("no model configured for provider %s", c.config.Provider)
	}

	resp, err := c.client.Models.GenerateContent(ctx, modelName, genai.Text(req.Prompt), c.contentConfig(req))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyResponse
	}

	return CleanJSONBlock(text), nil
}

// contentConfig builds the per-request generation config.
func (c *GeminiClient) contentConfig(req Request) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   toGenAISchema(req.Schema),
	}
	if req.SystemInstruction != "" {
		cfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: req.SystemInstruction}}}
	}
	if c.config.Temperature != nil {
		cfg.Temperature = genai.Ptr(*c.config.Temperature)
	}
	if c.config.MaxOutputTokens > 0 {
		cfg.MaxOutputTokens = c.config.MaxOutputTokens
	}
	return cfg
}

// Provider returns ProviderGemini
func (c *GeminiClient) Provider() Provider {
	return ProviderGemini
}

// Model returns the model name used for requests
func (c *GeminiClient) Model() string {
	return c.config.GetModel()
}

// Close is a no-op; the genai client holds no resources that need releasing
func (c *GeminiClient) Close() error {
	return nil
}

// toGenAISchema converts a Schema to the genai SDK representation.
func toGenAISchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genAIType(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}
	if s.Nullable {
		out.Nullable = genai.Ptr(true)
	}
	if s.Items != nil {
		out.Items = toGenAISchema(s.Items)
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
	}
	return out
}

func genAIType(t SchemaType) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeArray:
		return genai.TypeArray
	default:
		return genai.TypeString
	}
}
