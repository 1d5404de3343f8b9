// Package llm provides the upstream text-generation clients behind a single capability interface.
// Each provider is a swappable transport; callers only see Client.
package llm

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini is Google Gemini through the google.golang.org/genai SDK
	ProviderGemini Provider = "gemini"
	// ProviderGeminiLegacy is Google Gemini through the older generative-ai-go SDK
	ProviderGeminiLegacy Provider = "gemini-legacy"
	// ProviderClaude is Anthropic Claude
	ProviderClaude Provider = "claude"
)

// defaultModels holds the model used when none is configured.
var defaultModels = map[Provider]string{
	ProviderGemini:       "gemini-2.5-flash",
	ProviderGeminiLegacy: "gemini-2.5-flash",
	ProviderClaude:       "claude-3-7-sonnet-latest",
}

// defaultClaudeMaxTokens is used because the Messages API requires max_tokens.
const defaultClaudeMaxTokens = 1024

// Config holds the model configuration for the upstream client
type Config struct {
	Provider Provider
	Model    string
	// Temperature is left to the provider default when nil.
	Temperature *float32
	// MaxOutputTokens is left to the provider default when zero.
	MaxOutputTokens int32
}

// DefaultConfig returns the default configuration (Gemini on the current SDK)
func DefaultConfig() *Config {
	return &Config{Provider: ProviderGemini}
}

// SupportedProviders lists the providers NewClient can build.
func SupportedProviders() []Provider {
	return []Provider{ProviderGemini, ProviderGeminiLegacy, ProviderClaude}
}

// DefaultModel returns the default model name for a provider, or "" if unknown.
func DefaultModel(p Provider) string {
	return defaultModels[p]
}

// GetModel returns the configured model, falling back to the provider default
func (c *Config) GetModel() string {
	if c.Model != "" {
		return c.Model
	}
	return DefaultModel(c.Provider)
}

// WithModel returns a new Config with a specific model
func (c *Config) WithModel(model string) *Config {
	newConfig := *c
	if c.Temperature != nil {
		t := *c.Temperature
		newConfig.Temperature = &t
	}
	newConfig.Model = model
	return &newConfig
}
