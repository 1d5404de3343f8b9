package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resumate/internal/llm"
)

var envKeys = []string{
	"API_KEY", "GEMINI_API_KEY", "LLM_API_KEY", "LLM_PROVIDER", "LLM_MODEL",
	"LLM_TIMEOUT", "HOST", "PORT", "LOG_LEVEL", "LOG_FORMAT", "TEST_CONFIG_KEY",
}

// clearEnv blanks every variable LoadConfig reads; empty values are ignored.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range envKeys {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadConfig_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address())
	assert.Zero(t, cfg.LLM.Timeout)
}

func TestLoadConfig_MissingFileIsNotAnError(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadConfig_YAML(t *testing.T) {
	clearEnv(t)
	t.Setenv("TEST_CONFIG_KEY", "yaml-secret")

	path := writeConfig(t, `
server:
  port: 9090
  shutdown_timeout: 3s
llm:
  provider: claude
  api_key: ${TEST_CONFIG_KEY}
  model: claude-test
  temperature: 0.2
  max_output_tokens: 512
  timeout: 45s
logging:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host, "unset keys keep defaults")
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "claude", cfg.LLM.Provider)
	assert.Equal(t, "yaml-secret", cfg.LLM.APIKey)
	assert.Equal(t, "claude-test", cfg.LLM.Model)
	require.NotNil(t, cfg.LLM.Temperature)
	assert.InDelta(t, 0.2, *cfg.LLM.Temperature, 1e-6)
	assert.Equal(t, int32(512), cfg.LLM.MaxOutputTokens)
	assert.Equal(t, 45*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_UnsetVariableExpandsEmpty(t *testing.T) {
	clearEnv(t)

	path := writeConfig(t, "llm:\n  api_key: ${TEST_CONFIG_KEY}\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Empty(t, cfg.LLM.APIKey)
	assert.Error(t, cfg.Validate())
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	clearEnv(t)

	cfg, err := LoadConfig(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config YAML")
}

func TestLoadConfig_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_PROVIDER", "gemini-legacy")
	t.Setenv("LLM_MODEL", "gemini-env")
	t.Setenv("LLM_TIMEOUT", "15s")
	t.Setenv("HOST", "127.0.0.1")
	t.Setenv("PORT", "3000")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig(writeConfig(t, "llm:\n  provider: claude\nserver:\n  port: 9090\n"))
	require.NoError(t, err)

	assert.Equal(t, "gemini-legacy", cfg.LLM.Provider)
	assert.Equal(t, "gemini-env", cfg.LLM.Model)
	assert.Equal(t, 15*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "127.0.0.1:3000", cfg.Address())
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadConfig_APIKeyPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "plain")

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "plain", cfg.LLM.APIKey)

	t.Setenv("GEMINI_API_KEY", "gemini")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.LLM.APIKey)

	t.Setenv("LLM_API_KEY", "llm")
	cfg, err = LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "llm", cfg.LLM.APIKey)
}

func TestLoadConfig_BadEnvValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "eighty")
	_, err := LoadConfig("")
	assert.ErrorContains(t, err, "invalid PORT")

	clearEnv(t)
	t.Setenv("LLM_TIMEOUT", "soon")
	_, err = LoadConfig("")
	assert.ErrorContains(t, err, "invalid LLM_TIMEOUT")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := Default()
		cfg.LLM.APIKey = "key"
		return cfg
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"missing api key", func(c *Config) { c.LLM.APIKey = "" }, "APIKey"},
		{"unknown provider", func(c *Config) { c.LLM.Provider = "openai" }, "Provider"},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, "Port"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "Port"},
		{"bad log level", func(c *Config) { c.Logging.Level = "loud" }, "Level"},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, "Format"},
		{"negative timeout", func(c *Config) { c.LLM.Timeout = -time.Second }, "Timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "config error")
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestClientConfig(t *testing.T) {
	temp := float32(0.5)
	cfg := Default()
	cfg.LLM.Provider = "claude"
	cfg.LLM.Model = "claude-test"
	cfg.LLM.Temperature = &temp
	cfg.LLM.MaxOutputTokens = 256

	client := cfg.ClientConfig()
	assert.Equal(t, llm.ProviderClaude, client.Provider)
	assert.Equal(t, "claude-test", client.GetModel())
	assert.Equal(t, &temp, client.Temperature)
	assert.Equal(t, int32(256), client.MaxOutputTokens)
}
