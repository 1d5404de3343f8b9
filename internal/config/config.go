// Package config provides configuration loading and validation for the server and CLI.
//
// Values are layered: built-in defaults, then an optional YAML file (with ${VAR}
// expansion), then environment variables. Command-line flags are applied by the
// caller on top of the loaded Config.
package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resumate/internal/llm"
)

// DefaultPath is the config file read when no path is given.
const DefaultPath = "configs/config.yaml"

// Config represents the application configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	LLM     LLMConfig     `yaml:"llm"`
	Logging LoggingConfig `yaml:"logging"`
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Host            string        `yaml:"host"`
	Port            int           `yaml:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" validate:"min=0"`
	WriteTimeout    time.Duration `yaml:"write_timeout" validate:"min=0"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"min=0"`
	// BodyLimit uses echo's size notation, e.g. "1M"
	BodyLimit string `yaml:"body_limit" validate:"required"`
}

// LLMConfig holds upstream model settings
type LLMConfig struct {
	Provider        string        `yaml:"provider" validate:"oneof=gemini gemini-legacy claude"`
	APIKey          string        `yaml:"api_key" validate:"required"`
	Model           string        `yaml:"model"`
	Temperature     *float32      `yaml:"temperature" validate:"omitempty,min=0,max=2"`
	MaxOutputTokens int32         `yaml:"max_output_tokens" validate:"min=0"`
	Timeout         time.Duration `yaml:"timeout" validate:"min=0"`
}

// LoggingConfig holds logger settings
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `yaml:"format" validate:"oneof=json text"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			BodyLimit:       "1M",
		},
		LLM: LLMConfig{
			Provider: string(llm.ProviderGemini),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// expandEnvVars expands ${VAR} references. Unset variables expand to "".
func expandEnvVars(s string) string {
	return envVarPattern.ReplaceAllStringFunc(s, func(match string) string {
		return os.Getenv(match[2 : len(match)-1])
	})
}

// LoadConfig loads configuration from defaults, an optional YAML file and the environment.
// A missing file is not an error; an unreadable or malformed one is.
func LoadConfig(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		default:
			if err := yaml.Unmarshal([]byte(expandEnvVars(string(data))), cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config YAML: %w", err)
			}
		}
	}

	if err := cfg.loadFromEnv(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromEnv overrides values from environment variables
func (c *Config) loadFromEnv() error {
	// Later keys win
	for _, key := range []string{"API_KEY", "GEMINI_API_KEY", "LLM_API_KEY"} {
		if v := os.Getenv(key); v != "" {
			c.LLM.APIKey = v
		}
	}

	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.LLM.Provider = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		c.LLM.Model = v
	}
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLM.Timeout = d
	}

	if v := os.Getenv("HOST"); v != "" {
		c.Server.Host = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}

	return nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return fmt.Errorf("config error: %s failed %q check", verrs[0].Namespace(), verrs[0].Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Address returns host:port for the HTTP listener
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ClientConfig returns the llm.Config for building the upstream client.
func (c *Config) ClientConfig() *llm.Config {
	return &llm.Config{
		Provider:        llm.Provider(c.LLM.Provider),
		Model:           c.LLM.Model,
		Temperature:     c.LLM.Temperature,
		MaxOutputTokens: c.LLM.MaxOutputTokens,
	}
}
