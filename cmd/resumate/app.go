package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jonathan/resumate/internal/config"
	"github.com/jonathan/resumate/internal/generation"
	"github.com/jonathan/resumate/internal/llm"
)

var (
	configPath    string
	flagProvider  string
	flagModel     string
	flagAPIKey    string
	flagLogLevel  string
	flagLogFormat string
	flagTimeout   time.Duration
)

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", config.DefaultPath, "Path to YAML config file (optional)")
	flags.StringVar(&flagProvider, "provider", "", "LLM provider: gemini, gemini-legacy or claude (overrides LLM_PROVIDER)")
	flags.StringVar(&flagModel, "model", "", "Model name (overrides LLM_MODEL)")
	flags.StringVar(&flagAPIKey, "api-key", "", "Provider API key (overrides LLM_API_KEY, GEMINI_API_KEY and API_KEY)")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level (overrides LOG_LEVEL)")
	flags.StringVar(&flagLogFormat, "log-format", "", "Log format: json or text (overrides LOG_FORMAT)")
	flags.DurationVar(&flagTimeout, "timeout", 0, "Upstream call timeout, 0 for none (overrides LLM_TIMEOUT)")
}

// loadConfig loads file and environment configuration, applies explicitly set flags, and validates.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	applyFlags(cmd, cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags copies flags the user set onto cfg. Unset flags leave file and env values alone.
func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.LLM.Provider = flagProvider
	}
	if flags.Changed("model") {
		cfg.LLM.Model = flagModel
	}
	if flags.Changed("api-key") {
		cfg.LLM.APIKey = flagAPIKey
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = flagLogLevel
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = flagLogFormat
	}
	if flags.Changed("timeout") {
		cfg.LLM.Timeout = flagTimeout
	}
	if flags.Changed("host") {
		cfg.Server.Host = serveHost
	}
	if flags.Changed("port") {
		cfg.Server.Port = servePort
	}
}

// newGenerator builds the upstream client and the adapter over it.
// The returned close func releases the client. Tests replace this.
var newGenerator = func(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (generation.Generator, func() error, error) {
	client, err := llm.NewClient(ctx, cfg.ClientConfig(), cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	adapter, err := generation.NewAdapter(client, logger, generation.WithTimeout(cfg.LLM.Timeout))
	if err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("failed to create generator: %w", err)
	}

	return adapter, client.Close, nil
}
