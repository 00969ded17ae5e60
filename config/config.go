// Package config loads the assistant configuration from an optional YAML
// file and the environment. Environment variables win over the file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	ai "github.com/agilbank/assistant"
)

// Defaults applied when neither the YAML file nor the environment sets a
// value.
const (
	DefaultProvider    = ai.ProviderGoogle
	DefaultModel       = "gemini-2.5-flash"
	DefaultTemperature = 0.3
	DefaultDataDir     = "data"
	DefaultMaxTurns    = 10
)

// ErrMissingAPIKey is returned when no API key is configured.
var ErrMissingAPIKey = errors.New("config: LLM_API_KEY is not set")

// Config holds everything the assistant needs to start.
type Config struct {
	Provider    ai.Provider `yaml:"provider"`
	Model       string      `yaml:"model"`
	APIKey      string      `yaml:"-"`
	Temperature float64     `yaml:"temperature"`
	MaxTokens   int         `yaml:"max_tokens"`
	DataDir     string      `yaml:"data_dir"`
	QuoteAPIURL string      `yaml:"quote_api_url"`
	MaxTurns    int         `yaml:"max_turns"`
}

// Load reads the YAML file at path (skipped when path is empty or the file
// does not exist), applies environment overrides, fills defaults and
// validates. The API key comes from the environment only; it never lives
// in the file.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Provider:    DefaultProvider,
		Model:       DefaultModel,
		Temperature: DefaultTemperature,
		DataDir:     DefaultDataDir,
		MaxTurns:    DefaultMaxTurns,
	}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Optional file; fall through to env and defaults.
		case err != nil:
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("config: parse %s: %w", path, err)
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		c.APIKey = v
	}
	if v := os.Getenv("LLM_MODEL_NAME"); v != "" {
		c.Model = v
	}
	if v := os.Getenv("LLM_PROVIDER"); v != "" {
		c.Provider = ai.Provider(v)
	}
	if v := os.Getenv("ASSISTANT_DATA_DIR"); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv("ASSISTANT_QUOTE_API_URL"); v != "" {
		c.QuoteAPIURL = v
	}
	if v := os.Getenv("ASSISTANT_MAX_TURNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.MaxTurns = n
		}
	}
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	switch c.Provider {
	case ai.ProviderGoogle, ai.ProviderOpenAI, ai.ProviderAnthropic:
	default:
		return fmt.Errorf("config: unknown provider %q (must be google, openai or anthropic)", c.Provider)
	}
	if c.MaxTurns <= 0 {
		return fmt.Errorf("config: max_turns must be positive, got %d", c.MaxTurns)
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("config: temperature must be between 0 and 2, got %v", c.Temperature)
	}
	return nil
}
