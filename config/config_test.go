package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/agilbank/assistant"
)

// clearEnv unsets every variable Load reads so tests see only what they set.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"LLM_API_KEY", "LLM_MODEL_NAME", "LLM_PROVIDER",
		"ASSISTANT_DATA_DIR", "ASSISTANT_QUOTE_API_URL", "ASSISTANT_MAX_TURNS",
	} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "test-key")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ai.ProviderGoogle, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, "test-key", cfg.APIKey)
	assert.InDelta(t, 0.3, cfg.Temperature, 1e-9)
	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, 10, cfg.MaxTurns)
}

func TestLoadMissingAPIKey(t *testing.T) {
	clearEnv(t)

	_, err := Load("")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingAPIKey)
}

func TestLoadYAMLFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"provider: anthropic\nmodel: claude-3-5-haiku-latest\ntemperature: 0.7\ndata_dir: /srv/bank-data\nmax_turns: 6\n",
	), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ai.ProviderAnthropic, cfg.Provider)
	assert.Equal(t, "claude-3-5-haiku-latest", cfg.Model)
	assert.InDelta(t, 0.7, cfg.Temperature, 1e-9)
	assert.Equal(t, "/srv/bank-data", cfg.DataDir)
	assert.Equal(t, 6, cfg.MaxTurns)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "test-key")
	t.Setenv("LLM_MODEL_NAME", "gemini-2.0-flash")
	t.Setenv("LLM_PROVIDER", "openai")
	t.Setenv("ASSISTANT_MAX_TURNS", "4")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: google\nmodel: from-file\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ai.ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gemini-2.0-flash", cfg.Model)
	assert.Equal(t, 4, cfg.MaxTurns)
}

func TestLoadMissingFileIsOptional(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "test-key")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
}

func TestLoadMalformedFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("LLM_API_KEY", "test-key")

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("provider: [not\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	t.Run("unknown provider", func(t *testing.T) {
		cfg := &Config{APIKey: "k", Provider: "vertex", MaxTurns: 10}
		assert.Error(t, cfg.Validate())
	})

	t.Run("non-positive max turns", func(t *testing.T) {
		cfg := &Config{APIKey: "k", Provider: ai.ProviderGoogle, MaxTurns: 0}
		assert.Error(t, cfg.Validate())
	})

	t.Run("temperature out of range", func(t *testing.T) {
		cfg := &Config{APIKey: "k", Provider: ai.ProviderGoogle, MaxTurns: 10, Temperature: 3}
		assert.Error(t, cfg.Validate())
	})
}
