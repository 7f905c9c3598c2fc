package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, key := range []string{
		"ANTHROPIC_API_KEY", "ANTHROPIC_BASE_URL", "ANTHROPIC_MODEL",
		"ANTHROPIC_MAX_TOKENS", "ANTHROPIC_TEMPERATURE", "ANTHROPIC_TIMEOUT",
		"SCRAPE_ENABLED", "SCRAPE_TIMEOUT", "SCRAPE_MAX_CONCURRENT",
		"BATCH_MAX_CONCURRENT", "OUTPUT_DIR",
	} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	assert.Equal(t, "https://api.anthropic.com/v1", cfg.LLM.BaseURL)
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.Equal(t, float32(0.1), cfg.LLM.Temperature)
	assert.Equal(t, 60*time.Second, cfg.LLM.Timeout)
	assert.True(t, cfg.Scrape.Enabled)
	assert.Equal(t, 5, cfg.Scrape.MaxConcurrent)
	assert.Equal(t, 3, cfg.Batch.MaxConcurrent)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "sk-test")
	t.Setenv("ANTHROPIC_MAX_TOKENS", "512")
	t.Setenv("SCRAPE_ENABLED", "false")
	t.Setenv("SCRAPE_TIMEOUT", "3s")
	t.Setenv("BATCH_MAX_CONCURRENT", "8")

	cfg := LoadConfig()
	assert.Equal(t, "sk-test", cfg.LLM.APIKey)
	assert.Equal(t, 512, cfg.LLM.MaxTokens)
	assert.False(t, cfg.Scrape.Enabled)
	assert.Equal(t, 3*time.Second, cfg.Scrape.Timeout)
	assert.Equal(t, 8, cfg.Batch.MaxConcurrent)
}

func TestLoadConfig_MalformedValuesFallBack(t *testing.T) {
	t.Setenv("ANTHROPIC_MAX_TOKENS", "viele")
	t.Setenv("SCRAPE_ENABLED", "jein")
	t.Setenv("SCRAPE_TIMEOUT", "bald")

	cfg := LoadConfig()
	assert.Equal(t, 2000, cfg.LLM.MaxTokens)
	assert.True(t, cfg.Scrape.Enabled)
	assert.Equal(t, 10*time.Second, cfg.Scrape.Timeout)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			LLM:    LLMConfig{APIKey: "sk-test"},
			Scrape: ScrapeConfig{MaxConcurrent: 5},
			Batch:  BatchConfig{MaxConcurrent: 3},
		}
	}

	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.LLM.APIKey = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Scrape.MaxConcurrent = 0
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Batch.MaxConcurrent = 0
	assert.Error(t, cfg.Validate())
}
