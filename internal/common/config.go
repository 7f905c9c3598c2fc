package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	LLM    LLMConfig
	Scrape ScrapeConfig
	Batch  BatchConfig
}

// LLMConfig holds vision-model configuration
type LLMConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float32
	Timeout     time.Duration
}

// ScrapeConfig holds enrichment-fetch configuration
type ScrapeConfig struct {
	Enabled       bool
	Timeout       time.Duration
	MaxConcurrent int
	UserAgent     string
}

// BatchConfig holds batch-orchestration configuration
type BatchConfig struct {
	MaxConcurrent int
	OutputDir     string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			APIKey:      getEnv("ANTHROPIC_API_KEY", ""),
			BaseURL:     getEnv("ANTHROPIC_BASE_URL", "https://api.anthropic.com/v1"),
			Model:       getEnv("ANTHROPIC_MODEL", "claude-3-5-sonnet-20241022"),
			MaxTokens:   getEnvAsInt("ANTHROPIC_MAX_TOKENS", 2000),
			Temperature: getEnvAsFloat32("ANTHROPIC_TEMPERATURE", 0.1),
			Timeout:     getEnvAsDuration("ANTHROPIC_TIMEOUT", 60*time.Second),
		},
		Scrape: ScrapeConfig{
			Enabled:       getEnvAsBool("SCRAPE_ENABLED", true),
			Timeout:       getEnvAsDuration("SCRAPE_TIMEOUT", 10*time.Second),
			MaxConcurrent: getEnvAsInt("SCRAPE_MAX_CONCURRENT", 5),
			UserAgent:     getEnv("SCRAPE_USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"),
		},
		Batch: BatchConfig{
			MaxConcurrent: getEnvAsInt("BATCH_MAX_CONCURRENT", 3),
			OutputDir:     getEnv("OUTPUT_DIR", ""),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "ANTHROPIC_API_KEY is required", ErrInvalidInput)
	}
	if c.Scrape.MaxConcurrent < 1 {
		return NewAppError("CONFIG_ERROR", "SCRAPE_MAX_CONCURRENT must be at least 1", ErrInvalidInput)
	}
	if c.Batch.MaxConcurrent < 1 {
		return NewAppError("CONFIG_ERROR", "BATCH_MAX_CONCURRENT must be at least 1", ErrInvalidInput)
	}
	return nil
}
