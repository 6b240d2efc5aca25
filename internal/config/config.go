package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	apperrors "github.com/Conceptual-Machines/soul-vamp/internal/errors"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	defaultGeminiModel = "gemini-2.5-flash"
	defaultOpenAIModel = "gpt-5-mini"

	// ANU quantum random numbers: one 32-byte hex block
	defaultEntropyURL = "https://qrng.anu.edu.au/API/jsonI.php?length=1&type=hex16&size=32"
)

// Config holds the composer configuration
type Config struct {
	// Environment
	Environment string
	OutputDir   string

	// Session leader
	Provider      string // "gemini" or "openai"
	Model         string // Empty selects the provider default
	GeminiAPIKey  string
	OpenAIAPIKey  string
	ParamsTimeout time.Duration

	// Entropy
	EntropyURL     string
	EntropyTimeout time.Duration
	EntropyEnabled bool

	// Observability
	SentryDSN         string
	LangfusePublicKey string
	LangfuseSecretKey string
	LangfuseHost      string
	LangfuseEnabled   bool
}

func Load() *Config {
	return &Config{
		Environment:       getEnv("ENVIRONMENT", "development"),
		OutputDir:         getEnv("OUTPUT_DIR", "."),
		Provider:          strings.ToLower(getEnv("LLM_PROVIDER", ProviderGemini)),
		Model:             getEnv("LLM_MODEL", ""),
		GeminiAPIKey:      getEnv("GEMINI_API_KEY", ""),
		OpenAIAPIKey:      getEnv("OPENAI_API_KEY", ""),
		ParamsTimeout:     getEnvDuration("PARAMS_TIMEOUT", 60*time.Second),
		EntropyURL:        getEnv("ENTROPY_URL", defaultEntropyURL),
		EntropyTimeout:    getEnvDuration("ENTROPY_TIMEOUT", time.Second),
		EntropyEnabled:    getEnvBool("ENTROPY_ENABLED", true),
		SentryDSN:         getEnv("SENTRY_DSN", ""),
		LangfusePublicKey: getEnv("LANGFUSE_PUBLIC_KEY", ""),
		LangfuseSecretKey: getEnv("LANGFUSE_SECRET_KEY", ""),
		LangfuseHost:      getEnv("LANGFUSE_HOST", "https://cloud.langfuse.com"),
		LangfuseEnabled:   getEnv("LANGFUSE_ENABLED", "false") == "true",
	}
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value != "" {
		return value
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// ModelName returns the configured model or the provider default
func (c *Config) ModelName() string {
	if c.Model != "" {
		return c.Model
	}
	if c.Provider == ProviderOpenAI {
		return defaultOpenAIModel
	}
	return defaultGeminiModel
}

// Validate checks that the selected session leader can be reached
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderGemini:
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("GEMINI_API_KEY: %w", apperrors.ErrMissingAPIKey)
		}
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("OPENAI_API_KEY: %w", apperrors.ErrMissingAPIKey)
		}
	default:
		return fmt.Errorf("%w: %s (allowed: gemini, openai)", apperrors.ErrUnknownProvider, c.Provider)
	}
	return nil
}

// IsProduction returns true when running in production
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
