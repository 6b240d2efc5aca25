package config

import (
	"errors"
	"testing"
	"time"

	apperrors "github.com/Conceptual-Machines/soul-vamp/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"ENVIRONMENT", "OUTPUT_DIR", "LLM_PROVIDER", "LLM_MODEL", "PARAMS_TIMEOUT",
		"ENTROPY_URL", "ENTROPY_TIMEOUT", "ENTROPY_ENABLED", "LANGFUSE_ENABLED",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, ".", cfg.OutputDir)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.ModelName())
	assert.Equal(t, time.Second, cfg.EntropyTimeout)
	assert.Equal(t, 60*time.Second, cfg.ParamsTimeout)
	assert.True(t, cfg.EntropyEnabled)
	assert.False(t, cfg.LangfuseEnabled)
	assert.Contains(t, cfg.EntropyURL, "qrng.anu.edu.au")
	assert.False(t, cfg.IsProduction())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "OpenAI")
	t.Setenv("ENTROPY_TIMEOUT", "250ms")
	t.Setenv("ENTROPY_ENABLED", "false")
	t.Setenv("PARAMS_TIMEOUT", "not-a-duration")
	t.Setenv("LLM_MODEL", "")

	cfg := Load()
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, "gpt-5-mini", cfg.ModelName())
	assert.Equal(t, 250*time.Millisecond, cfg.EntropyTimeout)
	assert.False(t, cfg.EntropyEnabled)
	assert.Equal(t, 60*time.Second, cfg.ParamsTimeout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr error
	}{
		{"gemini with key", Config{Provider: ProviderGemini, GeminiAPIKey: "k"}, nil},
		{"gemini without key", Config{Provider: ProviderGemini}, apperrors.ErrMissingAPIKey},
		{"openai with key", Config{Provider: ProviderOpenAI, OpenAIAPIKey: "k"}, nil},
		{"openai without key", Config{Provider: ProviderOpenAI, GeminiAPIKey: "k"}, apperrors.ErrMissingAPIKey},
		{"unknown provider", Config{Provider: "claude"}, apperrors.ErrUnknownProvider},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.True(t, errors.Is(err, tt.wantErr))
		})
	}
}
