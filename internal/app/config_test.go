package app

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ProviderOpenAI, cfg.Provider)
	assert.Equal(t, 0.7, cfg.Generation.Temperature)
	assert.Equal(t, 4000, cfg.Generation.MaxOutputTokens)
	assert.Equal(t, 120*time.Second, cfg.Generation.Timeout)
	assert.Equal(t, 3, cfg.Generation.MaxAttempts)
	assert.Equal(t, time.Second, cfg.Generation.BaseBackoff)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "Gemini")
	t.Setenv("BLOG_LLM_CONCURRENCY", "9")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example")
	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ProviderGemini, cfg.Provider)
	assert.Equal(t, int64(9), cfg.Generation.Concurrency)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blogwriter.yaml")
	require.NoError(t, os.WriteFile(path, []byte("OPENAI_MODEL: gpt-4.1-mini\nBLOG_LLM_MAX_ATTEMPTS: 5\n"), 0o600))
	t.Setenv("BLOGWRITER_CONFIG", path)
	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)
	assert.Equal(t, "gpt-4.1-mini", cfg.OpenAI.Model)
	assert.Equal(t, 5, cfg.Generation.MaxAttempts)
}

func TestLoadConfigValidation(t *testing.T) {
	t.Setenv("LLM_PROVIDER", "llama")
	t.Setenv("BLOG_LLM_RATE_PER_MINUTE", "60")
	_, err := loadConfig(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LLM_PROVIDER")
	assert.Contains(t, err.Error(), "REDIS_ADDR")
}

func TestLoadConfigRejectsNonPositiveConcurrency(t *testing.T) {
	t.Setenv("BLOG_LLM_CONCURRENCY", "0")
	t.Setenv("BLOG_BATCH_CONCURRENCY", "-2")
	t.Setenv("BLOG_LLM_TEMPERATURE", "0")
	_, err := loadConfig(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "BLOG_LLM_CONCURRENCY")
	assert.Contains(t, err.Error(), "BLOG_BATCH_CONCURRENCY")
	assert.Contains(t, err.Error(), "BLOG_LLM_TEMPERATURE")
}

func TestValidateBackendRequiresProviderKey(t *testing.T) {
	cfg, err := loadConfig(viper.New())
	require.NoError(t, err)

	cfg.Provider, cfg.OpenAI.APIKey = ProviderOpenAI, ""
	assert.ErrorContains(t, cfg.ValidateBackend(), "OPENAI_API_KEY")
	cfg.OpenAI.APIKey = "sk-test"
	assert.NoError(t, cfg.ValidateBackend())

	cfg.Provider, cfg.Gemini.APIKey = ProviderGemini, ""
	assert.ErrorContains(t, cfg.ValidateBackend(), "GEMINI_API_KEY")
	cfg.Gemini.APIKey = "g-test"
	assert.NoError(t, cfg.ValidateBackend())
}
