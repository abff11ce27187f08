package app

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/yungbote/blogwriter-backend/internal/observability"
	"github.com/yungbote/blogwriter-backend/internal/platform/gemini"
	"github.com/yungbote/blogwriter-backend/internal/platform/openai"
	"github.com/yungbote/blogwriter-backend/internal/platform/redislimit"
)

const (
	ProviderOpenAI = "openai"
	ProviderGemini = "gemini"
)

type GenerationConfig struct {
	Temperature      float64
	MaxOutputTokens  int
	Concurrency      int64
	Timeout          time.Duration
	MaxAttempts      int
	BaseBackoff      time.Duration
	MaxBackoff       time.Duration
	BatchConcurrency int
}

type Config struct {
	LogMode     string
	LogLevel    string
	HTTPAddr    string
	CORSOrigins []string

	Provider   string
	OpenAI     openai.Config
	Gemini     gemini.Config
	Generation GenerationConfig
	Redis      redislimit.Config
	Otel       observability.OtelConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("CORS_ALLOW_ORIGINS", "")

	v.SetDefault("LLM_PROVIDER", ProviderOpenAI)
	v.SetDefault("OPENAI_BASE_URL", "https://api.openai.com")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_TIMEOUT_SECONDS", 180)
	v.SetDefault("OPENAI_NO_TEMPERATURE_MODELS", "")
	v.SetDefault("GEMINI_MODEL", "gemini-2.5-flash")

	v.SetDefault("BLOG_LLM_TEMPERATURE", 0.7)
	v.SetDefault("BLOG_LLM_MAX_OUTPUT_TOKENS", 4000)
	v.SetDefault("BLOG_LLM_CONCURRENCY", 4)
	v.SetDefault("BLOG_LLM_TIMEOUT_SECONDS", 120)
	v.SetDefault("BLOG_LLM_MAX_ATTEMPTS", 3)
	v.SetDefault("BLOG_LLM_BACKOFF_MS", 1000)
	v.SetDefault("BLOG_LLM_MAX_BACKOFF_MS", 10000)
	v.SetDefault("BLOG_BATCH_CONCURRENCY", 4)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("BLOG_LLM_RATE_PER_MINUTE", 0)

	v.SetDefault("OTEL_ENABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "blogwriter-backend")
	v.SetDefault("OTEL_ENVIRONMENT", "development")
	v.SetDefault("OTEL_SERVICE_VERSION", "dev")
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_HEADERS", "")
	v.SetDefault("OTEL_EXPORTER_OTLP_INSECURE", false)
	v.SetDefault("OTEL_TRACES_SAMPLER_ARG", 1.0)
}

// LoadConfig reads configuration from the environment, optionally layered over the file
// named by BLOGWRITER_CONFIG. Environment variables win.
func LoadConfig() (Config, error) {
	return loadConfig(viper.New())
}

func loadConfig(v *viper.Viper) (Config, error) {
	setDefaults(v)
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString("BLOGWRITER_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		LogMode:     v.GetString("LOG_MODE"),
		LogLevel:    v.GetString("LOG_LEVEL"),
		HTTPAddr:    v.GetString("HTTP_ADDR"),
		CORSOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		Provider:    strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
		OpenAI: openai.Config{
			APIKey:              v.GetString("OPENAI_API_KEY"),
			BaseURL:             v.GetString("OPENAI_BASE_URL"),
			Model:               v.GetString("OPENAI_MODEL"),
			Timeout:             time.Duration(v.GetInt("OPENAI_TIMEOUT_SECONDS")) * time.Second,
			NoTemperatureModels: v.GetString("OPENAI_NO_TEMPERATURE_MODELS"),
		},
		Gemini: gemini.Config{
			APIKey: v.GetString("GEMINI_API_KEY"),
			Model:  v.GetString("GEMINI_MODEL"),
		},
		Generation: GenerationConfig{
			Temperature:      v.GetFloat64("BLOG_LLM_TEMPERATURE"),
			MaxOutputTokens:  v.GetInt("BLOG_LLM_MAX_OUTPUT_TOKENS"),
			Concurrency:      v.GetInt64("BLOG_LLM_CONCURRENCY"),
			Timeout:          time.Duration(v.GetInt("BLOG_LLM_TIMEOUT_SECONDS")) * time.Second,
			MaxAttempts:      v.GetInt("BLOG_LLM_MAX_ATTEMPTS"),
			BaseBackoff:      time.Duration(v.GetInt("BLOG_LLM_BACKOFF_MS")) * time.Millisecond,
			MaxBackoff:       time.Duration(v.GetInt("BLOG_LLM_MAX_BACKOFF_MS")) * time.Millisecond,
			BatchConcurrency: v.GetInt("BLOG_BATCH_CONCURRENCY"),
		},
		Redis: redislimit.Config{
			Addr:      v.GetString("REDIS_ADDR"),
			Password:  v.GetString("REDIS_PASSWORD"),
			DB:        v.GetInt("REDIS_DB"),
			PerMinute: v.GetInt("BLOG_LLM_RATE_PER_MINUTE"),
		},
		Otel: observability.OtelConfig{
			Enabled:     v.GetBool("OTEL_ENABLED"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
			Environment: v.GetString("OTEL_ENVIRONMENT"),
			Version:     v.GetString("OTEL_SERVICE_VERSION"),
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Headers:     v.GetString("OTEL_EXPORTER_OTLP_HEADERS"),
			Insecure:    v.GetBool("OTEL_EXPORTER_OTLP_INSECURE"),
			SampleRatio: v.GetFloat64("OTEL_TRACES_SAMPLER_ARG"),
		},
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	switch c.Provider {
	case ProviderOpenAI, ProviderGemini:
	default:
		errs = append(errs, fmt.Errorf("LLM_PROVIDER must be %q or %q, got %q", ProviderOpenAI, ProviderGemini, c.Provider))
	}
	if c.Generation.Temperature <= 0 || c.Generation.Temperature > 2 {
		errs = append(errs, fmt.Errorf("BLOG_LLM_TEMPERATURE out of range: %v", c.Generation.Temperature))
	}
	if c.Generation.MaxAttempts < 1 {
		errs = append(errs, errors.New("BLOG_LLM_MAX_ATTEMPTS must be at least 1"))
	}
	if c.Generation.Concurrency < 1 {
		errs = append(errs, errors.New("BLOG_LLM_CONCURRENCY must be at least 1"))
	}
	if c.Generation.BatchConcurrency < 1 {
		errs = append(errs, errors.New("BLOG_BATCH_CONCURRENCY must be at least 1"))
	}
	if c.Redis.PerMinute > 0 && strings.TrimSpace(c.Redis.Addr) == "" {
		errs = append(errs, errors.New("BLOG_LLM_RATE_PER_MINUTE requires REDIS_ADDR"))
	}
	return errors.Join(errs...)
}

// ValidateBackend checks the credentials of the selected provider. Commands that never call
// the backend (prompt, writers) skip it.
func (c Config) ValidateBackend() error {
	switch c.Provider {
	case ProviderGemini:
		if strings.TrimSpace(c.Gemini.APIKey) == "" {
			return errors.New("GEMINI_API_KEY is required when LLM_PROVIDER=gemini")
		}
	default:
		if strings.TrimSpace(c.OpenAI.APIKey) == "" {
			return errors.New("OPENAI_API_KEY is required when LLM_PROVIDER=openai")
		}
	}
	return nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
