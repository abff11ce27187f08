package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/yungbote/blogwriter-backend/internal/http"
	httpH "github.com/yungbote/blogwriter-backend/internal/http/handlers"
	blogmod "github.com/yungbote/blogwriter-backend/internal/modules/blog"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/generation"
	"github.com/yungbote/blogwriter-backend/internal/modules/blog/writers"
	"github.com/yungbote/blogwriter-backend/internal/observability"
	"github.com/yungbote/blogwriter-backend/internal/platform/gemini"
	"github.com/yungbote/blogwriter-backend/internal/platform/llm"
	"github.com/yungbote/blogwriter-backend/internal/platform/logger"
	"github.com/yungbote/blogwriter-backend/internal/platform/openai"
	"github.com/yungbote/blogwriter-backend/internal/platform/redislimit"
)

type App struct {
	Log    *logger.Logger
	Cfg    Config
	Blog   blogmod.Usecases
	Router *gin.Engine

	redis        *redis.Client
	otelShutdown func(context.Context) error
}

// New wires the application from cfg. Backend credentials are only required when withBackend
// is set, so prompt rendering works offline.
func New(ctx context.Context, cfg Config, withBackend bool) (*App, error) {
	log, err := logger.NewWithLevel(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	a := &App{Log: log, Cfg: cfg}
	a.otelShutdown = observability.InitOTel(ctx, log, cfg.Otel)
	metrics := observability.Init()

	var gen *generation.Client
	if withBackend {
		if err := cfg.ValidateBackend(); err != nil {
			a.Close()
			return nil, err
		}
		backend, err := wireBackend(ctx, log, cfg)
		if err != nil {
			a.Close()
			return nil, err
		}
		var extra []generation.Option
		if cfg.Redis.PerMinute > 0 {
			limiter, rdb, err := redislimit.New(cfg.Redis)
			if err != nil {
				a.Close()
				return nil, fmt.Errorf("init redis limiter: %w", err)
			}
			a.redis = rdb
			extra = append(extra, generation.WithRateLimiter(limiter))
			log.Info("LLM rate limit enabled", "per_minute", cfg.Redis.PerMinute, "redis_addr", cfg.Redis.Addr)
		}
		gen = generation.NewClient(log, backend, generation.Options{
			Temperature:     cfg.Generation.Temperature,
			MaxOutputTokens: cfg.Generation.MaxOutputTokens,
			Concurrency:     cfg.Generation.Concurrency,
			Timeout:         cfg.Generation.Timeout,
			MaxAttempts:     cfg.Generation.MaxAttempts,
			BaseBackoff:     cfg.Generation.BaseBackoff,
			MaxBackoff:      cfg.Generation.MaxBackoff,
		}, extra...)
		log.Info("Generative backend ready", "backend", backend.Name())
	}

	a.Blog = blogmod.New(blogmod.UsecasesDeps{
		Log:              log,
		Writers:          writers.DefaultRegistry(),
		Gen:              gen,
		BatchConcurrency: cfg.Generation.BatchConcurrency,
	})

	a.Router = http.NewRouter(http.RouterConfig{
		Log:           log,
		Metrics:       metrics,
		ServiceName:   cfg.Otel.ServiceName,
		CORSOrigins:   cfg.CORSOrigins,
		BlogHandler:   httpH.NewBlogHandler(a.Blog),
		HealthHandler: httpH.NewHealthHandler(),
	})
	return a, nil
}

func wireBackend(ctx context.Context, log *logger.Logger, cfg Config) (llm.Backend, error) {
	switch cfg.Provider {
	case ProviderGemini:
		c, err := gemini.NewClient(ctx, log, cfg.Gemini)
		if err != nil {
			return nil, fmt.Errorf("init gemini: %w", err)
		}
		return c, nil
	default:
		c, err := openai.NewClient(log, cfg.OpenAI)
		if err != nil {
			return nil, fmt.Errorf("init openai: %w", err)
		}
		return c, nil
	}
}

// Run serves HTTP until ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	if a == nil || a.Router == nil {
		return fmt.Errorf("app not initialized")
	}
	a.Log.Info("HTTP server listening", "addr", a.Cfg.HTTPAddr)
	return (&http.Server{Engine: a.Router}).Run(ctx, a.Cfg.HTTPAddr)
}

func (a *App) Close() {
	if a == nil {
		return
	}
	if a.redis != nil {
		_ = a.redis.Close()
		a.redis = nil
	}
	if a.otelShutdown != nil {
		if err := a.otelShutdown(context.Background()); err != nil && a.Log != nil {
			a.Log.Warn("otel shutdown failed", "error", err)
		}
		a.otelShutdown = nil
	}
	if a.Log != nil {
		a.Log.Sync()
	}
}
