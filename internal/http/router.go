package http

import (
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	httpH "github.com/yungbote/blogwriter-backend/internal/http/handlers"
	httpMW "github.com/yungbote/blogwriter-backend/internal/http/middleware"
	"github.com/yungbote/blogwriter-backend/internal/observability"
	"github.com/yungbote/blogwriter-backend/internal/platform/logger"
)

type RouterConfig struct {
	Log         *logger.Logger
	Metrics     *observability.Metrics
	ServiceName string
	CORSOrigins []string

	BlogHandler   *httpH.BlogHandler
	HealthHandler *httpH.HealthHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.ServiceName != "" {
		r.Use(otelgin.Middleware(cfg.ServiceName))
	}
	r.Use(httpMW.AttachTraceContext())
	r.Use(httpMW.RequestLogger(cfg.Log))
	r.Use(httpMW.Metrics(cfg.Metrics))
	r.Use(httpMW.CORS(cfg.CORSOrigins))

	// Health
	if cfg.HealthHandler != nil {
		r.GET("/healthcheck", cfg.HealthHandler.HealthCheck)
	}

	api := r.Group("/api")
	{
		// Blog writers
		if cfg.BlogHandler != nil {
			api.GET("/blog/writers", cfg.BlogHandler.ListWriters)
			api.POST("/blog/prompt", cfg.BlogHandler.Prompt)
			api.POST("/blog/generate", cfg.BlogHandler.Generate)
			api.POST("/blog/generate/batch", cfg.BlogHandler.GenerateBatch)
		}
	}

	return r
}
