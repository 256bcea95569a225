package middlewares

import (
	"log/slog"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"userapp/internal/core/telemetry"
	"userapp/pkg/config"
	"userapp/pkg/logging"
	"userapp/pkg/ratelimit"
	"userapp/pkg/response"
)

func MetricsMiddleware(metrics *telemetry.AppMetrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		metrics.IncrementActiveConnections(c.Request.Context())
		defer metrics.DecrementActiveConnections(c.Request.Context())

		c.Next()

		duration := time.Since(start)
		status := c.Writer.Status()

		metrics.RecordRequest(
			c.Request.Context(),
			c.Request.Method,
			c.FullPath(),
			strconv.Itoa(status),
			duration,
		)
	}
}

// SetupGinMiddleware wires tracing, logging, metrics, rate limiting and the
// response cache in that order.
func SetupGinMiddleware(router *gin.Engine, serviceName string, metrics *telemetry.AppMetrics, logger *logging.LokiLogger, cfg *config.AppConfig) {
	router.Use(otelgin.Middleware(serviceName))

	if logger != nil {
		router.Use(LoggingMiddleware(logger))
	}

	if metrics != nil {
		router.Use(MetricsMiddleware(metrics))
	}

	if cfg.RateLimitEnabled {
		store := newRateLimitStore()
		limiter := ratelimit.NewRateLimiter(store, cfg.RateLimitConfigs, metrics)
		router.Use(limiter.Middleware())
	}

	if cfg.CacheEnabled {
		responseCache := response.NewResponseCache(cfg.CacheConfigs, metrics)
		router.Use(responseCache.Middleware())
	}
}

func newRateLimitStore() ratelimit.Store {
	addr := config.GetRedisAddr()

	if addr == "" {
		return ratelimit.NewMemoryStore()
	}

	store, err := ratelimit.NewRedisStore(addr)

	if err != nil {
		slog.Error("Redis unavailable, falling back to in-memory rate limiting", "addr", addr, "error", err)
		return ratelimit.NewMemoryStore()
	}

	return store
}
