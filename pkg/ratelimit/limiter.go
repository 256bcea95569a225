package ratelimit

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"userapp/internal/core/telemetry"
	"userapp/pkg/config"
)

type Decision struct {
	Allowed   bool
	Count     int
	WindowEnd time.Time
}

// Store counts requests per key inside a window. Implementations must fail
// open: an unavailable backend never blocks traffic.
type Store interface {
	Allow(key string, limit int, window time.Duration) Decision
	Close()
}

type RateLimiter struct {
	store   Store
	configs map[string]config.RateLimitConfig
	metrics *telemetry.AppMetrics
}

func NewRateLimiter(store Store, configs map[string]config.RateLimitConfig, metrics *telemetry.AppMetrics) *RateLimiter {
	return &RateLimiter{
		store:   store,
		configs: configs,
		metrics: metrics,
	}
}

func (rl *RateLimiter) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		cfg, exists := rl.configs[c.Request.Method+" "+path]

		if !exists {
			cfg, exists = rl.configs[path]
		}

		if !exists {
			cfg, exists = rl.configs["default"]
		}

		if !exists {
			c.Next()
			return
		}

		key := c.Request.Method + ":" + path + ":" + c.ClientIP()
		decision := rl.store.Allow(key, cfg.Requests, cfg.Window)

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.Requests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(max(cfg.Requests-decision.Count, 0)))

		if !decision.Allowed {
			if rl.metrics != nil {
				rl.metrics.RecordRateLimitHit(c.Request.Context(), path, "ip")
			}

			c.Header("Retry-After", strconv.Itoa(int(time.Until(decision.WindowEnd).Seconds())))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"message": "Limite de requisições excedido",
			})
			return
		}

		if rl.metrics != nil {
			rl.metrics.RecordRateLimitAllowed(c.Request.Context(), path, "ip")
		}

		c.Next()
	}
}

func (rl *RateLimiter) Close() {
	rl.store.Close()
}

type memoryEntry struct {
	Count     int
	ResetTime time.Time
}

type memoryStore struct {
	cache *cache.Cache
	mutex sync.Mutex
}

// NewMemoryStore keeps counters in process, good enough for a single
// instance.
func NewMemoryStore() Store {
	return &memoryStore{
		cache: cache.New(5*time.Minute, 10*time.Minute),
	}
}

func (s *memoryStore) Allow(key string, limit int, window time.Duration) Decision {
	if limit <= 0 {
		return Decision{Allowed: true}
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	now := time.Now()

	entry := memoryEntry{Count: 0, ResetTime: now.Add(window)}

	if cached, found := s.cache.Get(key); found {
		existing := cached.(memoryEntry)

		if now.Before(existing.ResetTime) {
			entry = existing
		}
	}

	entry.Count++
	s.cache.Set(key, entry, time.Until(entry.ResetTime))

	return Decision{
		Allowed:   entry.Count <= limit,
		Count:     entry.Count,
		WindowEnd: entry.ResetTime,
	}
}

func (s *memoryStore) Close() {
	s.cache.Flush()
}
