package response

import (
	"bytes"
	"crypto/md5"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"

	"userapp/internal/core/telemetry"
	"userapp/pkg/config"
)

// ResponseCache memoizes GET responses for a short TTL so list-heavy clients
// do not hammer the database.
type ResponseCache struct {
	cache   *cache.Cache
	configs map[string]config.CacheConfig
	metrics *telemetry.AppMetrics
}

type CachedResponse struct {
	StatusCode int
	Headers    map[string][]string
	Body       []byte
	Timestamp  time.Time
}

func NewResponseCache(configs map[string]config.CacheConfig, metrics *telemetry.AppMetrics) *ResponseCache {
	return &ResponseCache{
		cache:   cache.New(5*time.Minute, 10*time.Minute),
		configs: configs,
		metrics: metrics,
	}
}

func (rc *ResponseCache) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			return
		}

		path := c.FullPath()

		if path == "" {
			path = c.Request.URL.Path
		}

		cfg, exists := rc.configs[path]

		if !exists || !cfg.Enabled {
			c.Next()
			return
		}

		key := rc.cacheKey(c, path)

		if cached, found := rc.cache.Get(key); found {
			resp := cached.(CachedResponse)

			if rc.metrics != nil {
				rc.metrics.RecordCacheHit(c.Request.Context(), path)
			}

			for name, values := range resp.Headers {
				for _, value := range values {
					c.Header(name, value)
				}
			}

			c.Header("X-Cache", "HIT")
			c.Data(resp.StatusCode, "application/json", resp.Body)
			c.Abort()
			return
		}

		if rc.metrics != nil {
			rc.metrics.RecordCacheMiss(c.Request.Context(), path)
		}

		writer := &captureWriter{ResponseWriter: c.Writer, body: &bytes.Buffer{}}
		c.Writer = writer

		c.Next()

		if writer.Status() == http.StatusOK {
			rc.cache.Set(key, CachedResponse{
				StatusCode: writer.Status(),
				Headers:    writer.Header().Clone(),
				Body:       writer.body.Bytes(),
				Timestamp:  time.Now(),
			}, cfg.TTL)
		}
	}
}

// Flush drops everything; mutations otherwise rely on the short TTL.
func (rc *ResponseCache) Flush() {
	rc.cache.Flush()
}

func (rc *ResponseCache) cacheKey(c *gin.Context, path string) string {
	raw := c.Request.Method + path + "?" + c.Request.URL.RawQuery
	return fmt.Sprintf("%x", md5.Sum([]byte(raw)))
}

type captureWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w *captureWriter) Write(data []byte) (int, error) {
	w.body.Write(data)
	return w.ResponseWriter.Write(data)
}

func (w *captureWriter) WriteString(data string) (int, error) {
	w.body.WriteString(data)
	return w.ResponseWriter.WriteString(data)
}
