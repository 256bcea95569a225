package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	. "github.com/onsi/gomega"

	"userapp/pkg/config"
)

func cachedRouter(rc *ResponseCache, counter *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(rc.Middleware())

	router.GET("/users", func(c *gin.Context) {
		*counter++
		c.JSON(200, gin.H{"calls": *counter})
	})

	router.POST("/users", func(c *gin.Context) {
		*counter++
		c.JSON(200, gin.H{"calls": *counter})
	})

	return router
}

func TestResponseCacheServesHit(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(map[string]config.CacheConfig{
		"/users": {TTL: time.Minute, Enabled: true},
	}, nil)

	calls := 0
	router := cachedRouter(rc, &calls)

	first := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)
	router.ServeHTTP(first, req)

	Expect(first.Code).To(Equal(http.StatusOK))
	Expect(first.Header().Get("X-Cache")).To(BeEmpty())

	second := httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/users", nil)
	router.ServeHTTP(second, req)

	Expect(second.Code).To(Equal(http.StatusOK))
	Expect(second.Header().Get("X-Cache")).To(Equal("HIT"))
	Expect(second.Body.String()).To(Equal(first.Body.String()))
	Expect(calls).To(Equal(1))
}

func TestResponseCacheKeyIncludesQuery(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(map[string]config.CacheConfig{
		"/users": {TTL: time.Minute, Enabled: true},
	}, nil)

	calls := 0
	router := cachedRouter(rc, &calls)

	for i, query := range []string{"?search=ana", "?search=carlos"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/users"+query, nil)
		router.ServeHTTP(w, req)

		Expect(w.Header().Get("X-Cache")).To(BeEmpty(), fmt.Sprintf("query %d", i))
	}

	Expect(calls).To(Equal(2))
}

func TestResponseCacheSkipsMutations(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(map[string]config.CacheConfig{
		"/users": {TTL: time.Minute, Enabled: true},
	}, nil)

	calls := 0
	router := cachedRouter(rc, &calls)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("POST", "/users", nil)
		router.ServeHTTP(w, req)

		Expect(w.Header().Get("X-Cache")).To(BeEmpty())
	}

	Expect(calls).To(Equal(2))
}

func TestResponseCacheDisabledRoute(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(map[string]config.CacheConfig{
		"/users": {TTL: time.Minute, Enabled: false},
	}, nil)

	calls := 0
	router := cachedRouter(rc, &calls)

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/users", nil)
		router.ServeHTTP(w, req)
	}

	Expect(calls).To(Equal(2))
}

func TestResponseCacheFlush(t *testing.T) {
	RegisterTestingT(t)

	rc := NewResponseCache(map[string]config.CacheConfig{
		"/users": {TTL: time.Minute, Enabled: true},
	}, nil)

	calls := 0
	router := cachedRouter(rc, &calls)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/users", nil)
	router.ServeHTTP(w, req)

	rc.Flush()

	w = httptest.NewRecorder()
	req, _ = http.NewRequest("GET", "/users", nil)
	router.ServeHTTP(w, req)

	Expect(w.Header().Get("X-Cache")).To(BeEmpty())
	Expect(calls).To(Equal(2))
}
