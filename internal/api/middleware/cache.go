package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/zatekoja/hospitalsite/internal/domain/providers"
	"github.com/zatekoja/hospitalsite/internal/infrastructure/observability"
)

// CacheRoute configures response caching for a path. Paths ending in "/"
// match by prefix, all others match exactly.
type CacheRoute struct {
	Path string
	TTL  time.Duration
}

// DefaultCacheRoutes covers the read-only directory API.
var DefaultCacheRoutes = []CacheRoute{
	{Path: "/api/departments", TTL: 10 * time.Minute},
	{Path: "/api/departments/", TTL: 10 * time.Minute},
	{Path: "/api/doctors", TTL: 5 * time.Minute},
	{Path: "/api/timeslots", TTL: 30 * time.Minute},
}

// CacheMiddleware provides HTTP response caching
type CacheMiddleware struct {
	cache   providers.CacheProvider
	routes  []CacheRoute
	metrics *observability.Metrics
}

// NewCacheMiddleware creates a cache middleware for the given routes. A nil
// cache disables caching.
func NewCacheMiddleware(cache providers.CacheProvider, metrics *observability.Metrics, routes []CacheRoute) *CacheMiddleware {
	return &CacheMiddleware{cache: cache, routes: routes, metrics: metrics}
}

// Middleware returns the cache middleware handler
func (m *CacheMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || m.cache == nil {
			next.ServeHTTP(w, r)
			return
		}

		route, ok := m.routeFor(r.URL.Path)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		logger := observability.LoggerFromContext(ctx)
		key := cacheKey(r)

		cached, err := m.cache.Get(ctx, key)
		if err == nil {
			observability.RecordCacheHit(ctx, m.metrics, route.Path)
			w.Header().Set("X-Cache", "HIT")
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write(cached)
			return
		}
		if !errors.Is(err, providers.ErrCacheMiss) {
			logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Response cache unavailable")
		}

		observability.RecordCacheMiss(ctx, m.metrics, route.Path)
		w.Header().Set("X-Cache", "MISS")

		recorder := &responseRecorder{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
			body:           &bytes.Buffer{},
		}
		next.ServeHTTP(recorder, r)

		if recorder.statusCode == http.StatusOK && recorder.body.Len() > 0 {
			if err := m.cache.Set(ctx, key, recorder.body.Bytes(), route.TTL); err != nil {
				logger.Warn().Err(err).Str("path", r.URL.Path).Msg("Failed to cache response")
			}
		}
	})
}

func (m *CacheMiddleware) routeFor(path string) (CacheRoute, bool) {
	for _, route := range m.routes {
		if route.Path == path {
			return route, true
		}
	}
	for _, route := range m.routes {
		if strings.HasSuffix(route.Path, "/") && strings.HasPrefix(path, route.Path) {
			return route, true
		}
	}
	return CacheRoute{}, false
}

func cacheKey(r *http.Request) string {
	key := fmt.Sprintf("%s:%s", r.Method, r.URL.Path)
	if r.URL.RawQuery != "" {
		key += "?" + r.URL.Query().Encode()
	}
	hash := sha256.Sum256([]byte(key))
	return "http:cache:" + hex.EncodeToString(hash[:])
}

// responseRecorder tees the response body so it can be cached
type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
	written    bool
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	if !r.written {
		r.statusCode = statusCode
		r.ResponseWriter.WriteHeader(statusCode)
		r.written = true
	}
}

func (r *responseRecorder) Write(data []byte) (int, error) {
	if !r.written {
		r.WriteHeader(http.StatusOK)
	}
	r.body.Write(data)
	return r.ResponseWriter.Write(data)
}
