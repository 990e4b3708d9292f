package middleware

import (
    "bytes"
    "crypto/sha1"
    "fmt"
    "net/http"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/venuehub/venuehub-api/internal/config"
)

// captureWriter tees the response body into a buffer while forwarding to
// the client, up to a size limit.  Oversized responses are forwarded but
// not cached.
type captureWriter struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    size     int
    limit    int
    overflow bool
}

func (cw *captureWriter) WriteHeader(code int) {
    cw.status = code
    cw.ResponseWriter.WriteHeader(code)
}

func (cw *captureWriter) Write(b []byte) (int, error) {
    cw.size += len(b)
    if cw.size > cw.limit {
        cw.overflow = true
    } else {
        cw.buf.Write(b)
    }
    return cw.ResponseWriter.Write(b)
}

// ResponseCache caches successful JSON GET responses in Redis, keyed by
// route and query string.  It fronts the public listing and search
// endpoints, where identical filter combinations repeat heavily.  Cache
// misses and Redis failures fall straight through to the handler.
func ResponseCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            key := cacheKey(cfg.Prefix, c.Path(), c.Request().URL.RawQuery)
            ctx := c.Request().Context()

            if body, err := rdb.Get(ctx, key).Bytes(); err == nil {
                c.Response().Header().Set("X-Cache", "HIT")
                return c.JSONBlob(http.StatusOK, body)
            }

            cw := &captureWriter{
                ResponseWriter: c.Response().Writer,
                status:         http.StatusOK,
                limit:          cfg.MaxBodyBytes,
            }
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")

            if err := next(c); err != nil {
                return err
            }
            if cw.status == http.StatusOK && !cw.overflow && cw.buf.Len() > 0 {
                // Best effort; a failed SET only costs the next request a miss.
                rdb.Set(ctx, key, cw.buf.Bytes(), cfg.TTL)
            }
            return nil
        }
    }
}

func cacheKey(prefix, route, query string) string {
    sum := sha1.Sum([]byte(route + "?" + query))
    return fmt.Sprintf("%s:%x", prefix, sum[:])
}
