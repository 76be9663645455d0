package middleware

import (
    "bytes"
    "context"
    "crypto/sha1"
    "encoding/json"
    "fmt"
    "net/http"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/lecture-lottery/internal/config"
)

// cachedResponse is the envelope stored in Redis for a cached
// response: the status, the content type and the raw body.
type cachedResponse struct {
    Status      int    `json:"status"`
    ContentType string `json:"content_type"`
    Body        []byte `json:"body"`
}

// bodyCapture tees response bytes into a buffer while forwarding
// them to the client, up to limit bytes.  Oversized responses are
// forwarded but not cached.
type bodyCapture struct {
    http.ResponseWriter
    status   int
    buf      bytes.Buffer
    overflow bool
    limit    int
}

func (w *bodyCapture) WriteHeader(code int) {
    w.status = code
    w.ResponseWriter.WriteHeader(code)
}

func (w *bodyCapture) Write(b []byte) (int, error) {
    if !w.overflow {
        if w.buf.Len()+len(b) > w.limit {
            w.overflow = true
        } else {
            w.buf.Write(b)
        }
    }
    return w.ResponseWriter.Write(b)
}

// NewRedisCache caches successful GET responses of the public
// lecture listings.  The cache key is derived from route and query
// only; these endpoints carry no per-user data.  A nil Redis client
// or a disabled config yields a pass-through.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
    }
    ttl := cfg.TTL
    if ttl <= 0 {
        ttl = 30 * time.Second
    }
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            if c.Request().Method != http.MethodGet {
                return next(c)
            }
            sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
            key := fmt.Sprintf("%s:%x", cfg.Prefix, sum)

            ctx := c.Request().Context()
            if raw, err := rdb.Get(ctx, key).Bytes(); err == nil {
                var cached cachedResponse
                if json.Unmarshal(raw, &cached) == nil {
                    c.Response().Header().Set(echo.HeaderContentType, cached.ContentType)
                    c.Response().Header().Set("X-Cache", "HIT")
                    c.Response().WriteHeader(cached.Status)
                    _, _ = c.Response().Write(cached.Body)
                    return nil
                }
            }

            cw := &bodyCapture{ResponseWriter: c.Response().Writer, status: http.StatusOK, limit: cfg.MaxBodyBytes}
            c.Response().Writer = cw
            c.Response().Header().Set("X-Cache", "MISS")
            if err := next(c); err != nil {
                return err
            }
            if cw.status == http.StatusOK && !cw.overflow {
                payload, err := json.Marshal(cachedResponse{
                    Status:      cw.status,
                    ContentType: c.Response().Header().Get(echo.HeaderContentType),
                    Body:        cw.buf.Bytes(),
                })
                if err == nil {
                    // Request context may already be done once the
                    // response is written; store with a fresh one.
                    _ = rdb.SetEx(context.Background(), key, payload, ttl).Err()
                }
            }
            return nil
        }
    }
}
