package config

// Redis backs the distributed rate limiter and the response cache for
// the public lecture listings.  Connection parameters come from the
// environment; when the server is unreachable at startup the
// constructor returns nil and callers degrade gracefully by running
// without caching and rate limiting.

import (
    "context"
    "crypto/tls"
    "time"

    "github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from the environment:
//   REDIS_ADDR     – host:port (default "localhost:6379")
//   REDIS_HOST / REDIS_PORT – alternative to REDIS_ADDR, takes precedence
//   REDIS_PASSWORD – optional password
//   REDIS_DB       – database number (default 0)
//   REDIS_TLS      – enable TLS when truthy
// The client is pinged once with a short timeout; nil is returned on
// failure so the caller can disable the Redis-backed middleware.
func NewRedisClient() *redis.Client {
    addr := envStr("REDIS_ADDR", "localhost:6379")
    if host := envStr("REDIS_HOST", ""); host != "" {
        addr = host + ":" + envStr("REDIS_PORT", "6379")
    }
    opts := &redis.Options{
        Addr:     addr,
        Password: envStr("REDIS_PASSWORD", ""),
        DB:       envInt("REDIS_DB", 0),
    }
    if envBool("REDIS_TLS", false) {
        opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
    }
    client := redis.NewClient(opts)

    ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
    defer cancel()
    if err := client.Ping(ctx).Err(); err != nil {
        return nil
    }
    return client
}
