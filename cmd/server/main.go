package main // Entry point package

import (
    "context"
    "log"
    "log/slog"
    "math/rand"
    "os"
    "time"

    "github.com/joho/godotenv"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lecture-lottery/internal/config"
    "github.com/iliyamo/lecture-lottery/internal/database"
    "github.com/iliyamo/lecture-lottery/internal/handler"
    "github.com/iliyamo/lecture-lottery/internal/lottery"
    appmw "github.com/iliyamo/lecture-lottery/internal/middleware"
    "github.com/iliyamo/lecture-lottery/internal/queue"
    "github.com/iliyamo/lecture-lottery/internal/repository"
    "github.com/iliyamo/lecture-lottery/internal/router"

    "github.com/jonboulle/clockwork"
)

func main() {
    // .env is optional; real deployments set variables in the environment.
    _ = godotenv.Load()

    cfg := config.Load()

    slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

    db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
    if err != nil {
        log.Fatalf("database: %v", err)
    }
    defer db.Close()

    userRepo := repository.NewUserRepo(db)
    tokenRepo := repository.NewTokenRepo(db)
    lectureRepo := repository.NewLectureRepo(db)
    sessionRepo := repository.NewSessionRepo(db)
    appRepo := repository.NewApplicationRepo(db)

    // Expired refresh tokens accumulate forever otherwise; purge the
    // backlog once at startup with a one-day grace period.
    if n, err := tokenRepo.PurgeExpired(context.Background(), 24*time.Hour); err != nil {
        slog.Warn("refresh token purge failed", "error", err)
    } else if n > 0 {
        slog.Info("purged expired refresh tokens", "count", n)
    }

    engine := lottery.NewEngine(rand.NewSource(time.Now().UnixNano()))
    svc := lottery.NewService(sessionRepo, appRepo, engine, clockwork.NewRealClock(), cfg.Location)

    authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
    publicHandler := handler.NewPublicHandler(lectureRepo)
    appHandler := handler.NewApplicationHandler(svc)
    adminHandler := handler.NewAdminHandler(svc, sessionRepo, lectureRepo)

    e := echo.New()
    e.HideBanner = true

    // Redis is optional: when unreachable, rate limiting and response
    // caching are simply disabled and the API serves every request.
    rdb := config.NewRedisClient()
    var limiter, cache echo.MiddlewareFunc
    if rdb != nil {
        limiter = appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb)
        cache = appmw.NewRedisCache(config.LoadCacheConfig(), rdb)
    }

    router.RegisterRoutes(e)
    router.RegisterAuth(e, authHandler, cfg.JWTSecret)
    router.RegisterPublic(e, publicHandler, limiter, cache)
    router.RegisterStudent(e, appHandler, cfg.JWTSecret, limiter)
    router.RegisterAdmin(e, adminHandler, cfg.JWTSecret)

    // Result log consumer runs for the lifetime of the process and
    // reconnects on broker failures.
    go func() {
        if err := queue.StartAllocationConsumer(); err != nil {
            slog.Error("allocation consumer stopped", "error", err)
        }
    }()

    addr := ":" + cfg.Port
    log.Printf("listening on %s (env=%s, tz=%s)", addr, cfg.Env, cfg.Location)

    if err := e.Start(addr); err != nil {
        log.Fatal(err)
    }
}
