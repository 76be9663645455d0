package router // package router defines how HTTP routes are registered for the API

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lecture-lottery/internal/handler"
    "github.com/iliyamo/lecture-lottery/internal/middleware"
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
    // Load balancers and monitoring systems use this endpoint to verify
    // that the service is up and running.
    e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
    // Operations that do not require an existing session: register, login
    // and the two refresh variants.  Each handler generates or exchanges
    // tokens itself.
    g := e.Group("/v1/auth")
    g.POST("/register", a.Register)
    g.POST("/login", a.Login)
    // Refresh rotates the refresh token; refresh-access only issues a new
    // access token and leaves the refresh token untouched.
    g.POST("/refresh", a.Refresh)
    g.POST("/refresh-access", a.RefreshAccess)
    // Logout accepts a JSON body with a `refresh_token` and invalidates
    // it.  No JWT is required, so a client with an expired access token
    // can still terminate its session.
    g.POST("/logout", a.Logout)

    // Routes below require a valid access token.  Both roles may read
    // their own profile.
    auth := e.Group("/v1")
    auth.Use(middleware.JWTAuth(jwtSecret))
    auth.Use(middleware.RequireRole("STUDENT", "ADMIN"))
    auth.GET("/me", a.Me)
}

// RegisterPublic registers unauthenticated browse endpoints on the provided
// Echo instance.  The PublicHandler returns sanitized lecture and session
// data; guests can inspect the catalogue before registering an account.
// The optional middlewares (rate limiting, response cache) are applied to
// every public route when non-nil.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mws ...echo.MiddlewareFunc) {
    g := e.Group("/v1")
    for _, mw := range mws {
        if mw != nil {
            g.Use(mw)
        }
    }
    // Catalogue of all lectures with aggregate application counts.
    g.GET("/lectures", p.GetLectures)
    // Lecture detail, including the combined applied count of its sessions.
    g.GET("/lectures/:id", p.GetLecture)
    // Sessions of a lecture with capacity, applicant count and open flag.
    g.GET("/lectures/:id/sessions", p.GetLectureSessions)
}
