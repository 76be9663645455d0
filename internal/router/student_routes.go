package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lecture-lottery/internal/handler"
    "github.com/iliyamo/lecture-lottery/internal/middleware"
)

// RegisterStudent registers student-scoped endpoints under /v1.  All routes
// require a valid JWT and the STUDENT role.  Students can submit
// applications and list their own applications with lottery results.
func RegisterStudent(e *echo.Echo, h *handler.ApplicationHandler, jwtSecret string, mws ...echo.MiddlewareFunc) {
    g := e.Group(
        "/v1",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("STUDENT"),
    )
    for _, mw := range mws {
        if mw != nil {
            g.Use(mw)
        }
    }
    // Note: lecture and session browsing is registered on the public
    // router so that guests can inspect the catalogue.  Student-specific
    // endpoints begin here.
    g.POST("/applications", h.Apply)
    g.GET("/my-applications", h.MyApplications)
}
