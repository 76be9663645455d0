package router

import (
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/lecture-lottery/internal/handler"
    "github.com/iliyamo/lecture-lottery/internal/middleware"
)

// RegisterAdmin registers ADMIN-scoped endpoints under /v1/admin.
// All routes require a valid JWT and the ADMIN role.
func RegisterAdmin(e *echo.Echo, a *handler.AdminHandler, jwtSecret string) {
    g := e.Group(
        "/v1/admin",
        middleware.JWTAuth(jwtSecret),
        middleware.RequireRole("ADMIN"),
    )

    // Draw the lottery for every session whose deadline has passed and
    // that still has undecided applications.  Safe to call repeatedly.
    g.POST("/lottery", a.RunLottery)
}
