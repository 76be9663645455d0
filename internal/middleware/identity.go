package middleware

// identity.go provides the helper that resolves a stable identifier
// for the current request, used to build rate-limit keys.  It falls
// back to "anon" for unauthenticated callers so the public routes
// are limited per IP only.

import (
    "fmt"

    "github.com/labstack/echo/v4"
)

// currentUserID returns the authenticated user's ID as a string, or
// "anon" when the request carries no identity.  JWTAuth stores the
// sub claim as whatever type the JWT library decoded (usually
// float64), so the value is formatted rather than type-asserted.
func currentUserID(c echo.Context) string {
    v := c.Get("user_id")
    if v == nil {
        return "anon"
    }
    switch t := v.(type) {
    case string:
        if t != "" {
            return t
        }
        return "anon"
    case float64:
        return fmt.Sprintf("%.0f", t)
    default:
        return fmt.Sprint(t)
    }
}
