package middleware

import (
    "net/http"
    "net/http/httptest"
    "testing"

    "github.com/labstack/echo/v4"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/iliyamo/lecture-lottery/internal/utils"
)

const testSecret = "unit-test-secret"

func runProtected(t *testing.T, authHeader string, mws ...echo.MiddlewareFunc) *httptest.ResponseRecorder {
    t.Helper()
    e := echo.New()
    req := httptest.NewRequest(http.MethodGet, "/v1/protected", nil)
    if authHeader != "" {
        req.Header.Set("Authorization", authHeader)
    }
    rec := httptest.NewRecorder()
    c := e.NewContext(req, rec)

    h := func(c echo.Context) error {
        return c.JSON(http.StatusOK, echo.Map{"user_id": c.Get("user_id"), "role": c.Get("role")})
    }
    for i := len(mws) - 1; i >= 0; i-- {
        h = mws[i](h)
    }
    require.NoError(t, h(c))
    return rec
}

func TestJWTAuth_ValidToken(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 42, "STUDENT", 15)
    require.NoError(t, err)

    rec := runProtected(t, "Bearer "+tok.Token, JWTAuth(testSecret))
    assert.Equal(t, http.StatusOK, rec.Code)
    assert.Contains(t, rec.Body.String(), `"role":"STUDENT"`)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
    rec := runProtected(t, "", JWTAuth(testSecret))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_WrongSecret(t *testing.T) {
    tok, err := utils.NewAccessToken("other-secret", 42, "STUDENT", 15)
    require.NoError(t, err)

    rec := runProtected(t, "Bearer "+tok.Token, JWTAuth(testSecret))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuth_GarbageToken(t *testing.T) {
    rec := runProtected(t, "Bearer not.a.jwt", JWTAuth(testSecret))
    assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 7, "ADMIN", 15)
    require.NoError(t, err)

    rec := runProtected(t, "Bearer "+tok.Token, JWTAuth(testSecret), RequireRole("ADMIN"))
    assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
    tok, err := utils.NewAccessToken(testSecret, 7, "STUDENT", 15)
    require.NoError(t, err)

    rec := runProtected(t, "Bearer "+tok.Token, JWTAuth(testSecret), RequireRole("ADMIN"))
    assert.Equal(t, http.StatusForbidden, rec.Code)
}
