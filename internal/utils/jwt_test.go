package utils

import (
    "testing"
    "time"

    "github.com/golang-jwt/jwt/v5"
    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"
)

func TestNewAccessToken_RoundTrip(t *testing.T) {
    const secret = "test-secret"

    tok, err := NewAccessToken(secret, 42, "STUDENT", 15)
    require.NoError(t, err)
    require.NotEmpty(t, tok.Token)
    assert.WithinDuration(t, time.Now().Add(15*time.Minute), tok.Exp, 5*time.Second)

    parsed, err := jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
        return []byte(secret), nil
    })
    require.NoError(t, err)
    require.True(t, parsed.Valid)

    claims, ok := parsed.Claims.(jwt.MapClaims)
    require.True(t, ok)
    assert.EqualValues(t, 42, claims["sub"])
    assert.Equal(t, "STUDENT", claims["role"])
}

func TestNewAccessToken_WrongSecretRejected(t *testing.T) {
    tok, err := NewAccessToken("secret-a", 42, "ADMIN", 15)
    require.NoError(t, err)

    _, err = jwt.Parse(tok.Token, func(*jwt.Token) (interface{}, error) {
        return []byte("secret-b"), nil
    })
    assert.Error(t, err)
}

func TestNewRefreshToken_HashIsStable(t *testing.T) {
    rt, err := NewRefreshToken(30)
    require.NoError(t, err)
    require.NotEmpty(t, rt.Raw)

    assert.NotEqual(t, rt.Raw, HashRefreshRaw(rt.Raw))
    assert.Equal(t, HashRefreshRaw(rt.Raw), HashRefreshRaw(rt.Raw))
    assert.WithinDuration(t, time.Now().AddDate(0, 0, 30), rt.Exp, 5*time.Second)
}

func TestNewRefreshToken_Unique(t *testing.T) {
    a, err := NewRefreshToken(30)
    require.NoError(t, err)
    b, err := NewRefreshToken(30)
    require.NoError(t, err)

    assert.NotEqual(t, a.Raw, b.Raw)
}

func TestValidPassword(t *testing.T) {
    assert.False(t, ValidPassword("short"))
    assert.True(t, ValidPassword("longenough"))
    assert.False(t, ValidPassword(string(make([]byte, 80))))
}

func TestHashAndVerifyPassword(t *testing.T) {
    hash, err := HashPassword("correct horse battery", 4)
    require.NoError(t, err)

    assert.True(t, VerifyPassword(hash, "correct horse battery"))
    assert.False(t, VerifyPassword(hash, "wrong password"))
}
