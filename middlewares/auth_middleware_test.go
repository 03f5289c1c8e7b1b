package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, ttl time.Duration) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":   "uid-1",
		"role":  "student",
		"name":  "Anil Kumar",
		"email": "anil@iiitkottayam.ac.in",
		"exp":   time.Now().Add(ttl).Unix(),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return tok
}

func runAuth(t *testing.T, authHeader string) (*httptest.ResponseRecorder, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := RequireAuth(testSecret)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, c, handler(c)
}

func TestRequireAuth(t *testing.T) {
	t.Run("valid token attaches claims", func(t *testing.T) {
		rec, c, err := runAuth(t, "Bearer "+signToken(t, testSecret, time.Hour))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "uid-1", c.Get("uid"))
		assert.Equal(t, "student", c.Get("role"))
		assert.Equal(t, "anil@iiitkottayam.ac.in", c.Get("email"))
	})

	t.Run("missing header", func(t *testing.T) {
		_, _, err := runAuth(t, "")
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		_, _, err := runAuth(t, "Token abc")
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("wrong secret", func(t *testing.T) {
		_, _, err := runAuth(t, "Bearer "+signToken(t, "other-secret", time.Hour))
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})

	t.Run("expired token", func(t *testing.T) {
		_, _, err := runAuth(t, "Bearer "+signToken(t, testSecret, -time.Hour))
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusUnauthorized, he.Code)
	})
}

func TestRequireRole(t *testing.T) {
	e := echo.New()
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	mw := RequireRole("faculty", "warden")

	run := func(role string) error {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if role != "" {
			c.Set("role", role)
		}
		return mw(next)(c)
	}

	assert.NoError(t, run("faculty"))
	assert.NoError(t, run("Warden"))

	for _, role := range []string{"student", ""} {
		err := run(role)
		var he *echo.HTTPError
		require.ErrorAs(t, err, &he)
		assert.Equal(t, http.StatusForbidden, he.Code)
	}
}
