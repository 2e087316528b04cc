package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trainee-seat-reservation/internal/utils"
)

const testSecret = "test-secret"

func doRequest(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	err := mw(next)(c)
	require.NoError(t, err)
	return rec, c
}

func TestJWTAuthValidToken(t *testing.T) {
	at, err := utils.NewAccessToken(testSecret, 7, "TRAINEE", 15)
	require.NoError(t, err)

	rec, c := doRequest(t, JWTAuth(testSecret), "Bearer "+at.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
	// Numeric claims come back as float64 from the parser.
	assert.Equal(t, float64(7), c.Get("user_id"))
	assert.Equal(t, "TRAINEE", c.Get("role"))
}

func TestJWTAuthMissingHeader(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret), "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	at, err := utils.NewAccessToken("other-secret", 7, "TRAINEE", 15)
	require.NoError(t, err)

	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer "+at.Token)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthGarbageToken(t *testing.T) {
	rec, _ := doRequest(t, JWTAuth(testSecret), "Bearer not.a.jwt")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func roleRequest(t *testing.T, mw echo.MiddlewareFunc, role interface{}) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if role != nil {
		c.Set("role", role)
	}
	next := func(c echo.Context) error { return c.String(http.StatusOK, "ok") }
	require.NoError(t, mw(next)(c))
	return rec
}

func TestRequireRole(t *testing.T) {
	mw := RequireRole("ADMIN")

	assert.Equal(t, http.StatusOK, roleRequest(t, mw, "ADMIN").Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, mw, "TRAINEE").Code)
	assert.Equal(t, http.StatusUnauthorized, roleRequest(t, mw, nil).Code)
}

func TestRequireRoleMultiple(t *testing.T) {
	mw := RequireRole("ADMIN", "TRAINEE")

	assert.Equal(t, http.StatusOK, roleRequest(t, mw, "TRAINEE").Code)
	assert.Equal(t, http.StatusForbidden, roleRequest(t, mw, "GUEST").Code)
}
