package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/trainee-seat-reservation/internal/config"
)

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}, "X-Foo": {"a", "b"}}
	body := []byte(`{"ok":true}`)

	bs, err := encodePayload(http.StatusOK, hdr, body)
	require.NoError(t, err)

	status, gotHdr, gotBody, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, hdr, gotHdr)
	assert.Equal(t, body, gotBody)
}

func TestDecodePayloadGarbage(t *testing.T) {
	_, _, _, ok := decodePayload([]byte{1, 2, 3})
	assert.False(t, ok)

	bs, err := encodePayload(200, http.Header{}, nil)
	require.NoError(t, err)
	bs[7] = 0xFF // header length now exceeds the buffer
	_, _, _, ok = decodePayload(bs)
	assert.False(t, ok)
}

func TestCacheKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/layouts?date=2025-01-10", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/layouts")

	base := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	withQuery := cacheKeyFrom(base, c)

	base.KeyStrategy = "route"
	routeOnly := cacheKeyFrom(base, c)

	assert.NotEqual(t, withQuery, routeOnly)
	assert.Contains(t, withQuery, "cache:")

	// Same request yields the same key.
	assert.Equal(t, withQuery, cacheKeyFrom(config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}, c))
}

func TestCacheKeyScopedToUser(t *testing.T) {
	e := echo.New()
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	keyFor := func(uid interface{}) string {
		req := httptest.NewRequest(http.MethodGet, "/v1/bookings/mine", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		c.SetPath("/v1/bookings/mine")
		if uid != nil {
			c.Set("user_id", uid)
		}
		return cacheKeyFrom(cfg, c)
	}

	userOne := keyFor(float64(1))
	userTwo := keyFor(float64(2))
	anon := keyFor(nil)

	// Identical route and query, different identities: an entry stored
	// for one user must never be a HIT for another or for an
	// unauthenticated client.
	assert.NotEqual(t, userOne, userTwo)
	assert.NotEqual(t, userOne, anon)
	assert.NotEqual(t, userTwo, anon)

	// Same identity stays deterministic.
	assert.Equal(t, userOne, keyFor(float64(1)))
}

func TestCacheDisabledPassesThrough(t *testing.T) {
	mw := NewRedisCache(config.CacheConfig{Enabled: false}, nil)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := mw(func(c echo.Context) error { return c.String(http.StatusOK, "ok") })(c)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Header().Get("X-Cache"))
}

func TestBuildRateKeyStrategies(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	req.RemoteAddr = "10.0.0.1:1234"
	c := e.NewContext(req, httptest.NewRecorder())
	c.SetPath("/v1/bookings")
	c.Set("user_id", float64(9))

	cfg := config.RateLimitConfig{Prefix: "rl", KeyStrategy: "user"}
	assert.Equal(t, "rl:user:9", buildRateKey(cfg, c))

	cfg.KeyStrategy = "ip"
	assert.Equal(t, "rl:ip:10.0.0.1", buildRateKey(cfg, c))

	cfg.KeyStrategy = "user_route"
	assert.Equal(t, "rl:user:9:route:GET /v1/bookings", buildRateKey(cfg, c))
}

func TestAsInt64(t *testing.T) {
	assert.Equal(t, int64(5), asInt64(int64(5)))
	assert.Equal(t, int64(5), asInt64(5))
	assert.Equal(t, int64(5), asInt64(5.9))
	assert.Equal(t, int64(5), asInt64("5"))
	assert.Equal(t, int64(0), asInt64("x"))
	assert.Equal(t, int64(0), asInt64(nil))
}
