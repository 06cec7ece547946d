package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pageza/healthtrack/frontend/internal/testhelpers"
)

func TestAuthRateLimiter(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	ctx := context.Background()

	rl := NewAuthRateLimiter(client, 2)
	fixed := time.Date(2026, 10, 19, 10, 0, 30, 0, time.UTC)
	rl.now = func() time.Time { return fixed }

	remaining, reset, err := rl.GetRemainingRequests(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.Equal(t, 2, remaining)
	assert.Equal(t, time.Date(2026, 10, 19, 10, 1, 0, 0, time.UTC), reset.UTC())

	for i := 0; i < 2; i++ {
		allowed, err := rl.Allow(ctx, "10.0.0.1")
		require.NoError(t, err)
		assert.True(t, allowed)
	}
	allowed, err := rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, allowed)

	allowed, err = rl.Allow(ctx, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, allowed)

	rl.now = func() time.Time { return fixed.Add(time.Minute) }
	allowed, err = rl.Allow(ctx, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, allowed)
}

func TestRateLimitHeaders(t *testing.T) {
	client := testhelpers.SetupRedis(t)
	gin.SetMode(gin.TestMode)

	rl := NewAuthRateLimiter(client, 3)
	fixed := time.Now()
	rl.now = func() time.Time { return fixed }
	require.NoError(t, func() error { _, err := rl.Allow(context.Background(), "192.0.2.1"); return err }())

	r := gin.New()
	r.GET("/auth", rl.RateLimitHeaders(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "3", rr.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "2", rr.Header().Get("X-RateLimit-Remaining"))
}
