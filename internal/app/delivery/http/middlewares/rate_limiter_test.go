package middlewares

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRateLimiter_Limit(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(2, time.Minute, 5*time.Minute, zap.NewNop())
	limiter.now = func() time.Time { return now }

	handler := limiter.Limit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	send := func(remoteAddr string) int {
		req := httptest.NewRequest("POST", "/appointments", nil)
		req.RemoteAddr = remoteAddr
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusCreated, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusCreated, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"))
	assert.Equal(t, http.StatusCreated, send("10.0.0.2:1234"), "other clients keep their own budget")

	now = now.Add(2 * time.Minute)
	assert.Equal(t, http.StatusTooManyRequests, send("10.0.0.1:1234"), "client stays blocked for the block time")

	now = now.Add(4 * time.Minute)
	assert.Equal(t, http.StatusCreated, send("10.0.0.1:1234"))
}

func TestRateLimiter_ForgetsIdleClients(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	limiter := NewRateLimiter(1, time.Minute, 5*time.Minute, zap.NewNop())
	limiter.now = func() time.Time { return now }

	for i := 0; i < 100; i++ {
		assert.True(t, limiter.allow(fmt.Sprintf("10.0.1.%d", i)))
	}
	assert.False(t, limiter.allow("10.0.1.0"), "second request inside the window is refused")
	assert.Len(t, limiter.clients, 100)
	assert.Len(t, limiter.blocked, 1)

	now = now.Add(2 * time.Minute)
	assert.True(t, limiter.allow("10.0.2.1"))
	assert.Len(t, limiter.clients, 2, "only the new client and the blocked one remain")
	assert.Contains(t, limiter.clients, "10.0.1.0")
	assert.False(t, limiter.allow("10.0.1.0"), "blocked clients stay blocked")

	now = now.Add(4 * time.Minute)
	assert.True(t, limiter.allow("10.0.1.0"))
	assert.Len(t, limiter.clients, 1)
	assert.Empty(t, limiter.blocked)
}
