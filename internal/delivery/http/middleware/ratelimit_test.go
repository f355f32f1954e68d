package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIPRateLimiter_Limit(t *testing.T) {
	limiter := NewIPRateLimiter(1, 2)
	frozen := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	limiter.now = func() time.Time { return frozen }

	calls := 0
	handler := limiter.Limit(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	})

	do := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = remote
		rr := httptest.NewRecorder()
		handler(rr, req)
		return rr.Code
	}

	assert.Equal(t, http.StatusOK, do("10.0.0.1:1000"))
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1001"))
	assert.Equal(t, http.StatusTooManyRequests, do("10.0.0.1:1002"), "burst spent, same ip on another port")
	assert.Equal(t, http.StatusOK, do("10.0.0.2:1000"), "other ips have their own bucket")
	assert.Equal(t, 3, calls)

	frozen = frozen.Add(time.Second)
	assert.Equal(t, http.StatusOK, do("10.0.0.1:1003"), "bucket refills")
}

func TestIPRateLimiter_SweepBoundsEntries(t *testing.T) {
	limiter := NewIPRateLimiter(1, 1)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	now := start
	limiter.now = func() time.Time { return now }

	for i := 0; i < limiterMaxEntries; i++ {
		require.True(t, limiter.allow(fmt.Sprintf("ip-%d", i)))
	}
	now = start.Add(limiterIdleTTL + time.Minute)
	require.True(t, limiter.allow("fresh"))
	assert.Len(t, limiter.limiters, 1)
}
