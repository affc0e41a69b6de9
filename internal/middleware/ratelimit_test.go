package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimiter(window time.Duration, now func() time.Time) *rateLimiter {
	return &rateLimiter{
		window:        window,
		last:          make(map[string]time.Time),
		sweepInterval: window,
		now:           now,
	}
}

func doRequest(l *rateLimiter, sessionID string) *gin.Context {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("POST", "/api/v1/chat/ask", nil)
	if sessionID != "" {
		c.Request.Header.Set(SessionIDHeader, sessionID)
	}
	l.handle(c)
	return c
}

func TestRateLimitBlocksWithinWindow(t *testing.T) {
	current := time.Now()
	l := newLimiter(time.Second, func() time.Time { return current })

	require.False(t, doRequest(l, "sess-1").IsAborted())
	require.True(t, doRequest(l, "sess-1").IsAborted())

	current = current.Add(2 * time.Second)
	require.False(t, doRequest(l, "sess-1").IsAborted())
}

func TestRateLimitKeysBySession(t *testing.T) {
	current := time.Now()
	l := newLimiter(time.Second, func() time.Time { return current })

	require.False(t, doRequest(l, "sess-1").IsAborted())
	require.False(t, doRequest(l, "sess-2").IsAborted())
	require.True(t, doRequest(l, "sess-2").IsAborted())
}

func TestRateLimitDisabledWithoutWindow(t *testing.T) {
	l := newLimiter(0, time.Now)
	for i := 0; i < 5; i++ {
		require.False(t, doRequest(l, "sess-1").IsAborted())
	}
}

func TestRateLimitCleanupExpired(t *testing.T) {
	current := time.Now()
	l := newLimiter(time.Second, func() time.Time { return current })

	l.last["stale"] = current.Add(-time.Minute)
	l.last["fresh"] = current

	l.cleanupExpiredLocked(current)
	require.NotContains(t, l.last, "stale")
	require.Contains(t, l.last, "fresh")
	require.Equal(t, current, l.lastSweep)
}
