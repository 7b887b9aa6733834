package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
)

func TestAttachLimiter(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newAttachLimiter(2, time.Minute)
	l.now = func() time.Time { return now }

	require.NoError(t, l.allow("10.0.0.1"))
	require.NoError(t, l.allow("10.0.0.1"))

	err := l.allow("10.0.0.1")
	var rlErr *RateLimitError
	require.True(t, errors.As(err, &rlErr))
	assert.Equal(t, 2, rlErr.Current)
	assert.Equal(t, 2, rlErr.Max)

	// Other clients have their own window.
	assert.NoError(t, l.allow("10.0.0.2"))

	now = now.Add(61 * time.Second)
	assert.NoError(t, l.allow("10.0.0.1"))
}

func TestAttachLimiterDisabled(t *testing.T) {
	l := newAttachLimiter(0, 0)
	for i := 0; i < 100; i++ {
		require.NoError(t, l.allow("10.0.0.1"))
	}
}

func TestAttachLimiterPrunesIdleClients(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	l := newAttachLimiter(5, time.Second)
	l.now = func() time.Time { return now }

	require.NoError(t, l.allow("a"))
	now = now.Add(2 * time.Second)
	require.NoError(t, l.allow("b"))

	l.mu.Lock()
	defer l.mu.Unlock()
	assert.NotContains(t, l.seen, "a")
	assert.Len(t, l.seen["b"], 1)
}

func TestHandleWebSocketRateLimited(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	New(log.NewNop(), nil, nil, "c-42", WSConfig{AttachRateLimit: 1, AttachWindow: time.Minute}).
		RegisterRoutes(r.Group(""))

	first := httptest.NewRecorder()
	r.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusUnauthorized, first.Code)

	second := httptest.NewRecorder()
	r.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/ws", nil))
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}
