package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testSecret)
	t.Setenv("SESSION_TOKEN", "token")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Redis.Host)
	assert.Equal(t, 6379, cfg.Redis.Port)
	assert.Equal(t, 30*time.Second, cfg.WebSocket.PingInterval)
	assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, int64(4096), cfg.Cache.MaxEntries)
	assert.Empty(t, cfg.Preset.Path)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testSecret)
	t.Setenv("SESSION_TOKEN", "token")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.example.com,*.example.com")
	t.Setenv("QUERY_API_RETRY_WAIT_MIN", "1s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "redis.internal", cfg.Redis.Host)
	assert.Equal(t, 6380, cfg.Redis.Port)
	assert.Equal(t, []string{"https://app.example.com", "*.example.com"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, time.Second, cfg.QueryAPI.RetryWaitMin)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing secret",
			env:  map[string]string{"SESSION_TOKEN": "token"},
			want: "JWT_SECRET_KEY is required",
		},
		{
			name: "short secret",
			env:  map[string]string{"JWT_SECRET_KEY": "short", "SESSION_TOKEN": "token"},
			want: "at least 32 characters",
		},
		{
			name: "missing session",
			env:  map[string]string{"JWT_SECRET_KEY": testSecret},
			want: "SESSION_TOKEN is required",
		},
		{
			name: "bad redis port",
			env:  map[string]string{"JWT_SECRET_KEY": testSecret, "SESSION_TOKEN": "token", "REDIS_PORT": "70000"},
			want: "REDIS_PORT",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET_KEY", "")
			t.Setenv("SESSION_TOKEN", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadRejectsMalformedDuration(t *testing.T) {
	t.Setenv("JWT_SECRET_KEY", testSecret)
	t.Setenv("SESSION_TOKEN", "token")
	t.Setenv("CACHE_REFETCH_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}
