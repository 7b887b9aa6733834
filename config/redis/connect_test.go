package redis

import (
	"testing"
	"time"

	"github.com/HaokunYang123/routine-craft-bot-sub002/config"
	"github.com/stretchr/testify/assert"
)

func TestToClientConfig(t *testing.T) {
	got := toClientConfig(config.RedisConfig{
		Host:        "redis.internal",
		Port:        6380,
		DB:          2,
		PoolSize:    5,
		PoolTimeout: time.Second,
	})

	assert.Equal(t, "redis.internal", got.Host)
	assert.Equal(t, 6380, got.Port)
	assert.Equal(t, 2, got.DB)
	assert.Equal(t, 5, got.PoolSize)
	assert.Equal(t, time.Second, got.PoolTimeout)
}
