package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/HaokunYang123/routine-craft-bot-sub002/config"
	pkgRedis "github.com/HaokunYang123/routine-craft-bot-sub002/pkg/redis"
)

const connectTimeout = 5 * time.Second

// Connect builds a client from cfg and checks the server answers a PING.
// The client is returned even when the ping fails so callers can run degraded.
func Connect(ctx context.Context, cfg config.RedisConfig) (*pkgRedis.Client, error) {
	client, err := pkgRedis.NewClient(toClientConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis client: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if _, err := client.Ping(pingCtx); err != nil {
		return client, fmt.Errorf("failed to connect to Redis at %s:%d: %w", cfg.Host, cfg.Port, err)
	}
	return client, nil
}

func toClientConfig(cfg config.RedisConfig) pkgRedis.Config {
	return pkgRedis.Config{
		Host:            cfg.Host,
		Port:            cfg.Port,
		Password:        cfg.Password,
		DB:              cfg.DB,
		UseTLS:          cfg.UseTLS,
		MaxRetries:      cfg.MaxRetries,
		MinIdleConns:    cfg.MinIdleConns,
		PoolSize:        cfg.PoolSize,
		PoolTimeout:     cfg.PoolTimeout,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
	}
}
