package redis

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"strconv"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// Client is a go-redis client that remembers the settings it was built from.
type Client struct {
	*goredis.Client
	config Config
}

// NewClient builds a client from cfg. No connection is made until the first
// command, so an unreachable server is reported by Ping rather than here.
func NewClient(cfg Config) (*Client, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Client{Client: goredis.NewClient(cfg.options()), config: cfg}, nil
}

// Dial builds a client and requires the server to answer a PING within
// DefaultConnectTimeout.
func Dial(ctx context.Context, cfg Config) (*Client, error) {
	client, err := NewClient(cfg)
	if err != nil {
		return nil, err
	}

	pingCtx, cancel := context.WithTimeout(ctx, DefaultConnectTimeout)
	defer cancel()
	if _, err := client.Ping(pingCtx); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w %s: %w", ErrUnreachable, client.Addr(), err)
	}
	return client, nil
}

// Wrap adapts an existing go-redis client.
func Wrap(client *goredis.Client) *Client {
	return &Client{Client: client}
}

// Addr is the host:port the client dials.
func (c *Client) Addr() string {
	if c.config.Host == "" {
		return c.Client.Options().Addr
	}
	return c.config.addr()
}

// Ping round-trips a PING and reports its latency.
func (c *Client) Ping(ctx context.Context) (time.Duration, error) {
	start := time.Now()
	if err := c.Client.Ping(ctx).Err(); err != nil {
		return 0, err
	}
	return time.Since(start), nil
}

func (c Config) addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c Config) options() *goredis.Options {
	opts := &goredis.Options{
		Addr:            c.addr(),
		Password:        c.Password,
		DB:              c.DB,
		MaxRetries:      c.MaxRetries,
		MinIdleConns:    c.MinIdleConns,
		PoolSize:        c.PoolSize,
		PoolTimeout:     c.PoolTimeout,
		ConnMaxIdleTime: c.ConnMaxIdleTime,
		ConnMaxLifetime: c.ConnMaxLifetime,
	}
	if c.UseTLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	return opts
}
