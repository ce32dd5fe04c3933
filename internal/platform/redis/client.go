package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"medialens/internal/platform/config"
)

// Client wraps the go-redis client backing the extraction result cache.
type Client struct {
	*redis.Client
}

// New creates the cache client from the provided configuration. Returns nil
// when no URL is configured; the service then runs with caching disabled and
// every check pays the full extraction cost.
func New(cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" {
		return nil, nil
	}

	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	opts.DialTimeout = cfg.DialTimeout
	opts.ReadTimeout = cfg.ReadTimeout
	opts.WriteTimeout = cfg.WriteTimeout

	client := redis.NewClient(opts)

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}

	return &Client{Client: client}, nil
}

// Health reports whether the cache backend is reachable. A failing cache
// degrades latency, not correctness, so callers should report it without
// failing the whole health check.
func (c *Client) Health(ctx context.Context) error {
	return c.Ping(ctx).Err()
}

// Close closes the connection pool.
func (c *Client) Close() error {
	return c.Client.Close()
}
