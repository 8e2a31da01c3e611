// Package redis holds the client connection shared by the bootstrap guard
// and the readiness probe. The service has no other Redis state.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// Config captures the settings for the Redis connection. GuardTTL bounds how
// long a crashed bootstrap attempt can hold the single-writer lock.
type Config struct {
	Addr     string
	Password string
	DB       int
	Timeout  time.Duration
	GuardTTL time.Duration
}

// Connect builds the client and verifies connectivity with a ping before
// anything depends on it. Zero timeouts fall back to defaults.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
