package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	guardKey = "bootstrap:guard"

	defaultGuardTTL = 30 * time.Second
)

// BootstrapGuard is a Redis-backed single-writer lock around the bootstrap
// check-then-act sequence. SETNX makes the acquire atomic across instances.
type BootstrapGuard struct {
	client *redis.Client
	ttl    time.Duration
}

// NewBootstrapGuard wraps the given Redis client. ttl bounds how long a
// crashed bootstrap can hold the lock; zero selects the default.
func NewBootstrapGuard(client *redis.Client, ttl time.Duration) *BootstrapGuard {
	if ttl <= 0 {
		ttl = defaultGuardTTL
	}
	return &BootstrapGuard{client: client, ttl: ttl}
}

// Acquire takes the lock; false means another bootstrap is in flight.
func (g *BootstrapGuard) Acquire(ctx context.Context) (bool, error) {
	ok, err := g.client.SetNX(ctx, guardKey, "1", g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("bootstrap guard acquire: %w", err)
	}
	return ok, nil
}

// Release drops the lock.
func (g *BootstrapGuard) Release(ctx context.Context) error {
	if err := g.client.Del(ctx, guardKey).Err(); err != nil {
		return fmt.Errorf("bootstrap guard release: %w", err)
	}
	return nil
}
