package redis

import (
	"testing"
	"time"
)

func TestNewBootstrapGuard_TTL(t *testing.T) {
	if g := NewBootstrapGuard(nil, 0); g.ttl != defaultGuardTTL {
		t.Fatalf("expected default ttl %v, got %v", defaultGuardTTL, g.ttl)
	}
	if g := NewBootstrapGuard(nil, time.Minute); g.ttl != time.Minute {
		t.Fatalf("expected configured ttl, got %v", g.ttl)
	}
}
