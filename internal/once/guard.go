package once

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrEmptyToken is returned when a submission arrives without a form token.
var ErrEmptyToken = errors.New("once: form token required")

// Guard hands out each form token exactly once.
type Guard interface {
	// Claim reports true for the first claim of token and false afterwards.
	Claim(ctx context.Context, token string) (bool, error)
}

const keyPrefix = "leadform:submitted:"

// RedisGuard records claimed tokens with SET NX so replicas agree.
type RedisGuard struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisGuard builds a Redis-backed guard. Tokens expire after ttl.
func NewRedisGuard(client redis.Cmdable, ttl time.Duration) *RedisGuard {
	if client == nil {
		panic("once: redis client required")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &RedisGuard{client: client, ttl: ttl}
}

func (g *RedisGuard) Claim(ctx context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, ErrEmptyToken
	}
	ok, err := g.client.SetNX(ctx, keyPrefix+token, time.Now().UTC().Format(time.RFC3339), g.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("once: claim token: %w", err)
	}
	return ok, nil
}

// MemoryGuard is a single-process guard used when Redis is not configured.
type MemoryGuard struct {
	mu     sync.Mutex
	ttl    time.Duration
	now    func() time.Time
	claims map[string]time.Time
}

// NewMemoryGuard creates an in-memory guard. Tokens expire after ttl.
func NewMemoryGuard(ttl time.Duration) *MemoryGuard {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &MemoryGuard{
		ttl:    ttl,
		now:    time.Now,
		claims: make(map[string]time.Time),
	}
}

func (g *MemoryGuard) Claim(_ context.Context, token string) (bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return false, ErrEmptyToken
	}
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	for k, exp := range g.claims {
		if now.After(exp) {
			delete(g.claims, k)
		}
	}
	if _, seen := g.claims[token]; seen {
		return false, nil
	}
	g.claims[token] = now.Add(g.ttl)
	return true, nil
}

var (
	_ Guard = (*RedisGuard)(nil)
	_ Guard = (*MemoryGuard)(nil)
)
