package auth

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// IdentityCache bounds the cost of the per-request account reload.
//
// Staleness is capped by the entry TTL, which config forces well below the
// token lifetime, and writes that change authorization state (deactivation,
// role change) invalidate the entry immediately.
type IdentityCache interface {
	Get(ctx context.Context, id string) (Account, bool, error)
	Set(ctx context.Context, a Account) error
	Invalidate(ctx context.Context, id string) error
}

// RedisIdentityCache stores sanitized-adjacent account state in Redis.
// The password hash is never cached.
type RedisIdentityCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisIdentityCache(rdb *redis.Client, ttl time.Duration) *RedisIdentityCache {
	return &RedisIdentityCache{rdb: rdb, ttl: ttl}
}

type cachedAccount struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Name      string     `json:"name"`
	Role      string     `json:"role"`
	Active    bool       `json:"active"`
	LastLogin *time.Time `json:"last_login,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

func cacheKey(id string) string { return "auth:acct:" + id }

func (c *RedisIdentityCache) Get(ctx context.Context, id string) (Account, bool, error) {
	raw, err := c.rdb.Get(ctx, cacheKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Account{}, false, nil
		}
		return Account{}, false, err
	}
	var ca cachedAccount
	if err := json.Unmarshal(raw, &ca); err != nil {
		// Treat a corrupt entry as a miss; the store is authoritative.
		_ = c.rdb.Del(ctx, cacheKey(id)).Err()
		return Account{}, false, nil
	}
	return Account{
		ID:        ca.ID,
		Email:     ca.Email,
		Name:      ca.Name,
		Role:      ca.Role,
		Active:    ca.Active,
		LastLogin: ca.LastLogin,
		CreatedAt: ca.CreatedAt,
	}, true, nil
}

func (c *RedisIdentityCache) Set(ctx context.Context, a Account) error {
	// A zero TTL would persist the entry forever and lose the staleness
	// bound; treat it as caching disabled.
	if c.ttl <= 0 {
		return nil
	}
	raw, err := json.Marshal(cachedAccount{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Role:      a.Role,
		Active:    a.Active,
		LastLogin: a.LastLogin,
		CreatedAt: a.CreatedAt,
	})
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, cacheKey(a.ID), raw, c.ttl).Err()
}

func (c *RedisIdentityCache) Invalidate(ctx context.Context, id string) error {
	return c.rdb.Del(ctx, cacheKey(id)).Err()
}
