package admin

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"dpiportal/models"
	"dpiportal/utils"

	"github.com/go-redis/redis/v8"
)

// ListCache holds the last fetched user list. Get reports a miss with ok=false.
type ListCache interface {
	Get(ctx context.Context) (users []models.AdminUser, ok bool, err error)
	Set(ctx context.Context, users []models.AdminUser) error
	Invalidate(ctx context.Context) error
}

// RedisListCache stores the list as one JSON value with a short TTL.
type RedisListCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisListCache(client *redis.Client, ttl time.Duration) *RedisListCache {
	if ttl <= 0 {
		ttl = utils.UserListCacheTTL
	}
	return &RedisListCache{client: client, ttl: ttl}
}

func (c *RedisListCache) Get(ctx context.Context) ([]models.AdminUser, bool, error) {
	data, err := c.client.Get(ctx, utils.UserListCacheKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read user list cache: %w", err)
	}
	var users []models.AdminUser
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, false, fmt.Errorf("failed to decode user list cache: %w", err)
	}
	return users, true, nil
}

func (c *RedisListCache) Set(ctx context.Context, users []models.AdminUser) error {
	data, err := json.Marshal(users)
	if err != nil {
		return fmt.Errorf("failed to encode user list: %w", err)
	}
	return c.client.Set(ctx, utils.UserListCacheKey, data, c.ttl).Err()
}

func (c *RedisListCache) Invalidate(ctx context.Context) error {
	return c.client.Del(ctx, utils.UserListCacheKey).Err()
}

// MemoryListCache is a process-local ListCache with the same TTL semantics.
type MemoryListCache struct {
	mu        sync.Mutex
	users     []models.AdminUser
	expiresAt time.Time
	ttl       time.Duration
	now       func() time.Time
}

func NewMemoryListCache(ttl time.Duration, now func() time.Time) *MemoryListCache {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = utils.UserListCacheTTL
	}
	return &MemoryListCache{ttl: ttl, now: now}
}

func (c *MemoryListCache) Get(context.Context) ([]models.AdminUser, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.users == nil || !c.now().Before(c.expiresAt) {
		return nil, false, nil
	}
	out := make([]models.AdminUser, len(c.users))
	copy(out, c.users)
	return out, true, nil
}

func (c *MemoryListCache) Set(_ context.Context, users []models.AdminUser) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = make([]models.AdminUser, len(users))
	copy(c.users, users)
	c.expiresAt = c.now().Add(c.ttl)
	return nil
}

func (c *MemoryListCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.users = nil
	return nil
}
