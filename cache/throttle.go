// Package cache holds the short lived keys that rate limit OTP requests.
package cache

import (
	"context"
	"sync"
	"time"

	"food-marketplace/services"

	"github.com/go-redis/redis/v8"
)

var (
	_ services.Throttle = (*RedisThrottle)(nil)
	_ services.Throttle = (*MemoryThrottle)(nil)
)

// RedisThrottle reserves a key with SET NX and a TTL. The first caller in a
// window wins, every other caller is refused until the key expires.
type RedisThrottle struct {
	client *redis.Client
	prefix string
}

func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func NewRedisThrottle(client *redis.Client, prefix string) *RedisThrottle {
	return &RedisThrottle{client: client, prefix: prefix}
}

func (t *RedisThrottle) Allow(ctx context.Context, key string, window time.Duration) (bool, error) {
	return t.client.SetNX(ctx, t.prefix+key, time.Now().Unix(), window).Result()
}

// MemoryThrottle is the single process fallback used when no Redis address
// is configured.
type MemoryThrottle struct {
	mu    sync.Mutex
	until map[string]time.Time
	now   func() time.Time
}

func NewMemoryThrottle() *MemoryThrottle {
	return &MemoryThrottle{until: make(map[string]time.Time), now: time.Now}
}

func (t *MemoryThrottle) Allow(_ context.Context, key string, window time.Duration) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	now := t.now()
	if until, ok := t.until[key]; ok && now.Before(until) {
		return false, nil
	}
	t.until[key] = now.Add(window)
	return true, nil
}
