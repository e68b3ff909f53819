package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "feedback:interaction:"

// RedisDeduplicator реализует domain.Deduplicator через Redis SET NX.
type RedisDeduplicator struct {
	client redis.Cmdable
}

// NewRedis создаёт дедупликатор.
func NewRedis(client redis.Cmdable) *RedisDeduplicator {
	return &RedisDeduplicator{client: client}
}

// Claim захватывает ключ, если он ещё не задан.
func (c *RedisDeduplicator) Claim(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return c.client.SetNX(ctx, keyPrefix+key, "1", ttl).Result()
}

// Ping проверяет доступность Redis.
func (c *RedisDeduplicator) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}
