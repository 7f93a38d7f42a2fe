package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Cache wraps the redis client. A nil *Cache is valid and means the
// cache is disabled; all operations become no-ops so callers never have
// to branch on availability.
type Cache struct {
	client *redis.Client
}

// Connect dials Redis and returns a Cache, or nil when Redis is
// unreachable. The server runs fine without it, everything just hits
// PostgreSQL directly.
func Connect(addr, password string) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", addr).Msg("redis unavailable, falling back to postgres only")
		client.Close()
		return nil
	}

	log.Info().Str("addr", addr).Msg("redis connected")
	return &Cache{client: client}
}

func (c *Cache) Close() error {
	if c == nil {
		return nil
	}
	return c.client.Close()
}

func (c *Cache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	if c == nil {
		return nil
	}
	return c.client.Set(ctx, key, value, expiration).Err()
}

// Get returns ("", nil) on a miss or when the cache is disabled.
func (c *Cache) Get(ctx context.Context, key string) (string, error) {
	if c == nil {
		return "", nil
	}
	value, err := c.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return "", nil
	}
	return value, err
}

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
