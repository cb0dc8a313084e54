package revgeo

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rotisserie/eris"
)

const redisKeyPrefix = "revgeo:"

// RedisCache backs the resolution cache with Redis so multiple processes can
// share resolved provinces.
type RedisCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisCache connects to the given Redis instance. A zero ttl stores
// entries without expiry.
func NewRedisCache(addr, password string, db int, ttl time.Duration) *RedisCache {
	return &RedisCache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) (string, bool, error) {
	val, err := c.rdb.Get(ctx, redisKeyPrefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, eris.Wrap(err, "revgeo: redis get")
	}
	return val, true, nil
}

// Put implements Cache.
func (c *RedisCache) Put(ctx context.Context, key, province string) error {
	if err := c.rdb.Set(ctx, redisKeyPrefix+key, province, c.ttl).Err(); err != nil {
		return eris.Wrap(err, "revgeo: redis set")
	}
	return nil
}

// Close releases the underlying connection pool.
func (c *RedisCache) Close() error {
	return c.rdb.Close()
}
