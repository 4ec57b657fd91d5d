package redisx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const keyPrefix = "planetarium"

// Cache is a JSON read-through cache. A nil *Cache is valid and caches
// nothing, so services work the same with redis switched off.
type Cache struct {
	rdb *redis.Client
	ttl time.Duration
	sf  singleflight.Group
}

func NewCache(rdb *redis.Client, ttl time.Duration) *Cache {
	if rdb == nil {
		return nil
	}
	return &Cache{rdb: rdb, ttl: ttl}
}

func KeyThemes() string { return keyPrefix + ":themes" }

func KeyDomes() string { return keyPrefix + ":domes" }

func KeyShow(id string) string { return fmt.Sprintf("%s:show:%s", keyPrefix, id) }

func (c *Cache) Del(ctx context.Context, keys ...string) error {
	if c == nil || len(keys) == 0 {
		return nil
	}
	return c.rdb.Del(ctx, keys...).Err()
}

func GetJSON[T any](ctx context.Context, c *Cache, key string) (T, bool, error) {
	var zero T

	s, err := c.rdb.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return zero, false, nil
	}
	if err != nil {
		return zero, false, err
	}

	var out T
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return zero, false, err
	}

	return out, true, nil
}

func SetJSON(ctx context.Context, c *Cache, key string, val any) error {
	b, err := json.Marshal(val)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, key, string(b), c.ttl).Err()
}

// GetOrSetJSON returns the cached value for key or loads, stores and returns
// it. Concurrent misses on one key share a single load. Redis failures fall
// back to the loader.
func GetOrSetJSON[T any](ctx context.Context, c *Cache, key string, loader func(ctx context.Context) (T, error)) (T, error) {
	if c == nil {
		return loader(ctx)
	}

	if v, ok, err := GetJSON[T](ctx, c, key); err == nil && ok {
		return v, nil
	}

	vAny, err, _ := c.sf.Do(key, func() (any, error) {
		v, err := loader(ctx)
		if err != nil {
			return nil, err
		}
		_ = SetJSON(ctx, c, key, v)
		return v, nil
	})
	if err != nil {
		var zero T
		return zero, err
	}

	v, ok := vAny.(T)
	if !ok {
		var zero T
		return zero, errors.New("cache: type assertion failed")
	}

	return v, nil
}
