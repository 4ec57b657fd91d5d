package redisx

import (
	"context"
	"fmt"
	"time"

	"planetarium-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// NewClient connects to redis and pings it. An empty address means redis is
// not configured; callers get (nil, nil) and run without cache and limiter.
func NewClient(config utils.RedisConfig) (*redis.Client, error) {
	if config.Addr == "" {
		return nil, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", config.Addr, err)
	}

	return rdb, nil
}
