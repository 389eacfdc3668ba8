// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCounterStore implements [CounterStore] on Redis INCR + EXPIRE.
//
// # Atomicity
//
// INCR is atomic server-side, so concurrent requests from the same
// client observe a strictly increasing count and exactly one of them
// crosses the limit boundary.
type RedisCounterStore struct {
	client *redis.Client
}

// NewRedisCounterStore creates a Redis-backed counter store.
func NewRedisCounterStore(client *redis.Client) *RedisCounterStore {
	return &RedisCounterStore{client: client}
}

// Increment adds 1 to the counter at key and returns the new count.
// The window TTL is attached when the counter is first created, fixing
// the window start at the first request.
func (store *RedisCounterStore) Increment(ctx context.Context, key string, window time.Duration) (int64, error) {
	count, err := store.client.Incr(ctx, key).Result()
	if err != nil {
		return 0, fmt.Errorf("redis_counter_incr_failed: %w", err)
	}

	if count == 1 {
		if err := store.client.Expire(ctx, key, window).Err(); err != nil {
			return 0, fmt.Errorf("redis_counter_expire_failed: %w", err)
		}
	}

	return count, nil
}
