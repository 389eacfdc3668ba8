// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package ratelimit bounds request volume per client address using fixed
time windows.

Two bucket classes exist:

  - General: applied to all privileged-surface traffic.
  - Login: a stricter bucket applied to authentication attempts, stacked
    on top of the general bucket (a login request must pass both).

The limiter itself is stateless; counters live in an injected
[CounterStore] with atomic increment semantics, so the same code runs
against Redis in production and an in-memory store in tests.
*/
package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// Bucket defines one windowed quota class.
type Bucket struct {
	// Name namespaces the counter keys (e.g. "general", "login").
	Name string
	// Limit is the maximum number of requests per window.
	Limit int64
	// Window is the fixed counting window. Counters reset when it elapses.
	Window time.Duration
}

// Standard bucket classes. Login stacks on General — it never replaces it.
var (
	General = Bucket{Name: "general", Limit: 100, Window: 15 * time.Minute}
	Login   = Bucket{Name: "login", Limit: 5, Window: 60 * time.Minute}
)

// CounterStore is the atomic counter contract backing the limiter.
//
// # Semantics
//
// Increment must atomically add 1 to the counter at key, starting the
// window on the first increment, and return the post-increment count.
// Counters expire once their window elapses.
type CounterStore interface {
	Increment(ctx context.Context, key string, window time.Duration) (int64, error)
}

// Limiter evaluates windowed quotas against an injected [CounterStore].
type Limiter struct {
	store CounterStore
}

// New constructs a [Limiter] over the given counter store.
func New(store CounterStore) *Limiter {
	return &Limiter{store: store}
}

// Allow records one request for (clientKey, bucket) and reports whether
// it fits inside the bucket's window quota.
//
// # Contract
//
// Callers must evaluate Allow BEFORE any stateful work (credential
// lookups, inserts); a rejected request must not touch other stores.
// A store failure is returned as an error, never silently allowed.
func (limiter *Limiter) Allow(ctx context.Context, clientKey string, bucket Bucket) (bool, error) {
	key := fmt.Sprintf("%s%s:%s", constants.RedisPrefixRateLimit, bucket.Name, clientKey)

	count, err := limiter.store.Increment(ctx, key, bucket.Window)
	if err != nil {
		return false, fmt.Errorf("ratelimit: increment failed: %w", err)
	}

	return count <= bucket.Limit, nil
}

// RetryAfter returns the advisory wait, in whole seconds, that a
// rejected client should back off for. Fixed windows make the true
// remainder unknowable without another round-trip, so the full window
// is reported.
func (bucket Bucket) RetryAfter() int {
	return int(bucket.Window.Seconds())
}
