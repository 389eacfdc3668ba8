// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryCounterStore implements [CounterStore] with an in-process map.
//
// # Usage
//
// Intended for tests and single-process development runs. Production
// deployments use [RedisCounterStore] so counters survive restarts and
// are shared across replicas.
type MemoryCounterStore struct {
	mu       sync.Mutex
	counters map[string]*memoryCounter

	// now is swappable so tests can step through window boundaries.
	now func() time.Time
}

type memoryCounter struct {
	count   int64
	resetAt time.Time
}

// NewMemoryCounterStore creates an empty in-memory counter store.
func NewMemoryCounterStore() *MemoryCounterStore {
	return &MemoryCounterStore{
		counters: make(map[string]*memoryCounter),
		now:      time.Now,
	}
}

// Increment adds 1 to the counter at key, resetting it first if its
// window has elapsed, and returns the new count.
func (store *MemoryCounterStore) Increment(_ context.Context, key string, window time.Duration) (int64, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	currentTime := store.now()

	counter, found := store.counters[key]
	if !found || !currentTime.Before(counter.resetAt) {
		counter = &memoryCounter{resetAt: currentTime.Add(window)}
		store.counters[key] = counter
	}

	counter.count++
	return counter.count, nil
}
