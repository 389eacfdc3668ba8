// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
)

// RedisSessionRepository implements [SessionRepository] using Redis.
//
// # Why Redis?
//
// Sessions are volatile, high-read records with a hard TTL. Storing them
// under "auth:session:<digest>" with a Redis expiry gives O(1) lookup on
// every privileged request and makes the fixed-TTL invariant structural:
// once the key expires, the token can never validate again.
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// Create stores the session under its token digest with a TTL ending at
// the session's ExpiresAt. The TTL is set once at creation and is never
// refreshed (no sliding expiry).
func (repository *RedisSessionRepository) Create(ctx context.Context, tokenHash string, session *Session) error {
	key := constants.RedisPrefixSession + tokenHash

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_marshal_failed: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("redis_session_create_failed: session already expired")
	}

	if err := repository.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis_session_set_failed: %w", err)
	}

	return nil
}

// Find retrieves the session stored under the token digest.
//
// # Returns
//
// Returns [apperr.NotFound] if the key is absent — an unknown token and
// an expired one are indistinguishable by design.
func (repository *RedisSessionRepository) Find(ctx context.Context, tokenHash string) (*Session, error) {
	key := constants.RedisPrefixSession + tokenHash

	payload, err := repository.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session")
		}
		return nil, fmt.Errorf("redis_session_get_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_unmarshal_failed: %w", err)
	}

	return session, nil
}

// Delete removes the session. Deleting an absent key is a no-op, which
// makes logout idempotent.
func (repository *RedisSessionRepository) Delete(ctx context.Context, tokenHash string) error {
	key := constants.RedisPrefixSession + tokenHash

	if err := repository.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("redis_session_delete_failed: %w", err)
	}

	return nil
}
