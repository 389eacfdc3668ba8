// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
)

// UserRepository defines the data access contract for operator accounts.
//
// # Review Process
//
// This interface is placed in a separate file from user.go so entity changes
// and storage-contract changes can be reviewed independently.
//
// # Implementations
//
// The canonical implementation is PostgreSQL ([PostgresUserRepository]).
type UserRepository interface {
	// FindByUsername returns the account with the given username.
	//
	// Returns [apperr.NotFound] if the username is unknown.
	FindByUsername(ctx context.Context, username string) (*User, error)

	// Create persists a brand-new operator account.
	//
	// Returns a wrapped error if the username unique constraint fails.
	Create(ctx context.Context, user *User) error
}

// SessionRepository defines the data access contract for opaque-token sessions.
//
// # Keying
//
// Sessions are keyed by the HMAC digest of the client token, never by
// the raw token itself. The store must expire records at ExpiresAt.
type SessionRepository interface {
	// Create persists a new session under the given token digest.
	Create(ctx context.Context, tokenHash string, session *Session) error

	// Find returns the session stored under the token digest.
	//
	// Returns [apperr.NotFound] if the session is unknown or has expired.
	Find(ctx context.Context, tokenHash string) (*Session, error)

	// Delete removes the session if present. Deleting an absent session
	// is not an error (logout is idempotent).
	Delete(ctx context.Context, tokenHash string) error
}
