// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth implements operator authentication: credential
// verification and opaque-token sessions.
//
// # Architecture
//
// Entities in this file represent the "Truth" of the system.
// They have no dependencies on outer layers (like databases, APIs, or libraries).
// This makes the core logic highly testable and resilient to technology changes.
package auth

import (
	"time"
)

// User represents a privileged operator account.
//
// # Rules
//   - Username is unique and matched exactly (no case folding).
//   - PasswordHash is generated via bcrypt exclusively by the auth [Service].
//   - Accounts are created once at bootstrap and are immutable afterwards;
//     there is no self-registration surface.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"` // Explicitly omitted from JSON for security.
	CreatedAt    time.Time `json:"created_at"`
}

// Session represents a server-held record binding an opaque client token
// to an authenticated user identity.
//
// # Security Concept
//
// The client only ever holds the raw random token (in an HTTP-only
// cookie). The server stores this record keyed by the token's HMAC
// digest, so a leaked session store cannot be replayed. Sessions have a
// fixed TTL from issuance and are never extended on use.
type Session struct {
	UserID    string    `json:"user_id"`
	Username  string    `json:"username"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
