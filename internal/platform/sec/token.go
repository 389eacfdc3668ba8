// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenerateSecureToken returns a cryptographically unpredictable,
// hex-encoded token of byteLength random bytes.
//
// # Usage
//
// The raw token is handed to the client (session cookie) and is never
// persisted server-side; only its keyed digest is stored.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}

// TokenHasher computes keyed digests of client-presented tokens.
//
// # Why HMAC?
//
// Storing HMAC-SHA256(secret, token) instead of the raw token means a
// leaked session store cannot be replayed without the signing secret.
// The digest is also what keys the session record, so lookups stay O(1).
type TokenHasher struct {
	secret []byte
}

// NewTokenHasher creates a TokenHasher bound to the session-signing secret.
func NewTokenHasher(secret string) *TokenHasher {
	return &TokenHasher{secret: []byte(secret)}
}

// Hash returns the hex-encoded HMAC-SHA256 digest of token.
func (hasher *TokenHasher) Hash(token string) string {
	mac := hmac.New(sha256.New, hasher.secret)
	mac.Write([]byte(token))
	return hex.EncodeToString(mac.Sum(nil))
}
