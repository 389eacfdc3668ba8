// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/constants"
	"github.com/taibuivan/inkwell/internal/platform/sec"
	"github.com/taibuivan/inkwell/pkg/uuidv7"
)

// Service implements operator authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, login,
// or session logic must be reviewed carefully.
type Service struct {
	userRepository    UserRepository
	sessionRepository SessionRepository
	tokenHasher       *sec.TokenHasher
	sessionTTL        time.Duration
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(
	userRepo UserRepository,
	sessionRepo SessionRepository,
	tokenHasher *sec.TokenHasher,
) *Service {
	return &Service{
		userRepository:    userRepo,
		sessionRepository: sessionRepo,
		tokenHasher:       tokenHasher,
		sessionTTL:        constants.SessionTTL,
	}
}

// LoginInput defines credentials for an authentication attempt.
type LoginInput struct {
	Username string
	Password string
}

// LoginResult represents a successfully established session.
type LoginResult struct {
	// Token is the raw opaque session token, handed to the client once
	// and never persisted server-side.
	Token     string
	ExpiresAt time.Time
	User      *User
}

// Login verifies credentials and issues a new fixed-TTL session.
//
// # Returns
//   - A [*LoginResult] containing the opaque token on success.
//   - [apperr.Unauthorized] if credentials do not match.
//
// # Flow
//  1. Lookup user by exact username.
//  2. Verify password hash using bcrypt.
//  3. Generate an unpredictable token and record the session.
func (service *Service) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	// ── 1. Fetch User Profile ─────────────────────────────────────────────

	// Return a generic unauthorized error to prevent username enumeration
	// attacks: unknown usernames and wrong passwords look identical.
	user, err := service.userRepository.FindByUsername(ctx, input.Username)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 2. Security Verification ──────────────────────────────────────────

	// bcrypt compares in constant time, preventing timing attacks.
	if !sec.CheckPasswordHash(input.Password, user.PasswordHash) {
		return nil, apperr.Unauthorized("Invalid login credentials")
	}

	// ── 3. Session Issuance ───────────────────────────────────────────────

	token, err := sec.GenerateSecureToken(32)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_generation_failed: %w", err)
	}

	issuedAt := time.Now()
	session := &Session{
		UserID:    user.ID,
		Username:  user.Username,
		IssuedAt:  issuedAt,
		ExpiresAt: issuedAt.Add(service.sessionTTL),
	}

	if err := service.sessionRepository.Create(ctx, service.tokenHasher.Hash(token), session); err != nil {
		return nil, fmt.Errorf("auth_service_session_creation_failed: %w", err)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: session.ExpiresAt,
		User:      user,
	}, nil
}

// Validate resolves an opaque client token into a session identity.
//
// # Contract
//
// Every privileged operation must call Validate first (via the session
// middleware). Validation never extends the session's expiry — sessions
// are fixed-TTL from issuance.
func (service *Service) Validate(ctx context.Context, token string) (*sec.Identity, error) {
	session, err := service.sessionRepository.Find(ctx, service.tokenHasher.Hash(token))
	if err != nil {
		if apperr.IsAppError(err) {
			return nil, apperr.Unauthorized("Invalid or expired session")
		}
		return nil, fmt.Errorf("auth_service_session_lookup_failed: %w", err)
	}

	// The store expires sessions on its own; this guard covers clock skew
	// between the store and the application.
	if !time.Now().Before(session.ExpiresAt) {
		return nil, apperr.Unauthorized("Invalid or expired session")
	}

	return &sec.Identity{
		UserID:   session.UserID,
		Username: session.Username,
	}, nil
}

// Logout destroys the session behind the given token.
// It is idempotent: an unknown or already-destroyed token is not an error.
func (service *Service) Logout(ctx context.Context, token string) error {
	if err := service.sessionRepository.Delete(ctx, service.tokenHasher.Hash(token)); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

// EnsureAdmin creates the bootstrap "admin" account on first startup.
//
// # Idempotency
//
// If the account already exists, nothing happens — in particular the
// password is NOT rotated to the supplied value, so restarting with a
// different ADMIN_PASSWORD never silently changes credentials.
func (service *Service) EnsureAdmin(ctx context.Context, password string) error {
	_, err := service.userRepository.FindByUsername(ctx, constants.BootstrapAdminUsername)
	if err == nil {
		return nil
	}
	if appError := apperr.As(err); appError == nil || appError.Code != "NOT_FOUND" {
		return fmt.Errorf("auth_service_ensure_admin_lookup_failed: %w", err)
	}

	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return fmt.Errorf("auth_service_ensure_admin_hash_failed: %w", err)
	}

	user := &User{
		ID:           uuidv7.New(), // Time-sortable ID to prevent PG index fragmentation.
		Username:     constants.BootstrapAdminUsername,
		PasswordHash: hashedPassword,
	}

	if err := service.userRepository.Create(ctx, user); err != nil {
		return fmt.Errorf("auth_service_ensure_admin_create_failed: %w", err)
	}

	return nil
}
