// Copyright (c) 2026 Inkwell. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/inkwell/internal/platform/apperr"
	"github.com/taibuivan/inkwell/internal/platform/sec"
)

// fakeUserRepository is an in-memory [UserRepository] for unit tests.
type fakeUserRepository struct {
	users map[string]*User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[string]*User)}
}

func (repository *fakeUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	user, found := repository.users[username]
	if !found {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repository *fakeUserRepository) Create(_ context.Context, user *User) error {
	repository.users[user.Username] = user
	return nil
}

// fakeSessionRepository is an in-memory [SessionRepository] for unit tests.
type fakeSessionRepository struct {
	sessions map[string]*Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{sessions: make(map[string]*Session)}
}

func (repository *fakeSessionRepository) Create(_ context.Context, tokenHash string, session *Session) error {
	repository.sessions[tokenHash] = session
	return nil
}

func (repository *fakeSessionRepository) Find(_ context.Context, tokenHash string) (*Session, error) {
	session, found := repository.sessions[tokenHash]
	if !found {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (repository *fakeSessionRepository) Delete(_ context.Context, tokenHash string) error {
	delete(repository.sessions, tokenHash)
	return nil
}

// newTestService wires a Service over fakes with one seeded operator.
func newTestService(t *testing.T) (*Service, *fakeSessionRepository) {
	t.Helper()

	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	service := NewService(users, sessions, sec.NewTokenHasher("test-secret"))

	require.NoError(t, service.EnsureAdmin(context.Background(), "correct horse battery staple"))

	return service, sessions
}

/*
TestService_Login_Success verifies the full credential path: correct
username and password yield a session token that validates to the
admin identity.
*/
func TestService_Login_Success(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	result, err := service.Login(ctx, LoginInput{
		Username: "admin",
		Password: "correct horse battery staple",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, "admin", result.User.Username)
	assert.WithinDuration(t, time.Now().Add(24*time.Hour), result.ExpiresAt, time.Minute)

	identity, err := service.Validate(ctx, result.Token)
	require.NoError(t, err)
	assert.Equal(t, result.User.ID, identity.UserID)
	assert.Equal(t, "admin", identity.Username)
}

/*
TestService_Login_GenericFailure verifies that a wrong password and an
unknown username produce byte-identical client errors, preventing
username enumeration.
*/
func TestService_Login_GenericFailure(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	_, wrongPassword := service.Login(ctx, LoginInput{Username: "admin", Password: "nope"})
	_, unknownUser := service.Login(ctx, LoginInput{Username: "ghost", Password: "nope"})

	require.Error(t, wrongPassword)
	require.Error(t, unknownUser)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())

	appError := apperr.As(wrongPassword)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
}

/*
TestService_Logout_Idempotent verifies that a token never validates
after logout and that repeated logouts are not errors.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	result, err := service.Login(ctx, LoginInput{
		Username: "admin",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)

	require.NoError(t, service.Logout(ctx, result.Token))

	_, err = service.Validate(ctx, result.Token)
	assert.Error(t, err, "token must not validate after logout")

	// Second logout with the same token: still fine.
	assert.NoError(t, service.Logout(ctx, result.Token))
	// Logout with a token that never existed: still fine.
	assert.NoError(t, service.Logout(ctx, "never-issued"))
}

/*
TestService_Validate_Expired verifies that a session past its ExpiresAt
is rejected even if the store still returns the record.
*/
func TestService_Validate_Expired(t *testing.T) {
	ctx := context.Background()
	service, sessions := newTestService(t)

	result, err := service.Login(ctx, LoginInput{
		Username: "admin",
		Password: "correct horse battery staple",
	})
	require.NoError(t, err)

	// Rewind the stored session past its TTL.
	for hash, session := range sessions.sessions {
		session.ExpiresAt = time.Now().Add(-time.Second)
		sessions.sessions[hash] = session
	}

	_, err = service.Validate(ctx, result.Token)
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
}

/*
TestService_Validate_UnknownToken verifies that an arbitrary token is
rejected without distinguishing "unknown" from "expired".
*/
func TestService_Validate_UnknownToken(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	_, err := service.Validate(ctx, "deadbeef")
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, "UNAUTHORIZED", appError.Code)
	assert.Equal(t, "Invalid or expired session", appError.Message)
}

/*
TestService_EnsureAdmin_DoesNotRotatePassword verifies that re-running
bootstrap with a different password leaves the original credential
intact.
*/
func TestService_EnsureAdmin_DoesNotRotatePassword(t *testing.T) {
	ctx := context.Background()
	service, _ := newTestService(t)

	require.NoError(t, service.EnsureAdmin(ctx, "a completely different password"))

	_, err := service.Login(ctx, LoginInput{
		Username: "admin",
		Password: "correct horse battery staple",
	})
	assert.NoError(t, err, "original bootstrap password must still work")

	_, err = service.Login(ctx, LoginInput{
		Username: "admin",
		Password: "a completely different password",
	})
	assert.Error(t, err, "the new password must NOT have been applied")
}
