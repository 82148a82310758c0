// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/resolve/internal/platform/apperr"
	"github.com/taibuivan/resolve/internal/recovery"
	"github.com/taibuivan/resolve/internal/users/auth"
)

// # Test Doubles

type fakeUserRepository struct {
	byEmail map[string]*auth.User
	byID    map[string]*auth.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{byEmail: map[string]*auth.User{}, byID: map[string]*auth.User{}}
}

func (repository *fakeUserRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repository *fakeUserRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repository.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return user, nil
}

func (repository *fakeUserRepository) Create(_ context.Context, user *auth.User) error {
	repository.byEmail[user.Email] = user
	repository.byID[user.ID] = user
	return nil
}

func (repository *fakeUserRepository) Update(_ context.Context, user *auth.User) error {
	repository.byEmail[user.Email] = user
	repository.byID[user.ID] = user
	return nil
}

func (repository *fakeUserRepository) SoftDelete(_ context.Context, id string) error {
	if user, ok := repository.byID[id]; ok {
		delete(repository.byEmail, user.Email)
		delete(repository.byID, id)
	}
	return nil
}

type fakeSessionRepository struct {
	byHash map[string]*auth.Session
}

func newFakeSessionRepository() *fakeSessionRepository {
	return &fakeSessionRepository{byHash: map[string]*auth.Session{}}
}

func (repository *fakeSessionRepository) Create(_ context.Context, session *auth.Session) error {
	repository.byHash[session.TokenHash] = session
	return nil
}

func (repository *fakeSessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*auth.Session, error) {
	session, ok := repository.byHash[tokenHash]
	if !ok {
		return nil, apperr.NotFound("Session")
	}
	return session, nil
}

func (repository *fakeSessionRepository) Revoke(_ context.Context, tokenHash string) error {
	delete(repository.byHash, tokenHash)
	return nil
}

func (repository *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	for hash, session := range repository.byHash {
		if session.UserID == userID {
			delete(repository.byHash, hash)
		}
	}
	return nil
}

type fakeRecordRepository struct {
	records map[string]*recovery.UserRecord
}

func newFakeRecordRepository() *fakeRecordRepository {
	return &fakeRecordRepository{records: map[string]*recovery.UserRecord{}}
}

func (repository *fakeRecordRepository) Get(_ context.Context, userID string) (*recovery.UserRecord, error) {
	record, ok := repository.records[userID]
	if !ok {
		return nil, apperr.NotFound("Recovery record")
	}
	return record, nil
}

func (repository *fakeRecordRepository) Put(_ context.Context, userID string, record *recovery.UserRecord) error {
	repository.records[userID] = record
	return nil
}

func (repository *fakeRecordRepository) Delete(_ context.Context, userID string) error {
	delete(repository.records, userID)
	return nil
}

type fakeTokenProvider struct{}

func (provider *fakeTokenProvider) GenerateAccessToken(userID, email string, _ time.Duration) (string, error) {
	return fmt.Sprintf("jwt-%s-%s", userID, email), nil
}

// # Fixtures

type testEnv struct {
	service  *auth.Service
	users    *fakeUserRepository
	sessions *fakeSessionRepository
	records  *fakeRecordRepository
}

func newTestEnv() *testEnv {
	users := newFakeUserRepository()
	sessions := newFakeSessionRepository()
	records := newFakeRecordRepository()
	return &testEnv{
		service:  auth.NewService(users, sessions, records, &fakeTokenProvider{}),
		users:    users,
		sessions: sessions,
		records:  records,
	}
}

// # Registration

/*
TestService_Register_SeedsEmptyRecord verifies that registration creates both
the account and an empty recovery record for the new user.
*/
func TestService_Register_SeedsEmptyRecord(t *testing.T) {
	env := newTestEnv()

	user, err := env.service.Register(context.Background(), auth.RegisterInput{
		DisplayName: "Tai",
		Email:       "tai@resolve.app",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, user.ID)

	record, ok := env.records.records[user.ID]
	require.True(t, ok)
	assert.Equal(t, user.ID, record.User.ID)
	assert.Equal(t, "tai@resolve.app", record.User.Email)
	assert.Empty(t, record.Addictions)
	assert.False(t, record.IsOnboarded)
}

/*
TestService_Register_EmailConflict asserts the CONFLICT response for an
already-registered email.
*/
func TestService_Register_EmailConflict(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Register(context.Background(), auth.RegisterInput{DisplayName: "Tai", Email: "tai@resolve.app"})
	require.NoError(t, err)

	_, err = env.service.Register(context.Background(), auth.RegisterInput{DisplayName: "Other", Email: "tai@resolve.app"})
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)
}

// # Login & Sessions

/*
TestService_Login_UnknownEmailIsGenericUnauthorized checks that an unknown
email yields a generic 401, never a NOT_FOUND that would confirm absence.
*/
func TestService_Login_UnknownEmailIsGenericUnauthorized(t *testing.T) {
	env := newTestEnv()

	_, err := env.service.Login(context.Background(), auth.LoginInput{Email: "ghost@resolve.app"})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)
}

/*
TestService_Login_IssuesTokensAndSession verifies the full login product:
an access token, a refresh token, and a stored session bound to the user.
*/
func TestService_Login_IssuesTokensAndSession(t *testing.T) {
	env := newTestEnv()
	user, err := env.service.Register(context.Background(), auth.RegisterInput{DisplayName: "Tai", Email: "tai@resolve.app"})
	require.NoError(t, err)

	session, err := env.service.Login(context.Background(), auth.LoginInput{
		Email:     "tai@resolve.app",
		UserAgent: "test-agent",
		IPAddress: "10.0.0.1",
	})
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("jwt-%s-tai@resolve.app", user.ID), session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.True(t, session.RefreshTokenExpiresAt.After(time.Now()))

	require.Len(t, env.sessions.byHash, 1)
	for _, stored := range env.sessions.byHash {
		assert.Equal(t, user.ID, stored.UserID)
		assert.Equal(t, "test-agent", stored.UserAgent)
		// The raw refresh token must never be stored.
		assert.NotEqual(t, session.RefreshToken, stored.TokenHash)
	}
}

/*
TestService_Logout_Idempotent asserts that logging out an unknown or
already-revoked token succeeds silently.
*/
func TestService_Logout_Idempotent(t *testing.T) {
	env := newTestEnv()

	assert.NoError(t, env.service.Logout(context.Background(), "never-issued"))

	_, err := env.service.Register(context.Background(), auth.RegisterInput{DisplayName: "Tai", Email: "tai@resolve.app"})
	require.NoError(t, err)
	session, err := env.service.Login(context.Background(), auth.LoginInput{Email: "tai@resolve.app"})
	require.NoError(t, err)

	assert.NoError(t, env.service.Logout(context.Background(), session.RefreshToken))
	assert.Empty(t, env.sessions.byHash)

	// Second logout of the same token is still fine.
	assert.NoError(t, env.service.Logout(context.Background(), session.RefreshToken))
}

/*
TestService_RefreshSession_RotatesTokens verifies refresh token rotation: the
old token is invalidated and the new one resolves to a fresh session.
*/
func TestService_RefreshSession_RotatesTokens(t *testing.T) {
	env := newTestEnv()
	_, err := env.service.Register(context.Background(), auth.RegisterInput{DisplayName: "Tai", Email: "tai@resolve.app"})
	require.NoError(t, err)
	original, err := env.service.Login(context.Background(), auth.LoginInput{Email: "tai@resolve.app"})
	require.NoError(t, err)

	rotated, err := env.service.RefreshSession(context.Background(), original.RefreshToken, "agent", "10.0.0.1")
	require.NoError(t, err)
	assert.NotEqual(t, original.RefreshToken, rotated.RefreshToken)

	// Replaying the old token must fail after rotation.
	_, err = env.service.RefreshSession(context.Background(), original.RefreshToken, "agent", "10.0.0.1")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "UNAUTHORIZED", ae.Code)

	// The rotated token keeps working.
	_, err = env.service.RefreshSession(context.Background(), rotated.RefreshToken, "agent", "10.0.0.1")
	assert.NoError(t, err)
}
