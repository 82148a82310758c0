// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/resolve/internal/platform/apperr"
	"github.com/taibuivan/resolve/internal/recovery"
	"github.com/taibuivan/resolve/internal/users/account"
	"github.com/taibuivan/resolve/internal/users/auth"
	"github.com/taibuivan/resolve/pkg/pointer"
)

// # Test Doubles

type fakeAccountRepository struct {
	byID    map[string]*auth.User
	byEmail map[string]*auth.User
}

func newFakeAccountRepository(users ...*auth.User) *fakeAccountRepository {
	repository := &fakeAccountRepository{byID: map[string]*auth.User{}, byEmail: map[string]*auth.User{}}
	for _, user := range users {
		repository.byID[user.ID] = user
		repository.byEmail[user.Email] = user
	}
	return repository
}

func (repository *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := repository.byID[id]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repository *fakeAccountRepository) FindByEmail(_ context.Context, email string) (*auth.User, error) {
	user, ok := repository.byEmail[email]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	copied := *user
	return &copied, nil
}

func (repository *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	repository.byID[user.ID] = user
	repository.byEmail[user.Email] = user
	return nil
}

func (repository *fakeAccountRepository) SoftDelete(_ context.Context, id string) error {
	if user, ok := repository.byID[id]; ok {
		delete(repository.byEmail, user.Email)
		delete(repository.byID, id)
	}
	return nil
}

type fakeRecordRepository struct {
	records map[string]*recovery.UserRecord
	getErr  error
	putErr  error
}

func newFakeRecordRepository() *fakeRecordRepository {
	return &fakeRecordRepository{records: map[string]*recovery.UserRecord{}}
}

func (repository *fakeRecordRepository) Get(_ context.Context, userID string) (*recovery.UserRecord, error) {
	if repository.getErr != nil {
		return nil, repository.getErr
	}
	record, ok := repository.records[userID]
	if !ok {
		return nil, apperr.NotFound("Recovery record")
	}
	return record.Clone(), nil
}

func (repository *fakeRecordRepository) Put(_ context.Context, userID string, record *recovery.UserRecord) error {
	if repository.putErr != nil {
		return repository.putErr
	}
	repository.records[userID] = record.Clone()
	return nil
}

func (repository *fakeRecordRepository) Delete(_ context.Context, userID string) error {
	delete(repository.records, userID)
	return nil
}

type fakeSessionRevoker struct {
	revoked []string
}

func (revoker *fakeSessionRevoker) RevokeAll(_ context.Context, userID string) error {
	revoker.revoked = append(revoker.revoked, userID)
	return nil
}

// # Fixtures

const testUserID = "0194fd1e-0000-7000-8000-00000000bbbb"

func seedUser() *auth.User {
	return &auth.User{ID: testUserID, DisplayName: "Tai", Email: "tai@resolve.app"}
}

// # Settings

/*
TestService_UpdateSettings_MirrorsSnapshotIntoRecord verifies the two-place
consistency contract: a settings change rewrites the identity snapshot inside
the recovery record.
*/
func TestService_UpdateSettings_MirrorsSnapshotIntoRecord(t *testing.T) {
	accounts := newFakeAccountRepository(seedUser())
	records := newFakeRecordRepository()
	records.records[testUserID] = recovery.NewRecord(recovery.UserSnapshot{
		ID: testUserID, DisplayName: "Tai", Email: "tai@resolve.app",
	})
	service := account.NewService(accounts, records, &fakeSessionRevoker{}, slog.Default())

	user, err := service.UpdateSettings(context.Background(), testUserID, account.UpdateSettingsInput{
		DisplayName: pointer.To("Tai B."),
		Email:       pointer.To("new@resolve.app"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tai B.", user.DisplayName)
	assert.Equal(t, "new@resolve.app", user.Email)

	record := records.records[testUserID]
	assert.Equal(t, "Tai B.", record.User.DisplayName)
	assert.Equal(t, "new@resolve.app", record.User.Email)
}

/*
TestService_UpdateSettings_EmailConflict asserts that moving to another
account's email fails with CONFLICT and changes nothing.
*/
func TestService_UpdateSettings_EmailConflict(t *testing.T) {
	other := &auth.User{ID: "other-id", DisplayName: "Other", Email: "taken@resolve.app"}
	accounts := newFakeAccountRepository(seedUser(), other)
	records := newFakeRecordRepository()
	service := account.NewService(accounts, records, &fakeSessionRevoker{}, slog.Default())

	_, err := service.UpdateSettings(context.Background(), testUserID, account.UpdateSettingsInput{
		Email: pointer.To("taken@resolve.app"),
	})

	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "CONFLICT", ae.Code)

	unchanged, err := accounts.FindByID(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, "tai@resolve.app", unchanged.Email)
}

/*
TestService_UpdateSettings_CorruptedRecordBlocks checks that a corrupted
record blocks settings changes entirely rather than silently diverging the
two identity copies.
*/
func TestService_UpdateSettings_CorruptedRecordBlocks(t *testing.T) {
	accounts := newFakeAccountRepository(seedUser())
	records := newFakeRecordRepository()
	records.getErr = apperr.Corrupted("Recovery record", errors.New("bad payload"))
	service := account.NewService(accounts, records, &fakeSessionRevoker{}, slog.Default())

	_, err := service.UpdateSettings(context.Background(), testUserID, account.UpdateSettingsInput{
		DisplayName: pointer.To("New Name"),
	})

	require.Error(t, err)
	assert.True(t, apperr.IsCorrupted(err))

	unchanged, err := accounts.FindByID(context.Background(), testUserID)
	require.NoError(t, err)
	assert.Equal(t, "Tai", unchanged.DisplayName)
}

// # Deletion

/*
TestService_DeleteAccount_DropsRecordAndSessions verifies the full teardown:
soft-deleted account, removed record, revoked sessions.
*/
func TestService_DeleteAccount_DropsRecordAndSessions(t *testing.T) {
	accounts := newFakeAccountRepository(seedUser())
	records := newFakeRecordRepository()
	records.records[testUserID] = recovery.NewRecord(recovery.UserSnapshot{ID: testUserID})
	revoker := &fakeSessionRevoker{}
	service := account.NewService(accounts, records, revoker, slog.Default())

	require.NoError(t, service.DeleteAccount(context.Background(), testUserID))

	_, err := accounts.FindByID(context.Background(), testUserID)
	assert.True(t, apperr.IsNotFound(err))
	assert.NotContains(t, records.records, testUserID)
	assert.Equal(t, []string{testUserID}, revoker.revoked)
}
