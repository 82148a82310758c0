// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/resolve/internal/platform/apperr"
	"github.com/taibuivan/resolve/internal/recovery"
	"github.com/taibuivan/resolve/internal/users/auth"
)

// # Service Layer

// Service orchestrates business logic for the user's own profile.
//
// # Consistency
//
// Identity fields live in two places: the account index (for login) and the
// snapshot embedded in the recovery record. Settings changes update both; the
// record write is the commit point, so a reported success always means the
// record reflects the new identity.
type Service struct {
	accountRepository AccountRepository
	recordRepository  recovery.RecordRepository
	sessionRevoker    SessionRevoker
	logger            *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	accountRepo AccountRepository,
	recordRepo recovery.RecordRepository,
	sessions SessionRevoker,
	logger *slog.Logger,
) *Service {
	return &Service{
		accountRepository: accountRepo,
		recordRepository:  recordRepo,
		sessionRevoker:    sessions,
		logger:            logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}
	return user, nil
}

// UpdateSettingsInput defines the mutable subset of user profile fields.
type UpdateSettingsInput struct {
	DisplayName *string
	Email       *string
}

/*
UpdateSettings applies a partial set of changes to a user's identity.

Description: Fetches the existing state, overrides provided fields, checks
email uniqueness, updates the account index, and rewrites the identity
snapshot inside the recovery record. The record write is the commit point.

Parameters:
  - context: context.Context
  - userID: string
  - input: UpdateSettingsInput

Returns:
  - *auth.User: The updated user profile
  - error: Conflict, Corrupted, or persistence failures
*/
func (service *Service) UpdateSettings(context context.Context, userID string, input UpdateSettingsInput) (*auth.User, error) {

	user, err := service.accountRepository.FindByID(context, userID)
	if err != nil {
		return nil, err
	}

	// Apply delta updates
	if input.DisplayName != nil {
		user.DisplayName = *input.DisplayName
	}

	// Email moves require a uniqueness check against other accounts
	if input.Email != nil && *input.Email != user.Email {
		existing, err := service.accountRepository.FindByEmail(context, *input.Email)
		if err == nil && existing.ID != userID {
			return nil, apperr.Conflict("Email is already registered")
		}
		user.Email = *input.Email
	}

	// Load the record before touching the index so a corrupted record blocks
	// the whole operation up front.
	record, err := service.recordRepository.Get(context, userID)
	if err != nil {
		if !apperr.IsNotFound(err) {
			return nil, err
		}
		record = recovery.NewRecord(recovery.UserSnapshot{ID: userID})
	}

	// Update the login index
	if err := service.accountRepository.Update(context, user); err != nil {
		return nil, fmt.Errorf("account_service_update_failed: %w", err)
	}

	// Commit point: mirror the identity into the recovery record
	updated := record.Clone()
	updated.User = recovery.UserSnapshot{
		ID:          user.ID,
		DisplayName: user.DisplayName,
		Email:       user.Email,
	}
	if err := service.recordRepository.Put(context, userID, updated); err != nil {
		return nil, apperr.Persistence(fmt.Errorf("account_service_record_sync_failed: %w", err))
	}

	service.logger.Info("user_settings_updated", slog.String("user_id", userID))

	return user, nil
}

/*
DeleteAccount performs an idempotent soft-deletion of a user account.

Description: Flags the account as deleted, drops the recovery record, and
terminates all active security sessions to force a global sign-out.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (service *Service) DeleteAccount(context context.Context, userID string) error {

	if err := service.accountRepository.SoftDelete(context, userID); err != nil {
		return fmt.Errorf("account_service_delete_failed: %w", err)
	}

	// The record holds the user's actual progress data; it goes with the account.
	if err := service.recordRepository.Delete(context, userID); err != nil {
		return apperr.Persistence(fmt.Errorf("account_service_record_delete_failed: %w", err))
	}

	// Force global revocation of sessions for the deleted account
	_ = service.sessionRevoker.RevokeAll(context, userID)

	service.logger.Warn("user_account_deleted", slog.String("user_id", userID))

	return nil
}
