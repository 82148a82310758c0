// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recovery

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/resolve/internal/catalog"
	"github.com/taibuivan/resolve/internal/platform/apperr"
	"github.com/taibuivan/resolve/pkg/slug"
	"github.com/taibuivan/resolve/pkg/uuid"
)

// # Service Layer

// Service orchestrates all recovery-record use cases.
//
// # Mutation Contract
//
// Every mutation follows the same sequence: load the freshest stored record,
// apply the change to a deep copy, synchronously persist the full copy, and
// only then report success. If the persist fails, the copy is discarded and
// PERSISTENCE_FAILURE surfaces; the stored record stays authoritative and no
// partial state ever leaks.
type Service struct {
	recordRepository RecordRepository
	userDirectory    UserDirectory
	messageCatalog   *catalog.Catalog
	logger           *slog.Logger
}

// NewService constructs a new [Service] with its dependencies.
func NewService(
	recordRepo RecordRepository,
	directory UserDirectory,
	messageCatalog *catalog.Catalog,
	logger *slog.Logger,
) *Service {
	return &Service{
		recordRepository: recordRepo,
		userDirectory:    directory,
		messageCatalog:   messageCatalog,
		logger:           logger,
	}
}

// validateQuitDate enforces the engine-level date rules shared by every
// mutation that accepts a quit date.
func validateQuitDate(quitDate Date, now time.Time) error {
	if quitDate.IsZero() {
		return apperr.InvalidDate("Quit date must be a valid calendar date")
	}
	if quitDate.After(DateOf(now).Time) {
		return apperr.InvalidDate("Quit date must not be in the future")
	}
	return nil
}

// # Addiction Management

/*
ListAddictions returns the user's tracked addictions in insertion order.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []Addiction: Stable, insertion-ordered list
  - err: Record retrieval failures
*/
func (service *Service) ListAddictions(context context.Context, userID string) ([]Addiction, error) {
	record, err := service.recordRepository.Get(context, userID)
	if err != nil {
		return nil, err
	}
	return record.Addictions, nil
}

// AddAddictionInput holds the data required to start tracking a new addiction.
type AddAddictionInput struct {
	Name     string
	QuitDate Date
}

/*
AddAddiction appends a new tracked addiction to the user's record.

Description: Re-validates the quit date, rejects duplicate names (exact,
case-sensitive) without touching the list, and assigns a fresh time-sortable
surrogate ID. The full record is persisted before the new entry is reported.

Parameters:
  - context: context.Context
  - userID: string
  - input: AddAddictionInput

Returns:
  - *Addiction: The newly tracked entry
  - err: DuplicateName, InvalidDate, or persistence failures
*/
func (service *Service) AddAddiction(context context.Context, userID string, input AddAddictionInput) (*Addiction, error) {
	if err := validateQuitDate(input.QuitDate, time.Now()); err != nil {
		return nil, err
	}

	// Always mutate against the freshest stored state
	record, err := service.recordRepository.Get(context, userID)
	if err != nil {
		return nil, err
	}

	// Duplicate names leave the list completely unchanged
	if record.HasName(input.Name) {
		return nil, apperr.DuplicateName(input.Name)
	}

	addiction := Addiction{
		ID:       uuid.New(),
		Name:     input.Name,
		Slug:     slug.From(input.Name),
		QuitDate: input.QuitDate,
	}

	updated := record.Clone()
	updated.Addictions = append(updated.Addictions, addiction)

	if err := service.recordRepository.Put(context, userID, updated); err != nil {
		return nil, apperr.Persistence(fmt.Errorf("recovery_service_add_failed: %w", err))
	}

	service.logger.Info("addiction_added",
		slog.String("user_id", userID),
		slog.String("addiction_id", addiction.ID),
	)

	return &addiction, nil
}

/*
UpdateAddiction replaces the quit date of an existing tracked addiction.

Description: The addiction is resolved by surrogate ID (with the slug as a
lookup fallback). Names are not renameable; the quit date is the only mutable
field.

Parameters:
  - context: context.Context
  - userID: string
  - id: string (Addiction ID or slug)
  - newQuitDate: Date

Returns:
  - *Addiction: The updated entry
  - err: NotFound, InvalidDate, or persistence failures
*/
func (service *Service) UpdateAddiction(context context.Context, userID, id string, newQuitDate Date) (*Addiction, error) {
	if err := validateQuitDate(newQuitDate, time.Now()); err != nil {
		return nil, err
	}

	record, err := service.recordRepository.Get(context, userID)
	if err != nil {
		return nil, err
	}

	updated := record.Clone()
	target := updated.FindAddiction(id)
	if target == nil {
		return nil, apperr.NotFound("Addiction")
	}
	target.QuitDate = newQuitDate

	if err := service.recordRepository.Put(context, userID, updated); err != nil {
		return nil, apperr.Persistence(fmt.Errorf("recovery_service_update_failed: %w", err))
	}

	service.logger.Info("addiction_updated",
		slog.String("user_id", userID),
		slog.String("addiction_id", target.ID),
	)

	return target, nil
}

/*
RemoveAddiction stops tracking an addiction. The operation is idempotent:
removing an absent ID is a successful no-op that leaves the record untouched.

Parameters:
  - context: context.Context
  - userID: string
  - id: string (Addiction ID or slug)

Returns:
  - []Addiction: The resulting list
  - err: Record retrieval or persistence failures
*/
func (service *Service) RemoveAddiction(context context.Context, userID, id string) ([]Addiction, error) {
	record, err := service.recordRepository.Get(context, userID)
	if err != nil {
		return nil, err
	}

	// Idempotence: no matching entry means no write at all
	if record.FindAddiction(id) == nil {
		return record.Addictions, nil
	}

	updated := record.Clone()
	filtered := updated.Addictions[:0]
	for _, addiction := range updated.Addictions {
		if addiction.ID != id && addiction.Slug != id {
			filtered = append(filtered, addiction)
		}
	}
	updated.Addictions = filtered

	if err := service.recordRepository.Put(context, userID, updated); err != nil {
		return nil, apperr.Persistence(fmt.Errorf("recovery_service_remove_failed: %w", err))
	}

	service.logger.Info("addiction_removed",
		slog.String("user_id", userID),
		slog.String("addiction_id", id),
	)

	return updated.Addictions, nil
}

// # Onboarding

// OnboardingEntry is one name/quit-date pair submitted during onboarding.
type OnboardingEntry struct {
	Name     string
	QuitDate Date
}

/*
CompleteOnboarding replaces the addiction list with the submitted entries and
marks the user as onboarded.

Description: Entries are validated as a batch (non-empty unique names, valid
non-future quit dates) before anything is written. The whole list is replaced
atomically; there is no merge with previously tracked entries.

Parameters:
  - context: context.Context
  - userID: string
  - entries: []OnboardingEntry

Returns:
  - *UserRecord: The onboarded record
  - err: Validation or persistence failures
*/
func (service *Service) CompleteOnboarding(context context.Context, userID string, entries []OnboardingEntry) (*UserRecord, error) {
	if len(entries) == 0 {
		return nil, apperr.ValidationError("At least one addiction is required to complete onboarding")
	}

	now := time.Now()
	names := make(map[string]bool, len(entries))
	addictions := make([]Addiction, 0, len(entries))

	for _, entry := range entries {
		if entry.Name == "" {
			return nil, apperr.ValidationError("Addiction names must not be empty")
		}
		if names[entry.Name] {
			return nil, apperr.DuplicateName(entry.Name)
		}
		if err := validateQuitDate(entry.QuitDate, now); err != nil {
			return nil, err
		}
		names[entry.Name] = true

		addictions = append(addictions, Addiction{
			ID:       uuid.New(),
			Name:     entry.Name,
			Slug:     slug.From(entry.Name),
			QuitDate: entry.QuitDate,
		})
	}

	record, err := service.recordRepository.Get(context, userID)
	if err != nil {
		return nil, err
	}

	updated := record.Clone()
	updated.Addictions = addictions
	updated.IsOnboarded = true

	if err := service.recordRepository.Put(context, userID, updated); err != nil {
		return nil, apperr.Persistence(fmt.Errorf("recovery_service_onboarding_failed: %w", err))
	}

	service.logger.Info("onboarding_completed",
		slog.String("user_id", userID),
		slog.Int("addictions", len(addictions)),
	)

	return updated, nil
}

// # Progress

/*
ComputeProgress derives the progress view for every tracked addiction.

Description: Runs the day-count calculator and the message selector over each
entry in stable list order. Day counts are clamped to zero for display and the
selector runs on the clamped value, so the messages shown never exceed the
displayed day count. An empty addiction list yields an empty slice, not an
error.

Parameters:
  - context: context.Context
  - userID: string
  - now: time.Time (Reference instant; callers may pass a preview date)

Returns:
  - []ProgressView: One view per addiction, list order preserved
  - err: Record retrieval or date failures
*/
func (service *Service) ComputeProgress(context context.Context, userID string, now time.Time) ([]ProgressView, error) {
	record, err := service.recordRepository.Get(context, userID)
	if err != nil {
		return nil, err
	}

	views := make([]ProgressView, 0, len(record.Addictions))
	for _, addiction := range record.Addictions {
		raw, err := DaysClean(addiction.QuitDate.Time, now)
		if err != nil {
			return nil, err
		}

		days := ClampDays(raw)
		views = append(views, ProgressView{
			Addiction: addiction,
			DaysClean: days,
			Messages:  service.messageCatalog.Select(days),
		})
	}

	return views, nil
}

// # Record Lifecycle

/*
GetRecord returns the user's full recovery record.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *UserRecord: Hydrated record
  - err: NotFound, Corrupted, or retrieval failures
*/
func (service *Service) GetRecord(context context.Context, userID string) (*UserRecord, error) {
	return service.recordRepository.Get(context, userID)
}

/*
ResetRecord replaces the user's record with a fresh, empty one.

Description: This is the explicit recovery path for a DATA_CORRUPTED record.
The identity snapshot is re-resolved from the account directory rather than
the (possibly unreadable) stored record.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *UserRecord: The new empty record
  - err: Directory or persistence failures
*/
func (service *Service) ResetRecord(context context.Context, userID string) (*UserRecord, error) {
	snapshot, err := service.userDirectory.Snapshot(context, userID)
	if err != nil {
		return nil, err
	}

	record := NewRecord(snapshot)
	if err := service.recordRepository.Put(context, userID, record); err != nil {
		return nil, apperr.Persistence(fmt.Errorf("recovery_service_reset_failed: %w", err))
	}

	service.logger.Warn("recovery_record_reset", slog.String("user_id", userID))

	return record, nil
}
