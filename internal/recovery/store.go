// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recovery

import "context"

// # Record Data Access

// RecordRepository defines the persistence contract for recovery records.
//
// # Error Taxonomy
//
// Get distinguishes two failure shapes that clients treat very differently:
// NOT_FOUND (no record exists, the user is effectively brand new) and
// DATA_CORRUPTED (a record exists but can no longer be decoded). The second
// is never collapsed into the first, so stored progress is never silently
// discarded.
type RecordRepository interface {

	/*
		Get returns the full recovery record for the given user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *UserRecord: Hydrated record
		  - error: apperr.NotFound, apperr.Corrupted, or retrieval failures
	*/
	Get(context context.Context, userID string) (*UserRecord, error)

	/*
		Put overwrites the user's record with the provided state (upsert).

		The write is atomic and total; there is no partial update path.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - record: *UserRecord

		Returns:
		  - error: Persistence failures
	*/
	Put(context context.Context, userID string, record *UserRecord) error

	/*
		Delete removes the user's record. Deleting an absent record is a no-op.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	Delete(context context.Context, userID string) error
}

// UserDirectory resolves a user ID into the identity snapshot embedded in
// records. It is implemented by the account storage layer.
type UserDirectory interface {

	/*
		Snapshot returns the current identity snapshot for the given user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - UserSnapshot: Current identity fields
		  - error: apperr.NotFound or retrieval failures
	*/
	Snapshot(context context.Context, userID string) (UserSnapshot, error)
}
