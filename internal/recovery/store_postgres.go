// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package recovery

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/resolve/internal/platform/apperr"
)

// # Record Repository

// PostgresRecordRepository implements RecordRepository using a single JSONB
// row per user in recovery.record.
//
// # Why JSONB?
//
// The record is always read and written as a whole, so a document column keeps
// the storage model identical to the mutation contract. The user ID is the
// only key the engine ever queries by.
type PostgresRecordRepository struct {
	pool *pgxpool.Pool
}

// NewRecordRepository creates a new PostgreSQL implementation of RecordRepository.
func NewRecordRepository(pool *pgxpool.Pool) *PostgresRecordRepository {
	return &PostgresRecordRepository{pool: pool}
}

/*
Get retrieves and decodes the recovery record for a user.

Description: A missing row maps to NOT_FOUND. A row whose JSONB payload cannot
be decoded into a [UserRecord] maps to DATA_CORRUPTED, never NOT_FOUND, so the
caller can surface an explicit reset path instead of silently treating the
user as brand new.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *UserRecord: Hydrated record
  - error: apperr.NotFound, apperr.Corrupted, or execution errors
*/
func (repository *PostgresRecordRepository) Get(context context.Context, userID string) (*UserRecord, error) {
	const query = `
		SELECT record
		FROM recovery.record
		WHERE userid = $1`

	var payload []byte
	err := repository.pool.QueryRow(context, query, userID).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("Recovery record")
		}
		return nil, fmt.Errorf("postgres_record_repo_get_failed: %w", err)
	}

	record, err := decodeRecord(payload)
	if err != nil {
		return nil, apperr.Corrupted("Recovery record", err)
	}

	return record, nil
}

/*
Put overwrites the user's record with a full upsert.

Parameters:
  - context: context.Context
  - userID: string
  - record: *UserRecord

Returns:
  - error: Encoding or persistence failures
*/
func (repository *PostgresRecordRepository) Put(context context.Context, userID string, record *UserRecord) error {
	const query = `
		INSERT INTO recovery.record (userid, record, updatedat)
		VALUES ($1, $2, $3)
		ON CONFLICT (userid)
		DO UPDATE SET record = EXCLUDED.record, updatedat = EXCLUDED.updatedat`

	payload, err := encodeRecord(record)
	if err != nil {
		return fmt.Errorf("postgres_record_repo_encode_failed: %w", err)
	}

	if _, err := repository.pool.Exec(context, query, userID, payload, time.Now()); err != nil {
		return fmt.Errorf("postgres_record_repo_put_failed: %w", err)
	}

	return nil
}

/*
Delete removes the user's record. Absent rows are a silent no-op.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Execution failures
*/
func (repository *PostgresRecordRepository) Delete(context context.Context, userID string) error {
	const query = "DELETE FROM recovery.record WHERE userid = $1"
	if _, err := repository.pool.Exec(context, query, userID); err != nil {
		return fmt.Errorf("postgres_record_repo_delete_failed: %w", err)
	}
	return nil
}

// # Codec

// encodeRecord serializes a record into its stored JSONB payload.
func encodeRecord(record *UserRecord) ([]byte, error) {
	return json.Marshal(record)
}

// decodeRecord deserializes a stored payload back into a record.
//
// Decoding is strict about shape: unknown top-level fields are tolerated (for
// forward compatibility) but a payload that is not a JSON object, or whose
// dates do not parse, is a corruption signal.
func decodeRecord(payload []byte) (*UserRecord, error) {
	record := &UserRecord{}
	if err := json.Unmarshal(payload, record); err != nil {
		return nil, err
	}
	if record.Addictions == nil {
		record.Addictions = []Addiction{}
	}
	return record, nil
}
