// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/resolve/internal/platform/apperr"
	"github.com/taibuivan/resolve/internal/platform/constants"
)

// # Session Repository

// RedisSessionRepository implements SessionRepository using Redis.
//
// # Storage Layout
//
// Each session is a JSON value keyed by its token hash with a native TTL, so
// expiry needs no cleanup job. A per-user SET of token hashes supports bulk
// revocation (account deletion, global sign-out).
type RedisSessionRepository struct {
	client *redis.Client
}

// NewSessionRepository creates a new Redis-backed SessionRepository.
func NewSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

// sessionKey builds the primary key for a session.
func sessionKey(tokenHash string) string {
	return constants.RedisPrefixSession + tokenHash
}

// userSessionsKey builds the per-user index key.
func userSessionsKey(userID string) string {
	return constants.RedisPrefixSession + "user:" + userID
}

/*
Create persists a new session keyed by its token hash.

Description: The value TTL is derived from the session's ExpiresAt, so Redis
evicts the session at exactly the moment it stops being valid.

Parameters:
  - context: context.Context
  - session: *Session

Returns:
  - error: Encoding or storage failures
*/
func (repository *RedisSessionRepository) Create(context context.Context, session *Session) error {
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}

	timeToLive := time.Until(session.ExpiresAt)
	if timeToLive <= 0 {
		return fmt.Errorf("redis_session_repo_create_failed: session already expired")
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redis_session_repo_encode_failed: %w", err)
	}

	// Store the session with its natural TTL
	if err := repository.client.Set(context, sessionKey(session.TokenHash), payload, timeToLive).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_create_failed: %w", err)
	}

	// Index the hash for bulk revocation. The index outlives individual
	// sessions slightly; stale members are skipped during RevokeAll.
	indexKey := userSessionsKey(session.UserID)
	if err := repository.client.SAdd(context, indexKey, session.TokenHash).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_index_failed: %w", err)
	}
	_ = repository.client.Expire(context, indexKey, RefreshTokenTTL).Err()

	return nil
}

/*
FindByTokenHash retrieves an active session by its token hash.

Description: An absent key means the session was never created, was revoked,
or has expired; all three map to apperr.NotFound.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - *Session: Hydrated session metadata
  - error: apperr.NotFound or connectivity errors
*/
func (repository *RedisSessionRepository) FindByTokenHash(context context.Context, tokenHash string) (*Session, error) {
	payload, err := repository.client.Get(context, sessionKey(tokenHash)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperr.NotFound("Session not found or expired")
		}
		return nil, fmt.Errorf("redis_session_repo_find_failed: %w", err)
	}

	session := &Session{}
	if err := json.Unmarshal(payload, session); err != nil {
		return nil, fmt.Errorf("redis_session_repo_decode_failed: %w", err)
	}
	session.TokenHash = tokenHash

	return session, nil
}

/*
Revoke deletes the session with the given token hash.

Parameters:
  - context: context.Context
  - tokenHash: string

Returns:
  - error: Deletion failures
*/
func (repository *RedisSessionRepository) Revoke(context context.Context, tokenHash string) error {
	// Resolve the owner first so the index stays consistent.
	session, err := repository.FindByTokenHash(context, tokenHash)
	if err == nil {
		_ = repository.client.SRem(context, userSessionsKey(session.UserID), tokenHash).Err()
	}

	if err := repository.client.Del(context, sessionKey(tokenHash)).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_revoke_failed: %w", err)
	}

	return nil
}

/*
RevokeAll deletes every active session belonging to the user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - error: Batch revocation failures
*/
func (repository *RedisSessionRepository) RevokeAll(context context.Context, userID string) error {
	indexKey := userSessionsKey(userID)

	hashes, err := repository.client.SMembers(context, indexKey).Result()
	if err != nil {
		return fmt.Errorf("redis_session_repo_revoke_all_failed: %w", err)
	}

	for _, hash := range hashes {
		if err := repository.client.Del(context, sessionKey(hash)).Err(); err != nil {
			return fmt.Errorf("redis_session_repo_revoke_all_failed: %w", err)
		}
	}

	if err := repository.client.Del(context, indexKey).Err(); err != nil {
		return fmt.Errorf("redis_session_repo_revoke_all_failed: %w", err)
	}

	return nil
}
