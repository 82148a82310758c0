// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements self-service management of the authenticated
user's own profile.

It covers the settings surface: reading the profile, updating the display
name and email, and deleting the account. Every change to identity fields is
mirrored into the embedded snapshot of the user's recovery record, which is
the commit point for the operation.

# Architecture

The package defines narrow repository contracts that are satisfied by the
auth storage implementations; it owns no tables of its own.
*/
package account

import (
	"context"

	"github.com/taibuivan/resolve/internal/users/auth"
)

// # Data Access Contracts

// AccountRepository is the subset of user storage the settings surface needs.
// Satisfied by [auth.PostgresUserRepository].
type AccountRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *auth.User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *auth.User: Hydrated entity
		  - error: Database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*auth.User, error)

	/*
		Update persists changes to mutable profile fields.

		Parameters:
		  - context: context.Context
		  - user: *auth.User

		Returns:
		  - error: Persistence failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		SoftDelete marks the account as deleted without removing the row.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Persistence failures
	*/
	SoftDelete(context context.Context, id string) error
}

// SessionRevoker is the subset of session storage needed for global sign-out.
// Satisfied by [auth.RedisSessionRepository].
type SessionRevoker interface {

	/*
		RevokeAll revokes every active session belonging to the userID.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	RevokeAll(context context.Context, userID string) error
}
