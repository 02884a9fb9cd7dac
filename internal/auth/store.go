// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # Credential Data Access

// CredentialRepository defines the data access contract for credential records.
type CredentialRepository interface {

	/*
		Create persists a brand-new credential record to the storage.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: Persistence failures, including unique-constraint violations
	*/
	Create(context context.Context, user *User) error

	/*
		FindByUsername returns the credential record with the given username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		UpdateActiveToken overwrites the user's single active session token.

		The overwrite must be atomic per username: no read-modify-write window
		may exist, so concurrent logins serialize on the row and the stored
		value is always the token of whichever login committed last.

		Parameters:
		  - context: context.Context
		  - username: string
		  - token: string

		Returns:
		  - error: Persistence failures
	*/
	UpdateActiveToken(context context.Context, username, token string) error

	/*
		GetActiveToken returns the user's currently stored session token.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - string: The stored token, or "" when the user is unknown or has
		    never logged in
		  - error: Database retrieval failures only
	*/
	GetActiveToken(context context.Context, username string) (string, error)
}

// # Volatile Data Access

// ActiveTokenCache is a volatile write-through mirror of the active-token
// column, keyed by username.
//
// Postgres remains the source of truth; the cache only keeps hot token
// validation off the primary database. Every login overwrites the cached
// value together with the stored one, so a superseded token can never pass
// the equality check from either source.
type ActiveTokenCache interface {

	/*
		Set stores the user's active token for a limited duration.

		Parameters:
		  - context: context.Context
		  - username: string
		  - token: string
		  - ttl: time.Duration (the token's remaining lifetime)

		Returns:
		  - error: Cache write failures
	*/
	Set(context context.Context, username, token string, ttl time.Duration) error

	/*
		Get retrieves the cached active token for a username.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - string: The cached token, or "" on a cache miss
		  - error: Cache connectivity failures only — a miss is not an error
	*/
	Get(context context.Context, username string) (string, error)

	/*
		Del removes the user's cached token entirely.

		Called when a cache write fails after the store has already been
		overwritten, so the cache can never serve a token the store no
		longer holds. Deleting an absent key is not an error.

		Parameters:
		  - context: context.Context
		  - username: string

		Returns:
		  - error: Cache connectivity failures
	*/
	Del(context context.Context, username string) error
}
