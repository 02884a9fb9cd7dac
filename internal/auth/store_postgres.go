// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// PostgreSQL implementation of the credential store.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
// Unique-constraint violations at registration are NOT special-cased; they
// surface through [dberr.Wrap] as internal errors, which is the published
// contract for duplicate usernames.

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sentra/internal/platform/apperr"
	"github.com/taibuivan/sentra/internal/platform/database/schema"
	"github.com/taibuivan/sentra/internal/platform/dberr"
)

// PostgresCredentialRepository implements the CredentialRepository interface using pgx.
type PostgresCredentialRepository struct {
	pool *pgxpool.Pool
}

// NewCredentialRepository creates a new PostgreSQL implementation of the CredentialRepository.
func NewCredentialRepository(pool *pgxpool.Pool) *PostgresCredentialRepository {
	return &PostgresCredentialRepository{pool: pool}
}

/*
Create persists a new credential record into the users.account table.

Description: Writes the full registration payload. A duplicate username hits
the primary-key constraint and comes back wrapped as an internal error.

Parameters:
  - context: context.Context
  - user: *User (Entity to persist)

Returns:
  - error: Database constraint violations or connectivity errors
*/
func (repository *PostgresCredentialRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.UserAccount.Table,
		schema.UserAccount.Username, schema.UserAccount.Password, schema.UserAccount.TOTPSecret,
		schema.UserAccount.ActiveToken, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
	)

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	_, err := repository.pool.Exec(context, query,
		user.Username,
		user.PasswordHash,
		user.TOTPSecret,
		user.ActiveToken,
		user.CreatedAt,
		user.UpdatedAt,
	)

	if err != nil {
		return dberr.Wrap(err, "credential_create")
	}

	return nil
}

/*
FindByUsername retrieves a credential record by its unique username.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - *User: Hydrated credential entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresCredentialRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1`,
		schema.UserAccount.Username, schema.UserAccount.Password, schema.UserAccount.TOTPSecret,
		schema.UserAccount.ActiveToken, schema.UserAccount.CreatedAt, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Table,
		schema.UserAccount.Username,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, username).Scan(
		&user.Username,
		&user.PasswordHash,
		&user.TOTPSecret,
		&user.ActiveToken,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_credential_repo_find_failed: %w", err)
	}

	return user, nil
}

/*
UpdateActiveToken overwrites the user's single active session token.

Description: A single UPDATE keyed on the username. The row-level write is
atomic, so concurrent logins serialize here — the stored token is always the
one returned by whichever login committed last, and every earlier token
becomes superseded.

Parameters:
  - context: context.Context
  - username: string
  - token: string

Returns:
  - error: Execution errors
*/
func (repository *PostgresCredentialRepository) UpdateActiveToken(context context.Context, username, token string) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3
		WHERE %s = $1`,
		schema.UserAccount.Table,
		schema.UserAccount.ActiveToken, schema.UserAccount.UpdatedAt,
		schema.UserAccount.Username,
	)

	_, err := repository.pool.Exec(context, query, username, token, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_credential_repo_update_token_failed: %w", err)
	}

	return nil
}

/*
GetActiveToken returns the user's currently stored session token.

Description: Used on every authorized request to compare the presented bearer
token against the single stored value.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - string: The stored token; "" when the user is unknown or never logged in
  - error: Execution errors only
*/
func (repository *PostgresCredentialRepository) GetActiveToken(context context.Context, username string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.UserAccount.ActiveToken, schema.UserAccount.Table, schema.UserAccount.Username)

	var activeToken *string
	err := repository.pool.QueryRow(context, query, username).Scan(&activeToken)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Unknown user: indistinguishable from "never logged in" for the
			// caller, which fails the equality check either way.
			return "", nil
		}
		return "", fmt.Errorf("postgres_credential_repo_get_token_failed: %w", err)
	}

	if activeToken == nil {
		return "", nil
	}

	return *activeToken, nil
}
