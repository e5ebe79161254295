// Copyright (c) 2026 Darass. All rights reserved.

// PostgreSQL implementation of the user directory.
//
// # Error Mapping
//
// Storage-specific errors (like pgx.ErrNoRows) are mapped to domain-friendly
// [apperr.AppError] types to avoid leaking storage implementation details.
package users

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/zereight/2021-darass/internal/platform/apperr"
	"github.com/zereight/2021-darass/pkg/uuidv7"
)

// PostgresRepository implements the Repository interface using pgx.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL implementation of the user directory.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

/*
FindOrCreate resolves an external identity to its durable user record.

Description: Single-statement idempotent upsert. The INSERT carries a fresh
UUIDv7, but when the (provider, provider_user_id) unique constraint fires the
DO UPDATE branch refreshes the profile fields and RETURNING hands back the
existing row — including its original id. Because the conflict is resolved
inside PostgreSQL, two concurrent first-logins serialize on the unique index
and both observe the same record.

Parameters:
  - context: context.Context
  - identity: ExternalIdentity

Returns:
  - *User: The resolved record with its durable ID
  - error: Persistence failures
*/
func (repository *PostgresRepository) FindOrCreate(context context.Context, identity ExternalIdentity) (*User, error) {
	const query = `
		INSERT INTO users.account (
			id, provider, provider_user_id, email, nickname, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (provider, provider_user_id) DO UPDATE SET
			email      = EXCLUDED.email,
			nickname   = EXCLUDED.nickname,
			updated_at = EXCLUDED.updated_at
		RETURNING id, provider, provider_user_id, email, nickname, created_at, updated_at`

	now := time.Now()
	user := &User{}

	err := repository.pool.QueryRow(context, query,
		uuidv7.New(),
		identity.Provider,
		identity.ProviderUserID,
		identity.Email,
		identity.Nickname,
		now,
	).Scan(
		&user.ID,
		&user.Provider,
		&user.ProviderUserID,
		&user.Email,
		&user.Nickname,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("postgres_users_find_or_create_failed: %w", err)
	}

	return user, nil
}

/*
FindByID retrieves a user record by its internal identifier.

Parameters:
  - context: context.Context
  - id: string

Returns:
  - *User: Hydrated entity
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresRepository) FindByID(context context.Context, id string) (*User, error) {
	const query = `
		SELECT id, provider, provider_user_id, email, nickname, created_at, updated_at
		FROM users.account
		WHERE id = $1`

	user := &User{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&user.ID,
		&user.Provider,
		&user.ProviderUserID,
		&user.Email,
		&user.Nickname,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound("User")
		}
		return nil, fmt.Errorf("postgres_users_find_by_id_failed: %w", err)
	}

	return user, nil
}

/*
UpdateNickname replaces only the user's display name.

Parameters:
  - context: context.Context
  - id: string
  - nickname: string

Returns:
  - error: apperr.NotFound or persistence failures
*/
func (repository *PostgresRepository) UpdateNickname(context context.Context, id, nickname string) error {
	const query = `
		UPDATE users.account
		SET nickname = $2, updated_at = $3
		WHERE id = $1`

	tag, err := repository.pool.Exec(context, query, id, nickname, time.Now())
	if err != nil {
		return fmt.Errorf("postgres_users_update_nickname_failed: %w", err)
	}

	if tag.RowsAffected() == 0 {
		return apperr.NotFound("User")
	}

	return nil
}
