// Copyright (c) 2026 Darass. All rights reserved.

package users

import "context"

// # User Directory Data Access

// Repository defines the data access contract for the user directory.
type Repository interface {

	/*
		FindOrCreate resolves an external identity to its durable user record,
		creating one on first sight.

		The operation is an idempotent upsert keyed on (Provider,
		ProviderUserID): concurrent first-logins for the same identity must
		converge on one record, with the losing caller observing the winner's
		row rather than erroring or duplicating.

		Parameters:
		  - context: context.Context
		  - identity: ExternalIdentity

		Returns:
		  - *User: The resolved (possibly freshly created) record
		  - error: Persistence failures
	*/
	FindOrCreate(context context.Context, identity ExternalIdentity) (*User, error)

	/*
		FindByID returns the user with the given internal ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		UpdateNickname replaces the user's display name.

		Parameters:
		  - context: context.Context
		  - id: string
		  - nickname: string

		Returns:
		  - error: apperr.NotFound or persistence failures
	*/
	UpdateNickname(context context.Context, id, nickname string) error
}

// # Identity Cache Access

// IdentityCache defines the volatile storage contract used by the
// read-through cache layer in front of the directory.
type IdentityCache interface {

	/*
		GetUser retrieves a cached user by cache key.

		Returns:
		  - *User: The cached record, or nil when absent
		  - error: Connectivity failures (a miss is not an error)
	*/
	GetUser(context context.Context, key string) (*User, error)

	/*
		SetUser stores a user under the given cache key with the directory TTL.
	*/
	SetUser(context context.Context, key string, user *User) error

	/*
		Invalidate removes the given cache keys.
	*/
	Invalidate(context context.Context, keys ...string) error
}
