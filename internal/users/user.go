// Copyright (c) 2026 Darass. All rights reserved.

/*
Package users implements the user directory for the comment widget.

It maps verified external identities (a provider name plus the provider's own
user ID) to durable internal user records. The directory's one hard guarantee
is idempotent creation: however many concurrent first-logins arrive for the
same external identity, exactly one record exists afterwards and every caller
observes it.

# Architecture

  - Entities: [User] and [ExternalIdentity], no external dependencies.
  - Repository: interface implemented by PostgreSQL, optionally wrapped by a
    Redis read-through cache.
  - HTTP: a small profile surface for the widget (current user, rename).
*/
package users

import "time"

// # Domain Entities

// ExternalIdentity is the verified identity a provider vouches for after a
// successful authorization-code exchange.
//
// It is produced once per login attempt, immutable, and never persisted in
// this form — the directory folds it into a [User].
type ExternalIdentity struct {
	// Provider is the registered provider name, e.g. "kakao" or "naver".
	Provider string
	// ProviderUserID is the provider's own identifier, unique per provider.
	ProviderUserID string
	// Email may be empty; not every provider scope grants it.
	Email string
	// Nickname is the display name shown next to comments.
	Nickname string
}

// User is a registered member of the comment service.
//
// The (Provider, ProviderUserID) pair uniquely determines at most one User;
// repeated logins with the same external identity resolve to the same ID.
type User struct {
	ID             string    `json:"id"`
	Provider       string    `json:"provider"`
	ProviderUserID string    `json:"-"` // Provider-internal ID, not exposed to clients.
	Email          string    `json:"email,omitempty"`
	Nickname       string    `json:"nickname"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// # Field Identifiers

// Field names used in validation and JSON payloads of the users domain.
const (
	FieldNickname = "nickname"
)

// # Constraints

const (
	// NicknameMaxLen bounds the display name so it renders inside the widget.
	NicknameMaxLen = 30

	// IdentityCacheTTL is how long a resolved identity→user mapping may be
	// served from Redis before falling back to PostgreSQL.
	IdentityCacheTTL = 10 * time.Minute
)
