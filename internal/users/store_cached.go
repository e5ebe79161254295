// Copyright (c) 2026 Darass. All rights reserved.

package users

import (
	"context"
	"log/slog"

	"github.com/zereight/2021-darass/internal/platform/ctxutil"
)

// CachedRepository decorates a Repository with a Redis read-through cache.
//
// # Semantics
//
// A cache hit on login serves the profile as it was at the last directory
// read, so a nickname changed at the provider can lag by up to
// [IdentityCacheTTL]. The durable ID — the only field the token engine
// consumes — never changes, so the cache can never leak identity across
// users. Cache failures degrade to the inner repository; they are logged
// but never surfaced to callers.
type CachedRepository struct {
	inner Repository
	cache IdentityCache
}

// NewCachedRepository wraps the given directory repository with a cache layer.
func NewCachedRepository(inner Repository, cache IdentityCache) *CachedRepository {
	return &CachedRepository{inner: inner, cache: cache}
}

// FindOrCreate resolves an identity, preferring the cache for repeat logins.
func (repository *CachedRepository) FindOrCreate(context context.Context, identity ExternalIdentity) (*User, error) {
	key := IdentityKey(identity.Provider, identity.ProviderUserID)

	if user, err := repository.cache.GetUser(context, key); err == nil && user != nil {
		return user, nil
	} else if err != nil {
		logCacheDegraded(context, "find_or_create", err)
	}

	user, err := repository.inner.FindOrCreate(context, identity)
	if err != nil {
		return nil, err
	}

	repository.fill(context, user)
	return user, nil
}

// FindByID returns the user, preferring the cache.
func (repository *CachedRepository) FindByID(context context.Context, id string) (*User, error) {
	if user, err := repository.cache.GetUser(context, UserKey(id)); err == nil && user != nil {
		return user, nil
	} else if err != nil {
		logCacheDegraded(context, "find_by_id", err)
	}

	user, err := repository.inner.FindByID(context, id)
	if err != nil {
		return nil, err
	}

	repository.fill(context, user)
	return user, nil
}

// UpdateNickname writes through to the directory and drops the stale entries.
func (repository *CachedRepository) UpdateNickname(context context.Context, id, nickname string) error {
	if err := repository.inner.UpdateNickname(context, id, nickname); err != nil {
		return err
	}

	// Invalidate both keys so the next read observes the new nickname.
	// The identity key requires the provider fields, hence the re-read.
	keys := []string{UserKey(id)}
	if user, err := repository.inner.FindByID(context, id); err == nil {
		keys = append(keys, IdentityKey(user.Provider, user.ProviderUserID))
	}

	if err := repository.cache.Invalidate(context, keys...); err != nil {
		logCacheDegraded(context, "update_nickname", err)
	}

	return nil
}

// fill stores a user under both of its cache keys, best effort.
func (repository *CachedRepository) fill(context context.Context, user *User) {
	if err := repository.cache.SetUser(context, IdentityKey(user.Provider, user.ProviderUserID), user); err != nil {
		logCacheDegraded(context, "fill_identity", err)
	}
	if err := repository.cache.SetUser(context, UserKey(user.ID), user); err != nil {
		logCacheDegraded(context, "fill_user", err)
	}
}

// logCacheDegraded records a cache failure without failing the request.
func logCacheDegraded(ctx context.Context, operation string, err error) {
	ctxutil.GetLogger(ctx).WarnContext(ctx, "users_cache_degraded",
		slog.String("operation", operation),
		slog.Any("error", err),
	)
}
