// Copyright (c) 2026 Darass. All rights reserved.

package users

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/zereight/2021-darass/internal/platform/constants"
)

// RedisIdentityCache implements IdentityCache using Redis.
type RedisIdentityCache struct {
	client *redis.Client
}

// NewRedisIdentityCache creates a new Redis-backed IdentityCache.
func NewRedisIdentityCache(client *redis.Client) *RedisIdentityCache {
	return &RedisIdentityCache{client: client}
}

/*
GetUser retrieves a cached user record.

Description: Returns (nil, nil) on a cache miss so callers can fall through
to PostgreSQL without error handling gymnastics.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - *User: Cached record or nil
  - error: Connectivity or decoding failures
*/
func (cache *RedisIdentityCache) GetUser(context context.Context, key string) (*User, error) {
	payload, err := cache.client.Get(context, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis_users_cache_get_failed: %w", err)
	}

	user := &User{}
	if err := json.Unmarshal(payload, user); err != nil {
		// A corrupt entry is treated as a miss; the next Set overwrites it.
		return nil, nil
	}

	return user, nil
}

/*
SetUser stores a user record under the given key with the directory TTL.

Parameters:
  - context: context.Context
  - key: string
  - user: *User

Returns:
  - error: Encoding or connectivity failures
*/
func (cache *RedisIdentityCache) SetUser(context context.Context, key string, user *User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("redis_users_cache_encode_failed: %w", err)
	}

	if err := cache.client.Set(context, key, payload, IdentityCacheTTL).Err(); err != nil {
		return fmt.Errorf("redis_users_cache_set_failed: %w", err)
	}

	return nil
}

/*
Invalidate removes the given cache keys.

Parameters:
  - context: context.Context
  - keys: ...string

Returns:
  - error: Connectivity failures
*/
func (cache *RedisIdentityCache) Invalidate(context context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}

	if err := cache.client.Del(context, keys...).Err(); err != nil {
		return fmt.Errorf("redis_users_cache_invalidate_failed: %w", err)
	}

	return nil
}

// # Cache Keys

// IdentityKey builds the cache key for a (provider, providerUserID) pair.
func IdentityKey(provider, providerUserID string) string {
	return constants.RedisPrefixIdentity + provider + ":" + providerUserID
}

// UserKey builds the cache key for an internal user ID.
func UserKey(id string) string {
	return constants.RedisPrefixUser + id
}
