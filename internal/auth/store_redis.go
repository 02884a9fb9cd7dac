// Copyright (c) 2026 Sentra. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/sentra/internal/platform/constants"
)

// RedisActiveTokenCache implements ActiveTokenCache using Redis.
type RedisActiveTokenCache struct {
	client *redis.Client
}

// NewActiveTokenCache creates a new Redis-backed ActiveTokenCache.
func NewActiveTokenCache(client *redis.Client) *RedisActiveTokenCache {
	return &RedisActiveTokenCache{client: client}
}

/*
Set stores the user's active token with the token's remaining lifetime as TTL.

Description: Called on every successful login, overwriting whatever token was
cached before — the overwrite is what keeps superseded tokens from validating
out of the cache.

Parameters:
  - context: context.Context
  - username: string
  - token: string
  - ttl: time.Duration

Returns:
  - error: Execution errors
*/
func (cache *RedisActiveTokenCache) Set(context context.Context, username, token string, ttl time.Duration) error {
	key := constants.RedisPrefixActiveToken + username

	// TTL equals the token's remaining lifetime, so stale entries age out on
	// their own even if no later login overwrites them.
	if err := cache.client.Set(context, key, token, ttl).Err(); err != nil {
		return fmt.Errorf("redis_active_token_set_failed: %w", err)
	}

	return nil
}

/*
Get retrieves the cached active token for a username.

Description: A miss (expired key or never cached) returns "" with no error so
the caller can fall back to the persistent store.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - string: Cached token or ""
  - error: Connectivity failures
*/
func (cache *RedisActiveTokenCache) Get(context context.Context, username string) (string, error) {
	key := constants.RedisPrefixActiveToken + username

	token, err := cache.client.Get(context, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", nil
		}
		return "", fmt.Errorf("redis_active_token_get_failed: %w", err)
	}

	return token, nil
}

/*
Del removes the user's cached token.

Description: Invoked when the mirror write failed after the store was already
overwritten — leaving the old entry behind would let a superseded token keep
validating out of the cache. Deleting an absent key is a no-op.

Parameters:
  - context: context.Context
  - username: string

Returns:
  - error: Execution errors
*/
func (cache *RedisActiveTokenCache) Del(context context.Context, username string) error {
	key := constants.RedisPrefixActiveToken + username

	if err := cache.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_active_token_del_failed: %w", err)
	}

	return nil
}
