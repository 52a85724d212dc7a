// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/helpdesk/internal/auth"
	"github.com/taibuivan/helpdesk/internal/platform/constants"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
)

// ErrCacheMiss is returned by a [PrincipalCache] when nothing is cached.
var ErrCacheMiss = errors.New("person: principal cache miss")

// PrincipalCache holds recently resolved principals keyed by normalised email.
// Secret hashes are never cached.
type PrincipalCache interface {
	Get(ctx context.Context, identity string) (*auth.Principal, error)
	Set(ctx context.Context, principal *auth.Principal) error
	Delete(ctx context.Context, identities ...string) error
}

// RedisPrincipalCache implements [PrincipalCache] using Redis.
type RedisPrincipalCache struct {
	client redis.UniversalClient
	ttl    time.Duration
}

// NewRedisPrincipalCache creates a cache whose entries expire after ttl.
func NewRedisPrincipalCache(client redis.UniversalClient, ttl time.Duration) *RedisPrincipalCache {
	return &RedisPrincipalCache{client: client, ttl: ttl}
}

type cachedPrincipal struct {
	ID       int64  `json:"id"`
	Identity string `json:"identity"`
	Roles    []int  `json:"roles"`
}

func principalKey(identity string) string {
	return constants.RedisPrefixPrincipal + identity
}

/*
Get retrieves a cached principal.

Returns:
  - *auth.Principal: The cached entry
  - error: [ErrCacheMiss] when absent or connectivity errors
*/
func (cache *RedisPrincipalCache) Get(ctx context.Context, identity string) (*auth.Principal, error) {
	payload, err := cache.client.Get(ctx, principalKey(identity)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("redis_principal_get_failed: %w", err)
	}

	var entry cachedPrincipal
	if err := json.Unmarshal(payload, &entry); err != nil {
		return nil, fmt.Errorf("redis_principal_decode_failed: %w", err)
	}

	roles, err := sec.RoleSetFromCodes(entry.Roles...)
	if err != nil {
		return nil, fmt.Errorf("redis_principal_decode_failed: %w", err)
	}

	return &auth.Principal{
		ID:       entry.ID,
		Identity: entry.Identity,
		Roles:    roles,
	}, nil
}

// Set stores principal under its identity for the configured TTL. The
// secret hash is dropped.
func (cache *RedisPrincipalCache) Set(ctx context.Context, principal *auth.Principal) error {
	payload, err := json.Marshal(cachedPrincipal{
		ID:       principal.ID,
		Identity: principal.Identity,
		Roles:    principal.Roles.Codes(),
	})
	if err != nil {
		return fmt.Errorf("redis_principal_encode_failed: %w", err)
	}

	if err := cache.client.Set(ctx, principalKey(principal.Identity), payload, cache.ttl).Err(); err != nil {
		return fmt.Errorf("redis_principal_set_failed: %w", err)
	}
	return nil
}

// Delete evicts the given identities. Empty identities are skipped.
func (cache *RedisPrincipalCache) Delete(ctx context.Context, identities ...string) error {
	keys := make([]string, 0, len(identities))
	for _, identity := range identities {
		if identity != "" {
			keys = append(keys, principalKey(identity))
		}
	}
	if len(keys) == 0 {
		return nil
	}

	if err := cache.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("redis_principal_delete_failed: %w", err)
	}
	return nil
}
