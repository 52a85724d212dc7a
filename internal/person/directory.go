// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package person

import (
	"context"
	"errors"
	"log/slog"

	"github.com/taibuivan/helpdesk/internal/auth"
)

// Directory resolves login identities to principals for the authentication
// and authorization gates. Authorization lookups read through an optional
// [PrincipalCache]; credential lookups always go to the repository.
type Directory struct {
	repo   Repository
	cache  PrincipalCache
	logger *slog.Logger
}

// NewDirectory builds a [Directory]. cache may be nil.
func NewDirectory(repo Repository, cache PrincipalCache, logger *slog.Logger) *Directory {
	return &Directory{repo: repo, cache: cache, logger: logger}
}

// FindByIdentity implements [auth.PrincipalDirectory].
//
// Cache failures are logged and never fail the lookup.
func (directory *Directory) FindByIdentity(ctx context.Context, identity string) (*auth.Principal, error) {
	if directory.cache != nil {
		cached, err := directory.cache.Get(ctx, identity)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			directory.logger.WarnContext(ctx, "principal_cache_read_failed", slog.Any("error", err))
		}
	}

	person, err := directory.repo.FindByEmail(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrPrincipalNotFound
		}
		return nil, err
	}

	principal := &auth.Principal{
		ID:       person.ID,
		Identity: person.Email,
		Roles:    person.Roles,
	}

	if directory.cache != nil {
		if err := directory.cache.Set(ctx, principal); err != nil {
			directory.logger.WarnContext(ctx, "principal_cache_write_failed", slog.Any("error", err))
		}
	}

	return principal, nil
}

// FindCredentials implements [auth.CredentialStore].
func (directory *Directory) FindCredentials(ctx context.Context, identity string) (*auth.Principal, error) {
	person, err := directory.repo.FindByEmail(ctx, identity)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrPrincipalNotFound
		}
		return nil, err
	}

	return &auth.Principal{
		ID:         person.ID,
		Identity:   person.Email,
		SecretHash: person.PasswordHash,
		Roles:      person.Roles,
	}, nil
}

// Invalidate evicts cached principals so the next lookup sees current roles.
func (directory *Directory) Invalidate(ctx context.Context, identities ...string) {
	if directory.cache == nil {
		return
	}
	if err := directory.cache.Delete(ctx, identities...); err != nil {
		directory.logger.WarnContext(ctx, "principal_cache_evict_failed", slog.Any("error", err))
	}
}
