// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"

	"github.com/taibuivan/helpdesk/internal/platform/sec"
)

// ErrPrincipalNotFound is returned by a [PrincipalDirectory] when no person
// owns the requested identity.
var ErrPrincipalNotFound = errors.New("auth: principal not found")

// Principal is an authenticatable identity as seen by the login and
// authorization gates.
//
// Roles is a snapshot taken at lookup time. Mutating the underlying person
// never changes a Principal that has already been returned. SecretHash is
// only set by a [CredentialStore].
type Principal struct {
	ID         int64
	Identity   string
	SecretHash string
	Roles      sec.RoleSet
}

// PrincipalDirectory resolves a login identity (email) to a [Principal]
// without its secret hash. It backs the authorization gate and may serve
// from a cache.
//
// Implementations must return [ErrPrincipalNotFound] for unknown identities
// and must be safe for concurrent use.
type PrincipalDirectory interface {
	FindByIdentity(ctx context.Context, identity string) (*Principal, error)
}

// CredentialStore resolves a login identity to a [Principal] including its
// secret hash. It reads the system of record and is used only at login.
//
// The not-found and concurrency rules of [PrincipalDirectory] apply.
type CredentialStore interface {
	FindCredentials(ctx context.Context, identity string) (*Principal, error)
}
