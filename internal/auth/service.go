// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package auth implements the authentication gate of the helpdesk API.
//
// # Architecture
//
// The [CredentialVerifier] checks an identity/secret pair against the
// [CredentialStore]; the [Handler] turns a successful check into a signed
// bearer token. Verifying that token on later requests is the job of the
// middleware package.
package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"

	"github.com/taibuivan/helpdesk/pkg/textnorm"
)

// ErrAuthFailure is the single failure reported for unknown identities and
// wrong secrets alike.
var ErrAuthFailure = errors.New("auth: invalid credentials")

// Hasher hashes secrets and compares a plain secret against a stored hash.
type Hasher interface {
	Hash(plainText string) (string, error)
	Matches(plainText, existingHash string) bool
}

// CredentialVerifier authenticates identity/secret pairs.
type CredentialVerifier struct {
	credentials CredentialStore
	hasher      Hasher

	// decoyHash is compared on the unknown-identity path. It is hashed with
	// the same hasher as stored secrets so both paths cost the same.
	decoyHash string
}

// NewCredentialVerifier constructs a new [CredentialVerifier].
//
// It hashes one random secret up front, which takes as long as a single
// login comparison.
func NewCredentialVerifier(credentials CredentialStore, hasher Hasher) (*CredentialVerifier, error) {
	decoyHash, err := hasher.Hash(rand.Text())
	if err != nil {
		return nil, fmt.Errorf("auth: failed to prepare decoy hash: %w", err)
	}
	return &CredentialVerifier{credentials: credentials, hasher: hasher, decoyHash: decoyHash}, nil
}

// Verify looks up identity and checks secret against the stored hash.
//
// # Returns
//   - The principal (without its secret hash) on success.
//   - [ErrAuthFailure] if the identity is unknown or the secret is wrong.
//   - Any other error if the credential store itself failed.
func (verifier *CredentialVerifier) Verify(ctx context.Context, identity, secret string) (*Principal, error) {
	principal, err := verifier.credentials.FindCredentials(ctx, textnorm.Email(identity))
	if err != nil {
		if errors.Is(err, ErrPrincipalNotFound) {
			verifier.hasher.Matches(secret, verifier.decoyHash)
			return nil, ErrAuthFailure
		}
		return nil, fmt.Errorf("auth: credential lookup failed: %w", err)
	}

	if !verifier.hasher.Matches(secret, principal.SecretHash) {
		return nil, ErrAuthFailure
	}

	return &Principal{
		ID:       principal.ID,
		Identity: principal.Identity,
		Roles:    principal.Roles,
	}, nil
}
