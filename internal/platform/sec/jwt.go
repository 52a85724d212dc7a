// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, roles and token management.
//
// # Architecture
//
// This package isolates security-sensitive code (hashing, JWT signing) from
// the domain logic. The [TokenCodec] is constructed once at startup from
// immutable configuration and injected wherever tokens are issued or checked.
package sec

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretLength is the shortest signing secret accepted for HS512.
const MinSecretLength = 32

var (
	// ErrTokenInvalid is returned for bad signatures, malformed tokens,
	// unexpected algorithms, or tokens lacking an expiry or a subject.
	ErrTokenInvalid = errors.New("sec: token invalid")

	// ErrTokenExpired is returned by [Claims.UsableAt] when the token's
	// signature is fine but its lifetime is over.
	ErrTokenExpired = errors.New("sec: token expired")
)

// Claims is the payload embedded inside a bearer token.
//
// On the wire it is exactly {sub, id, roles, iat, exp}: the subject is the
// principal's email, id its numeric identifier, roles the role descriptions.
type Claims struct {
	jwt.RegisteredClaims

	UserID int64    `json:"id"`
	Roles  []string `json:"roles"`
}

// UsableAt performs the temporal half of token validation.
//
// The signature check lives in [TokenCodec.Verify]; this method re-derives
// now < exp and requires a subject. Both must pass before a token is trusted.
func (claims *Claims) UsableAt(now time.Time) error {
	if strings.TrimSpace(claims.Subject) == "" || claims.ExpiresAt == nil {
		return ErrTokenInvalid
	}
	if !now.Before(claims.ExpiresAt.Time) {
		return ErrTokenExpired
	}
	return nil
}

// TokenCodec creates and verifies HS512-signed, expiring bearer tokens.
//
// It holds no mutable state after construction and is safe for concurrent use.
type TokenCodec struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
	parser *jwt.Parser
}

// CodecOption customises a [TokenCodec].
type CodecOption func(*TokenCodec)

// WithClock overrides the time source used for iat/exp. Intended for tests.
func WithClock(now func() time.Time) CodecOption {
	return func(codec *TokenCodec) {
		codec.now = now
	}
}

// NewTokenCodec creates a codec signing with secret and issuing tokens that live for ttl.
func NewTokenCodec(secret []byte, ttl time.Duration, opts ...CodecOption) (*TokenCodec, error) {
	if len(secret) < MinSecretLength {
		return nil, fmt.Errorf("sec: signing secret must be at least %d bytes", MinSecretLength)
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("sec: token ttl must be positive, got %s", ttl)
	}

	codec := &TokenCodec{
		secret: append([]byte(nil), secret...),
		ttl:    ttl,
		now:    time.Now,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
			jwt.WithStrictDecoding(),
			// Expiry is checked by Claims.UsableAt so the two failure modes stay separate.
			jwt.WithoutClaimsValidation(),
		),
	}
	for _, opt := range opts {
		opt(codec)
	}
	return codec, nil
}

// TTL returns the configured token lifetime.
func (codec *TokenCodec) TTL() time.Duration { return codec.ttl }

// Issue builds and signs a token for subject carrying userID and roles.
func (codec *TokenCodec) Issue(subject string, userID int64, roles []string) (string, error) {
	currentTime := codec.now()

	claimedRoles := make([]string, len(roles))
	copy(claimedRoles, roles)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(currentTime),
			ExpiresAt: jwt.NewNumericDate(currentTime.Add(codec.ttl)),
		},
		UserID: userID,
		Roles:  claimedRoles,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signedToken, err := token.SignedString(codec.secret)
	if err != nil {
		return "", fmt.Errorf("sec: failed to sign token: %w", err)
	}

	return signedToken, nil
}

// Verify checks the signature and structure of a token and returns its claims.
//
// It does not reject expired tokens; callers must follow up with [Claims.UsableAt].
func (codec *TokenCodec) Verify(tokenString string) (*Claims, error) {
	token, err := codec.parser.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return codec.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}

	if claims.ExpiresAt == nil {
		return nil, fmt.Errorf("%w: missing exp claim", ErrTokenInvalid)
	}

	return claims, nil
}
