// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec_test

import (
	"encoding/base64"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/helpdesk/internal/platform/sec"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef-test-secret")

func newCodec(t *testing.T, ttl time.Duration, opts ...sec.CodecOption) *sec.TokenCodec {
	t.Helper()
	codec, err := sec.NewTokenCodec(testSecret, ttl, opts...)
	require.NoError(t, err)
	return codec
}

/*
TestTokenCodec_RoundTrip verifies that an issued token decodes back to the same identity.
*/
func TestTokenCodec_RoundTrip(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue("bill@mail.com", 7, []string{"ROLE_ADMIN", "ROLE_TECNICO"})
	require.NoError(t, err)
	assert.Len(t, strings.Split(token, "."), 3)

	claims, err := codec.Verify(token)
	require.NoError(t, err)

	assert.Equal(t, "bill@mail.com", claims.Subject)
	assert.Equal(t, int64(7), claims.UserID)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_TECNICO"}, claims.Roles)
	require.NotNil(t, claims.IssuedAt)
	require.NotNil(t, claims.ExpiresAt)
	assert.NoError(t, claims.UsableAt(time.Now()))
}

/*
TestTokenCodec_WireShape checks the claim names and the signing algorithm on the wire.
*/
func TestTokenCodec_WireShape(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue("linus@mail.com", 3, []string{"ROLE_CLIENTE"})
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	require.Len(t, parts, 3)

	header, err := base64.RawURLEncoding.DecodeString(parts[0])
	require.NoError(t, err)
	assert.Contains(t, string(header), `"alg":"HS512"`)

	payload, err := base64.RawURLEncoding.DecodeString(parts[1])
	require.NoError(t, err)

	var claims map[string]any
	require.NoError(t, json.Unmarshal(payload, &claims))

	keys := make([]string, 0, len(claims))
	for key := range claims {
		keys = append(keys, key)
	}
	assert.ElementsMatch(t, []string{"sub", "id", "roles", "iat", "exp"}, keys)
	assert.Equal(t, "linus@mail.com", claims["sub"])
	assert.EqualValues(t, 3, claims["id"])
}

/*
TestTokenCodec_TamperedSignature flips the last byte of the token.
*/
func TestTokenCodec_TamperedSignature(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue("bill@mail.com", 1, []string{"ROLE_ADMIN"})
	require.NoError(t, err)

	replacement := "A"
	if strings.HasSuffix(token, "A") {
		replacement = "B"
	}
	tampered := token[:len(token)-1] + replacement

	_, err = codec.Verify(tampered)
	assert.ErrorIs(t, err, sec.ErrTokenInvalid)
}

/*
TestTokenCodec_ExpiredStillVerifies keeps signature validity and temporal validity apart.
*/
func TestTokenCodec_ExpiredStillVerifies(t *testing.T) {
	past := time.Now().Add(-2 * time.Hour)
	codec := newCodec(t, time.Hour, sec.WithClock(func() time.Time { return past }))

	token, err := codec.Issue("bill@mail.com", 1, []string{"ROLE_ADMIN"})
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err, "signature must still check out")

	assert.ErrorIs(t, claims.UsableAt(time.Now()), sec.ErrTokenExpired)
	assert.NoError(t, claims.UsableAt(past.Add(time.Minute)))
}

/*
TestTokenCodec_Rejects covers the structural failure modes of Verify.
*/
func TestTokenCodec_Rejects(t *testing.T) {
	codec := newCodec(t, time.Hour)

	otherCodec, err := sec.NewTokenCodec([]byte("another-secret-another-secret-another"), time.Hour)
	require.NoError(t, err)
	foreign, err := otherCodec.Issue("bill@mail.com", 1, nil)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.MapClaims{
		"sub": "bill@mail.com",
		"id":  1,
	}).SignedString(testSecret)
	require.NoError(t, err)

	wrongAlg, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "bill@mail.com",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two_segments", "a.b"},
		{"foreign_secret", foreign},
		{"missing_exp", noExpiry},
		{"unexpected_algorithm", wrongAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := codec.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, sec.ErrTokenInvalid)
		})
	}
}

/*
TestClaims_UsableAt_RequiresSubject rejects a signed token without a subject.
*/
func TestClaims_UsableAt_RequiresSubject(t *testing.T) {
	codec := newCodec(t, time.Hour)

	token, err := codec.Issue("", 1, nil)
	require.NoError(t, err)

	claims, err := codec.Verify(token)
	require.NoError(t, err)
	assert.ErrorIs(t, claims.UsableAt(time.Now()), sec.ErrTokenInvalid)
	assert.Equal(t, []string{}, claims.Roles)
}

/*
TestNewTokenCodec_Validation rejects weak secrets and non-positive lifetimes.
*/
func TestNewTokenCodec_Validation(t *testing.T) {
	_, err := sec.NewTokenCodec([]byte("short"), time.Hour)
	assert.Error(t, err)

	_, err = sec.NewTokenCodec(testSecret, 0)
	assert.Error(t, err)

	codec, err := sec.NewTokenCodec(testSecret, 90*time.Minute)
	require.NoError(t, err)
	assert.Equal(t, 90*time.Minute, codec.TTL())
}
