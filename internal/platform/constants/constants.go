// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants provides centralized, immutable values for the entire platform.

It defines default timeouts, rate limits, header names and cross-cutting keys
that are shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Rate Limiting: Burst capacities and IP tracking TTLs.
  - Security: Authorization header names, bearer prefix, token issuer.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "helpdesk-api"
	AppVersion = "0.1.0-dev"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second

	// StartupTimeout bounds the database and cache connection attempts at boot.
	StartupTimeout = 30 * time.Second
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 100.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 150

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute

	// LoginRateWindow is the window used by the per-IP login throttle.
	LoginRateWindow = 1 * time.Minute
)

// # Authentication

const (
	// HeaderAuthorization carries the bearer token, both on login responses and on requests.
	HeaderAuthorization = "Authorization"

	// HeaderExposeHeaders lets cross-origin clients read the Authorization header.
	HeaderExposeHeaders = "Access-Control-Expose-Headers"

	// BearerPrefix is the scheme marker in front of the token. The trailing space is part of it.
	BearerPrefix = "Bearer "

	// LoginPath is the fixed entry point of the authentication gate.
	LoginPath = "/login"
)

// # HTTP Headers

const (
	HeaderXRequestID  = "X-Request-ID"
	HeaderOrigin      = "Origin"
	HeaderLocation    = "Location"
	HeaderContentType = "Content-Type"
	ContentTypeJSON   = "application/json; charset=utf-8"
)

// # JSON Field Identifiers

const (
	FieldTimestamp = "timestamp"
	FieldStatus    = "status"
	FieldError     = "error"
	FieldMessage   = "message"
	FieldPath      = "path"
	FieldChecks    = "checks"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixPrincipal keys cached directory entries by normalised email.
	RedisPrefixPrincipal = "helpdesk:principal:"
)

// # Date Formats

const (
	// DateLayout is the wire format of every calendar date (dd/MM/yyyy).
	DateLayout = "02/01/2006"
)
