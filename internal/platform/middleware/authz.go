// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/taibuivan/helpdesk/internal/auth"
	"github.com/taibuivan/helpdesk/internal/platform/apperr"
	"github.com/taibuivan/helpdesk/internal/platform/constants"
	"github.com/taibuivan/helpdesk/internal/platform/ctxutil"
	"github.com/taibuivan/helpdesk/internal/platform/respond"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
)

// TokenVerifier checks a bearer token's signature and structure.
//
// Defining TokenVerifier here decouples the middleware from the concrete
// [sec.TokenCodec], so tests can inject fakes.
type TokenVerifier interface {
	Verify(token string) (*sec.Claims, error)
}

// Authenticate establishes the [sec.SecurityContext] for requests carrying a
// usable bearer token.
//
// # Flow
//  1. No "Authorization: Bearer <token>" header: continue anonymously.
//  2. Verify the signature via [TokenVerifier]; on failure continue anonymously.
//  3. Check expiry and subject; if unusable continue anonymously.
//  4. Re-resolve the principal's current roles from the directory.
//  5. Attach the security context and continue.
//
// It never rejects a request itself. Protected routes are guarded by
// [RequireAuth] and [RequireRole], which turn a missing context into 401.
func Authenticate(verifier TokenVerifier, directory auth.PrincipalDirectory) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			logger := ctxutil.GetLogger(request.Context())

			// ── 1. Anonymous Access ───────────────────────────────────────────
			header := request.Header.Get(constants.HeaderAuthorization)
			token, found := strings.CutPrefix(header, constants.BearerPrefix)
			if !found || token == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Signature Verification ─────────────────────────────────────
			claims, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(request.Context(), "bearer_token_invalid", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Temporal Validity ──────────────────────────────────────────
			if err := claims.UsableAt(time.Now()); err != nil {
				logger.DebugContext(request.Context(), "bearer_token_unusable", slog.Any("error", err))
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Current Roles ──────────────────────────────────────────────
			principal, err := directory.FindByIdentity(request.Context(), claims.Subject)
			if err != nil {
				logger.WarnContext(request.Context(), "bearer_principal_unresolved",
					slog.String("subject", claims.Subject),
					slog.Any("error", err),
				)
				next.ServeHTTP(writer, request)
				return
			}

			// ── 5. Context Injection ──────────────────────────────────────────
			recordUser(request.Context(), principal.ID)
			ctx := ctxutil.WithSecurity(request.Context(), &sec.SecurityContext{
				UserID:   principal.ID,
				Identity: principal.Identity,
				Roles:    principal.Roles,
			})
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that carry no security context.
//
// Must be registered in the router AFTER [Authenticate].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetSecurity(request.Context()) == nil {
			respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// RequireRole blocks requests whose roles do not intersect roles.
//
// It implies [RequireAuth]: anonymous requests get 401, authenticated ones
// without any of the roles get 403.
func RequireRole(roles ...sec.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			security := ctxutil.GetSecurity(request.Context())

			// ── 1. Authentication Check ───────────────────────────────────────
			if security == nil {
				respond.Error(writer, request, apperr.Unauthorized("Authentication required"))
				return
			}

			// ── 2. Authorization Check ────────────────────────────────────────
			if !security.HasAnyRole(roles...) {
				respond.Error(writer, request, apperr.Forbidden("Access denied"))
				return
			}

			next.ServeHTTP(writer, request)
		})
	}
}
