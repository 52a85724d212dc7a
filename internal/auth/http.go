// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/taibuivan/helpdesk/internal/platform/apperr"
	"github.com/taibuivan/helpdesk/internal/platform/constants"
	"github.com/taibuivan/helpdesk/internal/platform/ctxutil"
	"github.com/taibuivan/helpdesk/internal/platform/respond"
)

// RejectedMessage is the only message ever returned by a failed login.
const RejectedMessage = "Invalid email or password"

// Login outcomes reported to the [LoginObserver]. They are the values of the
// outcome label on the login counter.
const (
	OutcomeAuthenticated = "authenticated"
	OutcomeRejected      = "rejected"
	OutcomeError         = "error"
)

// TokenIssuer signs bearer tokens for authenticated principals.
type TokenIssuer interface {
	Issue(subject string, userID int64, roles []string) (string, error)
}

// LoginObserver is notified once per login attempt with its outcome.
type LoginObserver interface {
	ObserveLogin(outcome string)
}

// Handler implements the login endpoint.
type Handler struct {
	verifier *CredentialVerifier
	issuer   TokenIssuer
	observer LoginObserver
}

// NewHandler constructs a new [Handler]. observer may be nil.
func NewHandler(verifier *CredentialVerifier, issuer TokenIssuer, observer LoginObserver) *Handler {
	return &Handler{verifier: verifier, issuer: issuer, observer: observer}
}

// credentials is the only accepted login payload.
type credentials struct {
	Email string `json:"email"`
	Senha string `json:"senha"`
}

// Login handles POST /login.
//
// # Returns
//   - HTTP 200 with an empty body and the token in the Authorization header.
//   - HTTP 401 with the fixed rejection body for every kind of failure.
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	logger := ctxutil.GetLogger(request.Context())

	// ── 1. Payload Extraction ─────────────────────────────────────────────

	input, err := decodeCredentials(request.Body)
	if err != nil {
		logger.InfoContext(request.Context(), "login_rejected", slog.String("reason", "malformed_payload"))
		handler.reject(writer, request, OutcomeRejected)
		return
	}

	// ── 2. Credential Verification ────────────────────────────────────────

	principal, err := handler.verifier.Verify(request.Context(), input.Email, input.Senha)
	if err != nil {
		if errors.Is(err, ErrAuthFailure) {
			logger.InfoContext(request.Context(), "login_rejected", slog.String("reason", "bad_credentials"))
			handler.reject(writer, request, OutcomeRejected)
			return
		}
		logger.ErrorContext(request.Context(), "login_failed", slog.Any("error", err))
		handler.reject(writer, request, OutcomeError)
		return
	}

	// ── 3. Token Issuance ─────────────────────────────────────────────────

	token, err := handler.issuer.Issue(principal.Identity, principal.ID, principal.Roles.Descriptions())
	if err != nil {
		handler.observe(OutcomeError)
		respond.Error(writer, request, apperr.Internal(err))
		return
	}

	// ── 4. Presentation Output ────────────────────────────────────────────

	handler.observe(OutcomeAuthenticated)
	logger.InfoContext(request.Context(), "login_succeeded", slog.Int64("user_id", principal.ID))

	writer.Header().Set(constants.HeaderAuthorization, constants.BearerPrefix+token)
	writer.Header().Set(constants.HeaderExposeHeaders, constants.HeaderAuthorization)
	writer.WriteHeader(http.StatusOK)
}

// decodeCredentials accepts exactly one JSON object with non-empty email and senha.
func decodeCredentials(body io.Reader) (credentials, error) {
	var input credentials

	decoder := json.NewDecoder(body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&input); err != nil {
		return credentials{}, err
	}
	if decoder.More() {
		return credentials{}, errors.New("trailing data after credentials")
	}
	if strings.TrimSpace(input.Email) == "" || input.Senha == "" {
		return credentials{}, errors.New("email and senha are required")
	}

	return input, nil
}

func (handler *Handler) reject(writer http.ResponseWriter, request *http.Request, outcome string) {
	handler.observe(outcome)
	respond.Error(writer, request, apperr.Unauthorized(RejectedMessage))
}

func (handler *Handler) observe(outcome string) {
	if handler.observer != nil {
		handler.observer.ObserveLogin(outcome)
	}
}
