// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/taibuivan/helpdesk/internal/platform/apperr"
	"github.com/taibuivan/helpdesk/internal/platform/ctxutil"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
	"github.com/taibuivan/helpdesk/internal/platform/validate"
)

// maxBodyBytes caps every JSON payload accepted by the API.
const maxBodyBytes = 1 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(writer http.ResponseWriter, request *http.Request, target interface{}) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxBodyBytes)
	if err := json.NewDecoder(request.Body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
ID parses the named URL parameter as a positive numeric identifier.

Returns:
  - error: a VALIDATION_ERROR naming the parameter when it is not a positive integer
*/
func ID(request *http.Request, name string) (int64, error) {
	raw := chi.URLParam(request, name)

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, validate.RequiredError(name, "Must be a positive integer")
	}
	return id, nil
}

/*
Security extracts the authenticated security context from the request context.

Returns nil if the request is not authenticated.
*/
func Security(request *http.Request) *sec.SecurityContext {
	return ctxutil.GetSecurity(request.Context())
}

/*
RequiredSecurity ensures the request is authenticated and returns its security context.

Returns:
  - error: apperr.Unauthorized if the request is not authenticated
*/
func RequiredSecurity(request *http.Request) (*sec.SecurityContext, error) {
	security := ctxutil.GetSecurity(request.Context())
	if security == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return security, nil
}
