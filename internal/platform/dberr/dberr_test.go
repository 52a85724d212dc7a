// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/helpdesk/internal/platform/apperr"
	"github.com/taibuivan/helpdesk/internal/platform/dberr"
)

func TestWrap(t *testing.T) {
	messages := map[string]string{"person_cpf_key": "CPF already registered in the system"}

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"no_rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), http.StatusNotFound, "NOT_FOUND", "Object not found"},
		{"known_unique", &pgconn.PgError{Code: "23505", ConstraintName: "person_cpf_key"}, http.StatusBadRequest, "DATA_VIOLATION", "CPF already registered in the system"},
		{"unknown_unique", &pgconn.PgError{Code: "23505", ConstraintName: "other"}, http.StatusBadRequest, "DATA_VIOLATION", "Data integrity violation"},
		{"foreign_key", &pgconn.PgError{Code: "23503"}, http.StatusBadRequest, "DATA_VIOLATION", "Data integrity violation"},
		{"other", errors.New("connection reset"), http.StatusInternalServerError, "INTERNAL_ERROR", "An unexpected error occurred"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ae := apperr.As(dberr.Wrap(tt.err, "test", messages))
			require.NotNil(t, ae)
			assert.Equal(t, tt.status, ae.HTTPStatus)
			assert.Equal(t, tt.code, ae.Code)
			assert.Equal(t, tt.message, ae.Message)
		})
	}

	assert.NoError(t, dberr.Wrap(nil, "test", nil))
}
