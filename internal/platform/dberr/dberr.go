// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/taibuivan/helpdesk/internal/platform/apperr"
)

// PostgreSQL SQLSTATE codes mapped to client errors.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// constraintMessages maps a constraint name to the message returned when that
// constraint is violated. Unknown constraints fall back to a generic message.
func Wrap(err error, action string, constraintMessages map[string]string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound("Object not found")
	}

	// 2. Integrity violations are the client's fault
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation, codeForeignKeyViolation:
			message, ok := constraintMessages[pgErr.ConstraintName]
			if !ok {
				message = "Data integrity violation"
			}
			appErr := apperr.DataViolation(message)
			appErr.Cause = err
			return appErr
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(fmt.Errorf("%s: %w", action, err))
}
