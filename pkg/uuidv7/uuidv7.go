// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package uuidv7 wraps google/uuid to generate time-ordered UUIDv7 values.
//
// The helpdesk uses them as request correlation IDs: sorting log lines by
// request_id keeps them in arrival order.
package uuidv7

import "github.com/google/uuid"

// New returns a fresh UUIDv7 string, falling back to a random UUIDv4 if the
// clock-based generator fails.
func New() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

// Valid reports whether s parses as a UUID of any version.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
