// Copyright (c) 2026 Helpdesk. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/helpdesk/internal/platform/ctxutil"
	"github.com/taibuivan/helpdesk/internal/platform/sec"
)

/*
TestContext_RequestID verifies that Request IDs can be injected and retrieved.
*/
func TestContext_RequestID(t *testing.T) {
	ctx := context.Background()
	requestID := "test-request-id"

	// 1. Initially should be empty
	assert.Empty(t, ctxutil.GetRequestID(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithRequestID(ctx, requestID)
	assert.Equal(t, requestID, ctxutil.GetRequestID(ctx))
}

/*
TestContext_Logger verifies that a custom logger can be stored in context.
*/
func TestContext_Logger(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// 1. Initially should return the default logger
	assert.Equal(t, slog.Default(), ctxutil.GetLogger(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithLogger(ctx, logger)
	assert.Equal(t, logger, ctxutil.GetLogger(ctx))
}

/*
TestContext_Security verifies that the security context can be stored in context.
*/
func TestContext_Security(t *testing.T) {
	ctx := context.Background()
	security := &sec.SecurityContext{
		UserID:   12,
		Identity: "bill@mail.com",
		Roles:    sec.NewRoleSet(sec.RoleAdmin, sec.RoleTecnico),
	}

	// 1. Initially should be nil
	assert.Nil(t, ctxutil.GetSecurity(ctx))

	// 2. Inject and retrieve
	ctx = ctxutil.WithSecurity(ctx, security)
	retrieved := ctxutil.GetSecurity(ctx)

	assert.NotNil(t, retrieved)
	assert.Equal(t, int64(12), retrieved.UserID)
	assert.Equal(t, []string{"ROLE_ADMIN", "ROLE_TECNICO"}, retrieved.Roles.Descriptions())
}
