// Copyright (c) 2026 Resolve. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package ctxutil_test

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/resolve/internal/platform/ctxutil"
	"github.com/taibuivan/resolve/internal/platform/sec"
)

/*
TestRequestID_RoundTrip verifies storage and retrieval of the correlation ID.
*/
func TestRequestID_RoundTrip(t *testing.T) {
	ctx := ctxutil.WithRequestID(context.Background(), "0192f3a1-test")
	assert.Equal(t, "0192f3a1-test", ctxutil.GetRequestID(ctx))
}

/*
TestRequestID_Missing verifies the empty-string fallback.
*/
func TestRequestID_Missing(t *testing.T) {
	assert.Empty(t, ctxutil.GetRequestID(context.Background()))
}

/*
TestLogger_Fallback verifies that a bare context yields the default logger
instead of nil.
*/
func TestLogger_Fallback(t *testing.T) {
	logger := ctxutil.GetLogger(context.Background())
	require.NotNil(t, logger)
	assert.Equal(t, slog.Default(), logger)
}

/*
TestAuthUser_RoundTrip verifies claims storage and the anonymous fallback.
*/
func TestAuthUser_RoundTrip(t *testing.T) {
	claims := &sec.AuthClaims{UserID: "user-1", Email: "tai@resolve.app"}

	ctx := ctxutil.WithAuthUser(context.Background(), claims)
	got := ctxutil.GetAuthUser(ctx)

	require.NotNil(t, got)
	assert.Equal(t, "user-1", got.UserID)

	// Anonymous context returns nil, never panics.
	assert.Nil(t, ctxutil.GetAuthUser(context.Background()))
}
