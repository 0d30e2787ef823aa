// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package ctxutil

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	// 1. Attach a request ID to a fresh context
	ctx := WithRequestID(context.Background(), "req-123")

	// 2. Retrieve it back
	assert.Equal(t, "req-123", GetRequestID(ctx))
}

func TestRequestIDMissing(t *testing.T) {
	// A bare context has no request ID
	assert.Equal(t, "", GetRequestID(context.Background()))
}

func TestLoggerRoundTrip(t *testing.T) {
	// 1. Attach a distinct logger
	logger := slog.New(slog.DiscardHandler)
	ctx := WithLogger(context.Background(), logger)

	// 2. Retrieve it back
	assert.Same(t, logger, GetLogger(ctx))
}

func TestLoggerFallsBackToDefault(t *testing.T) {
	// A bare context falls back to the process-wide default logger
	assert.Same(t, slog.Default(), GetLogger(context.Background()))
}
