// Copyright 2023 - 2025, VnPower and the PixivFE contributors
// SPDX-License-Identifier: AGPL-3.0-only

package audit

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	servertiming "github.com/mitchellh/go-server-timing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServerTimingName(t *testing.T) {
	t.Parallel()

	span := Span{Destination: ToTolgee, Method: http.MethodGet, URL: "https://app.tolgee.io/v2"}
	parts := strings.Split(span.ServerTimingName(), "$")
	require.Len(t, parts, 3)

	assert.Equal(t, "tolgee", parts[0])
	assert.Equal(t, "GET", parts[1])

	decoded, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	assert.Equal(t, "https://app.tolgee.io/v2", string(decoded))
}

func TestSpan_BeginEnd(t *testing.T) {
	t.Parallel()

	span := Span{Destination: ToUser, Method: http.MethodGet, URL: "/"}
	_ = span.Begin(context.Background())
	span.End()
	span.End()

	assert.GreaterOrEqual(t, span.Duration().Nanoseconds(), int64(0))
	assert.NotPanics(t, span.Log)
}

func TestSpan_ServerTimingMetric(t *testing.T) {
	t.Parallel()

	handler := servertiming.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		span := Span{Destination: ToTolgee, Method: http.MethodGet, URL: "https://example.test"}
		_ = span.Begin(r.Context())
		span.End()
		w.WriteHeader(http.StatusNoContent)
	}), nil)

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, rr.Header().Get(servertiming.HeaderKey), "tolgee$GET$")
}

func TestNewRequestID(t *testing.T) {
	t.Parallel()

	id := NewRequestID()

	parsed, err := uuid.Parse(id)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.NotEqual(t, id, NewRequestID())
}
