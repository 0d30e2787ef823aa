// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package notify

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
)

func TestPushoverClient_Push(t *testing.T) {
	var received pushoverMessage
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		require.NoError(t, json.NewDecoder(request.Body).Decode(&received))
		writer.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(server.Close)

	client := NewPushoverClient(server.Client(), "app-token", server.URL)

	err := client.Push(t.Context(), "user-key", "A new chapter of Pale by Wildbow has been released: 0.1")
	require.NoError(t, err)

	assert.Equal(t, "app-token", received.Token)
	assert.Equal(t, "user-key", received.User)
	assert.Equal(t, "A new chapter of Pale by Wildbow has been released: 0.1", received.Message)
}

func TestPushoverClient_Push_UpstreamFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	client := NewPushoverClient(server.Client(), "app-token", server.URL)

	err := client.Push(t.Context(), "user-key", "hello")
	require.Error(t, err)

	appErr := apperr.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, "UPSTREAM_FAILED", appErr.Code)
}

func TestNewPushoverClient_DefaultEndpoint(t *testing.T) {
	client := NewPushoverClient(http.DefaultClient, "app-token", "")
	assert.Equal(t, DefaultPushoverEndpoint, client.endpoint)
}
