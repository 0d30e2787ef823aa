// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler_Liveness(t *testing.T) {
	handler := NewHealthHandler(HealthDependencies{})

	recorder := httptest.NewRecorder()
	handler.Liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), `"ok"`)
}

func TestHealthHandler_Readiness(t *testing.T) {
	testCases := []struct {
		name       string
		dbErr      error
		cacheErr   error
		wantStatus int
		wantDB     string
	}{
		{
			name:       "all dependencies up",
			wantStatus: http.StatusOK,
			wantDB:     "ok",
		},
		{
			name:       "database down",
			dbErr:      errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantDB:     "unreachable",
		},
		{
			name:       "cache down",
			cacheErr:   errors.New("connection refused"),
			wantStatus: http.StatusServiceUnavailable,
			wantDB:     "ok",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			handler := NewHealthHandler(HealthDependencies{
				CheckDatabase: func(context.Context) error { return testCase.dbErr },
				CheckCache:    func(context.Context) error { return testCase.cacheErr },
			})

			recorder := httptest.NewRecorder()
			handler.Readiness(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

			assert.Equal(t, testCase.wantStatus, recorder.Code)

			var payload struct {
				Status map[string]string `json:"status"`
			}
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &payload))
			assert.Equal(t, testCase.wantDB, payload.Status["database"])
		})
	}
}
