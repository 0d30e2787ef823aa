// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package api

import (
	"context"
	"net/http"

	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
	"github.com/JordanSekky/cereal-convert/internal/platform/respond"
)

// HealthDependencies holds the probes the readiness endpoint checks.
type HealthDependencies struct {
	CheckDatabase func(context context.Context) error
	CheckCache    func(context context.Context) error
}

// HealthHandler implements the platform health endpoints.
type HealthHandler struct {
	deps HealthDependencies
}

// NewHealthHandler constructs a new [HealthHandler].
func NewHealthHandler(deps HealthDependencies) *HealthHandler {
	return &HealthHandler{deps: deps}
}

/*
GET /health.

Description: Liveness probe. Answers 200 as long as the process serves HTTP.
*/
func (handler *HealthHandler) Liveness(writer http.ResponseWriter, _ *http.Request) {
	respond.OK(writer, map[string]string{
		constants.FieldStatus: "ok",
		"version":             constants.AppVersion,
	})
}

/*
GET /ready.

Description: Readiness probe. Answers 200 only when the database and cache
are reachable, 503 otherwise.
*/
func (handler *HealthHandler) Readiness(writer http.ResponseWriter, request *http.Request) {
	checks := map[string]string{
		"database": "ok",
		"cache":    "ok",
	}
	healthy := true

	if err := handler.deps.CheckDatabase(request.Context()); err != nil {
		checks["database"] = "unreachable"
		healthy = false
	}
	if err := handler.deps.CheckCache(request.Context()); err != nil {
		checks["cache"] = "unreachable"
		healthy = false
	}

	status := http.StatusOK
	if !healthy {
		status = http.StatusServiceUnavailable
	}

	respond.JSON(writer, status, map[string]any{
		constants.FieldStatus: checks,
	})
}
