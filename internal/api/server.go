// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package api assembles the HTTP surface of the service.

It mounts the domain handlers under /api/v1 behind the standard middleware
chain and exposes the health endpoints used by the deployment platform.
*/
package api

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/delivery"
	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
	"github.com/JordanSekky/cereal-convert/internal/platform/middleware"
	"github.com/JordanSekky/cereal-convert/internal/subscription"
)

// Handlers bundles every mounted handler.
type Handlers struct {
	Book         *book.Handler
	Subscription *subscription.Handler
	Delivery     *delivery.Handler
	Health       *HealthHandler
}

/*
NewRouter builds the service router.

Parameters:
  - context: context.Context (Owns the rate limiter's cleanup goroutine)
  - logger: *slog.Logger
  - handlers: Handlers

Returns:
  - chi.Router: The fully wired router
*/
func NewRouter(context context.Context, logger *slog.Logger, handlers Handlers) chi.Router {
	router := chi.NewRouter()

	// 1. Cross-cutting middleware, outermost first
	router.Use(middleware.RequestID())
	router.Use(middleware.StructuredLogger(logger))
	router.Use(chimiddleware.CleanPath)
	router.Use(chimiddleware.Timeout(constants.GlobalRequestTimeout))
	router.Use(middleware.RateLimit(context))
	router.Use(middleware.PanicRecovery(logger))

	// 2. Platform health endpoints
	router.Get("/health", handlers.Health.Liveness)
	router.Get("/ready", handlers.Health.Readiness)

	// 3. Domain resources
	router.Route("/api/v1", func(api chi.Router) {
		api.Mount("/books", handlers.Book.Routes())
		api.Mount("/subscriptions", handlers.Subscription.Routes())
		api.Mount("/delivery-methods", handlers.Delivery.Routes())
	})

	return router
}

/*
NewServer wraps the router in an http.Server with production timeouts.
*/
func NewServer(port string, router chi.Router) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%s", port),
		Handler:           router,
		ReadTimeout:       constants.DefaultReadTimeout,
		ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		WriteTimeout:      constants.DefaultWriteTimeout,
		IdleTimeout:       constants.DefaultIdleTimeout,
	}
}
