// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package subscription

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
	requestutil "github.com/JordanSekky/cereal-convert/internal/platform/request"
	"github.com/JordanSekky/cereal-convert/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for subscriptions.
type Handler struct {
	service *Service
}

// NewHandler constructs a new subscription [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the chi router for the /subscriptions resource.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.Subscribe)
	router.Get("/users/{userID}", handler.ListForUser)
	router.Delete("/{id}", handler.Unsubscribe)
	return router
}

// # Subscription Creation

// subscribeRequest defines the inbound JSON schema for creating a subscription.
type subscribeRequest struct {
	UserID           string `json:"user_id"`
	BookID           string `json:"book_id"`
	GroupingQuantity int    `json:"grouping_quantity"`
}

/*
POST /api/v1/subscriptions.

Request:
  - body: subscribeRequest (grouping_quantity defaults to 1)

Response:
  - 201: Subscription
  - 400: Invalid payload
  - 409: Already subscribed
*/
func (handler *Handler) Subscribe(writer http.ResponseWriter, request *http.Request) {
	var input subscribeRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	subscription, err := handler.service.Subscribe(request.Context(), input.UserID, input.BookID, input.GroupingQuantity)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, subscription)
}

// # Subscription Retrieval

/*
GET /api/v1/subscriptions/users/{userID}.

Response:
  - 200: []Subscription with book titles attached
*/
func (handler *Handler) ListForUser(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	subscriptions, err := handler.service.ListForUser(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]any{
		constants.FieldItems: subscriptions,
		constants.FieldTotal: len(subscriptions),
	})
}

// # Subscription Removal

/*
DELETE /api/v1/subscriptions/{id}.

Response:
  - 204: Removed
  - 404: Subscription not found
*/
func (handler *Handler) Unsubscribe(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	if err := handler.service.Unsubscribe(request.Context(), id); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
