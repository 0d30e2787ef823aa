// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package delivery

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
	requestutil "github.com/JordanSekky/cereal-convert/internal/platform/request"
	"github.com/JordanSekky/cereal-convert/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for delivery channels.
type Handler struct {
	service *Service
}

// NewHandler constructs a new delivery [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the chi router for the /delivery-methods resource.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{userID}", handler.GetMethod)
	router.Post("/{userID}/kindle", handler.RegisterKindle)
	router.Post("/{userID}/kindle/verify", handler.VerifyKindle)
	router.Post("/{userID}/pushover", handler.RegisterPushover)
	router.Post("/{userID}/pushover/verify", handler.VerifyPushover)
	router.Patch("/{userID}", handler.ToggleChannel)
	return router
}

// # Channel Registration

type registerKindleRequest struct {
	Email string `json:"email"`
}

type registerPushoverRequest struct {
	Key string `json:"key"`
}

type verifyRequest struct {
	Code string `json:"code"`
}

type toggleRequest struct {
	Channel string `json:"channel"`
	Enabled bool   `json:"enabled"`
}

/*
POST /api/v1/delivery-methods/{userID}/kindle.

Description: Registers (or replaces) the user's kindle email and emails a
verification ebook to it. The channel stays inactive until verified.

Response:
  - 200: Message
  - 400: Invalid payload
*/
func (handler *Handler) RegisterKindle(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	var input registerKindleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RegisterKindle(request.Context(), userID, input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Verification ebook sent"})
}

/*
POST /api/v1/delivery-methods/{userID}/kindle/verify.

Response:
  - 200: Message
  - 410: Code expired
  - 422: Code mismatch or no pending verification
*/
func (handler *Handler) VerifyKindle(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	var input verifyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.VerifyKindle(request.Context(), userID, input.Code); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Kindle email verified"})
}

/*
POST /api/v1/delivery-methods/{userID}/pushover.
*/
func (handler *Handler) RegisterPushover(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	var input registerPushoverRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.RegisterPushover(request.Context(), userID, input.Key); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Verification push sent"})
}

/*
POST /api/v1/delivery-methods/{userID}/pushover/verify.
*/
func (handler *Handler) VerifyPushover(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	var input verifyRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.VerifyPushover(request.Context(), userID, input.Code); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Pushover key verified"})
}

// # Channel Management

/*
PATCH /api/v1/delivery-methods/{userID}.

Description: Enables or disables one channel.

Request:
  - body: toggleRequest {"channel": "kindle"|"pushover", "enabled": bool}
*/
func (handler *Handler) ToggleChannel(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	var input toggleRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.SetChannelEnabled(request.Context(), userID, input.Channel, input.Enabled); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{constants.FieldMessage: "Channel updated"})
}

/*
GET /api/v1/delivery-methods/{userID}.
*/
func (handler *Handler) GetMethod(writer http.ResponseWriter, request *http.Request) {
	userID := requestutil.Param(request, "userID")

	method, err := handler.service.GetMethod(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, method)
}
