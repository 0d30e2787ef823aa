// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package book

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	requestutil "github.com/JordanSekky/cereal-convert/internal/platform/request"
	"github.com/JordanSekky/cereal-convert/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for tracked serials.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the chi router for the /books resource.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Post("/", handler.CreateBook)
	router.Get("/{id}", handler.GetBook)
	return router
}

// # Book Registration

// createBookRequest defines the inbound JSON schema for registering a serial.
type createBookRequest struct {
	URL string `json:"url"`
}

/*
POST /api/v1/books.

Description: Registers the serial behind a public URL for tracking. The URL
must belong to one of the supported providers. Registering an
already-tracked serial returns the existing book.

Request:
  - body: createBookRequest

Response:
  - 201: Book: The tracked book
  - 400: Invalid payload
  - 422: No provider claims the URL
*/
func (handler *Handler) CreateBook(writer http.ResponseWriter, request *http.Request) {
	var input createBookRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	book, err := handler.service.CreateFromURL(request.Context(), input.URL)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, book)
}

// # Book Retrieval

/*
GET /api/v1/books/{id}.

Response:
  - 200: Book
  - 404: Book not found
*/
func (handler *Handler) GetBook(writer http.ResponseWriter, request *http.Request) {
	id := requestutil.ID(request, "id")

	book, err := handler.service.GetBook(request.Context(), id)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, book)
}
