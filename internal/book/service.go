// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package book

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JordanSekky/cereal-convert/internal/platform/validate"
)

const (
	FieldURL = "url"
)

// # Provider Resolution

// Resolver maps a public serial URL onto a provider identity and supplies
// display metadata for it. Implemented by the provider registry.
type Resolver interface {

	/*
		ResolveURL parses a serial's public URL into its provider identity.

		Returns:
		  - Kind: The resolved provider identity
		  - error: apperr.Unprocessable if no provider claims the URL
	*/
	ResolveURL(rawURL string) (Kind, error)

	/*
		BookMeta returns the display title and author for a provider identity.
		RoyalRoad fictions are scraped live; wordpress serials are fixed.

		Returns:
		  - title, author: Display metadata
		  - error: Upstream fetch failures
	*/
	BookMeta(context context.Context, kind Kind) (title, author string, err error)
}

// # Service Layer

// Service orchestrates the business logic for tracked serials.
type Service struct {
	books    Repository
	resolver Resolver
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(books Repository, resolver Resolver, logger *slog.Logger) *Service {
	return &Service{
		books:    books,
		resolver: resolver,
		logger:   logger,
	}
}

// # Book Operations

/*
CreateFromURL registers the serial behind a public URL for tracking.

Description: Resolves the URL to a provider identity, fetches display
metadata, and inserts the book. Registering an already-tracked serial is
idempotent and returns the existing book.

Parameters:
  - context: context.Context
  - rawURL: string (Public serial URL, e.g. a royalroad fiction page)

Returns:
  - *Book: The tracked book (new or pre-existing)
  - error: Validation, resolution, or persistence errors
*/
func (service *Service) CreateFromURL(context context.Context, rawURL string) (*Book, error) {

	// Mandatory field validation
	validator := &validate.Validator{}
	validator.Required(FieldURL, rawURL)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	// Provider identity resolution
	kind, err := service.resolver.ResolveURL(rawURL)
	if err != nil {
		return nil, err
	}

	// Idempotency: the same serial is never tracked twice
	if existing, err := service.books.FindByKind(context, kind); err == nil {
		return existing, nil
	}

	// Display metadata (scraped for royalroad, fixed for wordpress serials)
	title, author, err := service.resolver.BookMeta(context, kind)
	if err != nil {
		return nil, err
	}

	book := &Book{
		ID:     newID(),
		Title:  title,
		Author: author,
		Kind:   kind,
	}

	if err := service.books.Create(context, book); err != nil {
		return nil, err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("title", book.Title),
		slog.String("kind", book.Kind.String()),
	)

	return book, nil
}

/*
GetBook retrieves metadata for a single book by its ID.
*/
func (service *Service) GetBook(context context.Context, id string) (*Book, error) {
	return service.books.FindByID(context, id)
}

// newID generates a time-sortable UUIDv7 primary key.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// entropy failure is an unrecoverable system-level error
		panic("book: failed to generate UUID: " + err.Error())
	}
	return id.String()
}
