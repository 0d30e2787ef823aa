// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package book

import "context"

// # Book Data Access

// Repository defines the data access contract for tracked serials.
type Repository interface {

	/*
		FindByID returns the book with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Book: Hydrated metadata
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		FindByKind returns the book with the given provider identity.

		Parameters:
		  - context: context.Context
		  - kind: Kind (Provider identity)

		Returns:
		  - *Book: Hydrated metadata
		  - error: apperr.NotFound if no book tracks this serial
	*/
	FindByKind(context context.Context, kind Kind) (*Book, error)

	/*
		Create persists a new book to the store.

		Parameters:
		  - context: context.Context
		  - book: *Book

		Returns:
		  - error: Storage failure (unique violation on duplicate identity)
	*/
	Create(context context.Context, book *Book) error

	/*
		ListSubscribed returns every book that has at least one subscription.
		The ingestion pipeline only polls these.

		Parameters:
		  - context: context.Context

		Returns:
		  - []*Book: Distinct subscribed books
		  - error: Storage failures
	*/
	ListSubscribed(context context.Context) ([]*Book, error)
}
