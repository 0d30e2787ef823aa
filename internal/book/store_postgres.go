// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package book

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JordanSekky/cereal-convert/internal/platform/database/schema"
	"github.com/JordanSekky/cereal-convert/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed book store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
FindByID returns the book with the given ID.
*/
func (repository *repository) FindByID(context context.Context, id string) (*Book, error) {

	// Setup primary query
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Books.ID, schema.Books.Title, schema.Books.Author, schema.Books.Metadata,
		schema.Books.CreatedAt, schema.Books.UpdatedAt,
		schema.Books.Table,
		schema.Books.ID,
	)

	return repository.scanOne(context, query, id)
}

/*
FindByKind returns the book whose metadata matches the given provider identity.
*/
func (repository *repository) FindByKind(context context.Context, kind Kind) (*Book, error) {

	metadata, err := json.Marshal(kind)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to encode book kind: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		schema.Books.ID, schema.Books.Title, schema.Books.Author, schema.Books.Metadata,
		schema.Books.CreatedAt, schema.Books.UpdatedAt,
		schema.Books.Table,
		schema.Books.Metadata,
	)

	return repository.scanOne(context, query, metadata)
}

/*
Create persists a new book record.
*/
func (repository *repository) Create(context context.Context, book *Book) error {

	metadata, err := json.Marshal(book.Kind)
	if err != nil {
		return fmt.Errorf("postgres: failed to encode book kind: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`,
		schema.Books.Table,
		schema.Books.ID, schema.Books.Title, schema.Books.Author, schema.Books.Metadata,
	)

	_, err = repository.pool.Exec(context, query, book.ID, book.Title, book.Author, metadata)
	return dberr.Wrap(err, "Book")
}

/*
ListSubscribed returns every distinct book with at least one subscription.
*/
func (repository *repository) ListSubscribed(context context.Context) ([]*Book, error) {

	query := fmt.Sprintf(`
		SELECT DISTINCT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s
		FROM %s b
		JOIN %s s ON s.%s = b.%s
	`,
		schema.Books.ID, schema.Books.Title, schema.Books.Author, schema.Books.Metadata,
		schema.Books.CreatedAt, schema.Books.UpdatedAt,
		schema.Books.Table,
		schema.Subscriptions.Table, schema.Subscriptions.BookID, schema.Books.ID,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list subscribed books: %w", err)
	}
	defer rows.Close()

	var books []*Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, book)
	}

	return books, rows.Err()
}

// # Row Mapping

// scanOne executes a single-row query and hydrates the entity.
func (repository *repository) scanOne(context context.Context, query string, args ...any) (*Book, error) {
	book, err := scanBook(repository.pool.QueryRow(context, query, args...))
	if err != nil {
		return nil, dberr.Wrap(err, "Book")
	}
	return book, nil
}

// scanBook hydrates a Book from the canonical column order.
func scanBook(row pgx.Row) (*Book, error) {
	var book Book
	var metadata []byte

	err := row.Scan(&book.ID, &book.Title, &book.Author, &metadata, &book.CreatedAt, &book.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan book: %w", err)
	}

	if err := json.Unmarshal(metadata, &book.Kind); err != nil {
		return nil, fmt.Errorf("postgres: corrupt book metadata: %w", err)
	}

	return &book, nil
}
