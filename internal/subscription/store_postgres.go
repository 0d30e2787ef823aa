// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package subscription

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
	"github.com/JordanSekky/cereal-convert/internal/platform/database/schema"
	"github.com/JordanSekky/cereal-convert/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed subscription store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Create persists a new subscription.
*/
func (repository *repository) Create(context context.Context, subscription *Subscription) error {

	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
	`,
		schema.Subscriptions.Table,
		schema.Subscriptions.ID, schema.Subscriptions.UserID,
		schema.Subscriptions.BookID, schema.Subscriptions.GroupingQuantity,
	)

	_, err := repository.pool.Exec(context, query,
		subscription.ID, subscription.UserID, subscription.BookID, subscription.GroupingQuantity,
	)
	return dberr.Wrap(err, "Subscription")
}

/*
Delete removes a subscription by its ID.
*/
func (repository *repository) Delete(context context.Context, id string) error {

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.Subscriptions.Table, schema.Subscriptions.ID)

	result, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return fmt.Errorf("postgres: failed to delete subscription: %w", err)
	}

	// Affected row verification
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Subscription")
	}

	return nil
}

/*
ListByUser returns a user's subscriptions joined with book titles.
*/
func (repository *repository) ListByUser(context context.Context, userID string) ([]*Subscription, error) {

	query := fmt.Sprintf(`
		SELECT s.%s, s.%s, s.%s, s.%s, s.%s, b.%s, s.%s, s.%s
		FROM %s s
		JOIN %s b ON b.%s = s.%s
		WHERE s.%s = $1
		ORDER BY s.%s ASC
	`,
		schema.Subscriptions.ID, schema.Subscriptions.UserID, schema.Subscriptions.BookID,
		schema.Subscriptions.GroupingQuantity, schema.Subscriptions.LastChapterID,
		schema.Books.Title,
		schema.Subscriptions.CreatedAt, schema.Subscriptions.UpdatedAt,
		schema.Subscriptions.Table,
		schema.Books.Table, schema.Books.ID, schema.Subscriptions.BookID,
		schema.Subscriptions.UserID,
		schema.Subscriptions.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, userID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list subscriptions: %w", err)
	}
	defer rows.Close()

	var subscriptions []*Subscription
	for rows.Next() {
		var subscription Subscription
		err := rows.Scan(
			&subscription.ID, &subscription.UserID, &subscription.BookID,
			&subscription.GroupingQuantity, &subscription.LastChapterID,
			&subscription.BookTitle,
			&subscription.CreatedAt, &subscription.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan subscription: %w", err)
		}
		subscriptions = append(subscriptions, &subscription)
	}

	return subscriptions, rows.Err()
}

/*
ListPending derives the pending set from the watermark.

Description: The watermark chapter's publication time is the cut; a nil
watermark coalesces to the epoch so every chapter qualifies. Joining on
publication time rather than the watermark id keeps the query correct even
when the watermark chapter itself was pruned.
*/
func (repository *repository) ListPending(context context.Context) ([]*Pending, error) {

	query := fmt.Sprintf(`
		SELECT
			s.%s, s.%s, s.%s, s.%s,
			b.%s, b.%s,
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s
		FROM %s s
		JOIN %s b ON b.%s = s.%s
		LEFT JOIN %s w ON w.%s = s.%s
		JOIN %s c ON c.%s = s.%s
			AND c.%s > COALESCE(w.%s, 'epoch'::timestamptz)
		ORDER BY s.%s, c.%s ASC
	`,
		schema.Subscriptions.ID, schema.Subscriptions.UserID, schema.Subscriptions.BookID,
		schema.Subscriptions.GroupingQuantity,
		schema.Books.Title, schema.Books.Author,
		schema.Chapters.ID, schema.Chapters.Name, schema.Chapters.Metadata,
		schema.Chapters.PublishedAt, schema.Chapters.CreatedAt, schema.Chapters.UpdatedAt,
		schema.Subscriptions.Table,
		schema.Books.Table, schema.Books.ID, schema.Subscriptions.BookID,
		schema.Chapters.Table, schema.Chapters.ID, schema.Subscriptions.LastChapterID,
		schema.Chapters.Table, schema.Chapters.BookID, schema.Subscriptions.BookID,
		schema.Chapters.PublishedAt, schema.Chapters.PublishedAt,
		schema.Subscriptions.ID, schema.Chapters.PublishedAt,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list pending deliveries: %w", err)
	}
	defer rows.Close()

	var pending []*Pending
	for rows.Next() {
		var row Pending
		var metadata []byte

		err := rows.Scan(
			&row.SubscriptionID, &row.UserID, &row.BookID, &row.GroupingQuantity,
			&row.BookTitle, &row.BookAuthor,
			&row.Chapter.ID, &row.Chapter.Name, &metadata,
			&row.Chapter.PublishedAt, &row.Chapter.CreatedAt, &row.Chapter.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan pending delivery: %w", err)
		}

		if err := json.Unmarshal(metadata, &row.Chapter.Kind); err != nil {
			return nil, fmt.Errorf("postgres: corrupt chapter metadata: %w", err)
		}
		row.Chapter.BookID = row.BookID

		pending = append(pending, &row)
	}

	return pending, rows.Err()
}

/*
AdvanceWatermark moves the watermark to the given chapter.
*/
func (repository *repository) AdvanceWatermark(context context.Context, subscriptionID, chapterID string) error {

	query := fmt.Sprintf(`
		UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2
	`,
		schema.Subscriptions.Table,
		schema.Subscriptions.LastChapterID, schema.Subscriptions.UpdatedAt,
		schema.Subscriptions.ID,
	)

	result, err := repository.pool.Exec(context, query, chapterID, subscriptionID)
	if err != nil {
		return fmt.Errorf("postgres: failed to advance watermark: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperr.NotFound("Subscription")
	}

	return nil
}
