// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package chapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JordanSekky/cereal-convert/internal/platform/database/schema"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed chapter store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Since returns a book's chapters published strictly after the given instant.
*/
func (repository *repository) Since(context context.Context, bookID string, since time.Time) ([]*Chapter, error) {

	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1 AND %s > $2
		ORDER BY %s ASC
	`,
		schema.Chapters.ID, schema.Chapters.BookID, schema.Chapters.Name, schema.Chapters.Metadata,
		schema.Chapters.PublishedAt, schema.Chapters.CreatedAt, schema.Chapters.UpdatedAt,
		schema.Chapters.Table,
		schema.Chapters.BookID, schema.Chapters.PublishedAt,
		schema.Chapters.PublishedAt,
	)

	rows, err := repository.pool.Query(context, query, bookID, since)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapters: %w", err)
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, err
		}
		chapters = append(chapters, chapter)
	}

	return chapters, rows.Err()
}

/*
CreateBatch inserts chapters then bodies inside a single transaction.

Description: Uses Postgres batching (pipelining) within the transaction to
reduce round-trips when a feed delivers several chapters at once.
*/
func (repository *repository) CreateBatch(context context.Context, chapters []*Chapter, bodies []*Body) error {

	// Pre-condition verification
	if len(chapters) == 0 {
		return nil
	}
	if len(bodies) != len(chapters) {
		return fmt.Errorf("postgres: chapter/body count mismatch (%d vs %d)", len(chapters), len(bodies))
	}

	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(context) }()

	// Chapters first: bodies reference them.
	chapterInsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.Chapters.Table,
		schema.Chapters.ID, schema.Chapters.BookID, schema.Chapters.Name,
		schema.Chapters.Metadata, schema.Chapters.PublishedAt,
	)

	batch := &pgx.Batch{}
	for _, chapter := range chapters {
		metadata, err := json.Marshal(chapter.Kind)
		if err != nil {
			return fmt.Errorf("postgres: failed to encode chapter kind: %w", err)
		}
		batch.Queue(chapterInsert, chapter.ID, chapter.BookID, chapter.Name, metadata, chapter.PublishedAt)
	}

	bodyInsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5)
	`,
		schema.ChapterBodies.Table,
		schema.ChapterBodies.ID, schema.ChapterBodies.ChapterID, schema.ChapterBodies.Body,
		schema.ChapterBodies.MobiBucket, schema.ChapterBodies.MobiKey,
	)

	for _, body := range bodies {
		batch.Queue(bodyInsert, body.ID, body.ChapterID, body.HTML, body.MobiBucket, body.MobiKey)
	}

	// Send batch and verify every statement succeeded
	results := tx.SendBatch(context, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("postgres: failed to batch insert chapter row %d: %w", i, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("postgres: failed to close batch: %w", err)
	}

	if err := tx.Commit(context); err != nil {
		return fmt.Errorf("postgres: failed to commit chapter batch: %w", err)
	}

	return nil
}

/*
BodiesByChapterIDs returns bodies ordered by the owning chapter's
publication time.
*/
func (repository *repository) BodiesByChapterIDs(context context.Context, chapterIDs []string) ([]*Body, error) {

	if len(chapterIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`
		SELECT b.%s, b.%s, b.%s, b.%s, b.%s, b.%s
		FROM %s b
		JOIN %s c ON c.%s = b.%s
		WHERE b.%s = ANY($1)
		ORDER BY c.%s ASC
	`,
		schema.ChapterBodies.ID, schema.ChapterBodies.ChapterID, schema.ChapterBodies.Body,
		schema.ChapterBodies.MobiBucket, schema.ChapterBodies.MobiKey, schema.ChapterBodies.CreatedAt,
		schema.ChapterBodies.Table,
		schema.Chapters.Table, schema.Chapters.ID, schema.ChapterBodies.ChapterID,
		schema.ChapterBodies.ChapterID,
		schema.Chapters.PublishedAt,
	)

	rows, err := repository.pool.Query(context, query, chapterIDs)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapter bodies: %w", err)
	}
	defer rows.Close()

	var bodies []*Body
	for rows.Next() {
		var body Body
		err := rows.Scan(&body.ID, &body.ChapterID, &body.HTML, &body.MobiBucket, &body.MobiKey, &body.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan chapter body: %w", err)
		}
		bodies = append(bodies, &body)
	}

	return bodies, rows.Err()
}

// scanChapter hydrates a Chapter from the canonical column order.
func scanChapter(row pgx.Row) (*Chapter, error) {
	var chapter Chapter
	var metadata []byte

	err := row.Scan(
		&chapter.ID, &chapter.BookID, &chapter.Name, &metadata,
		&chapter.PublishedAt, &chapter.CreatedAt, &chapter.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to scan chapter: %w", err)
	}

	if err := json.Unmarshal(metadata, &chapter.Kind); err != nil {
		return nil, fmt.Errorf("postgres: corrupt chapter metadata: %w", err)
	}

	return &chapter, nil
}
