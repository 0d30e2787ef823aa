// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package ingest implements the chapter ingestion pipeline.

Every tick the pipeline polls the provider of each subscribed book, diffs
the upstream listing against stored chapters, and persists whatever is new
together with a converted ebook body. Delivery never touches providers; by
the time the scheduler sees a chapter, its body is already in object
storage.
*/
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
	"github.com/JordanSekky/cereal-convert/internal/provider"
	"github.com/JordanSekky/cereal-convert/internal/storage"
)

// ingestConcurrency bounds how many books are polled at once.
const ingestConcurrency = 4

// # Dependencies

// BookLister supplies the books worth polling.
type BookLister interface {
	ListSubscribed(context context.Context) ([]*book.Book, error)
}

// ChapterStore is the slice of the chapter repository the pipeline needs.
type ChapterStore interface {
	Since(context context.Context, bookID string, since time.Time) ([]*chapter.Chapter, error)
	CreateBatch(context context.Context, chapters []*chapter.Chapter, bodies []*chapter.Body) error
}

// Providers resolves a book kind to its chapter source.
type Providers interface {
	ProviderFor(kind book.Kind) (provider.Provider, error)
}

// BlobStore persists converted ebook blobs.
type BlobStore interface {
	Put(context context.Context, data []byte) (storage.Location, error)
}

// Converter renders chapter HTML into a MOBI.
type Converter interface {
	ConvertToMOBI(context context.Context, title, author string, content []byte, ext string) ([]byte, error)
}

// ListingCache remembers a digest of the last listing seen per book, so
// unchanged feeds are skipped without hitting the database.
type ListingCache interface {
	Digest(context context.Context, bookID string) (string, error)
	SetDigest(context context.Context, bookID, digest string) error
}

// # Pipeline

// Pipeline polls providers and persists new chapters.
type Pipeline struct {
	books     BookLister
	chapters  ChapterStore
	providers Providers
	blobs     BlobStore
	converter Converter
	cache     ListingCache
	logger    *slog.Logger
}

// NewPipeline constructs a new [Pipeline] with its required dependencies.
func NewPipeline(books BookLister, chapters ChapterStore, providers Providers,
	blobs BlobStore, converter Converter, cache ListingCache, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		books:     books,
		chapters:  chapters,
		providers: providers,
		blobs:     blobs,
		converter: converter,
		cache:     cache,
		logger:    logger,
	}
}

/*
Run polls on a fixed interval until the context is cancelled.

Description: A slow poll simply delays the next one; missed ticks are
dropped, never queued. Errors from a single run are logged, not fatal, so
one bad upstream cannot stop ingestion for everyone.

Returns:
  - error: The context's error on shutdown
*/
func (pipeline *Pipeline) Run(context context.Context) error {
	ticker := time.NewTicker(constants.IngestInterval)
	defer ticker.Stop()

	for {
		if err := pipeline.RunOnce(context); err != nil {
			pipeline.logger.Error("ingest_run_failed", slog.String("error", err.Error()))
		}

		select {
		case <-context.Done():
			return context.Err()
		case <-ticker.C:
		}
	}
}

/*
RunOnce performs a single ingestion sweep over every subscribed book.

Description: Books are polled concurrently, a few at a time. A failing book
is logged and skipped; it never aborts the sweep.
*/
func (pipeline *Pipeline) RunOnce(context context.Context) error {
	books, err := pipeline.books.ListSubscribed(context)
	if err != nil {
		return fmt.Errorf("ingest: failed to list subscribed books: %w", err)
	}

	group, groupCtx := errgroup.WithContext(context)
	group.SetLimit(ingestConcurrency)

	for _, target := range books {
		group.Go(func() error {
			if err := pipeline.ingestBook(groupCtx, target); err != nil {
				pipeline.logger.Error("ingest_book_failed",
					slog.String("book_id", target.ID),
					slog.String("book_title", target.Title),
					slog.String("error", err.Error()),
				)
			}
			return nil
		})
	}

	return group.Wait()
}

// ingestBook polls one book's provider and persists whatever is new.
func (pipeline *Pipeline) ingestBook(ctx context.Context, target *book.Book) error {
	source, err := pipeline.providers.ProviderFor(target.Kind)
	if err != nil {
		return err
	}

	listings, err := source.ListChapters(ctx, target)
	if err != nil {
		return err
	}
	if len(listings) == 0 {
		return nil
	}

	// Unchanged listings are the common case; skip them on the digest alone.
	digest := listingDigest(listings)
	if cached, err := pipeline.cache.Digest(ctx, target.ID); err == nil && cached == digest {
		return nil
	}

	fresh, err := pipeline.newListings(ctx, target.ID, listings)
	if err != nil {
		return err
	}

	chapters, bodies, dropped := pipeline.fetchChapters(ctx, target, source, fresh)
	if len(chapters) > 0 {
		if err := pipeline.chapters.CreateBatch(ctx, chapters, bodies); err != nil {
			return err
		}
		pipeline.logger.Info("chapters_ingested",
			slog.String("book_id", target.ID),
			slog.String("book_title", target.Title),
			slog.Int("count", len(chapters)),
		)
	}

	// A dropped chapter must be retried next sweep, so the digest only
	// advances on a clean run.
	if dropped == 0 {
		if err := pipeline.cache.SetDigest(ctx, target.ID, digest); err != nil {
			pipeline.logger.Warn("ingest_cache_write_failed",
				slog.String("book_id", target.ID),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// newListings filters a provider listing down to chapters the store has not
// seen. Identity is the provider kind alone: names get retitled and publish
// times shift when feeds rebuild, so neither participates, and the diff runs
// against the book's full chapter list.
func (pipeline *Pipeline) newListings(ctx context.Context, bookID string, listings []chapter.Listing) ([]chapter.Listing, error) {
	existing, err := pipeline.chapters.Since(ctx, bookID, time.Time{})
	if err != nil {
		return nil, err
	}

	var fresh []chapter.Listing
	for _, listing := range listings {
		known := false
		for _, stored := range existing {
			if stored.Kind.Equal(listing.Kind) {
				known = true
				break
			}
		}
		if !known {
			fresh = append(fresh, listing)
		}
	}

	return fresh, nil
}

// fetchChapters retrieves, converts, and stores the body of each new
// listing. A failing chapter is dropped from this sweep; the rest proceed.
func (pipeline *Pipeline) fetchChapters(ctx context.Context, target *book.Book,
	source provider.Provider, fresh []chapter.Listing) ([]*chapter.Chapter, []*chapter.Body, int) {

	var (
		chapters []*chapter.Chapter
		bodies   []*chapter.Body
		dropped  int
	)

	for _, listing := range fresh {
		record := &chapter.Chapter{
			ID:          newID(),
			BookID:      target.ID,
			Name:        listing.Name,
			Kind:        listing.Kind,
			PublishedAt: listing.PublishedAt,
		}

		body, err := pipeline.fetchBody(ctx, target, source, record)
		if err != nil {
			dropped++
			pipeline.logger.Warn("chapter_body_failed",
				slog.String("book_id", target.ID),
				slog.String("chapter_name", listing.Name),
				slog.String("error", err.Error()),
			)
			continue
		}

		chapters = append(chapters, record)
		bodies = append(bodies, body)
	}

	return chapters, bodies, dropped
}

// fetchBody pulls one chapter's HTML, converts it, and stores the ebook.
func (pipeline *Pipeline) fetchBody(ctx context.Context, target *book.Book,
	source provider.Provider, record *chapter.Chapter) (*chapter.Body, error) {

	html, err := source.FetchBody(ctx, target, record)
	if err != nil {
		return nil, err
	}

	mobi, err := pipeline.converter.ConvertToMOBI(ctx,
		fmt.Sprintf("%s: %s", target.Title, record.Name), target.Author, []byte(html), ".html")
	if err != nil {
		return nil, err
	}

	location, err := pipeline.blobs.Put(ctx, mobi)
	if err != nil {
		return nil, err
	}

	return &chapter.Body{
		ID:         newID(),
		ChapterID:  record.ID,
		HTML:       html,
		MobiBucket: location.Bucket,
		MobiKey:    location.Key,
	}, nil
}

func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		panic(fmt.Sprintf("ingest: failed to generate uuid: %v", err))
	}
	return id.String()
}
