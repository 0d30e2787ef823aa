// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package ingest

import (
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
	"github.com/JordanSekky/cereal-convert/internal/provider"
	"github.com/JordanSekky/cereal-convert/internal/storage"
)

// # Fakes

type fakeBooks struct {
	books []*book.Book
	err   error
}

func (fake *fakeBooks) ListSubscribed(context.Context) ([]*book.Book, error) {
	return fake.books, fake.err
}

type fakeChapters struct {
	stored   []*chapter.Chapter
	bodies   []*chapter.Body
	batches  int
	batchErr error
}

func (fake *fakeChapters) Since(_ context.Context, bookID string, since time.Time) ([]*chapter.Chapter, error) {
	var matched []*chapter.Chapter
	for _, stored := range fake.stored {
		if stored.BookID == bookID && stored.PublishedAt.After(since) {
			matched = append(matched, stored)
		}
	}
	return matched, nil
}

func (fake *fakeChapters) CreateBatch(_ context.Context, chapters []*chapter.Chapter, bodies []*chapter.Body) error {
	if fake.batchErr != nil {
		return fake.batchErr
	}
	fake.batches++
	fake.stored = append(fake.stored, chapters...)
	fake.bodies = append(fake.bodies, bodies...)
	return nil
}

type fakeProvider struct {
	listings   []chapter.Listing
	listErr    error
	bodyErrFor string
	bodyCalls  int
}

func (fake *fakeProvider) ListChapters(context.Context, *book.Book) ([]chapter.Listing, error) {
	return fake.listings, fake.listErr
}

func (fake *fakeProvider) FetchBody(_ context.Context, _ *book.Book, target *chapter.Chapter) (string, error) {
	fake.bodyCalls++
	if target.Name == fake.bodyErrFor {
		return "", errors.New("upstream 503")
	}
	return "<p>" + target.Name + "</p>", nil
}

type fakeProviders struct {
	provider provider.Provider
}

func (fake *fakeProviders) ProviderFor(book.Kind) (provider.Provider, error) {
	return fake.provider, nil
}

type fakeBlobs struct {
	puts int
}

func (fake *fakeBlobs) Put(context.Context, []byte) (storage.Location, error) {
	fake.puts++
	return storage.Location{Bucket: "cereal-ebooks", Key: "blob.mobi"}, nil
}

type fakeConverter struct{}

func (fakeConverter) ConvertToMOBI(_ context.Context, title, _ string, _ []byte, _ string) ([]byte, error) {
	return []byte("mobi:" + title), nil
}

type fakeCache struct {
	digests map[string]string
}

func (fake *fakeCache) Digest(_ context.Context, bookID string) (string, error) {
	return fake.digests[bookID], nil
}

func (fake *fakeCache) SetDigest(_ context.Context, bookID, digest string) error {
	fake.digests[bookID] = digest
	return nil
}

func newTestPipeline(books *fakeBooks, chapters *fakeChapters, source provider.Provider,
	blobs *fakeBlobs, cache *fakeCache) *Pipeline {
	return NewPipeline(books, chapters, &fakeProviders{provider: source},
		blobs, fakeConverter{}, cache, slog.New(slog.DiscardHandler))
}

func paleBook() *book.Book {
	return &book.Book{
		ID:     "0195e3a0-0000-7000-8000-000000000001",
		Title:  "Pale",
		Author: "Wildbow",
		Kind:   book.Kind{Variant: book.KindPale},
	}
}

func paleListing(name string, published time.Time) chapter.Listing {
	return chapter.Listing{
		Name:        name,
		Kind:        chapter.URLKind(book.KindPale, "https://palewebserial.wordpress.com/"+name),
		PublishedAt: published,
	}
}

// # Scenarios

func TestPipeline_RunOnce_IngestsNewChapters(t *testing.T) {
	now := time.Now().UTC()
	source := &fakeProvider{listings: []chapter.Listing{
		paleListing("0.1", now.Add(-2*time.Hour)),
		paleListing("0.2", now.Add(-1*time.Hour)),
	}}
	chapters := &fakeChapters{}
	blobs := &fakeBlobs{}
	cache := &fakeCache{digests: make(map[string]string)}

	pipeline := newTestPipeline(&fakeBooks{books: []*book.Book{paleBook()}}, chapters, source, blobs, cache)

	require.NoError(t, pipeline.RunOnce(t.Context()))

	// 1. Both chapters are stored with bodies in one batch
	require.Len(t, chapters.stored, 2)
	require.Len(t, chapters.bodies, 2)
	assert.Equal(t, 1, chapters.batches)
	assert.Equal(t, "0.1", chapters.stored[0].Name)
	assert.Equal(t, chapters.stored[0].ID, chapters.bodies[0].ChapterID)

	// 2. Each body carries the extracted HTML and a blob location
	assert.Equal(t, "<p>0.1</p>", chapters.bodies[0].HTML)
	assert.Equal(t, "cereal-ebooks", chapters.bodies[0].MobiBucket)
	assert.Equal(t, 2, blobs.puts)

	// 3. The listing digest is cached after a clean sweep
	assert.NotEmpty(t, cache.digests[paleBook().ID])
}

func TestPipeline_RunOnce_NoDuplicatesOnRepeat(t *testing.T) {
	now := time.Now().UTC()
	source := &fakeProvider{listings: []chapter.Listing{
		paleListing("0.1", now.Add(-2*time.Hour)),
	}}
	chapters := &fakeChapters{}
	cache := &fakeCache{digests: make(map[string]string)}

	pipeline := newTestPipeline(&fakeBooks{books: []*book.Book{paleBook()}}, chapters, source, &fakeBlobs{}, cache)

	// 1. First sweep ingests, second sweep sees the same listing
	require.NoError(t, pipeline.RunOnce(t.Context()))
	require.NoError(t, pipeline.RunOnce(t.Context()))

	assert.Len(t, chapters.stored, 1)
	assert.Equal(t, 1, chapters.batches)

	// 2. The second sweep never re-fetched the body: the digest matched
	assert.Equal(t, 1, source.bodyCalls)
}

func TestPipeline_RunOnce_RenamedChapterIsNotReingested(t *testing.T) {
	now := time.Now().UTC()
	source := &fakeProvider{listings: []chapter.Listing{
		paleListing("0.1", now.Add(-2*time.Hour)),
	}}
	chapters := &fakeChapters{}
	cache := &fakeCache{digests: make(map[string]string)}

	pipeline := newTestPipeline(&fakeBooks{books: []*book.Book{paleBook()}}, chapters, source, &fakeBlobs{}, cache)
	require.NoError(t, pipeline.RunOnce(t.Context()))
	require.Len(t, chapters.stored, 1)

	// The feed retitles the chapter but its URL, the provider identity,
	// is unchanged. Nothing new to ingest.
	renamed := paleListing("0.1", now.Add(-2*time.Hour))
	renamed.Name = "0.1 (renamed)"
	source.listings = []chapter.Listing{renamed}
	require.NoError(t, pipeline.RunOnce(t.Context()))

	assert.Len(t, chapters.stored, 1)
	assert.Equal(t, "0.1", chapters.stored[0].Name)
	assert.Equal(t, 1, source.bodyCalls)
}

func TestPipeline_RunOnce_DigestChangeWithoutNewChapters(t *testing.T) {
	now := time.Now().UTC()
	source := &fakeProvider{listings: []chapter.Listing{
		paleListing("0.1", now.Add(-2*time.Hour)),
	}}
	chapters := &fakeChapters{}
	cache := &fakeCache{digests: make(map[string]string)}

	pipeline := newTestPipeline(&fakeBooks{books: []*book.Book{paleBook()}}, chapters, source, &fakeBlobs{}, cache)
	require.NoError(t, pipeline.RunOnce(t.Context()))

	// A rebuilt feed shifts publish times; the diff still finds nothing new.
	source.listings = []chapter.Listing{paleListing("0.1", now.Add(-90 * time.Minute))}
	require.NoError(t, pipeline.RunOnce(t.Context()))

	assert.Len(t, chapters.stored, 1)
	assert.Equal(t, 1, source.bodyCalls)
}

func TestPipeline_RunOnce_ListingFailureLeavesStoreUntouched(t *testing.T) {
	source := &fakeProvider{listErr: errors.New("feed 500")}
	chapters := &fakeChapters{}
	cache := &fakeCache{digests: make(map[string]string)}

	pipeline := newTestPipeline(&fakeBooks{books: []*book.Book{paleBook()}}, chapters, source, &fakeBlobs{}, cache)

	// 1. The sweep itself succeeds; the broken book is logged and skipped
	require.NoError(t, pipeline.RunOnce(t.Context()))

	// 2. Nothing was written
	assert.Empty(t, chapters.stored)
	assert.Empty(t, cache.digests)
}

func TestPipeline_RunOnce_BodyFailureDropsOnlyThatChapter(t *testing.T) {
	now := time.Now().UTC()
	source := &fakeProvider{
		listings: []chapter.Listing{
			paleListing("0.1", now.Add(-2*time.Hour)),
			paleListing("0.2", now.Add(-1*time.Hour)),
		},
		bodyErrFor: "0.1",
	}
	chapters := &fakeChapters{}
	cache := &fakeCache{digests: make(map[string]string)}

	pipeline := newTestPipeline(&fakeBooks{books: []*book.Book{paleBook()}}, chapters, source, &fakeBlobs{}, cache)

	require.NoError(t, pipeline.RunOnce(t.Context()))

	// 1. The healthy chapter still landed
	require.Len(t, chapters.stored, 1)
	assert.Equal(t, "0.2", chapters.stored[0].Name)

	// 2. The digest did not advance, so the dropped chapter retries next sweep
	assert.Empty(t, cache.digests)

	// 3. Next sweep picks up the recovered chapter without duplicating 0.2
	source.bodyErrFor = ""
	require.NoError(t, pipeline.RunOnce(t.Context()))
	assert.Len(t, chapters.stored, 2)
}
