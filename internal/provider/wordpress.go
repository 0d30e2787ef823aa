// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"context"
	"fmt"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
)

// Feed locations for the wordpress-family serials.
const (
	paleFeedURL           = "https://palewebserial.wordpress.com/feed/"
	practicalGuideFeedURL = "https://practicalguidetoevil.wordpress.com/feed/"
	wanderingInnFeedURL   = "https://wanderinginn.com/feed/"
)

// wordpressProvider sources chapters from a wordpress RSS feed. Pale,
// A Practical Guide to Evil, and The Wandering Inn differ only in feed URL
// and variant name.
type wordpressProvider struct {
	fetch   *fetcher
	variant string
	feedURL string
}

func newWordpressProvider(fetch *fetcher, variant, feedURL string) *wordpressProvider {
	return &wordpressProvider{
		fetch:   fetch,
		variant: variant,
		feedURL: feedURL,
	}
}

/*
ListChapters reads the blog feed. Every item must carry a title, a link, and
a publish date; one malformed item fails the listing.
*/
func (provider *wordpressProvider) ListChapters(context context.Context, _ *book.Book) ([]chapter.Listing, error) {
	feed, err := provider.fetch.feed(context, provider.feedURL)
	if err != nil {
		return nil, err
	}

	listings := make([]chapter.Listing, 0, len(feed.Items))
	for index, item := range feed.Items {
		if item.Title == "" {
			return nil, fmt.Errorf("provider: %s feed item %d has no title", provider.variant, index)
		}
		if item.Link == "" {
			return nil, fmt.Errorf("provider: %s feed item %d has no link", provider.variant, index)
		}
		if item.PublishedParsed == nil {
			return nil, fmt.Errorf("provider: %s feed item %d has no publish date", provider.variant, index)
		}

		listings = append(listings, chapter.Listing{
			Name:        item.Title,
			Kind:        chapter.URLKind(provider.variant, item.Link),
			PublishedAt: *item.PublishedParsed,
		})
	}

	return listings, nil
}

/*
FetchBody retrieves the post and extracts the entry content.
*/
func (provider *wordpressProvider) FetchBody(context context.Context, _ *book.Book, chapter *chapter.Chapter) (string, error) {
	document, err := provider.fetch.document(context, chapter.Kind.URL)
	if err != nil {
		return "", err
	}

	return extractEntryContent(document)
}
