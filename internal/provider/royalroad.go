// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/mmcdole/gofeed"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
)

const (
	royalRoadFeedURL        = "https://www.royalroad.com/syndication/%d"
	royalRoadChapterPageURL = "https://www.royalroad.com/fiction/chapter/%d"
	royalRoadFictionPageURL = "https://www.royalroad.com/fiction/%d"
)

// royalRoadProvider sources chapters from a royalroad fiction's syndication
// feed and its chapter pages.
type royalRoadProvider struct {
	fetch *fetcher
}

/*
ListChapters reads the fiction's syndication feed.

Description: Feed item titles arrive prefixed with the fiction title
("<fiction> - <chapter>"); the prefix is stripped so chapter names read
naturally. The chapter id is the last path segment of the item link. A
malformed item fails the whole listing.
*/
func (provider *royalRoadProvider) ListChapters(context context.Context, book *book.Book) ([]chapter.Listing, error) {
	feed, err := provider.fetch.feed(context, fmt.Sprintf(royalRoadFeedURL, book.Kind.RoyalRoadID))
	if err != nil {
		return nil, err
	}

	listings := make([]chapter.Listing, 0, len(feed.Items))
	for index, item := range feed.Items {
		listing, err := royalRoadListing(feed.Title, item)
		if err != nil {
			return nil, fmt.Errorf("provider: royalroad feed item %d: %w", index, err)
		}
		listings = append(listings, listing)
	}

	return listings, nil
}

// royalRoadListing maps one syndication feed item onto a chapter listing.
func royalRoadListing(feedTitle string, item *gofeed.Item) (chapter.Listing, error) {
	if item.PublishedParsed == nil {
		return chapter.Listing{}, fmt.Errorf("item %q has no publish date", item.Title)
	}

	id, err := royalRoadChapterID(item.Link)
	if err != nil {
		return chapter.Listing{}, err
	}

	name := strings.TrimPrefix(item.Title, feedTitle+" - ")
	if name == "" {
		return chapter.Listing{}, fmt.Errorf("item with link %q has no title", item.Link)
	}

	return chapter.Listing{
		Name:        name,
		Kind:        chapter.RoyalRoadKind(id),
		PublishedAt: *item.PublishedParsed,
	}, nil
}

/*
FetchBody retrieves the chapter page and extracts the chapter-inner content.
*/
func (provider *royalRoadProvider) FetchBody(context context.Context, _ *book.Book, chapter *chapter.Chapter) (string, error) {
	document, err := provider.fetch.document(context, fmt.Sprintf(royalRoadChapterPageURL, chapter.Kind.RoyalRoadID))
	if err != nil {
		return "", err
	}

	return extractChapterInner(document)
}

// royalRoadChapterID extracts the numeric chapter id from the last path
// segment of a feed item link.
func royalRoadChapterID(link string) (int64, error) {
	trimmed := strings.Trim(link, "/")
	segments := strings.Split(trimmed, "/")
	last := segments[len(segments)-1]

	id, err := strconv.ParseInt(last, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("link %q has no chapter id", link)
	}
	return id, nil
}

// fictionMeta scrapes the title and author off a fiction's landing page.
func (fetcher *fetcher) fictionMeta(ctx context.Context, fictionID int64) (string, string, error) {
	document, err := fetcher.document(ctx, fmt.Sprintf(royalRoadFictionPageURL, fictionID))
	if err != nil {
		return "", "", err
	}

	titleNode := htmlquery.FindOne(document, "//div[contains(@class,'fic-title')]//h1")
	authorNode := htmlquery.FindOne(document, "//div[contains(@class,'fic-title')]//h4//a")
	if titleNode == nil || authorNode == nil {
		return "", "", fmt.Errorf("provider: fiction %d page has no title block", fictionID)
	}

	title := strings.TrimSpace(htmlquery.InnerText(titleNode))
	author := strings.TrimSpace(htmlquery.InnerText(authorNode))
	if title == "" || author == "" {
		return "", "", fmt.Errorf("provider: fiction %d page has empty title or author", fictionID)
	}

	return title, author, nil
}
