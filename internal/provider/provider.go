// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package provider implements chapter sourcing for every supported serial host.

A Provider answers two questions for a book of its kind: which chapters exist
upstream (ListChapters), and what is the body of one of them (FetchBody).
Listings are metadata-only and cheap; bodies are fetched lazily, one chapter
at a time, by the ingestion pipeline.

The Registry maps book kinds onto providers and resolves public URLs into
provider identities for book registration.
*/
package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
)

// Provider sources chapters for one serial host.
type Provider interface {

	/*
		ListChapters returns the chapters currently visible upstream for the
		given book, metadata only.

		Any malformed item (missing link, title, or publish date) fails the
		whole listing: a partial view would make the diff delete-blind.

		Returns:
		  - []chapter.Listing: Upstream chapters, unordered
		  - error: Fetch or parse failures
	*/
	ListChapters(context context.Context, book *book.Book) ([]chapter.Listing, error)

	/*
		FetchBody retrieves and extracts the HTML body of one chapter.

		Returns:
		  - string: Non-empty extracted HTML
		  - error: Fetch failures, or an empty extraction
	*/
	FetchBody(context context.Context, book *book.Book, chapter *chapter.Chapter) (string, error)
}

// # Registry

// Registry maps provider identities onto providers.
type Registry struct {
	providers map[string]Provider
	fetch     *fetcher
}

// NewRegistry wires every supported provider.
//
// # Parameters
//   - client: Shared HTTP client for feed and page fetches.
//   - mail: Inbound email bucket for the Patreon providers.
func NewRegistry(client *http.Client, mail *MailBucket) *Registry {
	fetch := newFetcher(client)

	registry := &Registry{
		fetch:     fetch,
		providers: make(map[string]Provider),
	}

	registry.providers[book.KindRoyalRoad] = &royalRoadProvider{fetch: fetch}
	registry.providers[book.KindPale] = newWordpressProvider(fetch, book.KindPale, paleFeedURL)
	registry.providers[book.KindPracticalGuide] = newWordpressProvider(fetch, book.KindPracticalGuide, practicalGuideFeedURL)
	registry.providers[book.KindWanderingInn] = newWordpressProvider(fetch, book.KindWanderingInn, wanderingInnFeedURL)
	registry.providers[book.KindWanderingInnPatreon] = &wanderingInnPatreonProvider{mail: mail, client: client}
	registry.providers[book.KindDailyGrindPatreon] = &dailyGrindPatreonProvider{mail: mail}

	return registry
}

// ProviderFor returns the provider responsible for a book kind.
func (registry *Registry) ProviderFor(kind book.Kind) (Provider, error) {
	provider, ok := registry.providers[kind.Variant]
	if !ok {
		return nil, fmt.Errorf("provider: no provider for kind %q", kind.Variant)
	}
	return provider, nil
}

// # URL Resolution

/*
ResolveURL parses a serial's public URL into its provider identity.

Description: Hostnames are matched exactly. RoyalRoad URLs must carry a
numeric fiction id as the second path segment. Patreon-fed serials use the
synthetic "patreon" scheme since they have no public chapter URL.

Returns:
  - book.Kind: The resolved identity
  - error: apperr.Unprocessable when no provider claims the URL
*/
func (registry *Registry) ResolveURL(rawURL string) (book.Kind, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return book.Kind{}, apperr.Unprocessable("Not a valid URL")
	}

	host := strings.ToLower(parsed.Hostname())

	// Patreon-fed serials use a synthetic scheme.
	if strings.EqualFold(parsed.Scheme, "patreon") {
		switch host {
		case "wanderinginn.com", "www.wanderinginn.com":
			return book.Kind{Variant: book.KindWanderingInnPatreon}, nil
		case "thedailygrind.com", "www.thedailygrind.com":
			return book.Kind{Variant: book.KindDailyGrindPatreon}, nil
		}
		return book.Kind{}, apperr.Unprocessable("Unknown patreon serial")
	}

	switch host {
	case "royalroad.com", "www.royalroad.com":
		id, ok := royalRoadFictionID(parsed.Path)
		if !ok {
			return book.Kind{}, apperr.Unprocessable("Not a royalroad fiction URL")
		}
		return book.RoyalRoadKind(id), nil

	case "palewebserial.wordpress.com":
		return book.Kind{Variant: book.KindPale}, nil

	case "practicalguidetoevil.wordpress.com":
		return book.Kind{Variant: book.KindPracticalGuide}, nil

	case "wanderinginn.com", "www.wanderinginn.com":
		return book.Kind{Variant: book.KindWanderingInn}, nil
	}

	return book.Kind{}, apperr.Unprocessable("No provider recognizes this URL")
}

// royalRoadFictionID extracts the fiction id from a /fiction/{id}[/slug] path.
func royalRoadFictionID(path string) (int64, bool) {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	if len(segments) < 2 || segments[0] != "fiction" {
		return 0, false
	}
	id, err := strconv.ParseInt(segments[1], 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// # Display Metadata

/*
BookMeta returns the display title and author for a provider identity.

Description: The wordpress-family serials are single known works with fixed
metadata. RoyalRoad fictions are scraped from the fiction page.
*/
func (registry *Registry) BookMeta(context context.Context, kind book.Kind) (string, string, error) {
	switch kind.Variant {
	case book.KindRoyalRoad:
		return registry.fetch.fictionMeta(context, kind.RoyalRoadID)
	case book.KindPale:
		return "Pale", "Wildbow", nil
	case book.KindPracticalGuide:
		return "A Practical Guide to Evil", "ErraticErrata", nil
	case book.KindWanderingInn, book.KindWanderingInnPatreon:
		return "The Wandering Inn", "pirateaba", nil
	case book.KindDailyGrindPatreon:
		return "The Daily Grind", "argusthecat", nil
	default:
		return "", "", fmt.Errorf("provider: no metadata source for kind %q", kind.Variant)
	}
}
