// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/antchfx/htmlquery"
	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"
	"golang.org/x/time/rate"

	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
)

// upstreamRate throttles all outbound provider traffic. The hosts we poll
// are fan-run wordpress blogs; one request every couple of seconds is plenty.
var upstreamRate = rate.Every(2 * time.Second)

// fetcher is the shared outbound HTTP layer for feed and page retrieval.
//
// # Concurrency
//
// Safe for concurrent use; the limiter serializes politeness across every
// provider sharing this fetcher.
type fetcher struct {
	client  *http.Client
	limiter *rate.Limiter
	parser  *gofeed.Parser
}

func newFetcher(client *http.Client) *fetcher {
	parser := gofeed.NewParser()
	parser.Client = client

	return &fetcher{
		client:  client,
		limiter: rate.NewLimiter(upstreamRate, 1),
		parser:  parser,
	}
}

// feed retrieves and parses an RSS/Atom feed.
func (fetcher *fetcher) feed(ctx context.Context, feedURL string) (*gofeed.Feed, error) {
	if err := fetcher.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, constants.ProviderFetchTimeout)
	defer cancel()

	feed, err := fetcher.parser.ParseURLWithContext(feedURL, fetchCtx)
	if err != nil {
		return nil, fmt.Errorf("provider: failed to fetch feed %s: %w", feedURL, err)
	}

	return feed, nil
}

// document retrieves a page and parses it into an HTML tree.
func (fetcher *fetcher) document(ctx context.Context, pageURL string) (*html.Node, error) {
	if err := fetcher.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, constants.ProviderFetchTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(fetchCtx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("provider: invalid page URL %s: %w", pageURL, err)
	}

	response, err := fetcher.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("provider: failed to fetch page %s: %w", pageURL, err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		return nil, apperr.UpstreamFailed(fmt.Sprintf("Upstream returned HTTP %d", response.StatusCode))
	}

	document, err := htmlquery.Parse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("provider: failed to parse page %s: %w", pageURL, err)
	}

	return document, nil
}
