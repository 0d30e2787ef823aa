// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
)

func rssServer(t *testing.T, items string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprintf(writer, `<?xml version="1.0" encoding="UTF-8"?>
			<rss version="2.0"><channel>
				<title>Pale</title>
				<link>https://palewebserial.wordpress.com</link>
				%s
			</channel></rss>`, items)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestWordpressProvider_ListChapters(t *testing.T) {
	server := rssServer(t, `
		<item>
			<title>Blood Run Cold - 0.0</title>
			<link>https://palewebserial.wordpress.com/2020/05/05/blood-run-cold-0-0/</link>
			<pubDate>Tue, 05 May 2020 04:00:00 +0000</pubDate>
		</item>
		<item>
			<title>Blood Run Cold - 0.1</title>
			<link>https://palewebserial.wordpress.com/2020/05/09/blood-run-cold-0-1/</link>
			<pubDate>Sat, 09 May 2020 04:00:00 +0000</pubDate>
		</item>`)

	provider := newWordpressProvider(newFetcher(server.Client()), book.KindPale, server.URL)

	listings, err := provider.ListChapters(t.Context(), &book.Book{Kind: book.Kind{Variant: book.KindPale}})
	require.NoError(t, err)
	require.Len(t, listings, 2)

	assert.Equal(t, "Blood Run Cold - 0.0", listings[0].Name)
	assert.Equal(t, chapter.URLKind(book.KindPale,
		"https://palewebserial.wordpress.com/2020/05/05/blood-run-cold-0-0/"), listings[0].Kind)
	assert.False(t, listings[0].PublishedAt.IsZero())
}

func TestWordpressProvider_ListChapters_MalformedItemFailsListing(t *testing.T) {
	server := rssServer(t, `
		<item>
			<title>Blood Run Cold - 0.0</title>
			<link>https://palewebserial.wordpress.com/2020/05/05/blood-run-cold-0-0/</link>
			<pubDate>Tue, 05 May 2020 04:00:00 +0000</pubDate>
		</item>
		<item>
			<title>Blood Run Cold - 0.1</title>
			<link>https://palewebserial.wordpress.com/2020/05/09/blood-run-cold-0-1/</link>
		</item>`)

	provider := newWordpressProvider(newFetcher(server.Client()), book.KindPale, server.URL)

	_, err := provider.ListChapters(t.Context(), &book.Book{Kind: book.Kind{Variant: book.KindPale}})
	assert.Error(t, err)
}

func TestWordpressProvider_FetchBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(writer, `<html><body><div class="entry-content">
			<p>The practice mattered.</p>
			<p><a href="/next">Next Chapter</a></p>
		</div></body></html>`)
	}))
	t.Cleanup(server.Close)

	provider := newWordpressProvider(newFetcher(server.Client()), book.KindPale, server.URL)

	body, err := provider.FetchBody(t.Context(), nil, &chapter.Chapter{
		Kind: chapter.URLKind(book.KindPale, server.URL+"/2020/05/05/blood-run-cold-0-0/"),
	})
	require.NoError(t, err)
	assert.Contains(t, body, "The practice mattered")
	assert.NotContains(t, body, "Next Chapter")
}

func TestWordpressProvider_FetchBody_UpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
		writer.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(server.Close)

	provider := newWordpressProvider(newFetcher(server.Client()), book.KindPale, server.URL)

	_, err := provider.FetchBody(t.Context(), nil, &chapter.Chapter{
		Kind: chapter.URLKind(book.KindPale, server.URL+"/post"),
	})
	require.Error(t, err)
	assert.Equal(t, "UPSTREAM_FAILED", apperr.As(err).Code)
}
