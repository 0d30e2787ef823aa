// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordanSekky/cereal-convert/internal/chapter"
)

func TestRoyalRoadListing(t *testing.T) {
	published := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	listing, err := royalRoadListing("Mother of Learning", &gofeed.Item{
		Title:           "Mother of Learning - 1. Good Morning Brother",
		Link:            "https://www.royalroad.com/fiction/21220/mother-of-learning/chapter/301778",
		PublishedParsed: &published,
	})
	require.NoError(t, err)

	// 1. The feed-title prefix is stripped from the chapter name
	assert.Equal(t, "1. Good Morning Brother", listing.Name)

	// 2. The chapter id comes from the last link segment
	assert.Equal(t, chapter.RoyalRoadKind(301778), listing.Kind)
	assert.Equal(t, published, listing.PublishedAt)
}

func TestRoyalRoadListing_Malformed(t *testing.T) {
	published := time.Now()

	testCases := []struct {
		name string
		item gofeed.Item
	}{
		{
			name: "missing publish date",
			item: gofeed.Item{
				Title: "Book - Chapter 1",
				Link:  "https://www.royalroad.com/fiction/1/book/chapter/2",
			},
		},
		{
			name: "non-numeric chapter id",
			item: gofeed.Item{
				Title:           "Book - Chapter 1",
				Link:            "https://www.royalroad.com/fiction/1/book/chapter/latest",
				PublishedParsed: &published,
			},
		},
		{
			name: "empty title",
			item: gofeed.Item{
				Title:           "Book - ",
				Link:            "https://www.royalroad.com/fiction/1/book/chapter/2",
				PublishedParsed: &published,
			},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := royalRoadListing("Book", &testCase.item)
			assert.Error(t, err)
		})
	}
}

func TestRoyalRoadChapterID(t *testing.T) {
	// 1. Trailing slash is tolerated
	id, err := royalRoadChapterID("https://www.royalroad.com/fiction/1/b/chapter/42/")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	// 2. Negative and zero ids are rejected
	_, err = royalRoadChapterID("https://www.royalroad.com/fiction/1/b/chapter/0")
	assert.Error(t, err)
}
