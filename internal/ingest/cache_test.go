// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
)

func TestListingDigest(t *testing.T) {
	published := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	listing := chapter.Listing{
		Name:        "0.1",
		Kind:        chapter.URLKind(book.KindPale, "https://palewebserial.wordpress.com/0-1/"),
		PublishedAt: published,
	}

	// 1. Identical listings hash identically
	assert.Equal(t,
		listingDigest([]chapter.Listing{listing}),
		listingDigest([]chapter.Listing{listing}))

	// 2. Any field change moves the digest
	renamed := listing
	renamed.Name = "0.2"
	assert.NotEqual(t,
		listingDigest([]chapter.Listing{listing}),
		listingDigest([]chapter.Listing{renamed}))

	shifted := listing
	shifted.PublishedAt = published.Add(time.Minute)
	assert.NotEqual(t,
		listingDigest([]chapter.Listing{listing}),
		listingDigest([]chapter.Listing{shifted}))
}
