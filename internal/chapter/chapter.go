// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package chapter defines chapter entities and their storage contract.

Chapter metadata rows are written by the ingestion pipeline; each row has a
companion body row holding the extracted HTML and the object-store location
of the per-chapter converted ebook. The delivery scheduler reads both.
*/
package chapter

import "time"

// Chapter represents one released chapter of a tracked serial.
type Chapter struct {
	// ID is the UUID primary key.
	ID string `json:"id"`
	// BookID is the owning book.
	BookID string `json:"book_id"`
	// Name is the chapter title as published by the provider.
	Name string `json:"name"`
	// Kind carries the provider-specific retrieval identity.
	Kind Kind `json:"kind"`
	// PublishedAt is the upstream publication timestamp. It orders chapters
	// and drives the delivery watermark.
	PublishedAt time.Time `json:"published_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Body holds the fetched content of a chapter.
type Body struct {
	// ID is the UUID primary key.
	ID string `json:"id"`
	// ChapterID is the owning chapter.
	ChapterID string `json:"chapter_id"`
	// HTML is the extracted chapter body.
	HTML string `json:"-"`
	// MobiBucket and MobiKey locate the per-chapter converted ebook in
	// object storage.
	MobiBucket string `json:"mobi_bucket"`
	MobiKey    string `json:"mobi_key"`

	CreatedAt time.Time `json:"created_at"`
}

// Listing is a chapter as seen in a provider listing, before it has been
// persisted. Identity is (Name, Kind); PublishedAt positions it.
type Listing struct {
	Name        string
	Kind        Kind
	PublishedAt time.Time
}
