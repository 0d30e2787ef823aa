// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package subscription defines a reader's interest in a tracked serial and the
delivery watermark attached to it.

LastChapterID is the watermark: the most recent chapter this subscriber has
been sent. There is no queue table — the set of pending chapters is always
derived by comparing publication times against the watermark chapter.
*/
package subscription

import (
	"time"

	"github.com/JordanSekky/cereal-convert/internal/chapter"
)

// Subscription links a user to a book they want delivered.
type Subscription struct {
	// ID is the UUID primary key.
	ID string `json:"id"`
	// UserID identifies the subscriber. Users are external identifiers; the
	// service carries no accounts of its own.
	UserID string `json:"user_id"`
	// BookID is the tracked serial.
	BookID string `json:"book_id"`
	// GroupingQuantity is the batch threshold: deliveries wait until at
	// least this many chapters are pending, then send them together.
	GroupingQuantity int `json:"grouping_quantity"`
	// LastChapterID is the delivery watermark. Nil means nothing has been
	// delivered yet and every chapter of the book is pending.
	LastChapterID *string `json:"last_chapter_id,omitempty"`

	// BookTitle is populated on list reads for display purposes.
	BookTitle string `json:"book_title,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pending is one (subscription, undelivered chapter) pair produced by the
// watermark query. The scheduler groups these rows per subscription.
type Pending struct {
	SubscriptionID   string
	UserID           string
	BookID           string
	GroupingQuantity int
	BookTitle        string
	BookAuthor       string
	Chapter          chapter.Chapter
}
