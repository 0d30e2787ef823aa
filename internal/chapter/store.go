// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package chapter

import (
	"context"
	"time"
)

// # Chapter & Body Data Access

// Repository defines the data access contract for chapters and their bodies.
type Repository interface {

	/*
		Since returns a book's chapters published after the given instant,
		ordered by publication time ascending. The ingestion pipeline diffs
		provider listings against these rows (zero time for all of them).

		Parameters:
		  - context: context.Context
		  - bookID: string (UUID)
		  - since: time.Time (Exclusive lower bound)

		Returns:
		  - []*Chapter: Chapters in the window
		  - error: Storage failures
	*/
	Since(context context.Context, bookID string, since time.Time) ([]*Chapter, error)

	/*
		CreateBatch persists new chapters and their bodies atomically.
		Chapters are inserted first, then bodies, inside one transaction, so
		a chapter is never visible without its body.

		Parameters:
		  - context: context.Context
		  - chapters: []*Chapter
		  - bodies: []*Body (Same length and order as chapters)

		Returns:
		  - error: Batch failure rolls the whole transaction back
	*/
	CreateBatch(context context.Context, chapters []*Chapter, bodies []*Body) error

	/*
		BodiesByChapterIDs returns the bodies for the given chapters, ordered
		by the owning chapter's publication time ascending.

		Parameters:
		  - context: context.Context
		  - chapterIDs: []string (UUIDs)

		Returns:
		  - []*Body: Ordered bodies
		  - error: Storage failures
	*/
	BodiesByChapterIDs(context context.Context, chapterIDs []string) ([]*Body, error)
}
