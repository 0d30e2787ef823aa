// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package schema

// ChapterBodiesTable represents the 'chapterbodies' table
type ChapterBodiesTable struct {
	Table      string
	ID         string
	ChapterID  string
	Body       string
	MobiBucket string
	MobiKey    string
	CreatedAt  string
}

// ChapterBodies is the schema definition for chapterbodies
var ChapterBodies = ChapterBodiesTable{
	Table:      "chapterbodies",
	ID:         "id",
	ChapterID:  "chapterid",
	Body:       "body",
	MobiBucket: "mobibucket",
	MobiKey:    "mobikey",
	CreatedAt:  "createdat",
}

func (t ChapterBodiesTable) Columns() []string {
	return []string{t.ID, t.ChapterID, t.Body, t.MobiBucket, t.MobiKey, t.CreatedAt}
}
