// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package schema

// ChaptersTable represents the 'chapters' table
type ChaptersTable struct {
	Table       string
	ID          string
	BookID      string
	Name        string
	Metadata    string
	PublishedAt string
	CreatedAt   string
	UpdatedAt   string
}

// Chapters is the schema definition for chapters
var Chapters = ChaptersTable{
	Table:       "chapters",
	ID:          "id",
	BookID:      "bookid",
	Name:        "name",
	Metadata:    "metadata",
	PublishedAt: "publishedat",
	CreatedAt:   "createdat",
	UpdatedAt:   "updatedat",
}

func (t ChaptersTable) Columns() []string {
	return []string{t.ID, t.BookID, t.Name, t.Metadata, t.PublishedAt, t.CreatedAt, t.UpdatedAt}
}
