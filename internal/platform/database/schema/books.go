// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

// Package schema centralizes table and column identifiers so that SQL built
// in the repositories never hardcodes strings.
package schema

// BooksTable represents the 'books' table
type BooksTable struct {
	Table     string
	ID        string
	Title     string
	Author    string
	Metadata  string
	CreatedAt string
	UpdatedAt string
}

// Books is the schema definition for books
var Books = BooksTable{
	Table:     "books",
	ID:        "id",
	Title:     "title",
	Author:    "author",
	Metadata:  "metadata",
	CreatedAt: "createdat",
	UpdatedAt: "updatedat",
}

func (t BooksTable) Columns() []string {
	return []string{t.ID, t.Title, t.Author, t.Metadata, t.CreatedAt, t.UpdatedAt}
}
