// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package book defines the tracked-serial domain entity and its storage contract.

A Book is one web serial being watched for new chapters. Its Kind carries the
provider identity (which site, and which fiction on that site), stored as a
tagged JSON document so that two books can never silently point at the same
upstream serial.
*/
package book

import "time"

// Book represents a single tracked web serial.
type Book struct {
	// ID is the UUID primary key.
	ID string `json:"id"`
	// Title is the display title used in notifications and ebook metadata.
	Title string `json:"title"`
	// Author is the display author used in notifications and ebook metadata.
	Author string `json:"author"`
	// Kind is the provider identity of this serial.
	Kind Kind `json:"kind"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
