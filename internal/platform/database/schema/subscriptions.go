// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package schema

// SubscriptionsTable represents the 'subscriptions' table
type SubscriptionsTable struct {
	Table            string
	ID               string
	UserID           string
	BookID           string
	GroupingQuantity string
	LastChapterID    string
	CreatedAt        string
	UpdatedAt        string
}

// Subscriptions is the schema definition for subscriptions
var Subscriptions = SubscriptionsTable{
	Table:            "subscriptions",
	ID:               "id",
	UserID:           "userid",
	BookID:           "bookid",
	GroupingQuantity: "groupingquantity",
	LastChapterID:    "lastchapterid",
	CreatedAt:        "createdat",
	UpdatedAt:        "updatedat",
}

func (t SubscriptionsTable) Columns() []string {
	return []string{t.ID, t.UserID, t.BookID, t.GroupingQuantity, t.LastChapterID, t.CreatedAt, t.UpdatedAt}
}
