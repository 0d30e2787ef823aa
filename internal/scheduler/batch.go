// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package scheduler

import (
	"fmt"
	"strings"

	"github.com/JordanSekky/cereal-convert/internal/chapter"
	"github.com/JordanSekky/cereal-convert/internal/subscription"
)

// batch is one subscription's undelivered chapters, in publication order.
type batch struct {
	subscriptionID   string
	userID           string
	bookTitle        string
	bookAuthor       string
	groupingQuantity int
	chapters         []chapter.Chapter
}

// lastChapterID is the watermark candidate: the newest chapter in the batch.
func (b *batch) lastChapterID() string {
	return b.chapters[len(b.chapters)-1].ID
}

// groupPending folds the pending rows into per-subscription batches,
// preserving the store's (subscription, publication time) order.
func groupPending(pending []*subscription.Pending) []*batch {
	var (
		batches []*batch
		current *batch
	)

	for _, row := range pending {
		if current == nil || current.subscriptionID != row.SubscriptionID {
			current = &batch{
				subscriptionID:   row.SubscriptionID,
				userID:           row.UserID,
				bookTitle:        row.BookTitle,
				bookAuthor:       row.BookAuthor,
				groupingQuantity: row.GroupingQuantity,
			}
			batches = append(batches, current)
		}
		current.chapters = append(current.chapters, row.Chapter)
	}

	return batches
}

// # Message Building

// pushMessage is the notification text for a batch.
func (b *batch) pushMessage() string {
	if len(b.chapters) == 1 {
		return fmt.Sprintf("A new chapter of %s by %s has been released: %s",
			b.bookTitle, b.bookAuthor, b.chapters[0].Name)
	}
	return fmt.Sprintf("%d new chapters of %s by %s has been released: %s through %s",
		len(b.chapters), b.bookTitle, b.bookAuthor,
		b.chapters[0].Name, b.chapters[len(b.chapters)-1].Name)
}

// emailSubject is the subject line for a kindle delivery.
func (b *batch) emailSubject() string {
	if len(b.chapters) == 1 {
		return fmt.Sprintf("New Chapter of %s: %s", b.bookTitle, b.chapters[0].Name)
	}
	return fmt.Sprintf("%d New Chapters of %s: %s through %s",
		len(b.chapters), b.bookTitle, b.chapters[0].Name, b.chapters[len(b.chapters)-1].Name)
}

// ebookTitle is the title stamped on the delivered ebook.
func (b *batch) ebookTitle() string {
	if len(b.chapters) == 1 {
		return fmt.Sprintf("%s: %s", b.bookTitle, b.chapters[0].Name)
	}
	return fmt.Sprintf("%s: %s through %s",
		b.bookTitle, b.chapters[0].Name, b.chapters[len(b.chapters)-1].Name)
}

// combinedHTML stitches the batch's chapter bodies into one document, each
// chapter under its own heading.
func combinedHTML(chapters []chapter.Chapter, bodies []*chapter.Body) string {
	var builder strings.Builder
	for index, body := range bodies {
		fmt.Fprintf(&builder, "<h1>%s</h1>", chapters[index].Name)
		builder.WriteString(body.HTML)
	}
	return builder.String()
}
