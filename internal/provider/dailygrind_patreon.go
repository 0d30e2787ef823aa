// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"context"
	"fmt"
	"strings"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
)

// dailyGrindPatreonProvider sources chapters from argusthecat's Patreon
// emails. Unlike the other providers the chapter body arrives embedded in
// the email itself, so listing and body travel together in the kind.
type dailyGrindPatreonProvider struct {
	mail *MailBucket
}

/*
ListChapters scans the mail bucket for Daily Grind announcements.

Description: The chapter name is the quoted title in the email subject
(`New "Chapter Name" post`); a subject without a quoted title fails the
listing. The email's HTML body is carried in the kind as the chapter body.
*/
func (provider *dailyGrindPatreonProvider) ListChapters(context context.Context, _ *book.Book) ([]chapter.Listing, error) {
	emails, err := provider.mail.EmailsMatching(context, "daily grind")
	if err != nil {
		return nil, err
	}

	listings := make([]chapter.Listing, 0, len(emails))
	for _, email := range emails {
		name, err := dailyGrindChapterName(email.Subject)
		if err != nil {
			return nil, err
		}

		listings = append(listings, chapter.Listing{
			Name:        name,
			Kind:        chapter.DailyGrindPatreonKind(email.HTML),
			PublishedAt: email.ReceivedAt,
		})
	}

	return listings, nil
}

/*
FetchBody assembles the chapter body from the embedded email HTML, prefixed
with a title heading since the email body carries none.
*/
func (provider *dailyGrindPatreonProvider) FetchBody(_ context.Context, book *book.Book, chapter *chapter.Chapter) (string, error) {
	if strings.TrimSpace(chapter.Kind.HTML) == "" {
		return "", ErrEmptyBody
	}
	return fmt.Sprintf("<h1>%s: %s</h1>%s", book.Title, chapter.Name, chapter.Kind.HTML), nil
}

// dailyGrindChapterName extracts the quoted chapter title from an email
// subject.
func dailyGrindChapterName(subject string) (string, error) {
	parts := strings.SplitN(subject, `"`, 3)
	if len(parts) < 3 || strings.TrimSpace(parts[1]) == "" {
		return "", fmt.Errorf("provider: daily grind subject %q has no quoted title", subject)
	}
	return parts[1], nil
}
