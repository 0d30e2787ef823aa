// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
)

const wanderingInnPasswordURL = "https://wanderinginn.com/wp-pass.php"

// wanderingInnPatreonProvider sources early-access chapters from pirateaba's
// Patreon announcement emails. Each email links one or more password-gated
// posts on wanderinginn.com; the password appears in the email body.
type wanderingInnPatreonProvider struct {
	mail   *MailBucket
	client *http.Client
}

/*
ListChapters scans the mail bucket for pirateaba announcements and extracts
the linked chapter posts.

Description: The password, when present, is the paragraph immediately
following the one containing the word "password". Every link in the body
paragraphs is a chapter post; its name is the last non-empty path segment of
the URL. Patreon-fed books have no upstream publish order beyond email
receipt, so each listing carries the email's receipt time.
*/
func (provider *wanderingInnPatreonProvider) ListChapters(context context.Context, _ *book.Book) ([]chapter.Listing, error) {
	emails, err := provider.mail.EmailsMatching(context, "pirateaba")
	if err != nil {
		return nil, err
	}

	var listings []chapter.Listing
	for _, email := range emails {
		document, err := htmlquery.Parse(strings.NewReader(email.HTML))
		if err != nil {
			return nil, fmt.Errorf("provider: failed to parse announcement email: %w", err)
		}

		password := announcementPassword(document)

		for _, link := range htmlquery.Find(document, "//div/p//a") {
			href := htmlquery.SelectAttr(link, "href")
			name := lastPathSegment(href)
			if name == "" {
				continue
			}

			listings = append(listings, chapter.Listing{
				Name:        name,
				Kind:        chapter.WanderingInnPatreonKind(href, password),
				PublishedAt: email.ReceivedAt,
			})
		}
	}

	return listings, nil
}

/*
FetchBody retrieves a password-gated post and extracts its entry content.

Description: Wordpress post passwords are session-scoped, so the fetch uses
a throwaway cookie jar: submit the password form, then request the post with
the granted cookie.
*/
func (provider *wanderingInnPatreonProvider) FetchBody(context context.Context, _ *book.Book, target *chapter.Chapter) (string, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return "", fmt.Errorf("provider: failed to create cookie jar: %w", err)
	}

	client := &http.Client{
		Transport: provider.client.Transport,
		Timeout:   provider.client.Timeout,
		Jar:       jar,
	}

	if target.Kind.Password != nil {
		if err := provider.submitPassword(context, client, *target.Kind.Password); err != nil {
			return "", err
		}
	}

	request, err := http.NewRequestWithContext(context, http.MethodGet, target.Kind.URL, nil)
	if err != nil {
		return "", fmt.Errorf("provider: invalid chapter URL %s: %w", target.Kind.URL, err)
	}

	response, err := client.Do(request)
	if err != nil {
		return "", fmt.Errorf("provider: failed to fetch chapter %s: %w", target.Kind.URL, err)
	}
	defer func() { _ = response.Body.Close() }()

	document, err := htmlquery.Parse(response.Body)
	if err != nil {
		return "", fmt.Errorf("provider: failed to parse chapter %s: %w", target.Kind.URL, err)
	}

	return extractEntryContent(document)
}

// submitPassword posts the wordpress password form, leaving the access
// cookie in the client's jar.
func (provider *wanderingInnPatreonProvider) submitPassword(context context.Context, client *http.Client, password string) error {
	form := url.Values{
		"post_password": {password},
		"Submit":        {"Enter"},
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost,
		wanderingInnPasswordURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("provider: failed to build password request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := client.Do(request)
	if err != nil {
		return fmt.Errorf("provider: failed to submit post password: %w", err)
	}
	_ = response.Body.Close()

	return nil
}

// announcementPassword finds the post password in an announcement email: the
// paragraph following the one that mentions "password". Returns nil when the
// announcement has no gated posts.
func announcementPassword(document *html.Node) *string {
	paragraphs := htmlquery.Find(document, "//div/p")
	for index, paragraph := range paragraphs {
		text := strings.ToLower(htmlquery.InnerText(paragraph))
		if !strings.Contains(text, "password") {
			continue
		}
		if index+1 >= len(paragraphs) {
			return nil
		}
		password := strings.TrimSpace(htmlquery.InnerText(paragraphs[index+1]))
		if password == "" {
			return nil
		}
		return &password
	}
	return nil
}

// lastPathSegment returns the final non-empty path segment of a URL.
func lastPathSegment(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for index := len(segments) - 1; index >= 0; index-- {
		if segments[index] != "" {
			return segments[index]
		}
	}
	return ""
}
