// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"errors"
	"strings"

	"github.com/antchfx/htmlquery"
	"golang.org/x/net/html"
)

// ErrEmptyBody is returned when extraction produced no content. An empty
// body would convert into an empty ebook, so it always fails the chapter.
var ErrEmptyBody = errors.New("provider: extracted chapter body is empty")

// extractEntryContent pulls the chapter content out of a wordpress post.
//
// # Filtering
//
// The children of the entry-content div are kept except for the jetpack
// social footer (#jp-post-flair) and the inline navigation links whose text
// is "Next Chapter" / "Previous Chapter". The text must match exactly: a
// story paragraph that merely mentions the phrase is content, not navigation.
func extractEntryContent(document *html.Node) (string, error) {
	nodes := htmlquery.Find(document, "//div[contains(@class,'entry-content')]/*")

	var builder strings.Builder
	for _, node := range nodes {
		if htmlquery.SelectAttr(node, "id") == "jp-post-flair" {
			continue
		}

		text := strings.TrimSpace(htmlquery.InnerText(node))
		if text == "Next Chapter" || text == "Previous Chapter" {
			continue
		}

		builder.WriteString(htmlquery.OutputHTML(node, true))
	}

	body := builder.String()
	if strings.TrimSpace(body) == "" {
		return "", ErrEmptyBody
	}

	return body, nil
}

// extractChapterInner pulls the chapter content out of a royalroad chapter
// page (the div.chapter-inner container).
func extractChapterInner(document *html.Node) (string, error) {
	node := htmlquery.FindOne(document, "//div[contains(@class,'chapter-inner')]")
	if node == nil {
		return "", ErrEmptyBody
	}

	body := htmlquery.OutputHTML(node, true)
	if strings.TrimSpace(htmlquery.InnerText(node)) == "" {
		return "", ErrEmptyBody
	}

	return body, nil
}
