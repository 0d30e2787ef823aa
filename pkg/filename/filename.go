// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

// Package filename sanitizes arbitrary Unicode titles into safe attachment
// file names.
//
// # Usage
//
// Delivery emails attach the converted ebook as "<title>.mobi". Titles come
// from upstream feeds and can contain anything, so they are normalized and
// stripped of characters that mail clients or the Kindle refuse.
package filename

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	// multiSpace collapses runs of whitespace into a single space.
	multiSpace = regexp.MustCompile(`\s{2,}`)
)

// From converts an arbitrary Unicode title into a safe ASCII file name stem.
//
// # Transformation Pipeline
//
// 1. Normalizes to NFD (decomposes accented chars: é → e + combining acute).
// 2. Removes combining marks (accents).
// 3. Replaces characters outside [A-Za-z0-9 ._-] with spaces.
// 4. Collapses whitespace and trims.
func From(s string) string {
	// 1. Normalize and remove accents
	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn))
	result, _, _ := transform.String(t, s)

	// 2. Drop anything a mail client or device filesystem could choke on
	result = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '_' || r == '-':
			return r
		default:
			return ' '
		}
	}, result)

	// 3. Clean up spacing
	result = multiSpace.ReplaceAllString(result, " ")
	result = strings.TrimSpace(result)

	if result == "" {
		return "chapter"
	}
	return result
}

// isMn reports whether r is a Unicode non-spacing mark (e.g., accents).
func isMn(r rune) bool {
	return unicode.Is(unicode.Mn, r)
}
