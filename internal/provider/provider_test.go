// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
)

func TestRegistry_ResolveURL(t *testing.T) {
	registry := NewRegistry(http.DefaultClient, nil)

	testCases := []struct {
		name string
		url  string
		want book.Kind
	}{
		{
			name: "royalroad with slug",
			url:  "https://www.royalroad.com/fiction/21220/mother-of-learning",
			want: book.RoyalRoadKind(21220),
		},
		{
			name: "royalroad without slug",
			url:  "https://royalroad.com/fiction/12345",
			want: book.RoyalRoadKind(12345),
		},
		{
			name: "pale",
			url:  "https://palewebserial.wordpress.com/about/",
			want: book.Kind{Variant: book.KindPale},
		},
		{
			name: "practical guide",
			url:  "https://practicalguidetoevil.wordpress.com/",
			want: book.Kind{Variant: book.KindPracticalGuide},
		},
		{
			name: "wandering inn",
			url:  "https://wanderinginn.com/table-of-contents/",
			want: book.Kind{Variant: book.KindWanderingInn},
		},
		{
			name: "wandering inn patreon scheme",
			url:  "patreon://wanderinginn.com",
			want: book.Kind{Variant: book.KindWanderingInnPatreon},
		},
		{
			name: "daily grind patreon scheme",
			url:  "patreon://thedailygrind.com",
			want: book.Kind{Variant: book.KindDailyGrindPatreon},
		},
		{
			name: "surrounding whitespace",
			url:  "  https://wanderinginn.com/  ",
			want: book.Kind{Variant: book.KindWanderingInn},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			kind, err := registry.ResolveURL(testCase.url)

			require.NoError(t, err)
			assert.Equal(t, testCase.want, kind)
		})
	}
}

func TestRegistry_ResolveURL_Unrecognized(t *testing.T) {
	registry := NewRegistry(http.DefaultClient, nil)

	testCases := []struct {
		name string
		url  string
	}{
		{name: "unknown host", url: "https://example.com/fiction/1"},
		{name: "royalroad without fiction path", url: "https://www.royalroad.com/profile/1"},
		{name: "royalroad non-numeric id", url: "https://www.royalroad.com/fiction/abc"},
		{name: "unknown patreon serial", url: "patreon://example.com"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := registry.ResolveURL(testCase.url)

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "UNPROCESSABLE", appErr.Code)
		})
	}
}

func TestRegistry_ProviderFor(t *testing.T) {
	registry := NewRegistry(http.DefaultClient, nil)

	// 1. Every known variant has a provider
	for _, variant := range book.Variants {
		provider, err := registry.ProviderFor(book.Kind{Variant: variant})
		require.NoError(t, err, variant)
		assert.NotNil(t, provider, variant)
	}

	// 2. Unknown variants do not
	_, err := registry.ProviderFor(book.Kind{Variant: "Worm"})
	assert.Error(t, err)
}

func TestRegistry_BookMeta_FixedSerials(t *testing.T) {
	registry := NewRegistry(http.DefaultClient, nil)

	testCases := []struct {
		variant string
		title   string
		author  string
	}{
		{variant: book.KindPale, title: "Pale", author: "Wildbow"},
		{variant: book.KindPracticalGuide, title: "A Practical Guide to Evil", author: "ErraticErrata"},
		{variant: book.KindWanderingInn, title: "The Wandering Inn", author: "pirateaba"},
		{variant: book.KindWanderingInnPatreon, title: "The Wandering Inn", author: "pirateaba"},
		{variant: book.KindDailyGrindPatreon, title: "The Daily Grind", author: "argusthecat"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.variant, func(t *testing.T) {
			title, author, err := registry.BookMeta(t.Context(), book.Kind{Variant: testCase.variant})

			require.NoError(t, err)
			assert.Equal(t, testCase.title, title)
			assert.Equal(t, testCase.author, author)
		})
	}
}
