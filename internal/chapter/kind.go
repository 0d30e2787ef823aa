// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package chapter

import (
	"encoding/json"
	"fmt"

	"github.com/JordanSekky/cereal-convert/internal/book"
)

// Kind carries the provider-specific identity a chapter body is fetched by.
//
// # Wire Format
//
// Kind always marshals to a single-key tagged object in the 'metadata'
// column, e.g. {"Pale":{"url":"https://..."}}. The variant names mirror the
// book-level provider variants.
//
// Which payload field is meaningful depends on the variant:
//
//   - RoyalRoad: RoyalRoadID (numeric chapter id)
//   - Pale / APracticalGuideToEvil / TheWanderingInn: URL
//   - TheWanderingInnPatreon: URL plus optional Password
//   - TheDailyGrindPatreon: HTML (body arrives embedded in the email)
type Kind struct {
	Variant     string
	RoyalRoadID int64
	URL         string
	Password    *string
	HTML        string
}

// # Constructors

// RoyalRoadKind builds the Kind for a royalroad.com chapter id.
func RoyalRoadKind(id int64) Kind {
	return Kind{Variant: book.KindRoyalRoad, RoyalRoadID: id}
}

// URLKind builds a Kind for the wordpress-family variants.
func URLKind(variant, url string) Kind {
	return Kind{Variant: variant, URL: url}
}

// WanderingInnPatreonKind builds the Kind for a password-protected
// early-access chapter. password may be nil when the email carried none.
func WanderingInnPatreonKind(url string, password *string) Kind {
	return Kind{Variant: book.KindWanderingInnPatreon, URL: url, Password: password}
}

// DailyGrindPatreonKind builds the Kind for an embedded-body chapter.
func DailyGrindPatreonKind(html string) Kind {
	return Kind{Variant: book.KindDailyGrindPatreon, HTML: html}
}

// Equal reports whether two kinds identify the same chapter content.
// Passwords are compared by value, not by pointer.
func (k Kind) Equal(other Kind) bool {
	if k.Variant != other.Variant ||
		k.RoyalRoadID != other.RoyalRoadID ||
		k.URL != other.URL ||
		k.HTML != other.HTML {
		return false
	}
	switch {
	case k.Password == nil && other.Password == nil:
		return true
	case k.Password == nil || other.Password == nil:
		return false
	default:
		return *k.Password == *other.Password
	}
}

// # Wire Representation

type royalRoadPayload struct {
	ID int64 `json:"id"`
}

type urlPayload struct {
	URL string `json:"url"`
}

type passwordPayload struct {
	URL      string  `json:"url"`
	Password *string `json:"password,omitempty"`
}

type htmlPayload struct {
	HTML string `json:"html"`
}

// MarshalJSON renders the single-key tagged representation.
func (k Kind) MarshalJSON() ([]byte, error) {
	switch k.Variant {
	case book.KindRoyalRoad:
		return json.Marshal(map[string]royalRoadPayload{k.Variant: {ID: k.RoyalRoadID}})
	case book.KindPale, book.KindPracticalGuide, book.KindWanderingInn:
		return json.Marshal(map[string]urlPayload{k.Variant: {URL: k.URL}})
	case book.KindWanderingInnPatreon:
		return json.Marshal(map[string]passwordPayload{k.Variant: {URL: k.URL, Password: k.Password}})
	case book.KindDailyGrindPatreon:
		return json.Marshal(map[string]htmlPayload{k.Variant: {HTML: k.HTML}})
	default:
		return nil, fmt.Errorf("chapter: cannot marshal unknown kind %q", k.Variant)
	}
}

// UnmarshalJSON parses the single-key tagged representation.
func (k *Kind) UnmarshalJSON(data []byte) error {
	var tagged map[string]json.RawMessage
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("chapter: invalid kind document: %w", err)
	}
	if len(tagged) != 1 {
		return fmt.Errorf("chapter: kind document must have exactly one variant key")
	}

	for variant, raw := range tagged {
		switch variant {
		case book.KindRoyalRoad:
			var payload royalRoadPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("chapter: invalid %s payload: %w", variant, err)
			}
			*k = RoyalRoadKind(payload.ID)

		case book.KindPale, book.KindPracticalGuide, book.KindWanderingInn:
			var payload urlPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("chapter: invalid %s payload: %w", variant, err)
			}
			*k = URLKind(variant, payload.URL)

		case book.KindWanderingInnPatreon:
			var payload passwordPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("chapter: invalid %s payload: %w", variant, err)
			}
			*k = WanderingInnPatreonKind(payload.URL, payload.Password)

		case book.KindDailyGrindPatreon:
			var payload htmlPayload
			if err := json.Unmarshal(raw, &payload); err != nil {
				return fmt.Errorf("chapter: invalid %s payload: %w", variant, err)
			}
			*k = DailyGrindPatreonKind(payload.HTML)

		default:
			return fmt.Errorf("chapter: unknown kind %q", variant)
		}
	}

	return nil
}
