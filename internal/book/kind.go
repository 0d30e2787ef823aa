// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package book

import (
	"encoding/json"
	"fmt"
)

// # Provider Variants

const (
	// KindRoyalRoad identifies a fiction hosted on royalroad.com. It is the
	// only variant that carries a payload (the numeric fiction id).
	KindRoyalRoad = "RoyalRoad"

	// KindPale identifies Wildbow's Pale on palewebserial.wordpress.com.
	KindPale = "Pale"

	// KindPracticalGuide identifies A Practical Guide to Evil on
	// practicalguidetoevil.wordpress.com.
	KindPracticalGuide = "APracticalGuideToEvil"

	// KindWanderingInn identifies The Wandering Inn public feed on
	// wanderinginn.com.
	KindWanderingInn = "TheWanderingInn"

	// KindWanderingInnPatreon identifies The Wandering Inn early-access
	// chapters delivered by Patreon email.
	KindWanderingInnPatreon = "TheWanderingInnPatreon"

	// KindDailyGrindPatreon identifies The Daily Grind chapters delivered
	// by Patreon email with the body embedded.
	KindDailyGrindPatreon = "TheDailyGrindPatreon"
)

// Variants lists every known provider variant.
var Variants = []string{
	KindRoyalRoad,
	KindPale,
	KindPracticalGuide,
	KindWanderingInn,
	KindWanderingInnPatreon,
	KindDailyGrindPatreon,
}

// Kind is the provider identity of a book.
//
// # Wire Format
//
// Kind marshals to the tagged JSON representation used in the 'metadata'
// column: payload-free variants are bare strings ("Pale"), while RoyalRoad
// carries its fiction id as {"RoyalRoad":{"id":12345}}.
//
// Kind is comparable; two books are the same serial exactly when their Kinds
// are equal.
type Kind struct {
	// Variant is one of the Kind* constants.
	Variant string
	// RoyalRoadID is the numeric fiction id. Only set for KindRoyalRoad.
	RoyalRoadID int64
}

// RoyalRoadKind builds the Kind for a royalroad.com fiction id.
func RoyalRoadKind(id int64) Kind {
	return Kind{Variant: KindRoyalRoad, RoyalRoadID: id}
}

// String returns the variant name.
func (k Kind) String() string { return k.Variant }

// IsValid reports whether the variant is one of the known providers.
func (k Kind) IsValid() bool {
	for _, v := range Variants {
		if k.Variant == v {
			return true
		}
	}
	return false
}

// royalRoadPayload is the JSON payload of the RoyalRoad variant.
type royalRoadPayload struct {
	ID int64 `json:"id"`
}

// MarshalJSON renders the tagged representation.
func (k Kind) MarshalJSON() ([]byte, error) {
	if !k.IsValid() {
		return nil, fmt.Errorf("book: cannot marshal unknown kind %q", k.Variant)
	}
	if k.Variant == KindRoyalRoad {
		return json.Marshal(map[string]royalRoadPayload{
			KindRoyalRoad: {ID: k.RoyalRoadID},
		})
	}
	return json.Marshal(k.Variant)
}

// UnmarshalJSON accepts both the bare-string and the tagged-object form.
func (k *Kind) UnmarshalJSON(data []byte) error {

	// 1. Payload-free variants are plain strings
	var variant string
	if err := json.Unmarshal(data, &variant); err == nil {
		parsed := Kind{Variant: variant}
		if !parsed.IsValid() || variant == KindRoyalRoad {
			return fmt.Errorf("book: unknown kind %q", variant)
		}
		*k = parsed
		return nil
	}

	// 2. Payload variants are single-key objects
	var tagged map[string]royalRoadPayload
	if err := json.Unmarshal(data, &tagged); err != nil {
		return fmt.Errorf("book: invalid kind document: %w", err)
	}
	payload, ok := tagged[KindRoyalRoad]
	if !ok || len(tagged) != 1 {
		return fmt.Errorf("book: invalid kind document")
	}

	*k = RoyalRoadKind(payload.ID)
	return nil
}
