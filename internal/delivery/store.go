// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package delivery

import (
	"context"
	"time"
)

// # Delivery Method Data Access

// Repository defines the data access contract for delivery methods.
type Repository interface {

	/*
		Get returns a user's delivery method row.

		Returns:
		  - *Method: Hydrated configuration
		  - error: apperr.NotFound if the user has no row yet
	*/
	Get(context context.Context, userID string) (*Method, error)

	/*
		SetKindle upserts the kindle email for a user, resetting the channel
		to unverified/disabled and storing a fresh verification code.
	*/
	SetKindle(context context.Context, userID, email, code string, issuedAt time.Time) error

	/*
		ConfirmKindle marks the kindle channel verified and enabled, and
		clears the stored verification code fields.
	*/
	ConfirmKindle(context context.Context, userID string) error

	/*
		SetPushover upserts the pushover key for a user, resetting the
		channel to unverified/disabled and storing a fresh verification code.
	*/
	SetPushover(context context.Context, userID, key, code string, issuedAt time.Time) error

	/*
		ConfirmPushover marks the pushover channel verified and enabled, and
		clears the stored verification code fields.
	*/
	ConfirmPushover(context context.Context, userID string) error

	/*
		SetKindleEnabled toggles the kindle channel without touching its
		verification state.
	*/
	SetKindleEnabled(context context.Context, userID string, enabled bool) error

	/*
		SetPushoverEnabled toggles the pushover channel without touching its
		verification state.
	*/
	SetPushoverEnabled(context context.Context, userID string, enabled bool) error
}
