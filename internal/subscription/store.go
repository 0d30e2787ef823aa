// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package subscription

import "context"

// # Subscription Data Access

// Repository defines the data access contract for subscriptions.
type Repository interface {

	/*
		Create persists a new subscription.

		Parameters:
		  - context: context.Context
		  - subscription: *Subscription

		Returns:
		  - error: apperr.Conflict when the user already subscribes to the book
	*/
	Create(context context.Context, subscription *Subscription) error

	/*
		Delete removes a subscription by its ID.

		Returns:
		  - error: apperr.NotFound if no row was removed
	*/
	Delete(context context.Context, id string) error

	/*
		ListByUser returns a user's subscriptions with book titles attached.
	*/
	ListByUser(context context.Context, userID string) ([]*Subscription, error)

	/*
		ListPending returns one row per (subscription, undelivered chapter).

		A chapter is pending for a subscription when its publication time is
		strictly after the publication time of the watermark chapter. A nil
		watermark counts as the epoch, so every chapter of the book qualifies.

		Rows are ordered by subscription, then chapter publication time
		ascending.

		Returns:
		  - []*Pending: Pending pairs
		  - error: Storage failures
	*/
	ListPending(context context.Context) ([]*Pending, error)

	/*
		AdvanceWatermark moves a subscription's watermark to the given
		chapter. Called only after every enabled channel delivered.

		Returns:
		  - error: apperr.NotFound if the subscription vanished
	*/
	AdvanceWatermark(context context.Context, subscriptionID, chapterID string) error
}
