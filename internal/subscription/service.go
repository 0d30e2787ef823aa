// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package subscription

import (
	"context"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JordanSekky/cereal-convert/internal/platform/validate"
)

const (
	FieldUserID           = "user_id"
	FieldBookID           = "book_id"
	FieldGroupingQuantity = "grouping_quantity"
)

// # Service Layer

// Service orchestrates the business logic for subscriptions.
type Service struct {
	subscriptions Repository
	logger        *slog.Logger
}

// NewService constructs a new [Service] with its required repository.
func NewService(subscriptions Repository, logger *slog.Logger) *Service {
	return &Service{
		subscriptions: subscriptions,
		logger:        logger,
	}
}

// # Subscription Operations

/*
Subscribe creates a subscription for a user on a book.

Description: GroupingQuantity defaults to 1 (deliver every chapter as it
arrives). Values above 1 batch deliveries.

Parameters:
  - context: context.Context
  - userID: string (External subscriber identifier)
  - bookID: string (UUID)
  - groupingQuantity: int (0 means default)

Returns:
  - *Subscription: The created subscription
  - error: Validation, conflict, or persistence errors
*/
func (service *Service) Subscribe(context context.Context, userID, bookID string, groupingQuantity int) (*Subscription, error) {

	if groupingQuantity == 0 {
		groupingQuantity = 1
	}

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldUserID, userID)
	validator.Required(FieldBookID, bookID)
	validator.UUID(FieldBookID, bookID)
	validator.Custom(FieldGroupingQuantity, groupingQuantity < 1, "Must be at least 1")

	if err := validator.Err(); err != nil {
		return nil, err
	}

	subscription := &Subscription{
		ID:               newID(),
		UserID:           userID,
		BookID:           bookID,
		GroupingQuantity: groupingQuantity,
	}

	if err := service.subscriptions.Create(context, subscription); err != nil {
		return nil, err
	}

	service.logger.Info("subscription_created",
		slog.String("subscription_id", subscription.ID),
		slog.String("user_id", userID),
		slog.String("book_id", bookID),
		slog.Int("grouping_quantity", groupingQuantity),
	)

	return subscription, nil
}

/*
Unsubscribe removes a subscription by its ID.
*/
func (service *Service) Unsubscribe(context context.Context, id string) error {
	if err := service.subscriptions.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("subscription_deleted", slog.String("subscription_id", id))
	return nil
}

/*
ListForUser returns a user's subscriptions with book titles.
*/
func (service *Service) ListForUser(context context.Context, userID string) ([]*Subscription, error) {
	if userID == "" {
		return nil, validate.RequiredError(FieldUserID, "This field is required")
	}
	return service.subscriptions.ListByUser(context, userID)
}

// newID generates a time-sortable UUIDv7 primary key.
func newID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// entropy failure is an unrecoverable system-level error
		panic("subscription: failed to generate UUID: " + err.Error())
	}
	return id.String()
}
