// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package subscription

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
)

type fakeRepository struct {
	created []*Subscription
	deleted []string
	byUser  map[string][]*Subscription
}

func (fake *fakeRepository) Create(_ context.Context, subscription *Subscription) error {
	for _, existing := range fake.created {
		if existing.UserID == subscription.UserID && existing.BookID == subscription.BookID {
			return apperr.Conflict("Subscription already exists")
		}
	}
	fake.created = append(fake.created, subscription)
	return nil
}

func (fake *fakeRepository) Delete(_ context.Context, id string) error {
	fake.deleted = append(fake.deleted, id)
	return nil
}

func (fake *fakeRepository) ListByUser(_ context.Context, userID string) ([]*Subscription, error) {
	return fake.byUser[userID], nil
}

func (fake *fakeRepository) ListPending(context.Context) ([]*Pending, error) { return nil, nil }

func (fake *fakeRepository) AdvanceWatermark(context.Context, string, string) error { return nil }

func newTestService() (*Service, *fakeRepository) {
	repository := &fakeRepository{byUser: make(map[string][]*Subscription)}
	return NewService(repository, slog.New(slog.DiscardHandler)), repository
}

const testBookID = "0195e3a0-0000-7000-8000-000000000001"

func TestService_Subscribe(t *testing.T) {
	service, repository := newTestService()

	subscription, err := service.Subscribe(t.Context(), "user-1", testBookID, 3)
	require.NoError(t, err)

	assert.NotEmpty(t, subscription.ID)
	assert.Equal(t, "user-1", subscription.UserID)
	assert.Equal(t, testBookID, subscription.BookID)
	assert.Equal(t, 3, subscription.GroupingQuantity)
	assert.Len(t, repository.created, 1)
}

func TestService_Subscribe_DefaultGrouping(t *testing.T) {
	service, _ := newTestService()

	subscription, err := service.Subscribe(t.Context(), "user-1", testBookID, 0)
	require.NoError(t, err)

	// Zero means "every chapter as it arrives"
	assert.Equal(t, 1, subscription.GroupingQuantity)
}

func TestService_Subscribe_Validation(t *testing.T) {
	service, _ := newTestService()

	testCases := []struct {
		name     string
		userID   string
		bookID   string
		quantity int
	}{
		{name: "missing user", userID: "", bookID: testBookID, quantity: 1},
		{name: "missing book", userID: "user-1", bookID: "", quantity: 1},
		{name: "book id not a uuid", userID: "user-1", bookID: "not-a-uuid", quantity: 1},
		{name: "negative grouping", userID: "user-1", bookID: testBookID, quantity: -2},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			_, err := service.Subscribe(t.Context(), testCase.userID, testCase.bookID, testCase.quantity)

			require.Error(t, err)
			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, "VALIDATION_ERROR", appErr.Code)
		})
	}
}

func TestService_Subscribe_Duplicate(t *testing.T) {
	service, _ := newTestService()

	_, err := service.Subscribe(t.Context(), "user-1", testBookID, 1)
	require.NoError(t, err)

	_, err = service.Subscribe(t.Context(), "user-1", testBookID, 5)
	require.Error(t, err)
	assert.Equal(t, "CONFLICT", apperr.As(err).Code)
}

func TestService_Unsubscribe(t *testing.T) {
	service, repository := newTestService()

	require.NoError(t, service.Unsubscribe(t.Context(), "sub-1"))
	assert.Equal(t, []string{"sub-1"}, repository.deleted)
}

func TestService_ListForUser_RequiresUserID(t *testing.T) {
	service, _ := newTestService()

	_, err := service.ListForUser(t.Context(), "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_ERROR", apperr.As(err).Code)
}
