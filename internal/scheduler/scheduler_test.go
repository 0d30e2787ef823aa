// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JordanSekky/cereal-convert/internal/chapter"
	"github.com/JordanSekky/cereal-convert/internal/delivery"
	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
	"github.com/JordanSekky/cereal-convert/internal/storage"
	"github.com/JordanSekky/cereal-convert/internal/subscription"
)

// # Fakes

type fakeSubscriptions struct {
	pending  []*subscription.Pending
	advanced map[string]string
}

func (fake *fakeSubscriptions) ListPending(context.Context) ([]*subscription.Pending, error) {
	return fake.pending, nil
}

func (fake *fakeSubscriptions) AdvanceWatermark(_ context.Context, subscriptionID, chapterID string) error {
	fake.advanced[subscriptionID] = chapterID
	return nil
}

type fakeMethods struct {
	methods map[string]*delivery.Method
}

func (fake *fakeMethods) Get(_ context.Context, userID string) (*delivery.Method, error) {
	method, ok := fake.methods[userID]
	if !ok {
		return nil, apperr.NotFound("Delivery method")
	}
	return method, nil
}

type fakeBodies struct {
	bodies   map[string]*chapter.Body
	reversed bool
}

func (fake *fakeBodies) BodiesByChapterIDs(_ context.Context, chapterIDs []string) ([]*chapter.Body, error) {
	var matched []*chapter.Body
	for _, id := range chapterIDs {
		if body, ok := fake.bodies[id]; ok {
			matched = append(matched, body)
		}
	}
	if fake.reversed {
		slices.Reverse(matched)
	}
	return matched, nil
}

type fakeBlobs struct {
	blobs   map[string][]byte
	fetches int
}

func (fake *fakeBlobs) Fetch(_ context.Context, location storage.Location) ([]byte, error) {
	fake.fetches++
	return fake.blobs[location.Key], nil
}

type fakeConverter struct {
	calls   int
	title   string
	content string
}

func (fake *fakeConverter) ConvertToMOBI(_ context.Context, title, _ string, content []byte, _ string) ([]byte, error) {
	fake.calls++
	fake.title = title
	fake.content = string(content)
	return []byte("mobi:" + title), nil
}

type fakeEmailer struct {
	to       string
	subject  string
	filename string
	sent     int
}

func (fake *fakeEmailer) SendMOBI(_ context.Context, to, subject, filename string, _ []byte) error {
	fake.sent++
	fake.to = to
	fake.subject = subject
	fake.filename = filename
	return nil
}

type fakePusher struct {
	messages []string
	err      error
}

func (fake *fakePusher) Push(_ context.Context, _ string, message string) error {
	if fake.err != nil {
		return fake.err
	}
	fake.messages = append(fake.messages, message)
	return nil
}

// # Fixtures

func strPtr(value string) *string { return &value }

func activeMethod(userID string) *delivery.Method {
	return &delivery.Method{
		UserID:              userID,
		KindleEmail:         strPtr(userID + "@kindle.com"),
		KindleEmailVerified: true,
		KindleEmailEnabled:  true,
		PushoverKey:         strPtr("po-" + userID),
		PushoverKeyVerified: true,
		PushoverEnabled:     true,
	}
}

func pendingRow(subscriptionID, userID, chapterID, chapterName string, quantity int, published time.Time) *subscription.Pending {
	return &subscription.Pending{
		SubscriptionID:   subscriptionID,
		UserID:           userID,
		BookID:           "book-1",
		GroupingQuantity: quantity,
		BookTitle:        "Pale",
		BookAuthor:       "Wildbow",
		Chapter: chapter.Chapter{
			ID:          chapterID,
			BookID:      "book-1",
			Name:        chapterName,
			PublishedAt: published,
		},
	}
}

type fixture struct {
	subscriptions *fakeSubscriptions
	methods       *fakeMethods
	bodies        *fakeBodies
	blobs         *fakeBlobs
	converter     *fakeConverter
	emailer       *fakeEmailer
	pusher        *fakePusher
	scheduler     *Scheduler
}

func newFixture(pending []*subscription.Pending) *fixture {
	f := &fixture{
		subscriptions: &fakeSubscriptions{pending: pending, advanced: make(map[string]string)},
		methods:       &fakeMethods{methods: make(map[string]*delivery.Method)},
		bodies:        &fakeBodies{bodies: make(map[string]*chapter.Body)},
		blobs:         &fakeBlobs{blobs: make(map[string][]byte)},
		converter:     &fakeConverter{},
		emailer:       &fakeEmailer{},
		pusher:        &fakePusher{},
	}
	f.scheduler = NewScheduler(f.subscriptions, f.methods, f.bodies, f.blobs,
		f.converter, f.emailer, f.pusher, slog.New(slog.DiscardHandler))
	return f
}

func (f *fixture) addBody(chapterID, html, blobKey string) {
	f.bodies.bodies[chapterID] = &chapter.Body{
		ID:         "body-" + chapterID,
		ChapterID:  chapterID,
		HTML:       html,
		MobiBucket: "cereal-ebooks",
		MobiKey:    blobKey,
	}
	f.blobs.blobs[blobKey] = []byte("mobi-" + chapterID)
}

// # Scenarios

func TestScheduler_RunOnce_SingleChapterDelivery(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture([]*subscription.Pending{
		pendingRow("sub-1", "user-1", "ch-1", "0.1", 1, now),
	})
	f.methods.methods["user-1"] = activeMethod("user-1")
	f.addBody("ch-1", "<p>one</p>", "ch-1.mobi")

	require.NoError(t, f.scheduler.RunOnce(t.Context()))

	// 1. Pushover got the single-chapter message
	require.Len(t, f.pusher.messages, 1)
	assert.Equal(t, "A new chapter of Pale by Wildbow has been released: 0.1", f.pusher.messages[0])

	// 2. Kindle got the pre-converted blob, no reconversion
	assert.Equal(t, 1, f.emailer.sent)
	assert.Equal(t, "user-1@kindle.com", f.emailer.to)
	assert.Equal(t, "New Chapter of Pale: 0.1", f.emailer.subject)
	assert.Equal(t, "Pale 0.1.mobi", f.emailer.filename)
	assert.Equal(t, 1, f.blobs.fetches)
	assert.Equal(t, 0, f.converter.calls)

	// 3. The watermark advanced to the delivered chapter
	assert.Equal(t, "ch-1", f.subscriptions.advanced["sub-1"])
}

func TestScheduler_RunOnce_BatchDelivery(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture([]*subscription.Pending{
		pendingRow("sub-1", "user-1", "ch-1", "0.1", 3, now.Add(-2*time.Hour)),
		pendingRow("sub-1", "user-1", "ch-2", "0.2", 3, now.Add(-1*time.Hour)),
		pendingRow("sub-1", "user-1", "ch-3", "0.3", 3, now),
	})
	f.methods.methods["user-1"] = activeMethod("user-1")
	f.addBody("ch-1", "<p>one</p>", "ch-1.mobi")
	f.addBody("ch-2", "<p>two</p>", "ch-2.mobi")
	f.addBody("ch-3", "<p>three</p>", "ch-3.mobi")

	require.NoError(t, f.scheduler.RunOnce(t.Context()))

	// 1. One combined ebook was rebuilt from the stored HTML
	assert.Equal(t, 1, f.converter.calls)
	assert.Equal(t, "Pale: 0.1 through 0.3", f.converter.title)
	assert.Contains(t, f.converter.content, "<h1>0.1</h1><p>one</p>")
	assert.Contains(t, f.converter.content, "<h1>0.3</h1><p>three</p>")
	assert.Equal(t, 0, f.blobs.fetches)

	// 2. Messages use the batch phrasing
	require.Len(t, f.pusher.messages, 1)
	assert.Equal(t, "3 new chapters of Pale by Wildbow has been released: 0.1 through 0.3", f.pusher.messages[0])
	assert.Equal(t, "3 New Chapters of Pale: 0.1 through 0.3", f.emailer.subject)
	assert.Equal(t, "Pale 0.1 through 0.3.mobi", f.emailer.filename)

	// 3. The watermark jumped to the newest chapter
	assert.Equal(t, "ch-3", f.subscriptions.advanced["sub-1"])
}

func TestScheduler_RunOnce_BatchDelivery_SameTimestamp(t *testing.T) {
	published := time.Now().UTC().Add(-1 * time.Hour)
	f := newFixture([]*subscription.Pending{
		pendingRow("sub-1", "user-1", "ch-1", "0.1", 2, published),
		pendingRow("sub-1", "user-1", "ch-2", "0.2", 2, published),
	})
	f.methods.methods["user-1"] = activeMethod("user-1")
	f.addBody("ch-1", "<p>one</p>", "ch-1.mobi")
	f.addBody("ch-2", "<p>two</p>", "ch-2.mobi")

	// Chapters from one Patreon email share a publication instant, so the
	// body query has no stable order. Serve the bodies backwards.
	f.bodies.reversed = true

	require.NoError(t, f.scheduler.RunOnce(t.Context()))

	// Each heading still sits above its own chapter's body
	require.Equal(t, 1, f.converter.calls)
	assert.Equal(t, "<h1>0.1</h1><p>one</p><h1>0.2</h1><p>two</p>", f.converter.content)
	assert.Equal(t, "ch-2", f.subscriptions.advanced["sub-1"])
}

func TestScheduler_RunOnce_BelowThresholdAccumulates(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture([]*subscription.Pending{
		pendingRow("sub-1", "user-1", "ch-1", "0.1", 3, now.Add(-1*time.Hour)),
		pendingRow("sub-1", "user-1", "ch-2", "0.2", 3, now),
	})
	f.methods.methods["user-1"] = activeMethod("user-1")

	require.NoError(t, f.scheduler.RunOnce(t.Context()))

	// Nothing sent, nothing advanced: the batch keeps accumulating
	assert.Empty(t, f.pusher.messages)
	assert.Equal(t, 0, f.emailer.sent)
	assert.Empty(t, f.subscriptions.advanced)
}

func TestScheduler_RunOnce_ChannelFailureHoldsWatermark(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture([]*subscription.Pending{
		pendingRow("sub-1", "user-1", "ch-1", "0.1", 1, now),
	})
	f.methods.methods["user-1"] = activeMethod("user-1")
	f.addBody("ch-1", "<p>one</p>", "ch-1.mobi")
	f.pusher.err = errors.New("pushover 500")

	require.NoError(t, f.scheduler.RunOnce(t.Context()))

	// The watermark held, so the next sweep retries the whole batch
	assert.Empty(t, f.subscriptions.advanced)

	f.pusher.err = nil
	require.NoError(t, f.scheduler.RunOnce(t.Context()))
	assert.Equal(t, "ch-1", f.subscriptions.advanced["sub-1"])
}

func TestScheduler_RunOnce_NoChannelsAdvancesWatermark(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture([]*subscription.Pending{
		pendingRow("sub-1", "user-1", "ch-1", "0.1", 1, now),
	})
	// user-1 has no delivery method row at all

	require.NoError(t, f.scheduler.RunOnce(t.Context()))

	// 1. Nothing was sent anywhere
	assert.Empty(t, f.pusher.messages)
	assert.Equal(t, 0, f.emailer.sent)

	// 2. The watermark still advanced: nothing was deliverable
	assert.Equal(t, "ch-1", f.subscriptions.advanced["sub-1"])
}

func TestScheduler_RunOnce_IndependentSubscriptions(t *testing.T) {
	now := time.Now().UTC()
	f := newFixture([]*subscription.Pending{
		pendingRow("sub-1", "user-1", "ch-1", "0.1", 1, now),
		pendingRow("sub-2", "user-2", "ch-1", "0.1", 1, now),
	})
	f.methods.methods["user-1"] = activeMethod("user-1")
	f.methods.methods["user-2"] = activeMethod("user-2")
	f.addBody("ch-1", "<p>one</p>", "ch-1.mobi")

	// user-1's pushover is broken; user-2 must still be served
	f.methods.methods["user-1"].PushoverKey = strPtr("po-broken")
	f.pusher.err = nil

	brokenPusher := &selectivePusher{failKey: "po-broken"}
	f.scheduler = NewScheduler(f.subscriptions, f.methods, f.bodies, f.blobs,
		f.converter, f.emailer, brokenPusher, slog.New(slog.DiscardHandler))

	require.NoError(t, f.scheduler.RunOnce(t.Context()))

	assert.Empty(t, f.subscriptions.advanced["sub-1"])
	assert.Equal(t, "ch-1", f.subscriptions.advanced["sub-2"])
}

type selectivePusher struct {
	failKey string
}

func (pusher *selectivePusher) Push(_ context.Context, userKey, _ string) error {
	if userKey == pusher.failKey {
		return errors.New("pushover 500")
	}
	return nil
}

// # Helpers

func TestGroupPending_PreservesOrder(t *testing.T) {
	now := time.Now().UTC()
	batches := groupPending([]*subscription.Pending{
		pendingRow("sub-1", "user-1", "ch-1", "0.1", 2, now.Add(-2*time.Hour)),
		pendingRow("sub-1", "user-1", "ch-2", "0.2", 2, now.Add(-1*time.Hour)),
		pendingRow("sub-2", "user-2", "ch-9", "9.1", 1, now),
	})

	require.Len(t, batches, 2)
	assert.Equal(t, "sub-1", batches[0].subscriptionID)
	assert.Len(t, batches[0].chapters, 2)
	assert.Equal(t, "0.1", batches[0].chapters[0].Name)
	assert.Equal(t, "ch-2", batches[0].lastChapterID())
	assert.Equal(t, "sub-2", batches[1].subscriptionID)
}
