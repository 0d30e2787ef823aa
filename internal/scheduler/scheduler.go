// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package scheduler implements the delivery scheduler.

Every tick it scans for (subscription, chapter) pairs past the
subscription's watermark, groups them into per-subscription batches, and
delivers each batch over the user's enabled channels. The watermark only
advances when every enabled channel delivered, so a failed channel retries
the whole batch on a later tick.
*/
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/JordanSekky/cereal-convert/internal/chapter"
	"github.com/JordanSekky/cereal-convert/internal/delivery"
	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
	"github.com/JordanSekky/cereal-convert/internal/storage"
	"github.com/JordanSekky/cereal-convert/internal/subscription"
	"github.com/JordanSekky/cereal-convert/pkg/filename"
)

// # Dependencies

// Subscriptions is the slice of the subscription repository the scheduler
// needs.
type Subscriptions interface {
	ListPending(context context.Context) ([]*subscription.Pending, error)
	AdvanceWatermark(context context.Context, subscriptionID, chapterID string) error
}

// Methods reads a user's delivery configuration.
type Methods interface {
	Get(context context.Context, userID string) (*delivery.Method, error)
}

// Bodies reads stored chapter bodies.
type Bodies interface {
	BodiesByChapterIDs(context context.Context, chapterIDs []string) ([]*chapter.Body, error)
}

// BlobStore fetches pre-converted ebook blobs.
type BlobStore interface {
	Fetch(context context.Context, location storage.Location) ([]byte, error)
}

// Converter renders a combined batch document into a MOBI.
type Converter interface {
	ConvertToMOBI(context context.Context, title, author string, content []byte, ext string) ([]byte, error)
}

// # Scheduler

// Scheduler scans for pending chapters and delivers them.
type Scheduler struct {
	subscriptions Subscriptions
	methods       Methods
	bodies        Bodies
	blobs         BlobStore
	converter     Converter
	emailer       delivery.Emailer
	pusher        delivery.Pusher
	logger        *slog.Logger
}

// NewScheduler constructs a new [Scheduler] with its required dependencies.
func NewScheduler(subscriptions Subscriptions, methods Methods, bodies Bodies,
	blobs BlobStore, converter Converter, emailer delivery.Emailer,
	pusher delivery.Pusher, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		subscriptions: subscriptions,
		methods:       methods,
		bodies:        bodies,
		blobs:         blobs,
		converter:     converter,
		emailer:       emailer,
		pusher:        pusher,
		logger:        logger,
	}
}

/*
Run scans on a fixed interval until the context is cancelled.

Returns:
  - error: The context's error on shutdown
*/
func (scheduler *Scheduler) Run(context context.Context) error {
	ticker := time.NewTicker(constants.DeliveryInterval)
	defer ticker.Stop()

	for {
		if err := scheduler.RunOnce(context); err != nil {
			scheduler.logger.Error("delivery_run_failed", slog.String("error", err.Error()))
		}

		select {
		case <-context.Done():
			return context.Err()
		case <-ticker.C:
		}
	}
}

/*
RunOnce performs a single delivery sweep.

Description: Batches below their subscription's grouping quantity are left
to accumulate. A failing batch is logged and skipped; its watermark stays
put, so the next sweep retries it.
*/
func (scheduler *Scheduler) RunOnce(context context.Context) error {
	pending, err := scheduler.subscriptions.ListPending(context)
	if err != nil {
		return fmt.Errorf("scheduler: failed to list pending chapters: %w", err)
	}

	for _, target := range groupPending(pending) {
		if len(target.chapters) < target.groupingQuantity {
			continue
		}

		if err := scheduler.deliver(context, target); err != nil {
			scheduler.logger.Error("delivery_failed",
				slog.String("subscription_id", target.subscriptionID),
				slog.String("user_id", target.userID),
				slog.String("book_title", target.bookTitle),
				slog.String("error", err.Error()),
			)
		}
	}

	return nil
}

// deliver sends one batch over every enabled channel, then advances the
// watermark. With no enabled channels the batch is acknowledged as-is:
// there is nowhere to send it, and holding it back would pin the pending
// set forever.
func (scheduler *Scheduler) deliver(context context.Context, target *batch) error {
	method, err := scheduler.lookupMethod(context, target.userID)
	if err != nil {
		return err
	}

	if method.PushoverActive() {
		if err := scheduler.pusher.Push(context, *method.PushoverKey, target.pushMessage()); err != nil {
			return fmt.Errorf("scheduler: pushover delivery failed: %w", err)
		}
	}

	if method.KindleActive() {
		if err := scheduler.deliverKindle(context, target, *method.KindleEmail); err != nil {
			return fmt.Errorf("scheduler: kindle delivery failed: %w", err)
		}
	}

	if err := scheduler.subscriptions.AdvanceWatermark(context, target.subscriptionID, target.lastChapterID()); err != nil {
		return err
	}

	scheduler.logger.Info("chapters_delivered",
		slog.String("subscription_id", target.subscriptionID),
		slog.String("user_id", target.userID),
		slog.String("book_title", target.bookTitle),
		slog.Int("count", len(target.chapters)),
		slog.Bool("pushover", method.PushoverActive()),
		slog.Bool("kindle", method.KindleActive()),
	)
	return nil
}

// lookupMethod fetches the user's delivery configuration. A user with no
// configuration row has no channels, which is not an error.
func (scheduler *Scheduler) lookupMethod(context context.Context, userID string) (*delivery.Method, error) {
	method, err := scheduler.methods.Get(context, userID)
	if err != nil {
		if appErr := apperr.As(err); appErr != nil && appErr.HTTPStatus == http.StatusNotFound {
			return &delivery.Method{UserID: userID}, nil
		}
		return nil, err
	}
	return method, nil
}

// deliverKindle assembles the batch ebook and mails it.
//
// A single chapter reuses the blob converted at ingest time. A multi-chapter
// batch is rebuilt from the stored HTML so the chapters land as one ebook
// instead of a pile of attachments.
func (scheduler *Scheduler) deliverKindle(context context.Context, target *batch, email string) error {
	mobi, err := scheduler.batchEbook(context, target)
	if err != nil {
		return err
	}

	name := filename.From(target.ebookTitle()) + constants.MobiSuffix
	return scheduler.emailer.SendMOBI(context, email, target.emailSubject(), name, mobi)
}

func (scheduler *Scheduler) batchEbook(context context.Context, target *batch) ([]byte, error) {
	ids := make([]string, len(target.chapters))
	for index, record := range target.chapters {
		ids[index] = record.ID
	}

	rows, err := scheduler.bodies.BodiesByChapterIDs(context, ids)
	if err != nil {
		return nil, err
	}

	// The store orders bodies by publication time, which ties when several
	// chapters arrive in one email. Pair by chapter id, not by position.
	byChapter := make(map[string]*chapter.Body, len(rows))
	for _, body := range rows {
		byChapter[body.ChapterID] = body
	}

	bodies := make([]*chapter.Body, len(target.chapters))
	for index, record := range target.chapters {
		body, ok := byChapter[record.ID]
		if !ok {
			return nil, fmt.Errorf("scheduler: no stored body for chapter %s", record.ID)
		}
		bodies[index] = body
	}

	if len(bodies) == 1 {
		return scheduler.blobs.Fetch(context, storage.Location{
			Bucket: bodies[0].MobiBucket,
			Key:    bodies[0].MobiKey,
		})
	}

	return scheduler.converter.ConvertToMOBI(context,
		target.ebookTitle(), target.bookAuthor,
		[]byte(combinedHTML(target.chapters, bodies)), ".html")
}
