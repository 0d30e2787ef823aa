// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Cereal turns web serials into kindle and pushover deliveries.

The binary runs three supervised loops: the HTTP API, the chapter ingestion
pipeline, and the delivery scheduler. Configuration is environment-only; see
internal/platform/config.
*/
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aws/aws-sdk-go/service/s3"

	"github.com/JordanSekky/cereal-convert/internal/api"
	"github.com/JordanSekky/cereal-convert/internal/book"
	"github.com/JordanSekky/cereal-convert/internal/calibre"
	"github.com/JordanSekky/cereal-convert/internal/chapter"
	"github.com/JordanSekky/cereal-convert/internal/delivery"
	"github.com/JordanSekky/cereal-convert/internal/ingest"
	"github.com/JordanSekky/cereal-convert/internal/notify"
	"github.com/JordanSekky/cereal-convert/internal/platform/config"
	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
	"github.com/JordanSekky/cereal-convert/internal/platform/migration"
	"github.com/JordanSekky/cereal-convert/internal/platform/postgres"
	platformredis "github.com/JordanSekky/cereal-convert/internal/platform/redis"
	"github.com/JordanSekky/cereal-convert/internal/provider"
	"github.com/JordanSekky/cereal-convert/internal/scheduler"
	"github.com/JordanSekky/cereal-convert/internal/storage"
	"github.com/JordanSekky/cereal-convert/internal/subscription"
	"github.com/JordanSekky/cereal-convert/internal/supervisor"
)

func main() {
	// ── 1. Logging ──
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// ── 2. Configuration ──
	cfg, err := config.Load()
	must(logger, "config", err)

	if cfg.Debug {
		logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
		slog.SetDefault(logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ── 3. Storage infrastructure ──
	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, logger)
	must(logger, "postgres", err)
	defer pool.Close()

	must(logger, "migrations", migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, logger))

	redisClient, err := platformredis.NewClient(ctx, cfg.RedisURL, logger)
	must(logger, "redis", err)
	defer func() { _ = redisClient.Close() }()

	spacesSession, err := storage.NewSession(cfg.SpacesKey, cfg.SpacesSecret, cfg.SpacesRegion, cfg.SpacesEndpoint)
	must(logger, "spaces", err)
	blobs := storage.NewClient(s3.New(spacesSession), cfg.SpacesBucket)

	emailSession, err := storage.NewSession(cfg.AWSAccessKey, cfg.AWSSecretKey, cfg.AWSRegion, "")
	must(logger, "email bucket", err)
	mail := provider.NewMailBucket(s3.New(emailSession), cfg.AWSEmailBucket)

	// ── 4. Outbound adapters ──
	registry := provider.NewRegistry(http.DefaultClient, mail)
	converter := calibre.NewConverter()
	pusher := notify.NewPushoverClient(http.DefaultClient, cfg.PushoverToken, "")
	emailer := notify.NewMailgunEmailer(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunAPIBase, cfg.FromEmailAddress)

	// ── 5. Repositories & services ──
	books := book.NewRepository(pool)
	chapters := chapter.NewRepository(pool)
	subscriptions := subscription.NewRepository(pool)
	methods := delivery.NewRepository(pool)

	bookService := book.NewService(books, registry, logger)
	subscriptionService := subscription.NewService(subscriptions, logger)
	deliveryService := delivery.NewService(methods, converter, emailer, pusher, logger)

	// ── 6. Background loops ──
	pipeline := ingest.NewPipeline(books, chapters, registry, blobs, converter,
		ingest.NewRedisListingCache(redisClient), logger)

	deliverer := scheduler.NewScheduler(subscriptions, methods, chapters, blobs,
		converter, emailer, pusher, logger)

	// ── 7. HTTP surface ──
	router := api.NewRouter(ctx, logger, api.Handlers{
		Book:         book.NewHandler(bookService),
		Subscription: subscription.NewHandler(subscriptionService),
		Delivery:     delivery.NewHandler(deliveryService),
		Health: api.NewHealthHandler(api.HealthDependencies{
			CheckDatabase: func(ctx context.Context) error { return postgres.Ping(ctx, pool) },
			CheckCache:    func(ctx context.Context) error { return platformredis.Ping(ctx, redisClient) },
		}),
	})
	server := api.NewServer(cfg.ServerPort, router)

	// ── 8. Supervision ──
	boss := supervisor.New(logger,
		supervisor.Task{Name: "api", Run: func(ctx context.Context) error {
			go func() {
				<-ctx.Done()
				shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ShutdownTimeout)
				defer cancel()
				_ = server.Shutdown(shutdownCtx)
			}()

			logger.Info("http server listening", slog.String("addr", server.Addr))
			if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		}},
		supervisor.Task{Name: "ingest", Run: pipeline.Run},
		supervisor.Task{Name: "scheduler", Run: deliverer.Run},
	)

	logger.Info("cereal starting",
		slog.String("version", constants.AppVersion),
		slog.String("environment", cfg.Environment),
	)

	_ = boss.Run(ctx)
	logger.Info("cereal stopped")
}

// must aborts startup when a required component fails to initialize.
func must(logger *slog.Logger, component string, err error) {
	if err != nil {
		logger.Error("startup failed",
			slog.String("component", component),
			slog.String("error", err.Error()),
		)
		os.Exit(1)
	}
}
