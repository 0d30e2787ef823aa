// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package constants provides centralized, immutable values for the entire service.

It defines default timeouts, tick intervals, and cross-cutting keys that are
shared between different layers of the system.

Categories:

  - Server Timing: Read/Write/Idle timeouts for the HTTP server.
  - Background Loops: Tick intervals for the ingestion and delivery tasks.
  - Verification: Code lengths and expiry windows for delivery channels.

Using this package ensures Magic Strings and Magic Numbers are eliminated
from the business logic.
*/
package constants

import "time"

// # Metadata

const (
	AppName    = "cereal"
	AppVersion = "0.3.0"
)

// # Server Timing

const (
	// DefaultReadTimeout is the maximum duration for reading the entire request.
	DefaultReadTimeout = 5 * time.Second

	// DefaultWriteTimeout is the maximum duration before timing out writes of the response.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultIdleTimeout is the maximum amount of time to wait for the next request.
	DefaultIdleTimeout = 120 * time.Second

	// DefaultReadHeaderTimeout is the amount of time allowed to read request headers.
	DefaultReadHeaderTimeout = 2 * time.Second

	// GlobalRequestTimeout is the deadline for the entire request lifecycle.
	GlobalRequestTimeout = 30 * time.Second

	// ShutdownTimeout is how long we wait for in-flight requests to complete during shutdown.
	ShutdownTimeout = 30 * time.Second
)

// # Background Loops

const (
	// IngestInterval is how often the ingestion pipeline polls providers
	// for new chapters. Missed ticks are skipped, never queued.
	IngestInterval = 5 * time.Minute

	// DeliveryInterval is how often the delivery scheduler scans for
	// pending chapters.
	DeliveryInterval = 30 * time.Second

	// TaskRestartDelay is the pause before a crashed background task is
	// restarted by the supervisor.
	TaskRestartDelay = 5 * time.Second

	// ProviderFetchTimeout bounds a single outbound fetch against an
	// upstream provider (feed, chapter page, or mail bucket object).
	ProviderFetchTimeout = 60 * time.Second
)

// # Delivery Verification

const (
	// VerificationCodeLength is the length of channel verification codes.
	VerificationCodeLength = 10

	// KindleCodeTTL is how long a kindle email verification code stays valid.
	// Kindle codes travel by email-to-device, which can take a while.
	KindleCodeTTL = 1 * time.Hour

	// PushoverCodeTTL is how long a pushover verification code stays valid.
	PushoverCodeTTL = 5 * time.Minute
)

// # Object Storage

const (
	// StorageKeyLength is the length of the random portion of object keys.
	StorageKeyLength = 30

	// MobiSuffix is appended to every stored ebook object key.
	MobiSuffix = ".mobi"
)

// # Rate Limiting

const (
	// DefaultRateLimitRPS is the requests per second allowed per IP.
	DefaultRateLimitRPS = 50.0

	// DefaultRateLimitBurst is the maximum burst allowed for the rate limiter.
	DefaultRateLimitBurst = 100

	// RateLimitCleanupInterval is how often old IP entries are removed from memory.
	RateLimitCleanupInterval = 1 * time.Minute

	// RateLimitClientTTL is how long a client must be idle before its entry is deleted.
	RateLimitClientTTL = 3 * time.Minute
)

// # HTTP Headers

const (
	HeaderXRequestID    = "X-Request-ID"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXForwardedFor = "X-Forwarded-For"
)

// # JSON Field Identifiers

const (
	FieldData    = "data"
	FieldError   = "error"
	FieldCode    = "code"
	FieldDetails = "details"
	FieldItems   = "items"
	FieldTotal   = "total"
	FieldMessage = "message"
	FieldStatus  = "status"
)

// # Redis Prefixes (Cache Taxonomy)

const (
	// RedisPrefixFeed caches a digest of the latest provider listing per
	// book, letting the ingestion pipeline skip unchanged feeds.
	RedisPrefixFeed = "ingest:feed:"
)
