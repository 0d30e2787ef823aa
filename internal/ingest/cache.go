// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/JordanSekky/cereal-convert/internal/chapter"
	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
)

// digestTTL bounds how long a listing digest is trusted. Expiry forces a
// full diff once a day even for books whose feed never changes.
const digestTTL = 24 * time.Hour

// RedisListingCache stores listing digests in redis under the ingest feed
// prefix.
type RedisListingCache struct {
	client *redis.Client
}

// NewRedisListingCache constructs a new [RedisListingCache].
func NewRedisListingCache(client *redis.Client) *RedisListingCache {
	return &RedisListingCache{client: client}
}

// Digest returns the cached digest for a book, or "" when none is cached.
func (cache *RedisListingCache) Digest(context context.Context, bookID string) (string, error) {
	digest, err := cache.client.Get(context, constants.RedisPrefixFeed+bookID).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("ingest: failed to read listing digest: %w", err)
	}
	return digest, nil
}

// SetDigest records the digest of the last fully ingested listing.
func (cache *RedisListingCache) SetDigest(context context.Context, bookID, digest string) error {
	if err := cache.client.Set(context, constants.RedisPrefixFeed+bookID, digest, digestTTL).Err(); err != nil {
		return fmt.Errorf("ingest: failed to write listing digest: %w", err)
	}
	return nil
}

// listingDigest hashes a provider listing into a stable fingerprint.
func listingDigest(listings []chapter.Listing) string {
	hash := sha256.New()
	for _, listing := range listings {
		fmt.Fprintf(hash, "%s\x00%s\x00%d\x00%s\x00%s\x00",
			listing.Name, listing.Kind.Variant, listing.Kind.RoyalRoadID,
			listing.Kind.URL, listing.PublishedAt.UTC().Format(time.RFC3339Nano))
	}
	return hex.EncodeToString(hash.Sum(nil))
}
