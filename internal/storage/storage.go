// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package storage persists converted ebook blobs in S3-compatible object
storage (DigitalOcean Spaces in production).

Blobs are content-addressed by a random key; the (bucket, key) pair is
recorded on the chapter body row and never reused.
*/
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"

	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
	"github.com/JordanSekky/cereal-convert/pkg/random"
)

// Location identifies one stored blob.
type Location struct {
	Bucket string
	Key    string
}

// Client reads and writes ebook blobs in one bucket.
type Client struct {
	s3     s3iface.S3API
	bucket string
}

/*
NewSession builds an AWS session for an S3-compatible endpoint.

Parameters:
  - key: string (Access key id)
  - secret: string (Secret access key)
  - region: string
  - endpoint: string (Empty for stock AWS)

Returns:
  - *session.Session: Ready for s3.New
  - error: Invalid configuration
*/
func NewSession(key, secret, region, endpoint string) (*session.Session, error) {
	config := aws.NewConfig().
		WithCredentials(credentials.NewStaticCredentials(key, secret, "")).
		WithRegion(region)
	if endpoint != "" {
		config = config.WithEndpoint(endpoint)
	}

	awsSession, err := session.NewSession(config)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to create session: %w", err)
	}
	return awsSession, nil
}

// NewClient constructs a new [Client] over the given bucket.
func NewClient(client s3iface.S3API, bucket string) *Client {
	return &Client{
		s3:     client,
		bucket: bucket,
	}
}

/*
Put stores a blob under a fresh random key.

Returns:
  - Location: Where the blob now lives
  - error: Upload failures
*/
func (client *Client) Put(context context.Context, data []byte) (Location, error) {
	key := random.Alphanumeric(constants.StorageKeyLength) + constants.MobiSuffix

	_, err := client.s3.PutObjectWithContext(context, &s3.PutObjectInput{
		Bucket: aws.String(client.bucket),
		Key:    aws.String(key),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return Location{}, fmt.Errorf("storage: failed to store blob: %w", err)
	}

	return Location{Bucket: client.bucket, Key: key}, nil
}

/*
Fetch retrieves a stored blob.

Returns:
  - []byte: The blob contents
  - error: Retrieval failures
*/
func (client *Client) Fetch(context context.Context, location Location) ([]byte, error) {
	object, err := client.s3.GetObjectWithContext(context, &s3.GetObjectInput{
		Bucket: aws.String(location.Bucket),
		Key:    aws.String(location.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("storage: failed to fetch blob %s/%s: %w", location.Bucket, location.Key, err)
	}
	defer func() { _ = object.Body.Close() }()

	data, err := io.ReadAll(object.Body)
	if err != nil {
		return nil, fmt.Errorf("storage: failed to read blob %s/%s: %w", location.Bucket, location.Key, err)
	}

	return data, nil
}
