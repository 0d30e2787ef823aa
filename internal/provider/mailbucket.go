// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/jhillyerd/enmime"
)

// Email is one inbound message pulled from the receiving bucket.
type Email struct {
	Subject    string
	HTML       string
	ReceivedAt time.Time
}

// MailBucket reads inbound email out of an S3 bucket populated by SES
// receipt rules. The Patreon providers poll it for chapter announcements.
type MailBucket struct {
	s3     s3iface.S3API
	bucket string
}

// NewMailBucket constructs a new [MailBucket] over the given bucket.
func NewMailBucket(client s3iface.S3API, bucket string) *MailBucket {
	return &MailBucket{
		s3:     client,
		bucket: bucket,
	}
}

/*
EmailsMatching lists the bucket and returns every message whose subject
contains the given token, case-insensitively.

Description: Each object is a raw RFC 5322 message; the HTML part is the
chapter payload, so messages without one are skipped. ReceivedAt is the
object's LastModified time, which SES sets at receipt.

Parameters:
  - context: context.Context
  - subjectToken: string (lowercase token to match against subjects)

Returns:
  - []Email: Matching messages, in bucket listing order
  - error: Listing, retrieval, or MIME parse failures
*/
func (bucket *MailBucket) EmailsMatching(context context.Context, subjectToken string) ([]Email, error) {
	var emails []Email

	input := &s3.ListObjectsV2Input{Bucket: aws.String(bucket.bucket)}
	for {
		page, err := bucket.s3.ListObjectsV2WithContext(context, input)
		if err != nil {
			return nil, fmt.Errorf("provider: failed to list mail bucket: %w", err)
		}

		for _, object := range page.Contents {
			email, ok, err := bucket.readEmail(context, aws.StringValue(object.Key), subjectToken)
			if err != nil {
				return nil, err
			}
			if !ok {
				continue
			}
			if object.LastModified != nil {
				email.ReceivedAt = *object.LastModified
			}
			emails = append(emails, email)
		}

		if !aws.BoolValue(page.IsTruncated) {
			break
		}
		input.ContinuationToken = page.NextContinuationToken
	}

	return emails, nil
}

// readEmail fetches and parses one stored message. The second return is
// false when the subject does not match or the message has no HTML part.
func (bucket *MailBucket) readEmail(context context.Context, key, subjectToken string) (Email, bool, error) {
	object, err := bucket.s3.GetObjectWithContext(context, &s3.GetObjectInput{
		Bucket: aws.String(bucket.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return Email{}, false, fmt.Errorf("provider: failed to fetch mail object %s: %w", key, err)
	}
	defer func() { _ = object.Body.Close() }()

	envelope, err := enmime.ReadEnvelope(object.Body)
	if err != nil {
		return Email{}, false, fmt.Errorf("provider: failed to parse mail object %s: %w", key, err)
	}

	subject := envelope.GetHeader("Subject")
	if !strings.Contains(strings.ToLower(subject), subjectToken) {
		return Email{}, false, nil
	}
	if strings.TrimSpace(envelope.HTML) == "" {
		return Email{}, false, nil
	}

	return Email{Subject: subject, HTML: envelope.HTML}, true, nil
}
