// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package provider

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 serves raw messages out of a map, keyed by object key.
type fakeS3 struct {
	s3iface.S3API
	objects  map[string]string
	modified time.Time
}

func (fake *fakeS3) ListObjectsV2WithContext(_ aws.Context, _ *s3.ListObjectsV2Input, _ ...request.Option) (*s3.ListObjectsV2Output, error) {
	output := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for key := range fake.objects {
		output.Contents = append(output.Contents, &s3.Object{
			Key:          aws.String(key),
			LastModified: aws.Time(fake.modified),
		})
	}
	return output, nil
}

func (fake *fakeS3) GetObjectWithContext(_ aws.Context, input *s3.GetObjectInput, _ ...request.Option) (*s3.GetObjectOutput, error) {
	raw, ok := fake.objects[aws.StringValue(input.Key)]
	if !ok {
		return nil, fmt.Errorf("no such key %s", aws.StringValue(input.Key))
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(raw))}, nil
}

func rawEmail(subject, htmlBody string) string {
	return "Subject: " + subject + "\r\n" +
		"Content-Type: text/html; charset=UTF-8\r\n" +
		"\r\n" +
		htmlBody + "\r\n"
}

func TestMailBucket_EmailsMatching(t *testing.T) {
	received := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	fake := &fakeS3{
		modified: received,
		objects: map[string]string{
			"msg-1": rawEmail("New post from pirateaba", "<div><p>chapter inside</p></div>"),
			"msg-2": rawEmail("Totally unrelated newsletter", "<div><p>spam</p></div>"),
			"msg-3": rawEmail("PIRATEABA bonus chapter", "<div><p>more chapter</p></div>"),
		},
	}

	bucket := NewMailBucket(fake, "inbound-mail")

	emails, err := bucket.EmailsMatching(t.Context(), "pirateaba")
	require.NoError(t, err)

	// 1. Subject matching is case-insensitive and excludes the newsletter
	require.Len(t, emails, 2)
	for _, email := range emails {
		assert.Contains(t, strings.ToLower(email.Subject), "pirateaba")
		assert.Contains(t, email.HTML, "chapter")
		assert.Equal(t, received, email.ReceivedAt)
	}
}

func TestMailBucket_EmailsMatching_SkipsPlainText(t *testing.T) {
	fake := &fakeS3{
		modified: time.Now(),
		objects: map[string]string{
			"msg-1": "Subject: pirateaba update\r\n" +
				"Content-Type: text/plain; charset=UTF-8\r\n" +
				"\r\n" +
				"no html here\r\n",
		},
	}

	bucket := NewMailBucket(fake, "inbound-mail")

	emails, err := bucket.EmailsMatching(t.Context(), "pirateaba")
	require.NoError(t, err)
	assert.Empty(t, emails)
}
