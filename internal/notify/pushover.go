// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package notify holds the outbound notification adapters: pushover for push
messages and mailgun for kindle email delivery.
*/
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
)

// DefaultPushoverEndpoint is the production pushover message API.
const DefaultPushoverEndpoint = "https://api.pushover.net/1/messages.json"

// PushoverClient sends push notifications through the pushover API.
type PushoverClient struct {
	client   *http.Client
	token    string
	endpoint string
}

// NewPushoverClient constructs a new [PushoverClient]. An empty endpoint
// selects the production API.
func NewPushoverClient(client *http.Client, token, endpoint string) *PushoverClient {
	if endpoint == "" {
		endpoint = DefaultPushoverEndpoint
	}
	return &PushoverClient{
		client:   client,
		token:    token,
		endpoint: endpoint,
	}
}

type pushoverMessage struct {
	Token   string `json:"token"`
	User    string `json:"user"`
	Message string `json:"message"`
}

/*
Push sends one message to a pushover user key.

Returns:
  - error: apperr.UpstreamFailed on any non-200 response
*/
func (pushover *PushoverClient) Push(context context.Context, userKey, message string) error {
	payload, err := json.Marshal(pushoverMessage{
		Token:   pushover.token,
		User:    userKey,
		Message: message,
	})
	if err != nil {
		return fmt.Errorf("notify: failed to encode pushover message: %w", err)
	}

	request, err := http.NewRequestWithContext(context, http.MethodPost,
		pushover.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("notify: failed to build pushover request: %w", err)
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := pushover.client.Do(request)
	if err != nil {
		return fmt.Errorf("notify: pushover request failed: %w", err)
	}
	defer func() { _ = response.Body.Close() }()

	if response.StatusCode != http.StatusOK {
		return apperr.UpstreamFailed(fmt.Sprintf("Pushover returned HTTP %d", response.StatusCode))
	}

	return nil
}
