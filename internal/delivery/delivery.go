// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

/*
Package delivery manages per-user delivery channels and their verification.

Each user has at most one row holding both channels: a kindle email and a
pushover key. A channel participates in deliveries only when it is both
verified (the user proved ownership with a code) and enabled (the user has
not switched it off).
*/
package delivery

import "time"

// Channel names accepted by the enable/disable endpoint.
const (
	ChannelKindle   = "kindle"
	ChannelPushover = "pushover"
)

// Method is a user's delivery configuration.
type Method struct {
	// UserID identifies the owner. One row per user.
	UserID string `json:"user_id"`

	// Kindle email channel
	KindleEmail         *string `json:"kindle_email,omitempty"`
	KindleEmailVerified bool    `json:"kindle_email_verified"`
	KindleEmailEnabled  bool    `json:"kindle_email_enabled"`
	// Verification code fields are server-side only and cleared on success.
	KindleEmailVerificationCode   *string    `json:"-"`
	KindleEmailVerificationCodeAt *time.Time `json:"-"`

	// Pushover channel
	PushoverKey                *string    `json:"pushover_key,omitempty"`
	PushoverKeyVerified        bool       `json:"pushover_key_verified"`
	PushoverEnabled            bool       `json:"pushover_enabled"`
	PushoverVerificationCode   *string    `json:"-"`
	PushoverVerificationCodeAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// KindleActive reports whether the kindle channel should receive deliveries.
func (m *Method) KindleActive() bool {
	return m.KindleEmail != nil && m.KindleEmailVerified && m.KindleEmailEnabled
}

// PushoverActive reports whether the pushover channel should receive deliveries.
func (m *Method) PushoverActive() bool {
	return m.PushoverKey != nil && m.PushoverKeyVerified && m.PushoverEnabled
}
