// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package delivery

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
	"github.com/JordanSekky/cereal-convert/internal/platform/constants"
	"github.com/JordanSekky/cereal-convert/internal/platform/validate"
	"github.com/JordanSekky/cereal-convert/pkg/random"
)

const (
	FieldUserID      = "user_id"
	FieldKindleEmail = "kindle_email"
	FieldPushoverKey = "pushover_key"
	FieldCode        = "code"
	FieldChannel     = "channel"
)

// # Outbound Dependencies

// CodeBookGenerator produces the small verification ebook mailed to a kindle
// address during registration. Implemented by the calibre adapter.
type CodeBookGenerator interface {
	ValidationMOBI(context context.Context, code string) ([]byte, error)
}

// Emailer sends an ebook attachment to an email address. Implemented by the
// mailgun client.
type Emailer interface {
	SendMOBI(context context.Context, to, subject, filename string, attachment []byte) error
}

// Pusher sends a push notification to a pushover user key. Implemented by
// the pushover client.
type Pusher interface {
	Push(context context.Context, userKey, message string) error
}

// # Service Layer

// Service orchestrates delivery channel registration and verification.
type Service struct {
	methods Repository
	codes   CodeBookGenerator
	emailer Emailer
	pusher  Pusher
	logger  *slog.Logger
	now     func() time.Time
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(methods Repository, codes CodeBookGenerator, emailer Emailer, pusher Pusher, logger *slog.Logger) *Service {
	return &Service{
		methods: methods,
		codes:   codes,
		emailer: emailer,
		pusher:  pusher,
		logger:  logger,
		now:     time.Now,
	}
}

// # Kindle Channel

/*
RegisterKindle stores an unverified kindle email and sends a verification
ebook to it.

Description: A fresh uppercase code is generated and persisted alongside the
address. The code reaches the user as a generated .mobi delivered to the
device itself, proving the address is actually a reachable kindle. The code
expires after one hour.

Parameters:
  - context: context.Context
  - userID: string
  - email: string (Kindle email address)

Returns:
  - error: Validation, conversion, or email failures
*/
func (service *Service) RegisterKindle(context context.Context, userID, email string) error {

	validator := &validate.Validator{}
	validator.Required(FieldUserID, userID)
	validator.Required(FieldKindleEmail, email)
	validator.Email(FieldKindleEmail, email)
	if err := validator.Err(); err != nil {
		return err
	}

	code := random.Code(constants.VerificationCodeLength)
	if err := service.methods.SetKindle(context, userID, email, code, service.now()); err != nil {
		return err
	}

	// The verification ebook is the delivery channel test itself.
	mobi, err := service.codes.ValidationMOBI(context, code)
	if err != nil {
		return err
	}

	if err := service.emailer.SendMOBI(context, email, "Cereal Verification", "Cereal Verification.mobi", mobi); err != nil {
		return err
	}

	service.logger.Info("kindle_verification_sent", slog.String("user_id", userID))
	return nil
}

/*
VerifyKindle checks a kindle verification code and activates the channel.

Returns:
  - error: apperr.Unprocessable on mismatch, apperr.Expired past the window
*/
func (service *Service) VerifyKindle(context context.Context, userID, code string) error {
	method, err := service.methods.Get(context, userID)
	if err != nil {
		return err
	}

	if err := service.checkCode(code, method.KindleEmailVerificationCode,
		method.KindleEmailVerificationCodeAt, constants.KindleCodeTTL); err != nil {
		return err
	}

	if err := service.methods.ConfirmKindle(context, userID); err != nil {
		return err
	}

	service.logger.Info("kindle_channel_verified", slog.String("user_id", userID))
	return nil
}

// # Pushover Channel

/*
RegisterPushover stores an unverified pushover key and pushes a verification
code to it.

Description: The code travels over the channel being verified, proving the
key belongs to a device the user controls. The code expires after five
minutes — push delivery is near-instant.
*/
func (service *Service) RegisterPushover(context context.Context, userID, key string) error {

	validator := &validate.Validator{}
	validator.Required(FieldUserID, userID)
	validator.Required(FieldPushoverKey, key)
	if err := validator.Err(); err != nil {
		return err
	}

	code := random.Code(constants.VerificationCodeLength)
	if err := service.methods.SetPushover(context, userID, key, code, service.now()); err != nil {
		return err
	}

	message := "Your cereal verification code is " + code
	if err := service.pusher.Push(context, key, message); err != nil {
		return err
	}

	service.logger.Info("pushover_verification_sent", slog.String("user_id", userID))
	return nil
}

/*
VerifyPushover checks a pushover verification code and activates the channel.
*/
func (service *Service) VerifyPushover(context context.Context, userID, code string) error {
	method, err := service.methods.Get(context, userID)
	if err != nil {
		return err
	}

	if err := service.checkCode(code, method.PushoverVerificationCode,
		method.PushoverVerificationCodeAt, constants.PushoverCodeTTL); err != nil {
		return err
	}

	if err := service.methods.ConfirmPushover(context, userID); err != nil {
		return err
	}

	service.logger.Info("pushover_channel_verified", slog.String("user_id", userID))
	return nil
}

// # Channel Management

/*
SetChannelEnabled toggles a verified channel on or off.

Parameters:
  - channel: string ("kindle" or "pushover")
*/
func (service *Service) SetChannelEnabled(context context.Context, userID, channel string, enabled bool) error {

	validator := &validate.Validator{}
	validator.Required(FieldUserID, userID)
	validator.OneOf(FieldChannel, channel, ChannelKindle, ChannelPushover)
	if err := validator.Err(); err != nil {
		return err
	}

	var err error
	switch channel {
	case ChannelKindle:
		err = service.methods.SetKindleEnabled(context, userID, enabled)
	case ChannelPushover:
		err = service.methods.SetPushoverEnabled(context, userID, enabled)
	}
	if err != nil {
		return err
	}

	service.logger.Info("delivery_channel_toggled",
		slog.String("user_id", userID),
		slog.String("channel", channel),
		slog.Bool("enabled", enabled),
	)
	return nil
}

/*
GetMethod returns a user's delivery configuration.
*/
func (service *Service) GetMethod(context context.Context, userID string) (*Method, error) {
	return service.methods.Get(context, userID)
}

// checkCode validates a submitted code against the stored one and its age.
// Codes are compared case-insensitively: kindle screens love autocaps.
func (service *Service) checkCode(submitted string, stored *string, issuedAt *time.Time, ttl time.Duration) error {
	if stored == nil || issuedAt == nil {
		return apperr.Unprocessable("No verification is pending for this channel")
	}
	if service.now().Sub(*issuedAt) > ttl {
		return apperr.Expired("Verification code has expired")
	}
	if !strings.EqualFold(submitted, *stored) {
		return apperr.Unprocessable("Verification code does not match")
	}
	return nil
}
