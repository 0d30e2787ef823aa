// Copyright (c) 2026 Cereal. All rights reserved.
// Author: jordan.sekky@gmail.com

package delivery

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/JordanSekky/cereal-convert/internal/platform/apperr"
	"github.com/JordanSekky/cereal-convert/internal/platform/database/schema"
	"github.com/JordanSekky/cereal-convert/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed delivery method store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
Get returns a user's delivery method row.
*/
func (repository *repository) Get(context context.Context, userID string) (*Method, error) {

	t := schema.DeliveryMethods
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s
		WHERE %s = $1
	`,
		t.UserID,
		t.KindleEmail, t.KindleEmailVerified, t.KindleEmailEnabled,
		t.KindleEmailVerificationCode, t.KindleEmailVerificationCodeAt,
		t.PushoverKey, t.PushoverKeyVerified, t.PushoverEnabled,
		t.PushoverVerificationCode, t.PushoverVerificationCodeAt,
		t.CreatedAt, t.UpdatedAt,
		t.Table,
		t.UserID,
	)

	var method Method
	err := repository.pool.QueryRow(context, query, userID).Scan(
		&method.UserID,
		&method.KindleEmail, &method.KindleEmailVerified, &method.KindleEmailEnabled,
		&method.KindleEmailVerificationCode, &method.KindleEmailVerificationCodeAt,
		&method.PushoverKey, &method.PushoverKeyVerified, &method.PushoverEnabled,
		&method.PushoverVerificationCode, &method.PushoverVerificationCodeAt,
		&method.CreatedAt, &method.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Delivery method")
	}

	return &method, nil
}

/*
SetKindle upserts the kindle channel with a fresh verification code.
*/
func (repository *repository) SetKindle(context context.Context, userID, email, code string, issuedAt time.Time) error {

	t := schema.DeliveryMethods
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, FALSE, FALSE, $3, $4)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = FALSE,
			%s = FALSE,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = NOW()
	`,
		t.Table,
		t.UserID, t.KindleEmail, t.KindleEmailVerified, t.KindleEmailEnabled,
		t.KindleEmailVerificationCode, t.KindleEmailVerificationCodeAt,
		t.UserID,
		t.KindleEmail, t.KindleEmail,
		t.KindleEmailVerified,
		t.KindleEmailEnabled,
		t.KindleEmailVerificationCode, t.KindleEmailVerificationCode,
		t.KindleEmailVerificationCodeAt, t.KindleEmailVerificationCodeAt,
		t.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query, userID, email, code, issuedAt)
	if err != nil {
		return fmt.Errorf("postgres: failed to set kindle email: %w", err)
	}

	return nil
}

/*
ConfirmKindle marks the kindle channel verified and clears the code.
*/
func (repository *repository) ConfirmKindle(context context.Context, userID string) error {

	t := schema.DeliveryMethods
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = TRUE,
			%s = TRUE,
			%s = NULL,
			%s = NULL,
			%s = NOW()
		WHERE %s = $1
	`,
		t.Table,
		t.KindleEmailVerified, t.KindleEmailEnabled,
		t.KindleEmailVerificationCode, t.KindleEmailVerificationCodeAt,
		t.UpdatedAt,
		t.UserID,
	)

	return repository.execForUser(context, query, userID, "confirm kindle email")
}

/*
SetPushover upserts the pushover channel with a fresh verification code.
*/
func (repository *repository) SetPushover(context context.Context, userID, key, code string, issuedAt time.Time) error {

	t := schema.DeliveryMethods
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, FALSE, FALSE, $3, $4)
		ON CONFLICT (%s) DO UPDATE SET
			%s = EXCLUDED.%s,
			%s = FALSE,
			%s = FALSE,
			%s = EXCLUDED.%s,
			%s = EXCLUDED.%s,
			%s = NOW()
	`,
		t.Table,
		t.UserID, t.PushoverKey, t.PushoverKeyVerified, t.PushoverEnabled,
		t.PushoverVerificationCode, t.PushoverVerificationCodeAt,
		t.UserID,
		t.PushoverKey, t.PushoverKey,
		t.PushoverKeyVerified,
		t.PushoverEnabled,
		t.PushoverVerificationCode, t.PushoverVerificationCode,
		t.PushoverVerificationCodeAt, t.PushoverVerificationCodeAt,
		t.UpdatedAt,
	)

	_, err := repository.pool.Exec(context, query, userID, key, code, issuedAt)
	if err != nil {
		return fmt.Errorf("postgres: failed to set pushover key: %w", err)
	}

	return nil
}

/*
ConfirmPushover marks the pushover channel verified and clears the code.
*/
func (repository *repository) ConfirmPushover(context context.Context, userID string) error {

	t := schema.DeliveryMethods
	query := fmt.Sprintf(`
		UPDATE %s SET
			%s = TRUE,
			%s = TRUE,
			%s = NULL,
			%s = NULL,
			%s = NOW()
		WHERE %s = $1
	`,
		t.Table,
		t.PushoverKeyVerified, t.PushoverEnabled,
		t.PushoverVerificationCode, t.PushoverVerificationCodeAt,
		t.UpdatedAt,
		t.UserID,
	)

	return repository.execForUser(context, query, userID, "confirm pushover key")
}

/*
SetKindleEnabled toggles the kindle channel.
*/
func (repository *repository) SetKindleEnabled(context context.Context, userID string, enabled bool) error {

	t := schema.DeliveryMethods
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		t.Table, t.KindleEmailEnabled, t.UpdatedAt, t.UserID)

	result, err := repository.pool.Exec(context, query, enabled, userID)
	if err != nil {
		return fmt.Errorf("postgres: failed to toggle kindle channel: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Delivery method")
	}

	return nil
}

/*
SetPushoverEnabled toggles the pushover channel.
*/
func (repository *repository) SetPushoverEnabled(context context.Context, userID string, enabled bool) error {

	t := schema.DeliveryMethods
	query := fmt.Sprintf(`UPDATE %s SET %s = $1, %s = NOW() WHERE %s = $2`,
		t.Table, t.PushoverEnabled, t.UpdatedAt, t.UserID)

	result, err := repository.pool.Exec(context, query, enabled, userID)
	if err != nil {
		return fmt.Errorf("postgres: failed to toggle pushover channel: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Delivery method")
	}

	return nil
}

// execForUser runs an UPDATE keyed by userid and maps zero affected rows to
// apperr.NotFound.
func (repository *repository) execForUser(context context.Context, query, userID, action string) error {
	result, err := repository.pool.Exec(context, query, userID)
	if err != nil {
		return fmt.Errorf("postgres: failed to %s: %w", action, err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound("Delivery method")
	}
	return nil
}
