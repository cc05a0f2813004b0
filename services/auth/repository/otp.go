package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tilanet/auth-service/internal/pkg/models"
)

// InvalidateAndCreate marks every unused code for the owning user as used
// and inserts the new code in a single transaction, so at most one active
// code exists per user afterwards.
func (r *AuthRepo) InvalidateAndCreate(ctx context.Context, otp *models.OTPCode) error {
	if otp.ID == uuid.Nil {
		otp.ID = uuid.New()
	}
	otp.CreatedAt = time.Now()

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE otp_codes
		SET is_used = true
		WHERE user_id = $1 AND is_used = false
	`
	_, err = tx.ExecContext(ctx, query, otp.UserID)
	if err != nil {
		return fmt.Errorf("failed to invalidate previous codes: %w", err)
	}

	query = `
		INSERT INTO otp_codes (
			id, user_id, code, channel, phone_number, expires_at, is_used, attempts, created_at
		) VALUES (
			:id, :user_id, :code, :channel, :phone_number, :expires_at, :is_used, :attempts, :created_at
		)
	`
	_, err = tx.NamedExecContext(ctx, query, otp)
	if err != nil {
		return fmt.Errorf("failed to insert OTP code: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// GetActiveCode returns the oldest unused, unexpired code for the user
func (r *AuthRepo) GetActiveCode(ctx context.Context, userID uuid.UUID) (*models.OTPCode, error) {
	query := `
		SELECT id, user_id, code, channel, phone_number, expires_at, is_used, attempts, created_at
		FROM otp_codes
		WHERE user_id = $1 AND is_used = false AND expires_at > $2
		ORDER BY created_at ASC
		LIMIT 1
	`

	var otp models.OTPCode
	err := r.db.GetContext(ctx, &otp, query, userID, time.Now())
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active OTP code: %w", err)
	}

	return &otp, nil
}

// IncrementActiveAttempts bumps the attempt counter on the user's unused,
// unexpired codes. Runs unconditionally before the verify branch so every
// verify call touches the same row regardless of outcome.
func (r *AuthRepo) IncrementActiveAttempts(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE otp_codes
		SET attempts = attempts + 1
		WHERE user_id = $1 AND is_used = false AND expires_at > $2
	`

	_, err := r.db.ExecContext(ctx, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to increment OTP attempts: %w", err)
	}

	return nil
}

// ConsumeCode marks the code used and the owning user verified in a
// single transaction.
func (r *AuthRepo) ConsumeCode(ctx context.Context, codeID, userID uuid.UUID) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		UPDATE otp_codes
		SET is_used = true
		WHERE id = $1
	`
	_, err = tx.ExecContext(ctx, query, codeID)
	if err != nil {
		return fmt.Errorf("failed to mark OTP code used: %w", err)
	}

	query = `
		UPDATE users
		SET is_verified = true, updated_at = $2
		WHERE id = $1
	`
	_, err = tx.ExecContext(ctx, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateChannel switches the delivery channel of an unused code. Used by
// the voice fallback, which reuses the stored code instead of regenerating.
func (r *AuthRepo) UpdateChannel(ctx context.Context, codeID uuid.UUID, channel string) error {
	query := `
		UPDATE otp_codes
		SET channel = $2
		WHERE id = $1 AND is_used = false
	`

	_, err := r.db.ExecContext(ctx, query, codeID, channel)
	if err != nil {
		return fmt.Errorf("failed to update OTP channel: %w", err)
	}

	return nil
}

// DeleteExpiredCodes removes OTP codes past their expiry
func (r *AuthRepo) DeleteExpiredCodes(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM otp_codes
		WHERE expires_at < $1
	`

	res, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired OTP codes: %w", err)
	}

	return res.RowsAffected()
}
