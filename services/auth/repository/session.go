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

// CreateSession creates a new refresh-token session
func (r *AuthRepo) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	now := time.Now()
	session.CreatedAt = now
	session.UpdatedAt = now

	query := `
		INSERT INTO sessions (
			id, user_id, refresh_token, device_info, ip_address,
			is_active, expires_at, created_at, updated_at
		) VALUES (
			:id, :user_id, :refresh_token, :device_info, :ip_address,
			:is_active, :expires_at, :created_at, :updated_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, session)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// GetSessionByRefreshToken retrieves a session by its refresh token
func (r *AuthRepo) GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	query := `
		SELECT id, user_id, refresh_token, device_info, ip_address,
			is_active, expires_at, created_at, updated_at
		FROM sessions
		WHERE refresh_token = $1
	`

	var session models.Session
	err := r.db.GetContext(ctx, &session, query, refreshToken)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	return &session, nil
}

// DeactivateSession deactivates a single session by id. Rows are never
// deleted here; deletion is reserved for the expiry sweep.
func (r *AuthRepo) DeactivateSession(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE sessions
		SET is_active = false, updated_at = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to deactivate session: %w", err)
	}

	return nil
}

// DeactivateUserSessions deactivates every active session for a user
func (r *AuthRepo) DeactivateUserSessions(ctx context.Context, userID uuid.UUID) error {
	query := `
		UPDATE sessions
		SET is_active = false, updated_at = $2
		WHERE user_id = $1 AND is_active = true
	`

	_, err := r.db.ExecContext(ctx, query, userID, time.Now())
	if err != nil {
		return fmt.Errorf("failed to deactivate user sessions: %w", err)
	}

	return nil
}

// DeleteExpiredSessions removes sessions past their expiry
func (r *AuthRepo) DeleteExpiredSessions(ctx context.Context) (int64, error) {
	query := `
		DELETE FROM sessions
		WHERE expires_at < $1
	`

	res, err := r.db.ExecContext(ctx, query, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}

	return res.RowsAffected()
}
