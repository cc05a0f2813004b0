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

// CreateUser creates a new user in the database
func (r *AuthRepo) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	query := `
		INSERT INTO users (
			id, phone_number, country_code, password, first_name, last_name,
			preferred_language, is_verified, created_at, updated_at
		) VALUES (
			:id, :phone_number, :country_code, :password, :first_name, :last_name,
			:preferred_language, :is_verified, :created_at, :updated_at
		)
	`
	_, err := r.db.NamedExecContext(ctx, query, user)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetUserByPhone retrieves a user by phone number
func (r *AuthRepo) GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	query := `
		SELECT id, phone_number, country_code, password, first_name, last_name,
			preferred_language, is_verified, created_at, updated_at
		FROM users
		WHERE phone_number = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, phoneNumber)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID
func (r *AuthRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, phone_number, country_code, password, first_name, last_name,
			preferred_language, is_verified, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.GetContext(ctx, &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}

// MarkUserVerified flips the user's verification flag
func (r *AuthRepo) MarkUserVerified(ctx context.Context, id uuid.UUID) error {
	query := `
		UPDATE users
		SET is_verified = true, updated_at = $2
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, time.Now())
	if err != nil {
		return fmt.Errorf("failed to mark user verified: %w", err)
	}

	return nil
}

// UpdatePreferredLanguage updates the user's preferred language
func (r *AuthRepo) UpdatePreferredLanguage(ctx context.Context, id uuid.UUID, language string) error {
	query := `
		UPDATE users
		SET preferred_language = $2, updated_at = $3
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query, id, language, time.Now())
	if err != nil {
		return fmt.Errorf("failed to update preferred language: %w", err)
	}

	return nil
}
