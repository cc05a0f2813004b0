package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilanet/auth-service/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/tilanet/auth-service/services/auth UserRepo,OTPRepo,SessionRepo

// UserRepo defines persistence operations on the users table.
// Lookup methods return (nil, nil) when no row matches.
type UserRepo interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	MarkUserVerified(ctx context.Context, id uuid.UUID) error
	UpdatePreferredLanguage(ctx context.Context, id uuid.UUID, language string) error
}

// OTPRepo defines persistence operations on the otp_codes table
type OTPRepo interface {
	// InvalidateAndCreate marks every unused code for the owning user as
	// used and inserts the new code, in a single transaction.
	InvalidateAndCreate(ctx context.Context, otp *models.OTPCode) error

	// GetActiveCode returns the oldest unused, unexpired code for the
	// user, or (nil, nil) when none exists.
	GetActiveCode(ctx context.Context, userID uuid.UUID) (*models.OTPCode, error)

	// IncrementActiveAttempts bumps the attempt counter on the user's
	// unused, unexpired codes.
	IncrementActiveAttempts(ctx context.Context, userID uuid.UUID) error

	// ConsumeCode marks the code used and the owning user verified in a
	// single transaction.
	ConsumeCode(ctx context.Context, codeID, userID uuid.UUID) error

	// UpdateChannel switches the delivery channel of an unused code.
	UpdateChannel(ctx context.Context, codeID uuid.UUID, channel string) error

	// DeleteExpiredCodes removes codes past their expiry and reports how many.
	DeleteExpiredCodes(ctx context.Context) (int64, error)
}

// SessionRepo defines persistence operations on the sessions table.
// Lookup methods return (nil, nil) when no row matches.
type SessionRepo interface {
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByRefreshToken(ctx context.Context, refreshToken string) (*models.Session, error)
	DeactivateSession(ctx context.Context, id uuid.UUID) error
	DeactivateUserSessions(ctx context.Context, userID uuid.UUID) error
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}
