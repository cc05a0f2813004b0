package auth

import (
	"context"

	"github.com/google/uuid"
	"github.com/tilanet/auth-service/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/tilanet/auth-service/services/auth AuthUC

// AuthUC represents the authentication usecase interface
type AuthUC interface {
	// account lifecycle
	Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error)
	Signin(ctx context.Context, req *models.SigninRequest, deviceInfo, ipAddress string) (*models.AuthResponse, error)
	VerifyAndActivate(ctx context.Context, phoneNumber, otpCode, deviceInfo, ipAddress string) (*models.AuthResponse, error)

	// session management
	RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error

	// profile
	UpdateLanguage(ctx context.Context, userID uuid.UUID, language string) error

	// phone-keyed OTP operations
	SendOTP(ctx context.Context, phoneNumber string) error
	VerifyOTP(ctx context.Context, phoneNumber, otpCode string) error
	ResendOTP(ctx context.Context, phoneNumber string) error

	// reference data
	SupportedCountries() []models.CountryCode
	SupportedLanguages() []models.LanguageOption

	// maintenance
	CleanupExpired(ctx context.Context) error
}
