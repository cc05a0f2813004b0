package usecase

import (
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/services/auth"
)

// AuthUC implements the authentication usecase
type AuthUC struct {
	userRepo    auth.UserRepo
	otpRepo     auth.OTPRepo
	sessionRepo auth.SessionRepo
	smsGW       auth.SMSGW
	cfg         *models.Config
}

// NewAuthUC creates a new auth usecase instance
func NewAuthUC(
	userRepo auth.UserRepo,
	otpRepo auth.OTPRepo,
	sessionRepo auth.SessionRepo,
	smsGW auth.SMSGW,
	cfg *models.Config,
) *AuthUC {
	return &AuthUC{
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		sessionRepo: sessionRepo,
		smsGW:       smsGW,
		cfg:         cfg,
	}
}

// policy knobs with safe defaults, overridable through configuration
func (u *AuthUC) maxAttempts() int {
	if u.cfg.OTP.MaxAttempts > 0 {
		return u.cfg.OTP.MaxAttempts
	}
	return 3
}

func (u *AuthUC) otpExpiryMinutes() int {
	if u.cfg.OTP.ExpiryMinutes > 0 {
		return u.cfg.OTP.ExpiryMinutes
	}
	return 10
}

func (u *AuthUC) otpCodeLength() int {
	if u.cfg.OTP.CodeLength > 0 {
		return u.cfg.OTP.CodeLength
	}
	return 6
}

func (u *AuthUC) sessionDays() int {
	if u.cfg.OTP.SessionDays > 0 {
		return u.cfg.OTP.SessionDays
	}
	return 30
}
