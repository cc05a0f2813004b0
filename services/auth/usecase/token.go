package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tilanet/auth-service/internal/pkg/apperr"
	"github.com/tilanet/auth-service/internal/pkg/jwt"
	"github.com/tilanet/auth-service/internal/pkg/logger"
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/internal/utils"
)

const refreshTokenHexLength = 128

// issueTokens mints an access JWT and an opaque refresh token, persists
// the refresh token as a new session row and returns the pair.
func (u *AuthUC) issueTokens(ctx context.Context, user *models.User, deviceInfo, ipAddress string) (*models.AuthResponse, error) {
	accessToken, expiresIn, err := jwt.GenerateToken(user.ID, user.PhoneNumber, user.PreferredLanguage, u.cfg.JWT)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	refreshToken, err := utils.GenerateRandomHex(refreshTokenHexLength)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: refreshToken,
		IsActive:     true,
		ExpiresAt:    time.Now().AddDate(0, 0, u.sessionDays()),
	}
	if deviceInfo != "" {
		session.DeviceInfo = &deviceInfo
	}
	if ipAddress != "" {
		session.IPAddress = &ipAddress
	}

	if err := u.sessionRepo.CreateSession(ctx, session); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	return &models.AuthResponse{
		User:         user,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

// RefreshToken rotates a refresh token: the presented token's session is
// deactivated and a new session with a fresh token pair is issued. A
// token that is unknown, inactive or expired fails without distinction.
func (u *AuthUC) RefreshToken(ctx context.Context, refreshToken string) (*models.AuthResponse, error) {
	session, err := u.sessionRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if session == nil || !session.IsActive || session.IsExpired() {
		return nil, apperr.ErrInvalidOrExpiredToken
	}

	user, err := u.userRepo.GetUserByID(ctx, session.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if user == nil {
		return nil, apperr.ErrInvalidOrExpiredToken
	}

	// Single use: the old session dies before the replacement is minted
	if err := u.sessionRepo.DeactivateSession(ctx, session.ID); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	deviceInfo := ""
	if session.DeviceInfo != nil {
		deviceInfo = *session.DeviceInfo
	}
	ipAddress := ""
	if session.IPAddress != nil {
		ipAddress = *session.IPAddress
	}

	resp, err := u.issueTokens(ctx, user, deviceInfo, ipAddress)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "Refresh token rotated",
		logger.String("user_id", user.ID.String()))

	return resp, nil
}

// Logout deactivates the session holding the refresh token. With an
// empty token every session of the user is deactivated instead.
func (u *AuthUC) Logout(ctx context.Context, userID uuid.UUID, refreshToken string) error {
	if refreshToken == "" {
		if err := u.sessionRepo.DeactivateUserSessions(ctx, userID); err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
		}
		logger.InfoCtx(ctx, "All sessions deactivated",
			logger.String("user_id", userID.String()))
		return nil
	}

	session, err := u.sessionRepo.GetSessionByRefreshToken(ctx, refreshToken)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if session == nil || session.UserID != userID {
		return apperr.ErrInvalidOrExpiredToken
	}

	if err := u.sessionRepo.DeactivateSession(ctx, session.ID); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	logger.InfoCtx(ctx, "Session deactivated",
		logger.String("user_id", userID.String()))

	return nil
}
