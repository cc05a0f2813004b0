package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tilanet/auth-service/internal/pkg/apperr"
	"github.com/tilanet/auth-service/internal/pkg/logger"
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/internal/utils"
)

// SendOTP generates and delivers a new OTP for the user owning the phone number
func (u *AuthUC) SendOTP(ctx context.Context, phoneNumber string) error {
	user, err := u.lookupUserByPhone(ctx, phoneNumber)
	if err != nil {
		return err
	}
	return u.sendOTP(ctx, user)
}

// VerifyOTP checks a submitted code for the user owning the phone number
func (u *AuthUC) VerifyOTP(ctx context.Context, phoneNumber, otpCode string) error {
	user, err := u.lookupUserByPhone(ctx, phoneNumber)
	if err != nil {
		return err
	}
	return u.verifyOTP(ctx, user, otpCode)
}

// ResendOTP invalidates the previous code and delivers a fresh one
func (u *AuthUC) ResendOTP(ctx context.Context, phoneNumber string) error {
	user, err := u.lookupUserByPhone(ctx, phoneNumber)
	if err != nil {
		return err
	}
	// sendOTP re-checks the attempts gate and invalidates prior codes
	return u.sendOTP(ctx, user)
}

func (u *AuthUC) lookupUserByPhone(ctx context.Context, phoneNumber string) (*models.User, error) {
	normalized, err := utils.NormalizePhoneNumber(phoneNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid phone number", apperr.ErrValidationFailed)
	}

	user, err := u.userRepo.GetUserByPhone(ctx, normalized)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if user == nil {
		return nil, apperr.ErrNotFound
	}
	return user, nil
}

// sendOTP is the OTP engine's issue path: gate on exhausted attempts,
// invalidate older codes, store a fresh one, then trigger delivery.
// Delivery failure never rolls back the stored code.
func (u *AuthUC) sendOTP(ctx context.Context, user *models.User) error {
	active, err := u.otpRepo.GetActiveCode(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if active != nil && active.Attempts >= u.maxAttempts() {
		return apperr.ErrTooManyAttempts
	}

	code, err := utils.GenerateNumericCode(u.otpCodeLength())
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	otp := &models.OTPCode{
		UserID:      user.ID,
		Code:        code,
		Channel:     models.OTPChannelSMS,
		PhoneNumber: user.PhoneNumber,
		ExpiresAt:   time.Now().Add(time.Duration(u.otpExpiryMinutes()) * time.Minute),
		IsUsed:      false,
		Attempts:    0,
	}

	if err := u.otpRepo.InvalidateAndCreate(ctx, otp); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	message := fmt.Sprintf("Your Tilanet verification code is: %s. Valid for %d minutes.",
		code, u.otpExpiryMinutes())

	if err := u.smsGW.SendSMS(ctx, user.PhoneNumber, message); err != nil {
		logger.WarnCtx(ctx, "SMS delivery failed, falling back to voice",
			logger.String("phone", utils.MaskPhoneNumber(user.PhoneNumber)),
			logger.Err(err))

		// The stored code is reused for the voice call, never regenerated
		if err := u.otpRepo.UpdateChannel(ctx, otp.ID, models.OTPChannelVoice); err != nil {
			return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
		}
		if err := u.smsGW.SendVoice(ctx, user.PhoneNumber, message); err != nil {
			logger.ErrorCtx(ctx, "Voice delivery failed",
				logger.String("phone", utils.MaskPhoneNumber(user.PhoneNumber)),
				logger.Err(err))
			return fmt.Errorf("%w: failed to deliver OTP", apperr.ErrInternal)
		}
	}

	logger.InfoCtx(ctx, "OTP issued",
		logger.String("user_id", user.ID.String()),
		logger.String("phone", utils.MaskPhoneNumber(user.PhoneNumber)))

	return nil
}

// verifyOTP is the OTP engine's check path. The candidate is read before
// the unconditional attempt increment, and the increment runs on every
// call before any branch so all outcomes touch the same row.
func (u *AuthUC) verifyOTP(ctx context.Context, user *models.User, submittedCode string) error {
	code := strings.TrimSpace(submittedCode)

	candidate, err := u.otpRepo.GetActiveCode(ctx, user.ID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	if err := u.otpRepo.IncrementActiveAttempts(ctx, user.ID); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	// Wrong, expired and already-used codes all collapse to the same
	// generic failure so callers cannot probe code state.
	if candidate == nil {
		return apperr.ErrInvalidCode
	}

	if candidate.Attempts >= u.maxAttempts() {
		return apperr.ErrTooManyAttempts
	}

	if candidate.Code != code {
		return apperr.ErrInvalidCode
	}

	if err := u.otpRepo.ConsumeCode(ctx, candidate.ID, user.ID); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	logger.InfoCtx(ctx, "OTP verified",
		logger.String("user_id", user.ID.String()))

	return nil
}

// CleanupExpired removes OTP codes and sessions past their expiry.
// Exposed as on-demand maintenance; there is no background sweeper.
func (u *AuthUC) CleanupExpired(ctx context.Context) error {
	codes, err := u.otpRepo.DeleteExpiredCodes(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	sessions, err := u.sessionRepo.DeleteExpiredSessions(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	logger.InfoCtx(ctx, "Expired rows cleaned up",
		logger.Int64("otp_codes", codes),
		logger.Int64("sessions", sessions))

	return nil
}
