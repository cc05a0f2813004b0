package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tilanet/auth-service/internal/pkg/apperr"
	"github.com/tilanet/auth-service/internal/pkg/logger"
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/internal/utils"
)

const minPasswordLength = 8

// Signup creates an unverified account and triggers OTP delivery.
// Tokens are never issued here; the account must verify first.
func (u *AuthUC) Signup(ctx context.Context, req *models.SignupRequest) (*models.User, error) {
	phone, country, err := validateSignupRequest(req)
	if err != nil {
		return nil, err
	}

	existing, err := u.userRepo.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if existing != nil {
		return nil, apperr.ErrAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	language := req.PreferredLanguage
	if language == "" {
		language = models.LanguageEnglish
	}

	user := &models.User{
		PhoneNumber:       phone,
		CountryCode:       country.Code,
		Password:          string(hashed),
		FirstName:         strings.TrimSpace(req.FirstName),
		LastName:          strings.TrimSpace(req.LastName),
		PreferredLanguage: language,
		IsVerified:        u.cfg.App.SkipVerification,
	}

	if err := u.userRepo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	if u.cfg.App.SkipVerification {
		logger.WarnCtx(ctx, "Verification skipped for new signup",
			logger.String("user_id", user.ID.String()))
		return user, nil
	}

	if err := u.sendOTP(ctx, user); err != nil {
		// The account exists; delivery can be retried via resend
		logger.ErrorCtx(ctx, "OTP delivery after signup failed",
			logger.String("user_id", user.ID.String()),
			logger.Err(err))
	}

	logger.InfoCtx(ctx, "User signed up",
		logger.String("user_id", user.ID.String()),
		logger.String("phone", utils.MaskPhoneNumber(user.PhoneNumber)))

	return user, nil
}

// VerifyAndActivate verifies the OTP, flips the account to verified and
// issues the first token pair.
func (u *AuthUC) VerifyAndActivate(ctx context.Context, phoneNumber, otpCode, deviceInfo, ipAddress string) (*models.AuthResponse, error) {
	user, err := u.lookupUserByPhone(ctx, phoneNumber)
	if err != nil {
		return nil, err
	}

	if err := u.verifyOTP(ctx, user, otpCode); err != nil {
		return nil, err
	}

	// ConsumeCode flipped the row; reflect it without a re-read
	user.IsVerified = true

	resp, err := u.issueTokens(ctx, user, deviceInfo, ipAddress)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "User verified and activated",
		logger.String("user_id", user.ID.String()))

	return resp, nil
}

// Signin performs password login for verified accounts. Unknown phone
// and wrong password return the same error to prevent enumeration.
func (u *AuthUC) Signin(ctx context.Context, req *models.SigninRequest, deviceInfo, ipAddress string) (*models.AuthResponse, error) {
	phone, err := utils.NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid phone number", apperr.ErrValidationFailed)
	}

	user, err := u.userRepo.GetUserByPhone(ctx, phone)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if user == nil {
		return nil, apperr.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, apperr.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return nil, apperr.ErrNotVerified
	}

	resp, err := u.issueTokens(ctx, user, deviceInfo, ipAddress)
	if err != nil {
		return nil, err
	}

	logger.InfoCtx(ctx, "User signed in",
		logger.String("user_id", user.ID.String()))

	return resp, nil
}

// UpdateLanguage changes the caller's preferred language
func (u *AuthUC) UpdateLanguage(ctx context.Context, userID uuid.UUID, language string) error {
	if !isSupportedLanguage(language) {
		return fmt.Errorf("%w: unsupported language", apperr.ErrValidationFailed)
	}

	user, err := u.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}
	if user == nil {
		return apperr.ErrNotFound
	}

	if err := u.userRepo.UpdatePreferredLanguage(ctx, userID, language); err != nil {
		return fmt.Errorf("%w: %v", apperr.ErrInternal, err)
	}

	return nil
}

func validateSignupRequest(req *models.SignupRequest) (string, models.CountryCode, error) {
	country, ok := lookupCountry(req.CountryCode)
	if !ok {
		return "", models.CountryCode{}, fmt.Errorf("%w: unsupported country code", apperr.ErrValidationFailed)
	}

	phone, err := utils.NormalizePhoneNumber(req.PhoneNumber)
	if err != nil {
		return "", models.CountryCode{}, fmt.Errorf("%w: invalid phone number", apperr.ErrValidationFailed)
	}
	if !utils.ValidatePhoneForCountry(phone, country.Code, country.DialCode) {
		return "", models.CountryCode{}, fmt.Errorf("%w: phone number does not match country", apperr.ErrValidationFailed)
	}

	if len(req.Password) < minPasswordLength {
		return "", models.CountryCode{}, fmt.Errorf("%w: password must be at least %d characters", apperr.ErrValidationFailed, minPasswordLength)
	}

	if req.PreferredLanguage != "" && !isSupportedLanguage(req.PreferredLanguage) {
		return "", models.CountryCode{}, fmt.Errorf("%w: unsupported language", apperr.ErrValidationFailed)
	}

	return phone, country, nil
}
