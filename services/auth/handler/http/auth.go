package http

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/tilanet/auth-service/internal/pkg/apperr"
	"github.com/tilanet/auth-service/internal/pkg/logger"
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/internal/utils"
	"github.com/tilanet/auth-service/services/auth"
)

// AuthHandler handles HTTP requests for account and session operations
type AuthHandler struct {
	authUC auth.AuthUC
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUC auth.AuthUC) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Signup handles account creation requests
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	user, err := h.authUC.Signup(c.Request().Context(), &req)
	if err != nil {
		logger.Warn("Signup failed",
			logger.ErrorField(err),
			logger.String("endpoint", "Signup"),
		)
		return utils.ErrorResponseHandler(c, apperr.StatusCode(err), apperr.Message(err))
	}

	return utils.SuccessResponse(c, http.StatusCreated, "Account created successfully", user)
}

// VerifyOTP handles verification of a signup OTP and issues the first token pair
func (h *AuthHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.authUC.VerifyAndActivate(c.Request().Context(), req.PhoneNumber, req.OTPCode, deviceInfo(c), c.RealIP())
	if err != nil {
		logger.Warn("OTP verification failed",
			logger.ErrorField(err),
			logger.String("endpoint", "VerifyOTP"),
		)
		return utils.ErrorResponseHandler(c, apperr.StatusCode(err), apperr.Message(err))
	}

	return utils.SuccessResponse(c, http.StatusOK, "Account verified successfully", resp)
}

// Signin handles password login requests
func (h *AuthHandler) Signin(c echo.Context) error {
	var req models.SigninRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.authUC.Signin(c.Request().Context(), &req, deviceInfo(c), c.RealIP())
	if err != nil {
		logger.Warn("Signin failed",
			logger.ErrorField(err),
			logger.String("endpoint", "Signin"),
		)
		return utils.ErrorResponseHandler(c, apperr.StatusCode(err), apperr.Message(err))
	}

	return utils.SuccessResponse(c, http.StatusOK, "Signed in successfully", resp)
}

// RefreshToken handles refresh-token rotation requests
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req models.RefreshTokenRequest
	if err := c.Bind(&req); err != nil || req.RefreshToken == "" {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	resp, err := h.authUC.RefreshToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		return utils.ErrorResponseHandler(c, apperr.StatusCode(err), apperr.Message(err))
	}

	return utils.SuccessResponse(c, http.StatusOK, "Token refreshed successfully", resp)
}

// Logout revokes the caller's session, or every session when no
// refresh token is supplied
func (h *AuthHandler) Logout(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return utils.UnauthorizedResponse(c, "Invalid token")
	}

	var req models.LogoutRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if err := h.authUC.Logout(c.Request().Context(), userID, req.RefreshToken); err != nil {
		return utils.ErrorResponseHandler(c, apperr.StatusCode(err), apperr.Message(err))
	}

	return utils.SuccessResponse(c, http.StatusOK, "Logged out successfully", nil)
}

// UpdateLanguage updates the caller's preferred language
func (h *AuthHandler) UpdateLanguage(c echo.Context) error {
	userID, ok := c.Get("user_id").(uuid.UUID)
	if !ok {
		return utils.UnauthorizedResponse(c, "Invalid token")
	}

	var req models.UpdateLanguageRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if err := h.authUC.UpdateLanguage(c.Request().Context(), userID, req.PreferredLanguage); err != nil {
		return utils.ErrorResponseHandler(c, apperr.StatusCode(err), apperr.Message(err))
	}

	return utils.SuccessResponse(c, http.StatusOK, "Language updated successfully", nil)
}

// GetCountries returns the supported signup countries
func (h *AuthHandler) GetCountries(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Countries retrieved successfully", h.authUC.SupportedCountries())
}

// GetLanguages returns the supported interface languages
func (h *AuthHandler) GetLanguages(c echo.Context) error {
	return utils.SuccessResponse(c, http.StatusOK, "Languages retrieved successfully", h.authUC.SupportedLanguages())
}

func deviceInfo(c echo.Context) string {
	return c.Request().UserAgent()
}
