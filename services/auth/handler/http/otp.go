package http

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/tilanet/auth-service/internal/pkg/apperr"
	"github.com/tilanet/auth-service/internal/pkg/logger"
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/internal/utils"
	"github.com/tilanet/auth-service/services/auth"
)

// OTPHandler handles phone-keyed OTP requests
type OTPHandler struct {
	authUC auth.AuthUC
}

// NewOTPHandler creates a new OTP handler
func NewOTPHandler(authUC auth.AuthUC) *OTPHandler {
	return &OTPHandler{authUC: authUC}
}

// SendOTP delivers a fresh code to the phone number's owner
func (h *OTPHandler) SendOTP(c echo.Context) error {
	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if err := h.authUC.SendOTP(c.Request().Context(), req.PhoneNumber); err != nil {
		logger.Warn("OTP send failed",
			logger.ErrorField(err),
			logger.String("endpoint", "SendOTP"),
		)
		return utils.ErrorResponseHandler(c, apperr.StatusCode(err), apperr.Message(err))
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP sent successfully", nil)
}

// VerifyOTP checks a submitted code without issuing tokens
func (h *OTPHandler) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if err := h.authUC.VerifyOTP(c.Request().Context(), req.PhoneNumber, req.OTPCode); err != nil {
		return utils.ErrorResponseHandler(c, apperr.StatusCode(err), apperr.Message(err))
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP verified successfully", nil)
}

// ResendOTP invalidates the previous code and delivers a new one
func (h *OTPHandler) ResendOTP(c echo.Context) error {
	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return utils.BadRequestResponse(c, "Invalid request payload")
	}

	if err := h.authUC.ResendOTP(c.Request().Context(), req.PhoneNumber); err != nil {
		return utils.ErrorResponseHandler(c, apperr.StatusCode(err), apperr.Message(err))
	}

	return utils.SuccessResponse(c, http.StatusOK, "OTP resent successfully", nil)
}
