package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/tilanet/auth-service/internal/pkg/apperr"
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/services/auth/mocks"
)

func newTestContext(method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestSignupHandler_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	authHandler := NewAuthHandler(mockAuthUC)

	requestBody := `{"phoneNumber": "+12345678901", "countryCode": "US", "password": "password123", "firstName": "Abel"}`
	c, rec := newTestContext(http.MethodPost, "/api/auth/signup", requestBody)

	mockAuthUC.EXPECT().
		Signup(gomock.Any(), gomock.Any()).
		Return(&models.User{ID: uuid.New(), PhoneNumber: "+12345678901", IsVerified: false}, nil)

	// Act
	err := authHandler.Signup(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var response map[string]interface{}
	err = json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Account created successfully", response["message"])

	data := response["data"].(map[string]interface{})
	assert.Equal(t, false, data["isVerified"])
	assert.NotContains(t, data, "password", "password is never serialized")
}

func TestSignupHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		ucErr      error
		wantStatus int
	}{
		{"duplicate phone", apperr.ErrAlreadyExists, http.StatusConflict},
		{"validation failure", apperr.ErrValidationFailed, http.StatusBadRequest},
		{"infrastructure failure", apperr.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuthUC := mocks.NewMockAuthUC(ctrl)
			authHandler := NewAuthHandler(mockAuthUC)

			requestBody := `{"phoneNumber": "+12345678901", "countryCode": "US", "password": "password123"}`
			c, rec := newTestContext(http.MethodPost, "/api/auth/signup", requestBody)

			mockAuthUC.EXPECT().
				Signup(gomock.Any(), gomock.Any()).
				Return(nil, tt.ucErr)

			err := authHandler.Signup(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var response map[string]interface{}
			assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
			assert.Equal(t, false, response["success"])
		})
	}
}

func TestVerifyOTPHandler_Success(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	authHandler := NewAuthHandler(mockAuthUC)

	requestBody := `{"phoneNumber": "+12345678901", "otpCode": "123456"}`
	c, rec := newTestContext(http.MethodPost, "/api/auth/verify-otp", requestBody)

	mockAuthUC.EXPECT().
		VerifyAndActivate(gomock.Any(), "+12345678901", "123456", gomock.Any(), gomock.Any()).
		Return(&models.AuthResponse{
			User:         &models.User{ID: uuid.New(), IsVerified: true},
			AccessToken:  "access-token",
			RefreshToken: "refresh-token",
			ExpiresIn:    3600,
		}, nil)

	// Act
	err := authHandler.VerifyOTP(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data := response["data"].(map[string]interface{})
	assert.Equal(t, "access-token", data["accessToken"])
	assert.Equal(t, "refresh-token", data["refreshToken"])
}

func TestVerifyOTPHandler_InvalidCode(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	authHandler := NewAuthHandler(mockAuthUC)

	requestBody := `{"phoneNumber": "+12345678901", "otpCode": "999999"}`
	c, rec := newTestContext(http.MethodPost, "/api/auth/verify-otp", requestBody)

	mockAuthUC.EXPECT().
		VerifyAndActivate(gomock.Any(), "+12345678901", "999999", gomock.Any(), gomock.Any()).
		Return(nil, apperr.ErrInvalidCode)

	// Act
	err := authHandler.VerifyOTP(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Equal(t, "invalid OTP code", response["error"])
}

func TestSigninHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		ucErr      error
		wantStatus int
	}{
		{"wrong credentials", apperr.ErrInvalidCredentials, http.StatusUnauthorized},
		{"unverified account", apperr.ErrNotVerified, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockAuthUC := mocks.NewMockAuthUC(ctrl)
			authHandler := NewAuthHandler(mockAuthUC)

			requestBody := `{"phoneNumber": "+12345678901", "password": "password123"}`
			c, rec := newTestContext(http.MethodPost, "/api/auth/signin", requestBody)

			mockAuthUC.EXPECT().
				Signin(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
				Return(nil, tt.ucErr)

			err := authHandler.Signin(c)

			assert.NoError(t, err)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}

func TestRefreshTokenHandler(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	authHandler := NewAuthHandler(mockAuthUC)

	requestBody := `{"refreshToken": "old-token"}`
	c, rec := newTestContext(http.MethodPost, "/api/auth/refresh-token", requestBody)

	mockAuthUC.EXPECT().
		RefreshToken(gomock.Any(), "old-token").
		Return(&models.AuthResponse{AccessToken: "new-access", RefreshToken: "new-refresh"}, nil)

	// Act
	err := authHandler.RefreshToken(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRefreshTokenHandler_MissingToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authHandler := NewAuthHandler(mocks.NewMockAuthUC(ctrl))

	c, rec := newTestContext(http.MethodPost, "/api/auth/refresh-token", `{}`)

	err := authHandler.RefreshToken(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRefreshTokenHandler_Rotated(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	authHandler := NewAuthHandler(mockAuthUC)

	requestBody := `{"refreshToken": "already-rotated"}`
	c, rec := newTestContext(http.MethodPost, "/api/auth/refresh-token", requestBody)

	mockAuthUC.EXPECT().
		RefreshToken(gomock.Any(), "already-rotated").
		Return(nil, apperr.ErrInvalidOrExpiredToken)

	// Act
	err := authHandler.RefreshToken(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestLogoutHandler(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	authHandler := NewAuthHandler(mockAuthUC)

	userID := uuid.New()
	c, rec := newTestContext(http.MethodPost, "/api/auth/logout", `{"refreshToken": "some-token"}`)
	c.Set("user_id", userID)

	mockAuthUC.EXPECT().
		Logout(gomock.Any(), userID, "some-token").
		Return(nil)

	// Act
	err := authHandler.Logout(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestLogoutHandler_MissingIdentity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	authHandler := NewAuthHandler(mocks.NewMockAuthUC(ctrl))

	c, rec := newTestContext(http.MethodPost, "/api/auth/logout", `{}`)

	err := authHandler.Logout(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpdateLanguageHandler(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	authHandler := NewAuthHandler(mockAuthUC)

	userID := uuid.New()
	c, rec := newTestContext(http.MethodPut, "/api/auth/language", `{"preferredLanguage": "am"}`)
	c.Set("user_id", userID)

	mockAuthUC.EXPECT().
		UpdateLanguage(gomock.Any(), userID, "am").
		Return(nil)

	// Act
	err := authHandler.UpdateLanguage(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestGetCountriesHandler(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAuthUC := mocks.NewMockAuthUC(ctrl)
	authHandler := NewAuthHandler(mockAuthUC)

	c, rec := newTestContext(http.MethodGet, "/api/auth/countries", "")

	mockAuthUC.EXPECT().
		SupportedCountries().
		Return([]models.CountryCode{{Code: "ET", Name: "Ethiopia", DialCode: "+251"}})

	// Act
	err := authHandler.GetCountries(c)

	// Assert
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var response map[string]interface{}
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	data := response["data"].([]interface{})
	assert.Len(t, data, 1)
}
