package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/tilanet/auth-service/internal/pkg/apperr"
	"github.com/tilanet/auth-service/internal/pkg/models"
	"github.com/tilanet/auth-service/services/auth/mocks"
)

func TestRefreshToken_Rotation(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockUserRepo := mocks.NewMockUserRepo(ctrl)
	mockSessionRepo := mocks.NewMockSessionRepo(ctrl)

	userID := uuid.New()
	sessionID := uuid.New()
	oldToken := "a1b2c3"

	session := &models.Session{
		ID:           sessionID,
		UserID:       userID,
		RefreshToken: oldToken,
		IsActive:     true,
		ExpiresAt:    time.Now().Add(24 * time.Hour),
	}

	mockSessionRepo.EXPECT().
		GetSessionByRefreshToken(gomock.Any(), oldToken).
		Return(session, nil)

	// The user row is re-fetched so a changed language lands in the
	// new access token
	mockUserRepo.EXPECT().
		GetUserByID(gomock.Any(), userID).
		Return(&models.User{ID: userID, PhoneNumber: "+12345678901", PreferredLanguage: models.LanguageAmharic, IsVerified: true}, nil)

	gomock.InOrder(
		mockSessionRepo.EXPECT().
			DeactivateSession(gomock.Any(), sessionID).
			Return(nil),
		mockSessionRepo.EXPECT().
			CreateSession(gomock.Any(), gomock.Any()).
			DoAndReturn(func(ctx context.Context, newSession *models.Session) error {
				assert.NotEqual(t, oldToken, newSession.RefreshToken)
				assert.Len(t, newSession.RefreshToken, 128)
				assert.True(t, newSession.IsActive)
				return nil
			}),
	)

	uc := NewAuthUC(mockUserRepo, mocks.NewMockOTPRepo(ctrl), mockSessionRepo, mocks.NewMockSMSGW(ctrl), testConfig())

	// Act
	resp, err := uc.RefreshToken(context.Background(), oldToken)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.NotEqual(t, oldToken, resp.RefreshToken)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestRefreshToken_RejectedStates(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name    string
		session *models.Session
	}{
		{
			name:    "unknown token",
			session: nil,
		},
		{
			name: "rotated token",
			session: &models.Session{
				ID: uuid.New(), UserID: userID, IsActive: false,
				ExpiresAt: time.Now().Add(24 * time.Hour),
			},
		},
		{
			name: "expired session",
			session: &models.Session{
				ID: uuid.New(), UserID: userID, IsActive: true,
				ExpiresAt: time.Now().Add(-time.Hour),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			mockSessionRepo := mocks.NewMockSessionRepo(ctrl)
			mockSessionRepo.EXPECT().
				GetSessionByRefreshToken(gomock.Any(), "stale-token").
				Return(tt.session, nil)

			uc := NewAuthUC(mocks.NewMockUserRepo(ctrl), mocks.NewMockOTPRepo(ctrl), mockSessionRepo, mocks.NewMockSMSGW(ctrl), testConfig())

			resp, err := uc.RefreshToken(context.Background(), "stale-token")

			assert.Nil(t, resp)
			assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
		})
	}
}

func TestLogout_SingleSession(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessionRepo := mocks.NewMockSessionRepo(ctrl)

	userID := uuid.New()
	sessionID := uuid.New()

	mockSessionRepo.EXPECT().
		GetSessionByRefreshToken(gomock.Any(), "some-token").
		Return(&models.Session{ID: sessionID, UserID: userID, IsActive: true}, nil)

	mockSessionRepo.EXPECT().
		DeactivateSession(gomock.Any(), sessionID).
		Return(nil)

	uc := NewAuthUC(mocks.NewMockUserRepo(ctrl), mocks.NewMockOTPRepo(ctrl), mockSessionRepo, mocks.NewMockSMSGW(ctrl), testConfig())

	// Act
	err := uc.Logout(context.Background(), userID, "some-token")

	// Assert
	assert.NoError(t, err)
}

func TestLogout_AllSessions(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessionRepo := mocks.NewMockSessionRepo(ctrl)

	userID := uuid.New()

	mockSessionRepo.EXPECT().
		DeactivateUserSessions(gomock.Any(), userID).
		Return(nil)

	uc := NewAuthUC(mocks.NewMockUserRepo(ctrl), mocks.NewMockOTPRepo(ctrl), mockSessionRepo, mocks.NewMockSMSGW(ctrl), testConfig())

	// Act
	err := uc.Logout(context.Background(), userID, "")

	// Assert
	assert.NoError(t, err)
}

func TestLogout_TokenOwnedByAnotherUser(t *testing.T) {
	// Arrange
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockSessionRepo := mocks.NewMockSessionRepo(ctrl)

	mockSessionRepo.EXPECT().
		GetSessionByRefreshToken(gomock.Any(), "stolen-token").
		Return(&models.Session{ID: uuid.New(), UserID: uuid.New(), IsActive: true}, nil)

	uc := NewAuthUC(mocks.NewMockUserRepo(ctrl), mocks.NewMockOTPRepo(ctrl), mockSessionRepo, mocks.NewMockSMSGW(ctrl), testConfig())

	// Act
	err := uc.Logout(context.Background(), uuid.New(), "stolen-token")

	// Assert
	assert.ErrorIs(t, err, apperr.ErrInvalidOrExpiredToken)
}

func TestSupportedCountriesAndLanguages(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	uc := NewAuthUC(mocks.NewMockUserRepo(ctrl), mocks.NewMockOTPRepo(ctrl), mocks.NewMockSessionRepo(ctrl), mocks.NewMockSMSGW(ctrl), testConfig())

	countries := uc.SupportedCountries()
	assert.Len(t, countries, 10)
	assert.Equal(t, "ET", countries[0].Code)
	assert.Equal(t, "+251", countries[0].DialCode)

	languages := uc.SupportedLanguages()
	assert.Len(t, languages, 2)
	assert.Equal(t, models.LanguageEnglish, languages[0].Code)
	assert.Equal(t, models.LanguageAmharic, languages[1].Code)
}
