package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilanet/auth-service/internal/pkg/models"
)

func TestInvalidateAndCreate(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	otp := &models.OTPCode{
		UserID:      userID,
		Code:        "123456",
		Channel:     models.OTPChannelSMS,
		PhoneNumber: "+12345678901",
		ExpiresAt:   time.Now().Add(10 * time.Minute),
	}

	// Old codes die and the new one lands inside one transaction
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE otp_codes").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec("INSERT INTO otp_codes").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.InvalidateAndCreate(context.Background(), otp)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, otp.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInvalidateAndCreate_InsertFailureRollsBack(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()
	otp := &models.OTPCode{UserID: userID, Code: "123456", Channel: models.OTPChannelSMS}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE otp_codes").
		WithArgs(userID).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO otp_codes").
		WillReturnError(errors.New("constraint violation"))
	mock.ExpectRollback()

	err := repo.InvalidateAndCreate(context.Background(), otp)

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetActiveCode(t *testing.T) {
	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock, userID uuid.UUID)
		assertFunc func(t *testing.T, otp *models.OTPCode, err error)
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock, userID uuid.UUID) {
				rows := sqlmock.NewRows([]string{
					"id", "user_id", "code", "channel", "phone_number",
					"expires_at", "is_used", "attempts", "created_at",
				}).AddRow(uuid.New(), userID, "123456", "sms", "+12345678901",
					time.Now().Add(5*time.Minute), false, 1, time.Now())
				mock.ExpectQuery("^SELECT (.+) FROM otp_codes").
					WithArgs(userID, sqlmock.AnyArg()).
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, otp *models.OTPCode, err error) {
				assert.NoError(t, err)
				require.NotNil(t, otp)
				assert.Equal(t, "123456", otp.Code)
				assert.Equal(t, 1, otp.Attempts)
				assert.False(t, otp.IsUsed)
			},
		},
		{
			name: "No active code returns nil without error",
			mockSetup: func(mock sqlmock.Sqlmock, userID uuid.UUID) {
				mock.ExpectQuery("^SELECT (.+) FROM otp_codes").
					WithArgs(userID, sqlmock.AnyArg()).
					WillReturnError(sql.ErrNoRows)
			},
			assertFunc: func(t *testing.T, otp *models.OTPCode, err error) {
				assert.NoError(t, err)
				assert.Nil(t, otp)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupAuthRepoTest(t)
			defer cleanup()

			userID := uuid.New()
			tc.mockSetup(mock, userID)

			otp, err := repo.GetActiveCode(context.Background(), userID)

			tc.assertFunc(t, otp, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestIncrementActiveAttempts(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()

	mock.ExpectExec("UPDATE otp_codes").
		WithArgs(userID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.IncrementActiveAttempts(context.Background(), userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestConsumeCode(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	codeID := uuid.New()
	userID := uuid.New()

	// Code consumption and user activation commit together
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE otp_codes").
		WithArgs(codeID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users").
		WithArgs(userID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.ConsumeCode(context.Background(), codeID, userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateChannel(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	codeID := uuid.New()

	mock.ExpectExec("UPDATE otp_codes").
		WithArgs(codeID, models.OTPChannelVoice).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.UpdateChannel(context.Background(), codeID, models.OTPChannelVoice)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredCodes(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM otp_codes").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	deleted, err := repo.DeleteExpiredCodes(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(3), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
