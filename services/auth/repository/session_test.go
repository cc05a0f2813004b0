package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tilanet/auth-service/internal/pkg/models"
)

func TestCreateSession(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	session := &models.Session{
		UserID:       uuid.New(),
		RefreshToken: "abc123",
		IsActive:     true,
		ExpiresAt:    time.Now().AddDate(0, 0, 30),
	}

	mock.ExpectExec("INSERT INTO sessions").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.CreateSession(context.Background(), session)

	assert.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, session.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetSessionByRefreshToken(t *testing.T) {
	testCases := []struct {
		name       string
		mockSetup  func(mock sqlmock.Sqlmock)
		assertFunc func(t *testing.T, session *models.Session, err error)
	}{
		{
			name: "Success",
			mockSetup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows([]string{
					"id", "user_id", "refresh_token", "device_info", "ip_address",
					"is_active", "expires_at", "created_at", "updated_at",
				}).AddRow(uuid.New(), uuid.New(), "abc123", nil, nil,
					true, time.Now().Add(24*time.Hour), time.Now(), time.Now())
				mock.ExpectQuery("^SELECT (.+) FROM sessions").
					WithArgs("abc123").
					WillReturnRows(rows)
			},
			assertFunc: func(t *testing.T, session *models.Session, err error) {
				assert.NoError(t, err)
				require.NotNil(t, session)
				assert.Equal(t, "abc123", session.RefreshToken)
				assert.True(t, session.IsActive)
				assert.Nil(t, session.DeviceInfo)
			},
		},
		{
			name: "Unknown token returns nil without error",
			mockSetup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("^SELECT (.+) FROM sessions").
					WithArgs("abc123").
					WillReturnError(sql.ErrNoRows)
			},
			assertFunc: func(t *testing.T, session *models.Session, err error) {
				assert.NoError(t, err)
				assert.Nil(t, session)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo, mock, cleanup := setupAuthRepoTest(t)
			defer cleanup()

			tc.mockSetup(mock)

			session, err := repo.GetSessionByRefreshToken(context.Background(), "abc123")

			tc.assertFunc(t, session, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDeactivateSession(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	sessionID := uuid.New()

	mock.ExpectExec("UPDATE sessions").
		WithArgs(sessionID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.DeactivateSession(context.Background(), sessionID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateUserSessions(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	userID := uuid.New()

	mock.ExpectExec("UPDATE sessions").
		WithArgs(userID, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.DeactivateUserSessions(context.Background(), userID)

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteExpiredSessions(t *testing.T) {
	repo, mock, cleanup := setupAuthRepoTest(t)
	defer cleanup()

	mock.ExpectExec("DELETE FROM sessions").
		WithArgs(sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 2))

	deleted, err := repo.DeleteExpiredSessions(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, int64(2), deleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}
