package repository

import (
	"github.com/jmoiron/sqlx"
	"github.com/tilanet/auth-service/internal/pkg/models"
)

// AuthRepo implements the user, OTP and session repository interfaces
// over a shared PostgreSQL handle.
type AuthRepo struct {
	cfg *models.Config
	db  *sqlx.DB
}

// NewAuthRepo creates a new auth repository instance
func NewAuthRepo(cfg *models.Config, db *sqlx.DB) *AuthRepo {
	return &AuthRepo{
		cfg: cfg,
		db:  db,
	}
}
