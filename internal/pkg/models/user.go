package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account holder identified by phone number
type User struct {
	ID                uuid.UUID `json:"id" db:"id"`
	PhoneNumber       string    `json:"phoneNumber" db:"phone_number"`
	CountryCode       string    `json:"countryCode" db:"country_code"`
	Password          string    `json:"-" db:"password"`
	FirstName         string    `json:"firstName" db:"first_name"`
	LastName          string    `json:"lastName" db:"last_name"`
	PreferredLanguage string    `json:"preferredLanguage" db:"preferred_language"`
	IsVerified        bool      `json:"isVerified" db:"is_verified"`
	CreatedAt         time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt         time.Time `json:"updatedAt" db:"updated_at"`
}

// Session represents a refresh-token grant persisted server side
type Session struct {
	ID           uuid.UUID `json:"id" db:"id"`
	UserID       uuid.UUID `json:"userId" db:"user_id"`
	RefreshToken string    `json:"-" db:"refresh_token"`
	DeviceInfo   *string   `json:"deviceInfo,omitempty" db:"device_info"`
	IPAddress    *string   `json:"ipAddress,omitempty" db:"ip_address"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	ExpiresAt    time.Time `json:"expiresAt" db:"expires_at"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// IsExpired reports whether the session's refresh token is past its expiry
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}
