package models

import (
	"time"

	"github.com/google/uuid"
)

// OTP delivery channels
const (
	OTPChannelSMS   = "sms"
	OTPChannelVoice = "voice"
)

// OTPCode represents a one-time password challenge for phone verification
type OTPCode struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"userId" db:"user_id"`
	Code        string    `json:"-" db:"code"`
	Channel     string    `json:"channel" db:"channel"`
	PhoneNumber string    `json:"phoneNumber" db:"phone_number"`
	ExpiresAt   time.Time `json:"expiresAt" db:"expires_at"`
	IsUsed      bool      `json:"isUsed" db:"is_used"`
	Attempts    int       `json:"attempts" db:"attempts"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// IsExpired reports whether the code is past its expiry
func (o *OTPCode) IsExpired() bool {
	return !time.Now().Before(o.ExpiresAt)
}
