package auth

import "context"

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/tilanet/auth-service/services/auth SMSGW

// SMSGW defines the outbound delivery gateway for OTP codes
type SMSGW interface {
	// SendSMS delivers a text message to the phone number.
	SendSMS(ctx context.Context, phoneNumber, message string) error

	// SendVoice delivers the message as a voice call. Used as the
	// fallback channel when SMS delivery fails.
	SendVoice(ctx context.Context, phoneNumber, message string) error
}
