package models

// SignupRequest represents a request to create a new account
type SignupRequest struct {
	PhoneNumber       string `json:"phoneNumber"`
	CountryCode       string `json:"countryCode"`
	Password          string `json:"password"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	PreferredLanguage string `json:"preferredLanguage"`
}

// SigninRequest represents a password login request
type SigninRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password"`
}

// VerifyOTPRequest represents a request to verify an OTP code
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	OTPCode     string `json:"otpCode"`
}

// SendOTPRequest represents a request to send or resend an OTP
type SendOTPRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// RefreshTokenRequest represents a token rotation request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// LogoutRequest optionally targets a single session
type LogoutRequest struct {
	RefreshToken string `json:"refreshToken,omitempty"`
}

// UpdateLanguageRequest updates the caller's preferred language
type UpdateLanguageRequest struct {
	PreferredLanguage string `json:"preferredLanguage"`
}

// AuthResponse represents the response after successful authentication
type AuthResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"` // access-token TTL in seconds
}
