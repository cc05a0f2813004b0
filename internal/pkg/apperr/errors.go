// Package apperr defines the closed set of domain errors surfaced by the
// auth service. Handlers match these with errors.Is and map them to HTTP
// status codes; anything outside the set is treated as internal.
package apperr

import (
	"errors"
	"net/http"
)

var (
	// ErrAlreadyExists is returned when a signup reuses a registered phone number.
	ErrAlreadyExists = errors.New("user with this phone number already exists")

	// ErrInvalidCredentials covers both unknown phone and wrong password.
	ErrInvalidCredentials = errors.New("invalid phone number or password")

	// ErrNotVerified is returned on signin for accounts that never completed OTP verification.
	ErrNotVerified = errors.New("account is not verified")

	// ErrInvalidCode covers wrong, expired and already-used OTP codes alike.
	ErrInvalidCode = errors.New("invalid OTP code")

	// ErrTooManyAttempts is returned once the active code's attempt counter is exhausted.
	ErrTooManyAttempts = errors.New("too many failed attempts")

	// ErrInvalidOrExpiredToken covers unknown, rotated and expired refresh tokens.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")

	// ErrValidationFailed is returned for malformed input caught before business logic.
	ErrValidationFailed = errors.New("validation failed")

	// ErrNotFound is returned when a phone-keyed OTP operation targets an unknown user.
	ErrNotFound = errors.New("user not found")

	// ErrInternal wraps infrastructure failures; details stay in the logs.
	ErrInternal = errors.New("internal server error")
)

// StatusCode maps a domain error to its HTTP status. Unrecognized errors
// map to 500 so infrastructure details never leak to clients.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotVerified):
		return http.StatusForbidden
	case errors.Is(err, ErrInvalidCode):
		return http.StatusBadRequest
	case errors.Is(err, ErrTooManyAttempts):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, ErrValidationFailed):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// Message returns the user-safe message for a domain error. Unrecognized
// errors collapse to the generic internal message.
func Message(err error) string {
	for _, known := range []error{
		ErrAlreadyExists,
		ErrInvalidCredentials,
		ErrNotVerified,
		ErrInvalidCode,
		ErrTooManyAttempts,
		ErrInvalidOrExpiredToken,
		ErrValidationFailed,
		ErrNotFound,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return ErrInternal.Error()
}
