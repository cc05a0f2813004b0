package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"math/big"
)

// GenerateRandomHex generates a random hex string of the specified length.
// length must be even; the result is length/2 random bytes hex-encoded.
func GenerateRandomHex(length int) (string, error) {
	bytes := make([]byte, length/2)
	_, err := rand.Read(bytes)
	if err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateNumericCode generates a uniformly random fixed-width numeric
// string using a cryptographically secure source. A 6-digit code is drawn
// from the inclusive range [100000, 999999].
func GenerateNumericCode(digits int) (string, error) {
	if digits < 1 {
		return "", fmt.Errorf("invalid code length: %d", digits)
	}

	// [10^(digits-1), 10^digits - 1]
	min := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits-1)), nil)
	max := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(digits)), nil)
	span := new(big.Int).Sub(max, min)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", fmt.Errorf("failed to generate random code: %w", err)
	}

	return new(big.Int).Add(n, min).String(), nil
}
