package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/tilanet/auth-service/internal/pkg/models"
)

// GenerateToken generates a signed access token for the given user
// details and returns it with its TTL in seconds
func GenerateToken(userID uuid.UUID, phoneNumber, preferredLanguage string, cfg models.JWTConfig) (string, int64, error) {
	// Set token expiration time
	ttl := time.Duration(cfg.Expiration) * time.Minute
	expiresAt := time.Now().Add(ttl).Unix()

	// Create claims
	claims := jwt.MapClaims{
		"user_id":            userID.String(),
		"phone_number":       phoneNumber,
		"preferred_language": preferredLanguage,
		"exp":                expiresAt,
		"iss":                cfg.Issuer,
	}

	// Create token
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	// Sign token with configured secret
	tokenString, err := token.SignedString([]byte(cfg.Secret))
	if err != nil {
		return "", 0, err
	}

	return tokenString, int64(ttl.Seconds()), nil
}

// ValidateToken validates an access token and returns the claims.
// Fails closed on bad signature, wrong signing method, malformed
// structure, or expiry.
func ValidateToken(tokenString string, secret string) (*jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(secret), nil
	})

	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return &claims, nil
	}

	return nil, fmt.Errorf("invalid token claims")
}
