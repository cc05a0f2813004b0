package utils

import (
	"fmt"
	"regexp"
	"strings"
)

var e164Pattern = regexp.MustCompile(`^\+[1-9]\d{6,14}$`)

// country-specific national-number rules, keyed by ISO country code
var nationalPatterns = map[string]*regexp.Regexp{
	"ET": regexp.MustCompile(`^[1-9]\d{8}$`),
	"US": regexp.MustCompile(`^[2-9]\d{9}$`),
	"CA": regexp.MustCompile(`^[2-9]\d{9}$`),
	"GB": regexp.MustCompile(`^[1-9]\d{9,10}$`),
}

var genericNationalPattern = regexp.MustCompile(`^[1-9]\d{6,15}$`)

// NormalizePhoneNumber strips separators and validates E.164 shape.
// Returns the cleaned number or an error for malformed input.
func NormalizePhoneNumber(phone string) (string, error) {
	cleaned := strings.ReplaceAll(phone, "-", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, "(", "")
	cleaned = strings.ReplaceAll(cleaned, ")", "")

	if !e164Pattern.MatchString(cleaned) {
		return "", fmt.Errorf("invalid phone number format")
	}

	return cleaned, nil
}

// ValidatePhoneForCountry checks a phone number against the dialing rules
// of the given country. The dial code is removed before matching the
// national part.
func ValidatePhoneForCountry(phone, countryCode, dialCode string) bool {
	cleaned, err := NormalizePhoneNumber(phone)
	if err != nil {
		return false
	}

	national := strings.TrimPrefix(cleaned, dialCode)
	if national == cleaned {
		// Number does not carry the expected dial code
		return false
	}

	if pattern, ok := nationalPatterns[countryCode]; ok {
		return pattern.MatchString(national)
	}
	return genericNationalPattern.MatchString(national)
}

// MaskPhoneNumber masks a phone number, keeping only the last 4 digits visible
func MaskPhoneNumber(phone string) string {
	cleanPhone := regexp.MustCompile(`[^0-9]`).ReplaceAllString(phone, "")
	if len(cleanPhone) <= 4 {
		return cleanPhone
	}

	return strings.Repeat("*", len(cleanPhone)-4) + cleanPhone[len(cleanPhone)-4:]
}
