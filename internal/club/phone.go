// internal/club/phone.go
package club

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// defaultPhoneRegion is assumed for numbers submitted without a country
// prefix.
const defaultPhoneRegion = "CZ"

// NormalizePhone canonicalizes a submitted phone number to E.164 so the
// users table keys on one spelling per number. Invalid input yields a
// ValidationError.
func NormalizePhone(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ValidationError{Reason: "phone number is required"}
	}

	parsed, err := phonenumbers.Parse(trimmed, defaultPhoneRegion)
	if err != nil {
		return "", ValidationError{Reason: "phone number is invalid"}
	}
	if !phonenumbers.IsValidNumber(parsed) {
		return "", ValidationError{Reason: "phone number is invalid"}
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
