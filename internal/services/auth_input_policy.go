package services

import (
	"errors"
	"net/mail"
	"strings"
)

var (
	ErrAuthCredentialsInvalid = errors.New("email and password are required")
	ErrAuthEmailInvalid       = errors.New("a valid email is required")
	ErrAuthPasswordMismatch   = errors.New("passwords do not match")
)

func NormalizeAuthEmail(raw string) string {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return ""
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return ""
	}
	return email
}

func NormalizeCredentialsInput(emailRaw string, passwordRaw string) (string, string, error) {
	email := NormalizeAuthEmail(emailRaw)
	password := strings.TrimSpace(passwordRaw)
	if email == "" || password == "" {
		return "", "", ErrAuthCredentialsInvalid
	}
	return email, password, nil
}

// ValidateNewPassword checks a password/confirmation pair entered for a new
// credential.
func ValidateNewPassword(password string, confirm string) error {
	if strings.TrimSpace(password) == "" {
		return ErrAuthCredentialsInvalid
	}
	if password != confirm {
		return ErrAuthPasswordMismatch
	}
	return ValidatePasswordStrength(password)
}
