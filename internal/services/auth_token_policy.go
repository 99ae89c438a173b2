package services

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	TokenPurposeMagicLink     = "magic_link"
	TokenPurposePasswordReset = "password_reset"

	MagicLinkTokenTTL     = 15 * time.Minute
	PasswordResetTokenTTL = 30 * time.Minute
)

var (
	ErrAuthTokenMissing              = errors.New("missing token")
	ErrAuthTokenInvalid              = errors.New("invalid or expired link")
	ErrAuthTokenInvalidPurpose       = errors.New("invalid token purpose")
	ErrAuthTokenExpired              = errors.New("link has expired")
	ErrAuthTokenInvalidPasswordState = errors.New("link has already been used")
)

// EmailLinkClaims bind a one-purpose link to a user and to the password the
// user had when the link was issued.
type EmailLinkClaims struct {
	UserID        string `json:"uid"`
	Purpose       string `json:"purpose"`
	PasswordState string `json:"password_state"`
	jwt.RegisteredClaims
}

func BuildEmailLinkToken(secretKey []byte, purpose string, userID string, passwordHash string, ttl time.Duration, now time.Time) (string, error) {
	if strings.TrimSpace(userID) == "" {
		return "", ErrAuthTokenInvalid
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := EmailLinkClaims{
		UserID:        userID,
		Purpose:       purpose,
		PasswordState: PasswordStateFingerprint(userID, passwordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secretKey)
}

func ParseEmailLinkToken(secretKey []byte, rawToken string, purpose string, now time.Time) (*EmailLinkClaims, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, ErrAuthTokenMissing
	}
	if now.IsZero() {
		now = time.Now()
	}

	claims := &EmailLinkClaims{}
	token, err := jwt.ParseWithClaims(rawToken, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return secretKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrAuthTokenExpired
		}
		return nil, ErrAuthTokenInvalid
	}
	if !token.Valid || strings.TrimSpace(claims.UserID) == "" {
		return nil, ErrAuthTokenInvalid
	}
	if claims.Purpose != purpose {
		return nil, ErrAuthTokenInvalidPurpose
	}
	return claims, nil
}

// PasswordStateFingerprint changes whenever the stored password hash does,
// which retires links issued before the change.
func PasswordStateFingerprint(userID string, passwordHash string) string {
	sum := sha256.Sum256([]byte("gymbro.link.password-state.v1:" + userID + ":" + strings.TrimSpace(passwordHash)))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

func IsPasswordStateFingerprintMatch(expected string, userID string, passwordHash string) bool {
	if strings.TrimSpace(expected) == "" {
		return false
	}
	actual := PasswordStateFingerprint(userID, passwordHash)
	return subtle.ConstantTimeCompare([]byte(expected), []byte(actual)) == 1
}
