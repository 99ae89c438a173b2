package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/gymbro/internal/models"
)

const authTokenIssuer = "gymbro"

func (handler *Handler) setAuthCookie(c *fiber.Ctx, user *models.User, rememberMe bool) error {
	ttl := defaultAuthTokenTTL
	if rememberMe {
		ttl = rememberAuthTokenTTL
	}

	issuedAt := handler.now()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, authClaims{
		UserID: user.ID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    authTokenIssuer,
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
	}).SignedString(handler.secretKey)
	if err != nil {
		return err
	}

	c.Cookie(handler.sessionCookie(authCookieName, "/", token, issuedAt.Add(ttl)))
	return nil
}

func (handler *Handler) clearAuthCookie(c *fiber.Ctx) {
	c.Cookie(handler.sessionCookie(authCookieName, "/", "", handler.now().Add(-time.Hour)))
}

// sessionCookie builds the HTTP-only, SameSite=Lax cookies used for the
// session and the OAuth state.
func (handler *Handler) sessionCookie(name string, path string, value string, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     name,
		Value:    value,
		Path:     path,
		HTTPOnly: true,
		Secure:   handler.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Expires:  expires,
	}
}
