package api

import (
	"crypto/subtle"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/metrics"
	"github.com/terraincognita07/gymbro/internal/models"
	"github.com/terraincognita07/gymbro/internal/security"
	"github.com/terraincognita07/gymbro/internal/services"
)

const (
	oauthStateLength     = 32
	oauthStateCookiePath = "/api/auth/oauth"
)

func (handler *Handler) StartGoogleSignIn(c *fiber.Ctx) error {
	if handler.identity == nil || handler.stateSealer == nil {
		return respondServiceError(c, services.ErrOAuthProviderMisconfig)
	}

	state, err := security.RandomToken(oauthStateLength)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to start sign-in")
	}
	next := sanitizeRedirectPath(c.Query("next"), "/")
	sealed, err := handler.stateSealer.seal(oauthState{State: state, Next: next, IssuedAt: handler.now()})
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to start sign-in")
	}

	c.Cookie(handler.sessionCookie(oauthStateCookieName, oauthStateCookiePath, sealed, handler.now().Add(oauthStateTTL)))
	return c.Redirect(handler.identity.AuthCodeURL(state), fiber.StatusSeeOther)
}

func (handler *Handler) FinishGoogleSignIn(c *fiber.Ctx) error {
	if handler.identity == nil || handler.stateSealer == nil {
		return respondServiceError(c, services.ErrOAuthProviderMisconfig)
	}

	sealed := c.Cookies(oauthStateCookieName)
	handler.clearOAuthStateCookie(c)

	expected, err := handler.stateSealer.open(sealed, handler.now())
	state := strings.TrimSpace(c.Query("state"))
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(expected.State), []byte(state)) != 1 {
		handler.metrics.AuthEvent(metrics.AuthMethodGoogle, false)
		return apiError(c, fiber.StatusBadRequest, "invalid sign-in state")
	}

	code := strings.TrimSpace(c.Query("code"))
	if code == "" {
		handler.metrics.AuthEvent(metrics.AuthMethodGoogle, false)
		return apiError(c, fiber.StatusBadRequest, "missing authorization code")
	}

	email, err := handler.identity.Identify(c.UserContext(), code)
	if err != nil {
		handler.metrics.AuthEvent(metrics.AuthMethodGoogle, false)
		return respondServiceError(c, err)
	}

	user, err := handler.authService.SignInWithProvider(email, models.AuthProviderGoogle, handler.now())
	handler.metrics.AuthEvent(metrics.AuthMethodGoogle, err == nil)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return redirectOrJSON(c, sanitizeRedirectPath(expected.Next, "/"), fiber.Map{"ok": true, "user": newUserView(&user)})
}

func (handler *Handler) clearOAuthStateCookie(c *fiber.Ctx) {
	c.Cookie(handler.sessionCookie(oauthStateCookieName, oauthStateCookiePath, "", handler.now().Add(-time.Hour)))
}
