package api

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/metrics"
	"github.com/terraincognita07/gymbro/internal/services"
)

// RequestMagicLink mails a sign-in link. The answer does not reveal whether
// the account existed before.
func (handler *Handler) RequestMagicLink(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c, "magic-link")
	if handler.authLimiter.blocked(limiterKey, now, emailLinkPolicy) {
		return apiError(c, fiber.StatusTooManyRequests, "too many requests")
	}
	handler.authLimiter.record(limiterKey, now, emailLinkPolicy)

	input := emailInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := handler.authService.RequestMagicLink(c.UserContext(), input.Email, now); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) VerifyMagicLink(c *fiber.Ctx) error {
	token := strings.TrimSpace(c.Query("token"))
	if token == "" {
		return apiError(c, fiber.StatusBadRequest, services.ErrAuthTokenMissing.Error())
	}

	user, err := handler.authService.VerifyMagicLink(token, handler.now())
	handler.metrics.AuthEvent(metrics.AuthMethodMagicLink, err == nil)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user, true); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return redirectOrJSON(c, "/", fiber.Map{"ok": true, "user": newUserView(&user)})
}

// ForgotPassword always answers OK for a well-formed address.
func (handler *Handler) ForgotPassword(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c, "forgot-password")
	if handler.authLimiter.blocked(limiterKey, now, emailLinkPolicy) {
		return apiError(c, fiber.StatusTooManyRequests, "too many requests")
	}
	handler.authLimiter.record(limiterKey, now, emailLinkPolicy)

	input := emailInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.authService.RequestPasswordReset(c.UserContext(), input.Email, now)
	if errors.Is(err, services.ErrAuthEmailInvalid) {
		return respondServiceError(c, err)
	}
	if err != nil {
		return apiError(c, fiber.StatusServiceUnavailable, "failed to send reset email")
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) ResetPassword(c *fiber.Ctx) error {
	input := resetPasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	token := strings.TrimSpace(input.Token)
	if token == "" {
		token = strings.TrimSpace(c.Query("token"))
	}
	if token == "" {
		return apiError(c, fiber.StatusBadRequest, services.ErrAuthTokenMissing.Error())
	}

	user, err := handler.authService.ResetPassword(token, input.Password, input.ConfirmPassword, handler.now())
	handler.metrics.AuthEvent(metrics.AuthMethodPasswordReset, err == nil)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true, "user": newUserView(&user)})
}
