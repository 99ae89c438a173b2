package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/metrics"
)

// Mode tells clients whether the server runs against the in-memory store and
// which sign-in methods are available.
func (handler *Handler) Mode(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"mock":             handler.mockMode,
		"dev_tools":        handler.mockMode || handler.devTools,
		"google_sign_in":   !handler.mockMode && handler.identity != nil,
		"coach_configured": handler.coach.Configured(),
	})
}

func (handler *Handler) Register(c *fiber.Ctx) error {
	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Register(credentials.Email, credentials.Password, credentials.ConfirmPassword, handler.now())
	handler.metrics.AuthEvent(metrics.AuthMethodRegister, err == nil)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &user, credentials.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"ok": true, "user": newUserView(&user)})
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	now := handler.now()
	limiterKey := requestLimiterKey(c, "login")
	if handler.authLimiter.blocked(limiterKey, now, loginAttemptPolicy) {
		return apiError(c, fiber.StatusTooManyRequests, "too many sign-in attempts")
	}

	credentials := credentialsInput{}
	if err := c.BodyParser(&credentials); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	user, err := handler.authService.Authenticate(credentials.Email, credentials.Password)
	handler.metrics.AuthEvent(metrics.AuthMethodPassword, err == nil)
	if err != nil {
		handler.authLimiter.record(limiterKey, now, loginAttemptPolicy)
		return respondServiceError(c, err)
	}
	handler.authLimiter.reset(limiterKey)

	if err := handler.setAuthCookie(c, &user, credentials.RememberMe); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true, "user": newUserView(&user)})
}

func (handler *Handler) Logout(c *fiber.Ctx) error {
	if !handler.mockMode {
		handler.clearAuthCookie(c)
	}
	return c.JSON(fiber.Map{"ok": true})
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(fiber.Map{"user": newUserView(user), "mock": handler.mockMode})
}
