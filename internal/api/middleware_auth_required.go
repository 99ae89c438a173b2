package api

import (
	"github.com/gofiber/fiber/v2"
)

const changePasswordPath = "/api/auth/change-password"

// AuthRequired resolves the signed-in user. Accounts with a pending forced
// password change may only reach the session and change-password routes.
func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	user, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextUserKey, user)
	if user.MustChangePassword && !isPasswordChangeExempt(c.Path()) {
		return apiError(c, fiber.StatusForbidden, "password change required")
	}
	return c.Next()
}

func isPasswordChangeExempt(path string) bool {
	switch path {
	case changePasswordPath, "/api/auth/me", "/api/auth/logout":
		return true
	default:
		return false
	}
}
