package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	input := changePasswordInput{}
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	updated, err := handler.authService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword, input.ConfirmPassword)
	if err != nil {
		return respondServiceError(c, err)
	}

	if err := handler.setAuthCookie(c, &updated, false); err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(fiber.Map{"ok": true, "user": newUserView(&updated)})
}
