package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) WipeData(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if err := handler.maintenance.Wipe(user.ID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true, "message": "All data wiped"})
}

func (handler *Handler) SeedData(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	summary, err := handler.maintenance.Seed(user.ID, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(summary)
}

// ResetMockStore drops every record held by the in-memory store.
func (handler *Handler) ResetMockStore(c *fiber.Ctx) error {
	handler.mockStore.Reset()
	return c.JSON(fiber.Map{"ok": true})
}
