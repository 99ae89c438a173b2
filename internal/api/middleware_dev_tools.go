package api

import "github.com/gofiber/fiber/v2"

// DevToolsOnly guards the data maintenance routes, which are open in mock
// mode or when DEV_TOOLS is enabled.
func (handler *Handler) DevToolsOnly(c *fiber.Ctx) error {
	if !handler.mockMode && !handler.devTools {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	return c.Next()
}

func (handler *Handler) MockModeOnly(c *fiber.Ctx) error {
	if !handler.mockMode {
		return apiError(c, fiber.StatusNotFound, "not found")
	}
	return c.Next()
}

// RealAuthOnly answers auth mutations in mock mode with the fixed local
// identity instead of touching credentials.
func (handler *Handler) RealAuthOnly(c *fiber.Ctx) error {
	if handler.mockMode {
		return c.JSON(fiber.Map{"ok": true, "mock": true, "user": mockUserView()})
	}
	return c.Next()
}
