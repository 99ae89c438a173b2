package api

import (
	"github.com/gofiber/fiber/v2"
)

func (handler *Handler) GetProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	profile, err := handler.profiles.Fetch(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"profile": profile})
}

// SaveProfile creates or replaces the profile. A first save completes
// onboarding, so the starter chapters are preloaded with it.
func (handler *Handler) SaveProfile(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := profilePayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.now()
	profile, created, err := handler.profiles.Save(user.ID, payload.toInput(), now)
	if err != nil {
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	preloaded := false
	if created {
		status = fiber.StatusCreated
		preloaded, err = handler.chapters.PreloadDefaults(user.ID, now)
		if err != nil {
			return respondServiceError(c, err)
		}
		if preloaded {
			handler.metrics.ChapterActivated()
		}
	}

	return c.Status(status).JSON(fiber.Map{
		"profile":            profile,
		"created":            created,
		"chapters_preloaded": preloaded,
	})
}
