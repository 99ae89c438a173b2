package api

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/models"
	"github.com/terraincognita07/gymbro/internal/services"
)

func (handler *Handler) ListChapters(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	chapters, err := handler.chapters.List(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"chapters": handler.newChapterViews(chapters, handler.now())})
}

func (handler *Handler) GetActiveChapter(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	active, err := handler.chapters.Active(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	if active == nil {
		return c.JSON(fiber.Map{"chapter": nil})
	}
	return c.JSON(fiber.Map{"chapter": handler.newChapterView(*active, handler.now())})
}

func (handler *Handler) CreateChapter(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := chapterPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.now()
	chapter, err := handler.chapters.Add(user.ID, services.ChapterInput{
		ChapterName: payload.ChapterName,
		Duration:    payload.Duration,
		Focus:       payload.Focus,
	}, now)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"chapter": handler.newChapterView(chapter, now)})
}

func (handler *Handler) PreloadDefaultChapters(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := handler.now()
	created, err := handler.chapters.PreloadDefaults(user.ID, now)
	if err != nil {
		return respondServiceError(c, err)
	}
	if created {
		handler.metrics.ChapterActivated()
	}

	chapters, err := handler.chapters.List(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"created": created, "chapters": handler.newChapterViews(chapters, now)})
}

func (handler *Handler) UpdateChapter(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := chapterPatchPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	return handler.applyChapterPatch(c, user.ID, services.ChapterPatch{
		ChapterName: payload.ChapterName,
		Duration:    payload.Duration,
		Focus:       payload.Focus,
		Status:      payload.Status,
	})
}

func (handler *Handler) SetChapterStatus(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := chapterStatusPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	now := handler.now()
	chapter, err := handler.chapters.SetStatus(user.ID, c.Params("id"), payload.Status, now)
	if err != nil {
		return respondServiceError(c, err)
	}
	if isActivation(&payload.Status) {
		handler.metrics.ChapterActivated()
	}
	return c.JSON(fiber.Map{"chapter": handler.newChapterView(chapter, now)})
}

func (handler *Handler) applyChapterPatch(c *fiber.Ctx, userID string, patch services.ChapterPatch) error {
	now := handler.now()
	chapter, err := handler.chapters.Update(userID, c.Params("id"), patch, now)
	if err != nil {
		return respondServiceError(c, err)
	}
	if isActivation(patch.Status) {
		handler.metrics.ChapterActivated()
	}
	return c.JSON(fiber.Map{"chapter": handler.newChapterView(chapter, now)})
}

func isActivation(status *string) bool {
	return status != nil && strings.EqualFold(strings.TrimSpace(*status), models.ChapterStatusActive)
}

// DeleteChapter needs ?confirm=true; the client asks the user before sending
// it.
func (handler *Handler) DeleteChapter(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	if !c.QueryBool("confirm") {
		return apiError(c, fiber.StatusBadRequest, "confirmation required")
	}

	if err := handler.chapters.Delete(user.ID, c.Params("id")); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
