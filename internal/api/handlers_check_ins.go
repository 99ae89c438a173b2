package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/metrics"
	"github.com/terraincognita07/gymbro/internal/services"
)

func (handler *Handler) ListCheckIns(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	checkIns, err := handler.checkIns.List(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"check_ins": checkIns})
}

// CreateCheckIn records today's check-in; a repeat on the same day replaces
// the fields and earns no XP.
func (handler *Handler) CreateCheckIn(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := checkInPayload{}
	if err := c.BodyParser(&payload); err != nil {
		handler.metrics.CheckIn(metrics.CheckInRejected, 0)
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	result, err := handler.checkIns.Add(user.ID, payload.toInput(), handler.now())
	if err != nil {
		handler.metrics.CheckIn(metrics.CheckInRejected, 0)
		return respondServiceError(c, err)
	}

	status := fiber.StatusOK
	outcome := metrics.CheckInUpdated
	if result.Created {
		status = fiber.StatusCreated
		outcome = metrics.CheckInCreated
	}
	handler.metrics.CheckIn(outcome, result.XPGained)

	return c.Status(status).JSON(fiber.Map{
		"check_in":  result.CheckIn,
		"profile":   result.Profile,
		"xp_gained": result.XPGained,
		"created":   result.Created,
	})
}

func (handler *Handler) GetTodayCheckIn(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := handler.now()
	checkIn, err := handler.checkIns.TodayCheckIn(user.ID, now)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{
		"date":             handler.checkIns.Today(now),
		"check_in":         checkIn,
		"checked_in_today": checkIn != nil,
	})
}

func (handler *Handler) GetRecentCheckIns(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit := c.QueryInt("limit", services.DefaultRecentCheckInLimit)
	if limit < 1 || limit > services.CheckInHistoryLimit {
		return apiError(c, fiber.StatusBadRequest, "limit must be between 1 and 30")
	}

	checkIns, err := handler.checkIns.RecentCheckIns(user.ID, limit)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"check_ins": checkIns})
}

func (handler *Handler) GetMissedDays(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	missed, err := handler.checkIns.MissedDays(user.ID, handler.now())
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"missed_days": missed})
}
