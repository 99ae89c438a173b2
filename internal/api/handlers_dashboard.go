package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/services"
)

const dashboardRecentCheckIns = 5

func (handler *Handler) GetDashboard(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	now := handler.now()
	profile, err := handler.profiles.Fetch(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	active, err := handler.chapters.Active(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}
	checkIns, err := handler.checkIns.List(user.ID)
	if err != nil {
		return respondServiceError(c, err)
	}

	today := handler.checkIns.Today(now)
	var activeChapter any
	progress := 0.0
	if active != nil {
		view := handler.newChapterView(*active, now)
		activeChapter = view
		progress = view.Progress
	}

	return c.JSON(fiber.Map{
		"today":            today,
		"profile":          profile,
		"active_chapter":   activeChapter,
		"progress":         progress,
		"recent_check_ins": services.RecentCheckIns(checkIns, dashboardRecentCheckIns),
		"checked_in_today": services.HasCheckedInToday(checkIns, today),
		"today_check_in":   services.TodayCheckIn(checkIns, today),
		"missed_days":      services.MissedDays(checkIns, today),
	})
}
