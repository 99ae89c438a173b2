package api

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/coach"
	"github.com/terraincognita07/gymbro/internal/metrics"
	"github.com/terraincognita07/gymbro/internal/services"
)

// SendCoachMessage answers the conversation with the coach's next reply.
// Upstream failures are logged and collapse into a fixed apology.
func (handler *Handler) SendCoachMessage(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	payload := coachPayload{}
	if err := c.BodyParser(&payload); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	if err := coach.ValidateHistory(payload.Messages); err != nil {
		return respondServiceError(c, err)
	}

	if !handler.coach.Configured() {
		handler.metrics.CoachRequest(metrics.CoachNotConfigured)
		return c.JSON(fiber.Map{"reply": coach.NotConfiguredReply})
	}

	snapshot, err := handler.coachSnapshot(user.ID)
	if err != nil {
		log.Printf("coach snapshot for user %s: %v", user.ID, err)
		handler.metrics.CoachRequest(metrics.CoachFailed)
		return c.JSON(fiber.Map{"reply": coach.FailureReply})
	}

	reply, err := handler.coach.Send(c.UserContext(), payload.Messages, snapshot)
	if err != nil {
		if errors.Is(err, coach.ErrEmptyConversation) || errors.Is(err, coach.ErrInvalidMessage) {
			return respondServiceError(c, err)
		}
		handler.metrics.CoachRequest(metrics.CoachFailed)
		return c.JSON(fiber.Map{"reply": coach.FailureReply})
	}

	handler.metrics.CoachRequest(metrics.CoachReplied)
	return c.JSON(fiber.Map{"reply": reply})
}

func (handler *Handler) coachSnapshot(userID string) (coach.Snapshot, error) {
	now := handler.now()
	profile, err := handler.profiles.Fetch(userID)
	if err != nil {
		return coach.Snapshot{}, err
	}
	active, err := handler.chapters.Active(userID)
	if err != nil {
		return coach.Snapshot{}, err
	}
	checkIns, err := handler.checkIns.List(userID)
	if err != nil {
		return coach.Snapshot{}, err
	}

	snapshot := coach.Snapshot{
		Profile:        profile,
		ActiveChapter:  active,
		RecentCheckIns: services.RecentCheckIns(checkIns, dashboardRecentCheckIns),
	}
	if active != nil {
		snapshot.DaysPassed = handler.chapters.DaysPassed(*active, now)
	}
	return snapshot, nil
}
