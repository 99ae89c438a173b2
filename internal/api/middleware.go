package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/models"
)

const (
	authCookieName       = "gymbro_auth"
	oauthStateCookieName = "gymbro_oauth_state"
	contextUserKey       = "current_user"
)

func currentUser(c *fiber.Ctx) (*models.User, bool) {
	user, ok := c.Locals(contextUserKey).(*models.User)
	return user, ok
}
