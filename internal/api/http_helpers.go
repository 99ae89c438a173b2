package api

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"
)

func apiError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func acceptsJSON(c *fiber.Ctx) bool {
	return strings.Contains(strings.ToLower(c.Get("Accept")), "application/json")
}

// redirectOrJSON finishes a browser-initiated flow with a redirect, or with
// the payload when the client asked for JSON.
func redirectOrJSON(c *fiber.Ctx, path string, payload fiber.Map) error {
	if acceptsJSON(c) {
		return c.JSON(payload)
	}
	return c.Redirect(path, fiber.StatusSeeOther)
}

func sanitizeRedirectPath(raw string, fallback string) string {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return fallback
	}
	if strings.HasPrefix(candidate, "//") || !strings.HasPrefix(candidate, "/") {
		return fallback
	}
	parsed, err := url.Parse(candidate)
	if err != nil || parsed.IsAbs() {
		return fallback
	}
	return candidate
}
