package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

func RegisterRoutes(app *fiber.App, handler *Handler) {
	app.Get("/healthz", handler.Health)
	app.Get("/metrics", adaptor.HTTPHandler(handler.metrics.Handler()))
	app.Get("/favicon.ico", sendNoContent)

	registerAPIRoutes(app, handler)
}

func registerAPIRoutes(app *fiber.App, handler *Handler) {
	api := app.Group("/api")

	auth := api.Group("/auth")
	auth.Get("/mode", handler.Mode)
	auth.Post("/register", handler.RealAuthOnly, handler.Register)
	auth.Post("/login", handler.RealAuthOnly, handler.Login)
	auth.Post("/logout", handler.Logout)
	auth.Get("/me", handler.AuthRequired, handler.Me)
	auth.Post("/magic-link", handler.RealAuthOnly, handler.RequestMagicLink)
	auth.Get("/magic-link/verify", handler.RealAuthOnly, handler.VerifyMagicLink)
	auth.Post("/forgot-password", handler.RealAuthOnly, handler.ForgotPassword)
	auth.Post("/reset-password", handler.RealAuthOnly, handler.ResetPassword)
	auth.Post("/change-password", handler.RealAuthOnly, handler.AuthRequired, handler.ChangePassword)
	auth.Get("/oauth/google", handler.RealAuthOnly, handler.StartGoogleSignIn)
	auth.Get("/oauth/google/callback", handler.RealAuthOnly, handler.FinishGoogleSignIn)

	profile := api.Group("/profile", handler.AuthRequired)
	profile.Get("", handler.GetProfile)
	profile.Put("", handler.SaveProfile)

	chapters := api.Group("/chapters", handler.AuthRequired)
	chapters.Get("", handler.ListChapters)
	chapters.Post("", handler.CreateChapter)
	chapters.Get("/active", handler.GetActiveChapter)
	chapters.Post("/defaults", handler.PreloadDefaultChapters)
	chapters.Patch("/:id", handler.UpdateChapter)
	chapters.Post("/:id/status", handler.SetChapterStatus)
	chapters.Delete("/:id", handler.DeleteChapter)

	checkIns := api.Group("/check-ins", handler.AuthRequired)
	checkIns.Get("", handler.ListCheckIns)
	checkIns.Post("", handler.CreateCheckIn)
	checkIns.Get("/today", handler.GetTodayCheckIn)
	checkIns.Get("/recent", handler.GetRecentCheckIns)
	checkIns.Get("/missed-days", handler.GetMissedDays)

	api.Get("/dashboard", handler.AuthRequired, handler.GetDashboard)
	api.Post("/coach/messages", handler.AuthRequired, handler.SendCoachMessage)

	dev := api.Group("/dev", handler.DevToolsOnly, handler.AuthRequired)
	dev.Post("/wipe", handler.WipeData)
	dev.Post("/seed", handler.SeedData)
	dev.Post("/reset", handler.MockModeOnly, handler.ResetMockStore)
}

func sendNoContent(c *fiber.Ctx) error {
	return c.SendStatus(fiber.StatusNoContent)
}
