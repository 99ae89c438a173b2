package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/terraincognita07/gymbro/internal/api"
	"github.com/terraincognita07/gymbro/internal/coach"
	"github.com/terraincognita07/gymbro/internal/config"
	"github.com/terraincognita07/gymbro/internal/db"
	"github.com/terraincognita07/gymbro/internal/metrics"
	"github.com/terraincognita07/gymbro/internal/services"
	"gorm.io/gorm"
)

const googleCallbackPath = "/api/auth/oauth/google/callback"

func main() {
	if err := config.LoadDotEnv(); err != nil {
		log.Fatalf("env init failed: %v", err)
	}
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config init failed: %v", err)
	}
	time.Local = cfg.Location

	var database *gorm.DB
	if !cfg.MockMode {
		database, err = db.OpenDatabase(cfg.DBDriver, cfg.DatabaseDSN)
		if err != nil {
			log.Fatalf("database init failed: %v", err)
		}
	}

	options, err := handlerOptions(cfg, database)
	if err != nil {
		log.Fatalf("identity provider init failed: %v", err)
	}
	handler, err := api.NewHandler(options)
	if err != nil {
		log.Fatalf("handler init failed: %v", err)
	}

	app := newApp(handler)

	sigCtx, stopSignals := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	go func() {
		<-sigCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			log.Printf("server shutdown failed: %v", err)
		}
	}()

	if cfg.MockMode {
		log.Printf("Gymbro running in mock mode: set DB_PATH (or DATABASE_URL) and SECRET_KEY for real accounts")
	}
	log.Printf("Gymbro listening on http://0.0.0.0:%s (db: %s, tz: %s, coach: %t)",
		cfg.Port, cfg.DBDriver, cfg.Location.String(), options.Coach.Configured())
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("server exited: %v", err)
	}
}

func handlerOptions(cfg config.Config, database *gorm.DB) (api.Options, error) {
	options := api.Options{
		Database:     database,
		SecretKey:    cfg.SecretKey,
		Location:     cfg.Location,
		CookieSecure: cfg.CookieSecure,
		DevTools:     cfg.DevTools,
		PublicURL:    cfg.PublicURL,
		Mailer:       services.NewLogMailer(log.Default()),
		Coach: coach.New(coach.Config{
			APIKey:  cfg.OpenAIAPIKey,
			BaseURL: cfg.OpenAIBaseURL,
			Model:   cfg.OpenAIModel,
		}, slog.New(slog.NewTextHandler(os.Stderr, nil))),
		Metrics: metrics.New(),
	}

	if cfg.GoogleSignInEnabled() {
		provider, err := services.NewGoogleProvider(services.OAuthProviderOptions{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.PublicURL + googleCallbackPath,
		})
		if err != nil {
			return api.Options{}, err
		}
		options.Identity = provider
	}
	return options, nil
}

func newApp(handler *api.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Gymbro",
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	api.RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}
