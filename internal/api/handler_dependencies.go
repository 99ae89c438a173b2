package api

import (
	"github.com/terraincognita07/gymbro/internal/db"
	"github.com/terraincognita07/gymbro/internal/mockstore"
	"github.com/terraincognita07/gymbro/internal/services"
	"gorm.io/gorm"
)

func backendFromDatabase(database *gorm.DB) services.Backend {
	repositories := db.NewRepositories(database)
	return services.Backend{
		Users:       repositories.Users,
		Profiles:    repositories.Profiles,
		Chapters:    repositories.Chapters,
		CheckIns:    repositories.CheckIns,
		Maintenance: repositories.Maintenance,
	}
}

func backendFromMockStore(store *mockstore.Store) services.Backend {
	return services.Backend{
		Users:       store.Users(),
		Profiles:    store.Profiles(),
		Chapters:    store.Chapters(),
		CheckIns:    store.CheckIns(),
		Maintenance: store.Maintenance(),
	}
}

func (handler *Handler) withDependencies(options Options) *Handler {
	backend := handler.backend
	handler.authService = services.NewAuthService(backend.Users, options.Mailer, handler.secretKey, options.PublicURL)
	handler.profiles = services.NewProfileService(backend.Profiles)
	handler.chapters = services.NewChapterService(backend.Chapters, handler.location)
	handler.checkIns = services.NewCheckInService(backend.CheckIns, handler.profiles, handler.location)
	handler.maintenance = services.NewMaintenanceService(backend.Maintenance, options.Random, handler.location)
	return handler
}
