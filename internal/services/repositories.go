package services

import "github.com/terraincognita07/gymbro/internal/models"

type UserRepository interface {
	ExistsByNormalizedEmail(email string) (bool, error)
	FindByNormalizedEmail(email string) (models.User, error)
	FindByID(userID string) (models.User, error)
	Create(user *models.User) error
	Save(user *models.User) error
	UpdatePassword(userID string, passwordHash string, mustChangePassword bool) error
}

type ProfileRepository interface {
	FindByUserID(userID string) (models.Profile, bool, error)
	Upsert(profile *models.Profile) error
	UpdateProgress(userID string, xp int, streak int) error
}

type ChapterRepository interface {
	ListByUser(userID string) ([]models.Chapter, error)
	ExistsForUser(userID string) (bool, error)
	FindByIDForUser(chapterID string, userID string) (models.Chapter, error)
	Create(chapter *models.Chapter) error
	CreateBatch(chapters []models.Chapter) error
	Save(chapter *models.Chapter) error
	Activate(chapter *models.Chapter) error
	DeleteByIDForUser(chapterID string, userID string) error
}

type CheckInRepository interface {
	ListRecentByUser(userID string, limit int) ([]models.DailyCheckIn, error)
	FindByUserAndDate(userID string, date string) (models.DailyCheckIn, bool, error)
	Create(checkIn *models.DailyCheckIn) error
	// CreateWithProgress inserts the check-in and sets the owner's XP and
	// streak atomically; a missing profile stores nothing.
	CreateWithProgress(checkIn *models.DailyCheckIn, xp int, streak int) error
	Save(checkIn *models.DailyCheckIn) error
}

type MaintenanceRepository interface {
	ReplaceUserData(userID string, chapters []models.Chapter, checkIns []models.DailyCheckIn, xp int, streak int) error
}

// Backend groups the repositories of one storage gateway: the SQL database
// or the in-memory mock store.
type Backend struct {
	Users       UserRepository
	Profiles    ProfileRepository
	Chapters    ChapterRepository
	CheckIns    CheckInRepository
	Maintenance MaintenanceRepository
}
