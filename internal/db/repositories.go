package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Profiles    *ProfileRepository
	Chapters    *ChapterRepository
	CheckIns    *CheckInRepository
	Maintenance *MaintenanceRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Profiles:    NewProfileRepository(database),
		Chapters:    NewChapterRepository(database),
		CheckIns:    NewCheckInRepository(database),
		Maintenance: NewMaintenanceRepository(database),
	}
}
