package db

import (
	"github.com/terraincognita07/gymbro/internal/models"
	"gorm.io/gorm"
)

type CheckInRepository struct {
	database *gorm.DB
}

func NewCheckInRepository(database *gorm.DB) *CheckInRepository {
	return &CheckInRepository{database: database}
}

func (repo *CheckInRepository) ListRecentByUser(userID string, limit int) ([]models.DailyCheckIn, error) {
	checkIns := make([]models.DailyCheckIn, 0)
	query := repo.database.Where("user_id = ?", userID).Order("date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&checkIns).Error; err != nil {
		return nil, err
	}
	return checkIns, nil
}

func (repo *CheckInRepository) FindByUserAndDate(userID string, date string) (models.DailyCheckIn, bool, error) {
	checkIn := models.DailyCheckIn{}
	result := repo.database.
		Where("user_id = ? AND date = ?", userID, date).
		Limit(1).
		Find(&checkIn)
	if result.Error != nil {
		return models.DailyCheckIn{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.DailyCheckIn{}, false, nil
	}
	return checkIn, true, nil
}

func (repo *CheckInRepository) Create(checkIn *models.DailyCheckIn) error {
	return repo.database.Create(checkIn).Error
}

func (repo *CheckInRepository) CreateWithProgress(checkIn *models.DailyCheckIn, xp int, streak int) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(checkIn).Error; err != nil {
			return err
		}
		return updateProfileProgress(tx, checkIn.UserID, xp, streak)
	})
}

func (repo *CheckInRepository) Save(checkIn *models.DailyCheckIn) error {
	return repo.database.Save(checkIn).Error
}
