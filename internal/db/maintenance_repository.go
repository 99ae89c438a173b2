package db

import (
	"github.com/terraincognita07/gymbro/internal/models"
	"gorm.io/gorm"
)

type MaintenanceRepository struct {
	database *gorm.DB
}

func NewMaintenanceRepository(database *gorm.DB) *MaintenanceRepository {
	return &MaintenanceRepository{database: database}
}

func (repo *MaintenanceRepository) ReplaceUserData(userID string, chapters []models.Chapter, checkIns []models.DailyCheckIn, xp int, streak int) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&models.DailyCheckIn{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Chapter{}).Error; err != nil {
			return err
		}
		if len(checkIns) > 0 {
			if err := tx.Create(&checkIns).Error; err != nil {
				return err
			}
		}
		if len(chapters) > 0 {
			if err := tx.Create(&chapters).Error; err != nil {
				return err
			}
		}
		if xp == 0 && streak == 0 {
			return tx.Model(&models.Profile{}).Where("id = ?", userID).Updates(map[string]any{
				"xp":           0,
				"soft_streaks": 0,
			}).Error
		}
		return updateProfileProgress(tx, userID, xp, streak)
	})
}

// updateProfileProgress fails with gorm.ErrRecordNotFound when the user has
// no profile, so the surrounding transaction rolls back.
func updateProfileProgress(tx *gorm.DB, userID string, xp int, streak int) error {
	result := tx.Model(&models.Profile{}).Where("id = ?", userID).Updates(map[string]any{
		"xp":           xp,
		"soft_streaks": streak,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
