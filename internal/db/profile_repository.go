package db

import (
	"github.com/terraincognita07/gymbro/internal/models"
	"gorm.io/gorm"
)

type ProfileRepository struct {
	database *gorm.DB
}

func NewProfileRepository(database *gorm.DB) *ProfileRepository {
	return &ProfileRepository{database: database}
}

func (repo *ProfileRepository) FindByUserID(userID string) (models.Profile, bool, error) {
	profile := models.Profile{}
	result := repo.database.Where("id = ?", userID).Limit(1).Find(&profile)
	if result.Error != nil {
		return models.Profile{}, false, result.Error
	}
	if result.RowsAffected == 0 {
		return models.Profile{}, false, nil
	}
	return profile, true, nil
}

// Upsert inserts the profile or replaces every column of the existing row.
func (repo *ProfileRepository) Upsert(profile *models.Profile) error {
	return repo.database.Save(profile).Error
}

func (repo *ProfileRepository) UpdateProgress(userID string, xp int, streak int) error {
	return repo.database.Model(&models.Profile{}).Where("id = ?", userID).Updates(map[string]any{
		"xp":           xp,
		"soft_streaks": streak,
	}).Error
}
