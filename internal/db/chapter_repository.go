package db

import (
	"github.com/terraincognita07/gymbro/internal/models"
	"gorm.io/gorm"
)

type ChapterRepository struct {
	database *gorm.DB
}

func NewChapterRepository(database *gorm.DB) *ChapterRepository {
	return &ChapterRepository{database: database}
}

func (repo *ChapterRepository) ListByUser(userID string) ([]models.Chapter, error) {
	chapters := make([]models.Chapter, 0)
	if err := repo.database.
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&chapters).Error; err != nil {
		return nil, err
	}
	return chapters, nil
}

func (repo *ChapterRepository) ExistsForUser(userID string) (bool, error) {
	ids := make([]string, 0, 1)
	if err := repo.database.Model(&models.Chapter{}).
		Where("user_id = ?", userID).
		Limit(1).
		Pluck("id", &ids).Error; err != nil {
		return false, err
	}
	return len(ids) > 0, nil
}

func (repo *ChapterRepository) FindByIDForUser(chapterID string, userID string) (models.Chapter, error) {
	chapter := models.Chapter{}
	if err := repo.database.Where("id = ? AND user_id = ?", chapterID, userID).First(&chapter).Error; err != nil {
		return models.Chapter{}, err
	}
	return chapter, nil
}

func (repo *ChapterRepository) Create(chapter *models.Chapter) error {
	return repo.database.Create(chapter).Error
}

func (repo *ChapterRepository) CreateBatch(chapters []models.Chapter) error {
	if len(chapters) == 0 {
		return nil
	}
	return repo.database.Create(&chapters).Error
}

func (repo *ChapterRepository) Save(chapter *models.Chapter) error {
	return repo.database.Save(chapter).Error
}

// Activate pauses every other active chapter of the owner before writing the
// target, so no reader inside the transaction sees two active chapters.
func (repo *ChapterRepository) Activate(chapter *models.Chapter) error {
	return repo.database.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Chapter{}).
			Where("user_id = ? AND status = ? AND id <> ?", chapter.UserID, models.ChapterStatusActive, chapter.ID).
			Update("status", models.ChapterStatusPaused).Error; err != nil {
			return err
		}
		return tx.Save(chapter).Error
	})
}

func (repo *ChapterRepository) DeleteByIDForUser(chapterID string, userID string) error {
	result := repo.database.Where("id = ? AND user_id = ?", chapterID, userID).Delete(&models.Chapter{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
