package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ChapterFocusDrainage    = "drainage"
	ChapterFocusStrength    = "strength"
	ChapterFocusMaintenance = "maintenance"
)

const (
	ChapterStatusActive    = "active"
	ChapterStatusPaused    = "paused"
	ChapterStatusCompleted = "completed"
)

const (
	MinChapterDuration = 7
	MaxChapterDuration = 365
)

type Chapter struct {
	ID          string    `gorm:"primaryKey;type:text" json:"id"`
	UserID      string    `gorm:"not null;index" json:"user_id"`
	ChapterName string    `gorm:"not null" json:"chapter_name"`
	Duration    int       `gorm:"not null" json:"duration"`
	Focus       string    `gorm:"not null" json:"focus"`
	Status      string    `gorm:"not null;default:paused" json:"status"`
	StartDate   *string   `json:"start_date"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
}

func (chapter *Chapter) BeforeCreate(tx *gorm.DB) error {
	if chapter.ID == "" {
		chapter.ID = uuid.NewString()
	}
	return nil
}

type DefaultChapter struct {
	Name     string
	Duration int
	Focus    string
	Active   bool
}

func DefaultChapters() []DefaultChapter {
	return []DefaultChapter{
		{Name: "Brazil Trip Preparation", Duration: 60, Focus: ChapterFocusDrainage, Active: true},
		{Name: "Europe Trip Maintenance", Duration: 40, Focus: ChapterFocusMaintenance},
		{Name: "End-of-Year Purpose", Duration: 30, Focus: ChapterFocusStrength},
	}
}
