package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AlcoholNone     = "none"
	AlcoholLow      = "low"
	AlcoholModerate = "moderate"
	AlcoholHigh     = "high"
)

type DailyCheckIn struct {
	ID            string    `gorm:"primaryKey;type:text" json:"id"`
	UserID        string    `gorm:"not null;uniqueIndex:uidx_check_in_user_date" json:"user_id"`
	Date          string    `gorm:"not null;uniqueIndex:uidx_check_in_user_date" json:"date"`
	Weight        float64   `gorm:"not null" json:"weight"`
	BloatingLevel int       `gorm:"not null" json:"bloating_level"`
	Energy        int       `gorm:"not null" json:"energy"`
	AlcoholIntake string    `gorm:"not null;default:none" json:"alcohol_intake"`
	MovementDone  bool      `gorm:"not null;default:false" json:"movement_done"`
	Notes         *string   `json:"notes"`
	CreatedAt     time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (DailyCheckIn) TableName() string {
	return "daily_check_ins"
}

func (checkIn *DailyCheckIn) BeforeCreate(tx *gorm.DB) error {
	if checkIn.ID == "" {
		checkIn.ID = uuid.NewString()
	}
	return nil
}
