package models

import "time"

type Profile struct {
	ID           string    `gorm:"primaryKey;type:text" json:"id"`
	Age          int       `gorm:"not null" json:"age"`
	Height       float64   `gorm:"not null" json:"height"`
	Weight       float64   `gorm:"not null" json:"weight"`
	InjuryNotes  *string   `json:"injury_notes"`
	LongTermGoal string    `gorm:"not null" json:"long_term_goal"`
	XP           int       `gorm:"column:xp;not null;default:0" json:"xp"`
	SoftStreaks  int       `gorm:"not null;default:0" json:"soft_streaks"`
	CreatedAt    time.Time `gorm:"not null" json:"created_at"`
}
