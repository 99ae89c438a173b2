package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AuthProviderPassword  = "password"
	AuthProviderMagicLink = "magic_link"
	AuthProviderGoogle    = "google"
)

const (
	MockUserID    = "mock-user-id"
	MockUserEmail = "demo@gymbro.app"
)

type User struct {
	ID                 string    `gorm:"primaryKey;type:text" json:"id"`
	Email              string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string    `gorm:"not null;default:''" json:"-"`
	MustChangePassword bool      `gorm:"not null;default:false" json:"-"`
	AuthProvider       string    `gorm:"not null;default:password" json:"auth_provider"`
	CreatedAt          time.Time `gorm:"not null" json:"created_at"`
}

func (user *User) BeforeCreate(tx *gorm.DB) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	return nil
}

// MockUser is the identity every request runs as when no backend is configured.
func MockUser() User {
	return User{
		ID:           MockUserID,
		Email:        MockUserEmail,
		AuthProvider: AuthProviderPassword,
	}
}
