package api

import (
	"time"

	"github.com/terraincognita07/gymbro/internal/models"
)

type userView struct {
	ID                 string    `json:"id"`
	Email              string    `json:"email"`
	AuthProvider       string    `json:"auth_provider"`
	MustChangePassword bool      `json:"must_change_password"`
	CreatedAt          time.Time `json:"created_at"`
}

func newUserView(user *models.User) userView {
	if user == nil {
		return userView{}
	}
	return userView{
		ID:                 user.ID,
		Email:              user.Email,
		AuthProvider:       user.AuthProvider,
		MustChangePassword: user.MustChangePassword,
		CreatedAt:          user.CreatedAt,
	}
}

func mockUserView() userView {
	user := models.MockUser()
	return newUserView(&user)
}

type chapterView struct {
	models.Chapter
	Progress   float64 `json:"progress"`
	DaysPassed int     `json:"days_passed"`
}

func (handler *Handler) newChapterView(chapter models.Chapter, now time.Time) chapterView {
	return chapterView{
		Chapter:    chapter,
		Progress:   handler.chapters.Progress(chapter, now),
		DaysPassed: handler.chapters.DaysPassed(chapter, now),
	}
}

func (handler *Handler) newChapterViews(chapters []models.Chapter, now time.Time) []chapterView {
	views := make([]chapterView, 0, len(chapters))
	for _, chapter := range chapters {
		views = append(views, handler.newChapterView(chapter, now))
	}
	return views
}
