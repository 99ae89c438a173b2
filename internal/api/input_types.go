package api

import (
	"github.com/terraincognita07/gymbro/internal/models"
	"github.com/terraincognita07/gymbro/internal/services"
)

type credentialsInput struct {
	Email           string `json:"email" form:"email"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
	RememberMe      bool   `json:"remember_me" form:"remember_me"`
}

type emailInput struct {
	Email string `json:"email" form:"email"`
}

type resetPasswordInput struct {
	Token           string `json:"token" form:"token"`
	Password        string `json:"password" form:"password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type changePasswordInput struct {
	CurrentPassword string `json:"current_password" form:"current_password"`
	NewPassword     string `json:"new_password" form:"new_password"`
	ConfirmPassword string `json:"confirm_password" form:"confirm_password"`
}

type profilePayload struct {
	Age          int     `json:"age"`
	Height       float64 `json:"height"`
	Weight       float64 `json:"weight"`
	InjuryNotes  string  `json:"injury_notes"`
	LongTermGoal string  `json:"long_term_goal"`
}

func (payload profilePayload) toInput() services.ProfileInput {
	return services.ProfileInput{
		Age:          payload.Age,
		Height:       payload.Height,
		Weight:       payload.Weight,
		InjuryNotes:  payload.InjuryNotes,
		LongTermGoal: payload.LongTermGoal,
	}
}

type chapterPayload struct {
	ChapterName string `json:"chapter_name"`
	Duration    int    `json:"duration"`
	Focus       string `json:"focus"`
}

// chapterPatchPayload leaves absent fields nil so PATCH only touches what was
// sent.
type chapterPatchPayload struct {
	ChapterName *string `json:"chapter_name"`
	Duration    *int    `json:"duration"`
	Focus       *string `json:"focus"`
	Status      *string `json:"status"`
}

type chapterStatusPayload struct {
	Status string `json:"status"`
}

type checkInPayload struct {
	Weight        float64 `json:"weight"`
	BloatingLevel int     `json:"bloating_level"`
	Energy        int     `json:"energy"`
	AlcoholIntake string  `json:"alcohol_intake"`
	MovementDone  bool    `json:"movement_done"`
	Notes         string  `json:"notes"`
}

func (payload checkInPayload) toInput() services.CheckInInput {
	return services.CheckInInput{
		Weight:        payload.Weight,
		BloatingLevel: payload.BloatingLevel,
		Energy:        payload.Energy,
		AlcoholIntake: payload.AlcoholIntake,
		MovementDone:  payload.MovementDone,
		Notes:         payload.Notes,
	}
}

type coachPayload struct {
	Messages []models.ChatMessage `json:"messages"`
}
