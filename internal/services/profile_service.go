package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/gymbro/internal/models"
)

const (
	MinProfileAge    = 16
	MaxProfileAge    = 100
	MinProfileHeight = 100
	MaxProfileHeight = 250
	MinBodyWeight    = 30
	MaxBodyWeight    = 300
)

var (
	ErrProfileInvalidAge    = errors.New("age must be between 16 and 100")
	ErrProfileInvalidHeight = errors.New("height must be between 100 and 250 cm")
	ErrProfileInvalidWeight = errors.New("weight must be between 30 and 300 kg")
	ErrProfileGoalRequired  = errors.New("long-term goal is required")
	ErrProfileNotFound      = errors.New("profile not found")
	ErrProfileLoadFailed    = errors.New("failed to load profile")
	ErrProfileSaveFailed    = errors.New("failed to save profile")
	ErrProgressUpdateFailed = errors.New("failed to update progress")
)

type ProfileInput struct {
	Age          int
	Height       float64
	Weight       float64
	InjuryNotes  string
	LongTermGoal string
}

type ProfileService struct {
	profiles ProfileRepository
}

func NewProfileService(profiles ProfileRepository) *ProfileService {
	return &ProfileService{profiles: profiles}
}

func NormalizeProfileInput(input ProfileInput) (ProfileInput, error) {
	input.InjuryNotes = strings.TrimSpace(input.InjuryNotes)
	input.LongTermGoal = strings.TrimSpace(input.LongTermGoal)

	switch {
	case input.Age < MinProfileAge || input.Age > MaxProfileAge:
		return ProfileInput{}, ErrProfileInvalidAge
	case input.Height < MinProfileHeight || input.Height > MaxProfileHeight:
		return ProfileInput{}, ErrProfileInvalidHeight
	case input.Weight < MinBodyWeight || input.Weight > MaxBodyWeight:
		return ProfileInput{}, ErrProfileInvalidWeight
	case input.LongTermGoal == "":
		return ProfileInput{}, ErrProfileGoalRequired
	}
	return input, nil
}

// Fetch returns nil without an error when the user has not onboarded yet.
func (service *ProfileService) Fetch(userID string) (*models.Profile, error) {
	profile, found, err := service.profiles.FindByUserID(userID)
	if err != nil {
		return nil, ErrProfileLoadFailed
	}
	if !found {
		return nil, nil
	}
	return &profile, nil
}

// Save inserts the profile or replaces its editable fields. XP, streak and
// created_at survive a replace; new profiles start at zero progress.
func (service *ProfileService) Save(userID string, input ProfileInput, now time.Time) (models.Profile, bool, error) {
	normalized, err := NormalizeProfileInput(input)
	if err != nil {
		return models.Profile{}, false, err
	}

	existing, found, err := service.profiles.FindByUserID(userID)
	if err != nil {
		return models.Profile{}, false, ErrProfileLoadFailed
	}

	profile := models.Profile{
		ID:           userID,
		Age:          normalized.Age,
		Height:       normalized.Height,
		Weight:       normalized.Weight,
		LongTermGoal: normalized.LongTermGoal,
		CreatedAt:    now.UTC(),
	}
	if normalized.InjuryNotes != "" {
		notes := normalized.InjuryNotes
		profile.InjuryNotes = &notes
	}
	if found {
		profile.XP = existing.XP
		profile.SoftStreaks = existing.SoftStreaks
		profile.CreatedAt = existing.CreatedAt
	}

	if err := service.profiles.Upsert(&profile); err != nil {
		return models.Profile{}, false, ErrProfileSaveFailed
	}
	return profile, !found, nil
}

// UpdateXPAndStreak applies relative changes; neither counter drops below zero.
func (service *ProfileService) UpdateXPAndStreak(userID string, xpGain int, streakChange int) (models.Profile, error) {
	profile, found, err := service.profiles.FindByUserID(userID)
	if err != nil {
		return models.Profile{}, ErrProfileLoadFailed
	}
	if !found {
		return models.Profile{}, ErrProfileNotFound
	}

	profile.XP = max(0, profile.XP+xpGain)
	profile.SoftStreaks = max(0, profile.SoftStreaks+streakChange)
	if err := service.profiles.UpdateProgress(userID, profile.XP, profile.SoftStreaks); err != nil {
		return models.Profile{}, ErrProgressUpdateFailed
	}
	return profile, nil
}
