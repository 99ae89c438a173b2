package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/gymbro/internal/models"
)

const (
	CheckInHistoryLimit       = 30
	DefaultRecentCheckInLimit = 7
	MaxCheckInNotesLength     = 2000
	MinScaleValue             = 1
	MaxScaleValue             = 5
	baseCheckInXP             = 10
)

var (
	ErrCheckInInvalidWeight   = errors.New("weight must be between 30 and 300 kg")
	ErrCheckInInvalidBloating = errors.New("bloating level must be between 1 and 5")
	ErrCheckInInvalidEnergy   = errors.New("energy must be between 1 and 5")
	ErrCheckInInvalidAlcohol  = errors.New("alcohol intake must be none, low, moderate or high")
	ErrCheckInProfileRequired = errors.New("complete your profile before checking in")
	ErrCheckInLoadFailed      = errors.New("failed to load check-ins")
	ErrCheckInSaveFailed      = errors.New("failed to save check-in")
)

type CheckInInput struct {
	Weight        float64
	BloatingLevel int
	Energy        int
	AlcoholIntake string
	MovementDone  bool
	Notes         string
}

type CheckInResult struct {
	CheckIn  models.DailyCheckIn
	Profile  models.Profile
	XPGained int
	// Created is false when the submission replaced today's earlier check-in.
	Created bool
}

type CheckInService struct {
	checkIns CheckInRepository
	profiles *ProfileService
	location *time.Location
}

func NewCheckInService(checkIns CheckInRepository, profiles *ProfileService, location *time.Location) *CheckInService {
	if location == nil {
		location = time.UTC
	}
	return &CheckInService{checkIns: checkIns, profiles: profiles, location: location}
}

// CheckInXP is the reward for the first check-in of a day given the streak
// held before it.
func CheckInXP(streak int) int {
	return baseCheckInXP + max(0, streak)/2
}

func IsValidAlcoholIntake(value string) bool {
	switch value {
	case models.AlcoholNone, models.AlcoholLow, models.AlcoholModerate, models.AlcoholHigh:
		return true
	default:
		return false
	}
}

func NormalizeCheckInInput(input CheckInInput) (CheckInInput, error) {
	if input.Weight < MinBodyWeight || input.Weight > MaxBodyWeight {
		return CheckInInput{}, ErrCheckInInvalidWeight
	}
	if input.BloatingLevel < MinScaleValue || input.BloatingLevel > MaxScaleValue {
		return CheckInInput{}, ErrCheckInInvalidBloating
	}
	if input.Energy < MinScaleValue || input.Energy > MaxScaleValue {
		return CheckInInput{}, ErrCheckInInvalidEnergy
	}

	alcohol := strings.ToLower(strings.TrimSpace(input.AlcoholIntake))
	if alcohol == "" {
		alcohol = models.AlcoholNone
	}
	if !IsValidAlcoholIntake(alcohol) {
		return CheckInInput{}, ErrCheckInInvalidAlcohol
	}
	input.AlcoholIntake = alcohol

	notes := []rune(strings.TrimSpace(input.Notes))
	if len(notes) > MaxCheckInNotesLength {
		notes = notes[:MaxCheckInNotesLength]
	}
	input.Notes = string(notes)
	return input, nil
}

func (service *CheckInService) Today(now time.Time) string {
	return LocalDateString(now, service.location)
}

// List returns the latest check-ins, newest first.
func (service *CheckInService) List(userID string) ([]models.DailyCheckIn, error) {
	checkIns, err := service.checkIns.ListRecentByUser(userID, CheckInHistoryLimit)
	if err != nil {
		return nil, ErrCheckInLoadFailed
	}
	return checkIns, nil
}

// Add records today's check-in. Only the first submission of a date earns XP
// and extends the streak; later ones overwrite the stored fields.
func (service *CheckInService) Add(userID string, input CheckInInput, now time.Time) (CheckInResult, error) {
	normalized, err := NormalizeCheckInInput(input)
	if err != nil {
		return CheckInResult{}, err
	}

	profile, err := service.profiles.Fetch(userID)
	if err != nil {
		return CheckInResult{}, err
	}
	if profile == nil {
		return CheckInResult{}, ErrCheckInProfileRequired
	}

	today := service.Today(now)
	existing, found, err := service.checkIns.FindByUserAndDate(userID, today)
	if err != nil {
		return CheckInResult{}, ErrCheckInLoadFailed
	}

	if !found {
		checkIn := models.DailyCheckIn{UserID: userID, Date: today, CreatedAt: now.UTC(), UpdatedAt: now.UTC()}
		applyCheckInInput(&checkIn, normalized)
		xp := CheckInXP(profile.SoftStreaks)
		updated := *profile
		updated.XP += xp
		updated.SoftStreaks++
		if err := service.checkIns.CreateWithProgress(&checkIn, updated.XP, updated.SoftStreaks); err == nil {
			return CheckInResult{CheckIn: checkIn, Profile: updated, XPGained: xp, Created: true}, nil
		}

		// A concurrent request may have inserted the same date first. Any other
		// failure rolled back the row, so a retry still earns the XP.
		existing, found, err = service.checkIns.FindByUserAndDate(userID, today)
		if err != nil || !found {
			return CheckInResult{}, ErrCheckInSaveFailed
		}
	}

	applyCheckInInput(&existing, normalized)
	existing.UpdatedAt = now.UTC()
	if err := service.checkIns.Save(&existing); err != nil {
		return CheckInResult{}, ErrCheckInSaveFailed
	}
	return CheckInResult{CheckIn: existing, Profile: *profile}, nil
}

func applyCheckInInput(checkIn *models.DailyCheckIn, input CheckInInput) {
	checkIn.Weight = input.Weight
	checkIn.BloatingLevel = input.BloatingLevel
	checkIn.Energy = input.Energy
	checkIn.AlcoholIntake = input.AlcoholIntake
	checkIn.MovementDone = input.MovementDone
	checkIn.Notes = nil
	if input.Notes != "" {
		notes := input.Notes
		checkIn.Notes = &notes
	}
}

func (service *CheckInService) TodayCheckIn(userID string, now time.Time) (*models.DailyCheckIn, error) {
	checkIns, err := service.List(userID)
	if err != nil {
		return nil, err
	}
	return TodayCheckIn(checkIns, service.Today(now)), nil
}

func (service *CheckInService) HasCheckedInToday(userID string, now time.Time) (bool, error) {
	checkIn, err := service.TodayCheckIn(userID, now)
	if err != nil {
		return false, err
	}
	return checkIn != nil, nil
}

func (service *CheckInService) RecentCheckIns(userID string, limit int) ([]models.DailyCheckIn, error) {
	checkIns, err := service.List(userID)
	if err != nil {
		return nil, err
	}
	return RecentCheckIns(checkIns, limit), nil
}

func (service *CheckInService) MissedDays(userID string, now time.Time) (int, error) {
	checkIns, err := service.List(userID)
	if err != nil {
		return 0, err
	}
	return MissedDays(checkIns, service.Today(now)), nil
}

// The helpers below expect check-ins ordered newest first, as List returns them.

func TodayCheckIn(checkIns []models.DailyCheckIn, today string) *models.DailyCheckIn {
	for index := range checkIns {
		if checkIns[index].Date == today {
			found := checkIns[index]
			return &found
		}
	}
	return nil
}

func HasCheckedInToday(checkIns []models.DailyCheckIn, today string) bool {
	return TodayCheckIn(checkIns, today) != nil
}

func RecentCheckIns(checkIns []models.DailyCheckIn, limit int) []models.DailyCheckIn {
	if limit <= 0 {
		limit = DefaultRecentCheckInLimit
	}
	if len(checkIns) < limit {
		limit = len(checkIns)
	}
	recent := make([]models.DailyCheckIn, limit)
	copy(recent, checkIns[:limit])
	return recent
}

// MissedDays counts the full days skipped since the latest check-in; today
// itself is not counted as missed.
func MissedDays(checkIns []models.DailyCheckIn, today string) int {
	if len(checkIns) == 0 {
		return 0
	}
	days, err := CalendarDaysBetween(checkIns[0].Date, today)
	if err != nil {
		return 0
	}
	return max(0, days-1)
}
