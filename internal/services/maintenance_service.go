package services

import (
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/terraincognita07/gymbro/internal/models"
	"gorm.io/gorm"
)

const (
	seedHistoryDays       = 14
	seedDayKeepRate       = 0.8
	seedMovementRate      = 0.7
	seedMinWeight         = 70
	seedWeightSpan        = 20
	seedChapterName       = "Test Chapter"
	seedChapterDuration   = 30
	seedChapterStartedAgo = 7
	seedXPPerCheckIn      = 10
)

var (
	ErrWipeFailed = errors.New("failed to wipe data")
	ErrSeedFailed = errors.New("failed to seed data")

	ErrSeedProfileRequired = errors.New("complete your profile before seeding data")
)

var seedAlcoholChoices = []string{
	models.AlcoholNone,
	models.AlcoholNone,
	models.AlcoholNone,
	models.AlcoholLow,
	models.AlcoholModerate,
	models.AlcoholHigh,
}

var seedNoteChoices = []string{
	"",
	"Felt great today!",
	"Tired but pushed through",
	"Rest day",
	"Good workout session",
	"Stressed from work",
	"",
	"",
}

var seedFocusChoices = []string{
	models.ChapterFocusDrainage,
	models.ChapterFocusStrength,
	models.ChapterFocusMaintenance,
}

// RandomSource is the subset of *rand.Rand the seed generator draws from.
type RandomSource interface {
	IntN(n int) int
	Float64() float64
}

type SeedSummary struct {
	CheckIns int    `json:"check_ins"`
	Chapters int    `json:"chapters"`
	XP       int    `json:"xp"`
	Message  string `json:"message"`
}

type MaintenanceService struct {
	maintenance MaintenanceRepository
	location    *time.Location

	mu     sync.Mutex
	random RandomSource
}

func NewMaintenanceService(maintenance MaintenanceRepository, random RandomSource, location *time.Location) *MaintenanceService {
	if random == nil {
		now := uint64(time.Now().UnixNano())
		random = rand.New(rand.NewPCG(now, now>>1))
	}
	if location == nil {
		location = time.UTC
	}
	return &MaintenanceService{maintenance: maintenance, random: random, location: location}
}

// Wipe deletes every chapter and check-in of the user and zeroes progress.
func (service *MaintenanceService) Wipe(userID string) error {
	if err := service.maintenance.ReplaceUserData(userID, nil, nil, 0, 0); err != nil {
		return ErrWipeFailed
	}
	return nil
}

// Seed replaces the user's data with two weeks of generated history and one
// running test chapter.
func (service *MaintenanceService) Seed(userID string, now time.Time) (SeedSummary, error) {
	today := LocalDateString(now, service.location)

	service.mu.Lock()
	checkIns, chapter, err := service.generate(userID, today, now.UTC())
	service.mu.Unlock()
	if err != nil {
		return SeedSummary{}, ErrSeedFailed
	}

	xp := len(checkIns) * seedXPPerCheckIn
	streak := len(checkIns)
	if err := service.maintenance.ReplaceUserData(userID, []models.Chapter{chapter}, checkIns, xp, streak); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SeedSummary{}, ErrSeedProfileRequired
		}
		return SeedSummary{}, ErrSeedFailed
	}

	return SeedSummary{
		CheckIns: len(checkIns),
		Chapters: 1,
		XP:       xp,
		Message:  fmt.Sprintf("Created %d check-ins, 1 chapter, %d XP", len(checkIns), xp),
	}, nil
}

func (service *MaintenanceService) generate(userID string, today string, createdAt time.Time) ([]models.DailyCheckIn, models.Chapter, error) {
	checkIns := make([]models.DailyCheckIn, 0, seedHistoryDays)
	for offset := seedHistoryDays - 1; offset >= 0; offset-- {
		if service.random.Float64() >= seedDayKeepRate {
			continue
		}

		date, err := ShiftDate(today, -offset)
		if err != nil {
			return nil, models.Chapter{}, err
		}

		checkIn := models.DailyCheckIn{
			UserID:        userID,
			Date:          date,
			Weight:        math.Round((seedMinWeight+service.random.Float64()*seedWeightSpan)*10) / 10,
			Energy:        MinScaleValue + service.random.IntN(MaxScaleValue),
			BloatingLevel: MinScaleValue + service.random.IntN(MaxScaleValue),
			MovementDone:  service.random.Float64() < seedMovementRate,
			AlcoholIntake: seedAlcoholChoices[service.random.IntN(len(seedAlcoholChoices))],
			CreatedAt:     createdAt,
			UpdatedAt:     createdAt,
		}
		if note := seedNoteChoices[service.random.IntN(len(seedNoteChoices))]; note != "" {
			checkIn.Notes = &note
		}
		checkIns = append(checkIns, checkIn)
	}

	startDate, err := ShiftDate(today, -seedChapterStartedAgo)
	if err != nil {
		return nil, models.Chapter{}, err
	}
	chapter := models.Chapter{
		UserID:      userID,
		ChapterName: seedChapterName,
		Duration:    seedChapterDuration,
		Focus:       seedFocusChoices[service.random.IntN(len(seedFocusChoices))],
		Status:      models.ChapterStatusActive,
		StartDate:   &startDate,
		CreatedAt:   createdAt,
	}
	return checkIns, chapter, nil
}
