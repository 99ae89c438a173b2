package services

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/gymbro/internal/models"
	"gorm.io/gorm"
)

var (
	ErrChapterNotFound        = errors.New("chapter not found")
	ErrChapterNameRequired    = errors.New("chapter name is required")
	ErrChapterInvalidDuration = errors.New("duration must be between 7 and 365 days")
	ErrChapterInvalidFocus    = errors.New("focus must be drainage, strength or maintenance")
	ErrChapterInvalidStatus   = errors.New("status must be active, paused or completed")
	ErrChapterLoadFailed      = errors.New("failed to load chapters")
	ErrChapterSaveFailed      = errors.New("failed to save chapter")
	ErrChapterDeleteFailed    = errors.New("failed to delete chapter")
	ErrChapterDefaultsFailed  = errors.New("failed to create default chapters")
)

type ChapterInput struct {
	ChapterName string
	Duration    int
	Focus       string
}

// ChapterPatch carries the fields of a partial update; nil fields stay as
// stored.
type ChapterPatch struct {
	ChapterName *string
	Duration    *int
	Focus       *string
	Status      *string
}

type ChapterService struct {
	chapters ChapterRepository
	location *time.Location
}

func NewChapterService(chapters ChapterRepository, location *time.Location) *ChapterService {
	if location == nil {
		location = time.UTC
	}
	return &ChapterService{chapters: chapters, location: location}
}

func IsValidChapterFocus(focus string) bool {
	switch focus {
	case models.ChapterFocusDrainage, models.ChapterFocusStrength, models.ChapterFocusMaintenance:
		return true
	default:
		return false
	}
}

func IsValidChapterStatus(status string) bool {
	switch status {
	case models.ChapterStatusActive, models.ChapterStatusPaused, models.ChapterStatusCompleted:
		return true
	default:
		return false
	}
}

func validateChapterName(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", ErrChapterNameRequired
	}
	return trimmed, nil
}

func validateChapterDuration(duration int) error {
	if duration < models.MinChapterDuration || duration > models.MaxChapterDuration {
		return ErrChapterInvalidDuration
	}
	return nil
}

func NormalizeChapterInput(input ChapterInput) (ChapterInput, error) {
	name, err := validateChapterName(input.ChapterName)
	if err != nil {
		return ChapterInput{}, err
	}
	if err := validateChapterDuration(input.Duration); err != nil {
		return ChapterInput{}, err
	}
	focus := strings.ToLower(strings.TrimSpace(input.Focus))
	if !IsValidChapterFocus(focus) {
		return ChapterInput{}, ErrChapterInvalidFocus
	}
	return ChapterInput{ChapterName: name, Duration: input.Duration, Focus: focus}, nil
}

func (service *ChapterService) List(userID string) ([]models.Chapter, error) {
	chapters, err := service.chapters.ListByUser(userID)
	if err != nil {
		return nil, ErrChapterLoadFailed
	}
	return chapters, nil
}

// Active returns nil when no chapter is running.
func (service *ChapterService) Active(userID string) (*models.Chapter, error) {
	chapters, err := service.List(userID)
	if err != nil {
		return nil, err
	}
	return ActiveChapter(chapters), nil
}

func ActiveChapter(chapters []models.Chapter) *models.Chapter {
	for index := range chapters {
		if chapters[index].Status == models.ChapterStatusActive {
			active := chapters[index]
			return &active
		}
	}
	return nil
}

// PreloadDefaults seeds the starter chapters for a user that has none. It
// reports whether anything was inserted.
func (service *ChapterService) PreloadDefaults(userID string, now time.Time) (bool, error) {
	exists, err := service.chapters.ExistsForUser(userID)
	if err != nil {
		return false, ErrChapterLoadFailed
	}
	if exists {
		return false, nil
	}

	today := LocalDateString(now, service.location)
	defaults := models.DefaultChapters()
	chapters := make([]models.Chapter, 0, len(defaults))
	for index, preset := range defaults {
		chapter := models.Chapter{
			UserID:      userID,
			ChapterName: preset.Name,
			Duration:    preset.Duration,
			Focus:       preset.Focus,
			Status:      models.ChapterStatusPaused,
			// Distinct timestamps keep the starter order stable when listing oldest first.
			CreatedAt: now.UTC().Add(time.Duration(index) * time.Millisecond),
		}
		if preset.Active {
			startDate := today
			chapter.Status = models.ChapterStatusActive
			chapter.StartDate = &startDate
		}
		chapters = append(chapters, chapter)
	}

	if err := service.chapters.CreateBatch(chapters); err != nil {
		return false, ErrChapterDefaultsFailed
	}
	return true, nil
}

// Add creates a paused chapter without a start date.
func (service *ChapterService) Add(userID string, input ChapterInput, now time.Time) (models.Chapter, error) {
	normalized, err := NormalizeChapterInput(input)
	if err != nil {
		return models.Chapter{}, err
	}

	chapter := models.Chapter{
		UserID:      userID,
		ChapterName: normalized.ChapterName,
		Duration:    normalized.Duration,
		Focus:       normalized.Focus,
		Status:      models.ChapterStatusPaused,
		CreatedAt:   now.UTC(),
	}
	if err := service.chapters.Create(&chapter); err != nil {
		return models.Chapter{}, ErrChapterSaveFailed
	}
	return chapter, nil
}

// Update applies patch to the chapter. Activation pauses every other active
// chapter of the user first and stamps the start date once.
func (service *ChapterService) Update(userID string, chapterID string, patch ChapterPatch, now time.Time) (models.Chapter, error) {
	chapter, err := service.chapters.FindByIDForUser(chapterID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Chapter{}, ErrChapterNotFound
		}
		return models.Chapter{}, ErrChapterLoadFailed
	}

	if patch.ChapterName != nil {
		name, err := validateChapterName(*patch.ChapterName)
		if err != nil {
			return models.Chapter{}, err
		}
		chapter.ChapterName = name
	}
	if patch.Duration != nil {
		if err := validateChapterDuration(*patch.Duration); err != nil {
			return models.Chapter{}, err
		}
		chapter.Duration = *patch.Duration
	}
	if patch.Focus != nil {
		focus := strings.ToLower(strings.TrimSpace(*patch.Focus))
		if !IsValidChapterFocus(focus) {
			return models.Chapter{}, ErrChapterInvalidFocus
		}
		chapter.Focus = focus
	}

	activating := false
	if patch.Status != nil {
		status := strings.ToLower(strings.TrimSpace(*patch.Status))
		if !IsValidChapterStatus(status) {
			return models.Chapter{}, ErrChapterInvalidStatus
		}
		activating = status == models.ChapterStatusActive
		chapter.Status = status
	}

	if activating {
		if chapter.StartDate == nil || strings.TrimSpace(*chapter.StartDate) == "" {
			startDate := LocalDateString(now, service.location)
			chapter.StartDate = &startDate
		}
		if err := service.chapters.Activate(&chapter); err != nil {
			return models.Chapter{}, ErrChapterSaveFailed
		}
		return chapter, nil
	}

	if err := service.chapters.Save(&chapter); err != nil {
		return models.Chapter{}, ErrChapterSaveFailed
	}
	return chapter, nil
}

func (service *ChapterService) SetStatus(userID string, chapterID string, status string, now time.Time) (models.Chapter, error) {
	return service.Update(userID, chapterID, ChapterPatch{Status: &status}, now)
}

func (service *ChapterService) Delete(userID string, chapterID string) error {
	if err := service.chapters.DeleteByIDForUser(chapterID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrChapterNotFound
		}
		return ErrChapterDeleteFailed
	}
	return nil
}

// DaysPassed counts whole days since the chapter started, never negative.
func (service *ChapterService) DaysPassed(chapter models.Chapter, now time.Time) int {
	if chapter.StartDate == nil {
		return 0
	}
	days, err := CalendarDaysBetween(*chapter.StartDate, LocalDateString(now, service.location))
	if err != nil || days < 0 {
		return 0
	}
	return days
}

// Progress is the elapsed share of the chapter in [0, 1].
func (service *ChapterService) Progress(chapter models.Chapter, now time.Time) float64 {
	if chapter.StartDate == nil || chapter.Duration <= 0 {
		return 0
	}
	return min(1, float64(service.DaysPassed(chapter, now))/float64(chapter.Duration))
}
