// Package mockstore keeps users, profiles, chapters and check-ins in process
// memory. It backs the server when no database is configured and mirrors the
// ordering and uniqueness rules of the SQL repositories.
package mockstore

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/gymbro/internal/models"
	"gorm.io/gorm"
)

type Store struct {
	mu       sync.Mutex
	sequence int64
	users    map[string]models.User
	profiles map[string]models.Profile
	chapters []chapterRecord
	checkIns []checkInRecord
}

type chapterRecord struct {
	seq     int64
	chapter models.Chapter
}

type checkInRecord struct {
	seq     int64
	checkIn models.DailyCheckIn
}

func New() *Store {
	store := &Store{}
	store.Reset()
	return store
}

// Reset drops every record held by the store.
func (store *Store) Reset() {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.sequence = 0
	store.users = make(map[string]models.User)
	store.profiles = make(map[string]models.Profile)
	store.chapters = nil
	store.checkIns = nil
}

func (store *Store) Users() *UserTable {
	return &UserTable{store: store}
}

func (store *Store) Profiles() *ProfileTable {
	return &ProfileTable{store: store}
}

func (store *Store) Chapters() *ChapterTable {
	return &ChapterTable{store: store}
}

func (store *Store) CheckIns() *CheckInTable {
	return &CheckInTable{store: store}
}

func (store *Store) Maintenance() *MaintenanceTable {
	return &MaintenanceTable{store: store}
}

func (store *Store) nextSequence() int64 {
	store.sequence++
	return store.sequence
}

func stampCreatedAt(value *time.Time) {
	if value.IsZero() {
		*value = time.Now()
	}
}

type UserTable struct {
	store *Store
}

func (table *UserTable) FindByID(userID string) (models.User, error) {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	user, ok := table.store.users[userID]
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (table *UserTable) FindByNormalizedEmail(email string) (models.User, error) {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	user, ok := table.store.findUserByEmailLocked(email)
	if !ok {
		return models.User{}, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (table *UserTable) ExistsByNormalizedEmail(email string) (bool, error) {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	_, ok := table.store.findUserByEmailLocked(email)
	return ok, nil
}

func (table *UserTable) Create(user *models.User) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	if _, taken := table.store.findUserByEmailLocked(user.Email); taken {
		return gorm.ErrDuplicatedKey
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	stampCreatedAt(&user.CreatedAt)
	table.store.users[user.ID] = *user
	return nil
}

func (table *UserTable) Save(user *models.User) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	stampCreatedAt(&user.CreatedAt)
	table.store.users[user.ID] = *user
	return nil
}

func (table *UserTable) UpdatePassword(userID string, passwordHash string, mustChangePassword bool) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	user, ok := table.store.users[userID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	user.PasswordHash = passwordHash
	user.MustChangePassword = mustChangePassword
	table.store.users[userID] = user
	return nil
}

func (store *Store) findUserByEmailLocked(email string) (models.User, bool) {
	normalized := strings.ToLower(strings.TrimSpace(email))
	for _, user := range store.users {
		if strings.ToLower(strings.TrimSpace(user.Email)) == normalized {
			return user, true
		}
	}
	return models.User{}, false
}

type ProfileTable struct {
	store *Store
}

func (table *ProfileTable) FindByUserID(userID string) (models.Profile, bool, error) {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	profile, ok := table.store.profiles[userID]
	return profile, ok, nil
}

func (table *ProfileTable) Upsert(profile *models.Profile) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	stampCreatedAt(&profile.CreatedAt)
	table.store.profiles[profile.ID] = *profile
	return nil
}

func (table *ProfileTable) UpdateProgress(userID string, xp int, streak int) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	table.store.setProgressLocked(userID, xp, streak)
	return nil
}

func (store *Store) setProgressLocked(userID string, xp int, streak int) {
	profile, ok := store.profiles[userID]
	if !ok {
		return
	}
	profile.XP = xp
	profile.SoftStreaks = streak
	store.profiles[userID] = profile
}

type ChapterTable struct {
	store *Store
}

func (table *ChapterTable) ListByUser(userID string) ([]models.Chapter, error) {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	records := make([]chapterRecord, 0)
	for _, record := range table.store.chapters {
		if record.chapter.UserID == userID {
			records = append(records, record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		left, right := records[i], records[j]
		if !left.chapter.CreatedAt.Equal(right.chapter.CreatedAt) {
			return left.chapter.CreatedAt.Before(right.chapter.CreatedAt)
		}
		return left.seq < right.seq
	})

	chapters := make([]models.Chapter, 0, len(records))
	for _, record := range records {
		chapters = append(chapters, record.chapter)
	}
	return chapters, nil
}

func (table *ChapterTable) ExistsForUser(userID string) (bool, error) {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	for _, record := range table.store.chapters {
		if record.chapter.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (table *ChapterTable) FindByIDForUser(chapterID string, userID string) (models.Chapter, error) {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	index := table.store.chapterIndexLocked(chapterID, userID)
	if index < 0 {
		return models.Chapter{}, gorm.ErrRecordNotFound
	}
	return table.store.chapters[index].chapter, nil
}

func (table *ChapterTable) Create(chapter *models.Chapter) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	table.store.insertChapterLocked(chapter)
	return nil
}

func (table *ChapterTable) CreateBatch(chapters []models.Chapter) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	for index := range chapters {
		table.store.insertChapterLocked(&chapters[index])
	}
	return nil
}

func (table *ChapterTable) Save(chapter *models.Chapter) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	table.store.saveChapterLocked(chapter)
	return nil
}

func (table *ChapterTable) Activate(chapter *models.Chapter) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	for index := range table.store.chapters {
		current := &table.store.chapters[index].chapter
		if current.UserID == chapter.UserID && current.ID != chapter.ID && current.Status == models.ChapterStatusActive {
			current.Status = models.ChapterStatusPaused
		}
	}
	table.store.saveChapterLocked(chapter)
	return nil
}

func (table *ChapterTable) DeleteByIDForUser(chapterID string, userID string) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	index := table.store.chapterIndexLocked(chapterID, userID)
	if index < 0 {
		return gorm.ErrRecordNotFound
	}
	table.store.chapters = append(table.store.chapters[:index], table.store.chapters[index+1:]...)
	return nil
}

func (store *Store) chapterIndexLocked(chapterID string, userID string) int {
	for index, record := range store.chapters {
		if record.chapter.ID == chapterID && record.chapter.UserID == userID {
			return index
		}
	}
	return -1
}

func (store *Store) insertChapterLocked(chapter *models.Chapter) {
	if chapter.ID == "" {
		chapter.ID = uuid.NewString()
	}
	stampCreatedAt(&chapter.CreatedAt)
	store.chapters = append(store.chapters, chapterRecord{seq: store.nextSequence(), chapter: *chapter})
}

func (store *Store) saveChapterLocked(chapter *models.Chapter) {
	for index := range store.chapters {
		if store.chapters[index].chapter.ID == chapter.ID {
			store.chapters[index].chapter = *chapter
			return
		}
	}
	store.insertChapterLocked(chapter)
}

type CheckInTable struct {
	store *Store
}

func (table *CheckInTable) ListRecentByUser(userID string, limit int) ([]models.DailyCheckIn, error) {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	records := make([]checkInRecord, 0)
	for _, record := range table.store.checkIns {
		if record.checkIn.UserID == userID {
			records = append(records, record)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].checkIn.Date != records[j].checkIn.Date {
			return records[i].checkIn.Date > records[j].checkIn.Date
		}
		return records[i].seq > records[j].seq
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	checkIns := make([]models.DailyCheckIn, 0, len(records))
	for _, record := range records {
		checkIns = append(checkIns, record.checkIn)
	}
	return checkIns, nil
}

func (table *CheckInTable) FindByUserAndDate(userID string, date string) (models.DailyCheckIn, bool, error) {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	for _, record := range table.store.checkIns {
		if record.checkIn.UserID == userID && record.checkIn.Date == date {
			return record.checkIn, true, nil
		}
	}
	return models.DailyCheckIn{}, false, nil
}

func (table *CheckInTable) Create(checkIn *models.DailyCheckIn) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	return table.store.insertCheckInLocked(checkIn)
}

func (table *CheckInTable) CreateWithProgress(checkIn *models.DailyCheckIn, xp int, streak int) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	if _, ok := table.store.profiles[checkIn.UserID]; !ok {
		return gorm.ErrRecordNotFound
	}
	if err := table.store.insertCheckInLocked(checkIn); err != nil {
		return err
	}
	table.store.setProgressLocked(checkIn.UserID, xp, streak)
	return nil
}

func (table *CheckInTable) Save(checkIn *models.DailyCheckIn) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	for index := range table.store.checkIns {
		if table.store.checkIns[index].checkIn.ID == checkIn.ID {
			table.store.checkIns[index].checkIn = *checkIn
			return nil
		}
	}
	return table.store.insertCheckInLocked(checkIn)
}

func (store *Store) insertCheckInLocked(checkIn *models.DailyCheckIn) error {
	for _, record := range store.checkIns {
		if record.checkIn.UserID == checkIn.UserID && record.checkIn.Date == checkIn.Date {
			return gorm.ErrDuplicatedKey
		}
	}
	if checkIn.ID == "" {
		checkIn.ID = uuid.NewString()
	}
	stampCreatedAt(&checkIn.CreatedAt)
	if checkIn.UpdatedAt.IsZero() {
		checkIn.UpdatedAt = checkIn.CreatedAt
	}
	store.checkIns = append(store.checkIns, checkInRecord{seq: store.nextSequence(), checkIn: *checkIn})
	return nil
}

type MaintenanceTable struct {
	store *Store
}

func (table *MaintenanceTable) ReplaceUserData(userID string, chapters []models.Chapter, checkIns []models.DailyCheckIn, xp int, streak int) error {
	table.store.mu.Lock()
	defer table.store.mu.Unlock()

	if _, ok := table.store.profiles[userID]; !ok && (xp != 0 || streak != 0) {
		return gorm.ErrRecordNotFound
	}

	keptChapters := table.store.chapters[:0]
	for _, record := range table.store.chapters {
		if record.chapter.UserID != userID {
			keptChapters = append(keptChapters, record)
		}
	}
	table.store.chapters = keptChapters

	keptCheckIns := table.store.checkIns[:0]
	for _, record := range table.store.checkIns {
		if record.checkIn.UserID != userID {
			keptCheckIns = append(keptCheckIns, record)
		}
	}
	table.store.checkIns = keptCheckIns

	for index := range checkIns {
		if err := table.store.insertCheckInLocked(&checkIns[index]); err != nil {
			return err
		}
	}
	for index := range chapters {
		table.store.insertChapterLocked(&chapters[index])
	}
	table.store.setProgressLocked(userID, xp, streak)
	return nil
}
