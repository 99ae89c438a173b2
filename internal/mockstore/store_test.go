package mockstore

import (
	"errors"
	"testing"
	"time"

	"github.com/terraincognita07/gymbro/internal/models"
	"gorm.io/gorm"
)

func TestChapterActivatePausesSiblings(t *testing.T) {
	store := New()
	chapters := store.Chapters()

	first := models.Chapter{UserID: "user-a", ChapterName: "First", Duration: 30, Focus: models.ChapterFocusStrength, Status: models.ChapterStatusActive}
	second := models.Chapter{UserID: "user-a", ChapterName: "Second", Duration: 30, Focus: models.ChapterFocusDrainage, Status: models.ChapterStatusPaused}
	foreign := models.Chapter{UserID: "user-b", ChapterName: "Foreign", Duration: 30, Focus: models.ChapterFocusDrainage, Status: models.ChapterStatusActive}
	if err := chapters.CreateBatch([]models.Chapter{first, second}); err != nil {
		t.Fatalf("create batch: %v", err)
	}
	if err := chapters.Create(&foreign); err != nil {
		t.Fatalf("create foreign chapter: %v", err)
	}

	listed, err := chapters.ListByUser("user-a")
	if err != nil {
		t.Fatalf("list chapters: %v", err)
	}
	if len(listed) != 2 || listed[0].ChapterName != "First" || listed[1].ChapterName != "Second" {
		t.Fatalf("expected insertion order, got %+v", listed)
	}

	target := listed[1]
	target.Status = models.ChapterStatusActive
	if err := chapters.Activate(&target); err != nil {
		t.Fatalf("activate chapter: %v", err)
	}

	listed, err = chapters.ListByUser("user-a")
	if err != nil {
		t.Fatalf("list chapters: %v", err)
	}
	if listed[0].Status != models.ChapterStatusPaused || listed[1].Status != models.ChapterStatusActive {
		t.Fatalf("expected only second chapter active, got %q and %q", listed[0].Status, listed[1].Status)
	}

	stillActive, err := chapters.FindByIDForUser(foreign.ID, "user-b")
	if err != nil {
		t.Fatalf("find foreign chapter: %v", err)
	}
	if stillActive.Status != models.ChapterStatusActive {
		t.Fatalf("expected foreign chapter untouched, got %q", stillActive.Status)
	}
}

func TestChapterLookupsAreOwnerScoped(t *testing.T) {
	store := New()
	chapter := models.Chapter{UserID: "owner", ChapterName: "Owned", Duration: 30, Focus: models.ChapterFocusMaintenance, Status: models.ChapterStatusPaused}
	if err := store.Chapters().Create(&chapter); err != nil {
		t.Fatalf("create chapter: %v", err)
	}

	if _, err := store.Chapters().FindByIDForUser(chapter.ID, "other"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
	if err := store.Chapters().DeleteByIDForUser(chapter.ID, "other"); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected foreign delete to miss, got %v", err)
	}
	if err := store.Chapters().DeleteByIDForUser(chapter.ID, "owner"); err != nil {
		t.Fatalf("delete chapter: %v", err)
	}
	exists, err := store.Chapters().ExistsForUser("owner")
	if err != nil || exists {
		t.Fatalf("expected no chapters left, exists=%v err=%v", exists, err)
	}
}

func TestCheckInsAreUniquePerDateAndListedNewestFirst(t *testing.T) {
	store := New()
	checkIns := store.CheckIns()

	for _, date := range []string{"2025-03-08", "2025-03-10", "2025-03-09"} {
		checkIn := models.DailyCheckIn{UserID: "user-a", Date: date, Weight: 80, BloatingLevel: 1, Energy: 1, AlcoholIntake: models.AlcoholNone}
		if err := checkIns.Create(&checkIn); err != nil {
			t.Fatalf("create check-in %s: %v", date, err)
		}
	}

	duplicate := models.DailyCheckIn{UserID: "user-a", Date: "2025-03-10", Weight: 82, BloatingLevel: 1, Energy: 1}
	if err := checkIns.Create(&duplicate); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}

	listed, err := checkIns.ListRecentByUser("user-a", 2)
	if err != nil {
		t.Fatalf("list check-ins: %v", err)
	}
	if len(listed) != 2 || listed[0].Date != "2025-03-10" || listed[1].Date != "2025-03-09" {
		t.Fatalf("unexpected listing: %+v", listed)
	}

	existing, found, err := checkIns.FindByUserAndDate("user-a", "2025-03-10")
	if err != nil || !found {
		t.Fatalf("probe existing date: found=%v err=%v", found, err)
	}
	existing.Weight = 79
	if err := checkIns.Save(&existing); err != nil {
		t.Fatalf("save check-in: %v", err)
	}
	reloaded, _, _ := checkIns.FindByUserAndDate("user-a", "2025-03-10")
	if reloaded.Weight != 79 {
		t.Fatalf("expected saved weight 79, got %v", reloaded.Weight)
	}
}

func TestUsersRejectDuplicateEmailIgnoringCase(t *testing.T) {
	store := New()
	users := store.Users()

	if err := users.Create(&models.User{Email: "Demo@Gymbro.App"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	if err := users.Create(&models.User{Email: "demo@gymbro.app"}); !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected ErrDuplicatedKey, got %v", err)
	}
	exists, err := users.ExistsByNormalizedEmail("demo@gymbro.app")
	if err != nil || !exists {
		t.Fatalf("expected user to exist, exists=%v err=%v", exists, err)
	}
	if err := users.UpdatePassword("missing", "hash", false); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestReplaceUserDataAndReset(t *testing.T) {
	store := New()
	if err := store.Profiles().Upsert(&models.Profile{ID: "user-a", Age: 30, Height: 180, Weight: 80, LongTermGoal: "Goal", XP: 50, SoftStreaks: 5}); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	if err := store.CheckIns().Create(&models.DailyCheckIn{UserID: "user-a", Date: "2025-01-01"}); err != nil {
		t.Fatalf("create check-in: %v", err)
	}
	if err := store.CheckIns().Create(&models.DailyCheckIn{UserID: "user-b", Date: "2025-01-01"}); err != nil {
		t.Fatalf("create foreign check-in: %v", err)
	}

	replacement := []models.DailyCheckIn{{UserID: "user-a", Date: "2025-02-01"}, {UserID: "user-a", Date: "2025-02-02"}}
	if err := store.Maintenance().ReplaceUserData("user-a", nil, replacement, 20, 2); err != nil {
		t.Fatalf("replace user data: %v", err)
	}

	own, _ := store.CheckIns().ListRecentByUser("user-a", 0)
	if len(own) != 2 || own[0].Date != "2025-02-02" {
		t.Fatalf("expected replacement check-ins, got %+v", own)
	}
	foreign, _ := store.CheckIns().ListRecentByUser("user-b", 0)
	if len(foreign) != 1 {
		t.Fatalf("expected foreign check-in to survive, got %d", len(foreign))
	}
	profile, found, _ := store.Profiles().FindByUserID("user-a")
	if !found || profile.XP != 20 || profile.SoftStreaks != 2 {
		t.Fatalf("expected xp=20 streak=2, got found=%v %+v", found, profile)
	}

	store.Reset()
	if _, found, _ := store.Profiles().FindByUserID("user-a"); found {
		t.Fatal("expected reset to drop profiles")
	}
	if remaining, _ := store.CheckIns().ListRecentByUser("user-b", 0); len(remaining) != 0 {
		t.Fatalf("expected reset to drop check-ins, got %d", len(remaining))
	}
}

func TestCheckInCreateWithProgressRequiresProfile(t *testing.T) {
	store := New()
	err := store.CheckIns().CreateWithProgress(&models.DailyCheckIn{UserID: "user-a", Date: "2025-01-01"}, 10, 1)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	if _, found, _ := store.CheckIns().FindByUserAndDate("user-a", "2025-01-01"); found {
		t.Fatal("expected no check-in without a profile")
	}

	if err := store.Profiles().Upsert(&models.Profile{ID: "user-a", Age: 30, Height: 180, Weight: 80, LongTermGoal: "Goal"}); err != nil {
		t.Fatalf("upsert profile: %v", err)
	}
	if err := store.CheckIns().CreateWithProgress(&models.DailyCheckIn{UserID: "user-a", Date: "2025-01-01"}, 10, 1); err != nil {
		t.Fatalf("create with progress: %v", err)
	}
	profile, _, _ := store.Profiles().FindByUserID("user-a")
	if profile.XP != 10 || profile.SoftStreaks != 1 {
		t.Fatalf("expected xp=10 streak=1, got %+v", profile)
	}

	err = store.CheckIns().CreateWithProgress(&models.DailyCheckIn{UserID: "user-a", Date: "2025-01-01"}, 20, 2)
	if !errors.Is(err, gorm.ErrDuplicatedKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}
	profile, _, _ = store.Profiles().FindByUserID("user-a")
	if profile.XP != 10 || profile.SoftStreaks != 1 {
		t.Fatalf("expected duplicate to leave progress untouched, got %+v", profile)
	}
}

func TestCheckInSaveKeepsCallerUpdatedAt(t *testing.T) {
	store := New()
	checkIn := models.DailyCheckIn{UserID: "user-a", Date: "2025-01-01"}
	if err := store.CheckIns().Create(&checkIn); err != nil {
		t.Fatalf("create check-in: %v", err)
	}

	stamp := time.Date(2025, time.January, 1, 21, 30, 0, 0, time.UTC)
	checkIn.UpdatedAt = stamp
	if err := store.CheckIns().Save(&checkIn); err != nil {
		t.Fatalf("save check-in: %v", err)
	}
	if !checkIn.UpdatedAt.Equal(stamp) {
		t.Fatalf("expected caller timestamp on argument, got %v", checkIn.UpdatedAt)
	}
	stored, _, _ := store.CheckIns().FindByUserAndDate("user-a", "2025-01-01")
	if !stored.UpdatedAt.Equal(stamp) {
		t.Fatalf("expected stored timestamp %v, got %v", stamp, stored.UpdatedAt)
	}
}

func TestReplaceUserDataWithProgressRequiresProfile(t *testing.T) {
	store := New()
	if err := store.CheckIns().Create(&models.DailyCheckIn{UserID: "user-a", Date: "2025-01-01"}); err != nil {
		t.Fatalf("create check-in: %v", err)
	}

	replacement := []models.DailyCheckIn{{UserID: "user-a", Date: "2025-02-01"}}
	err := store.Maintenance().ReplaceUserData("user-a", nil, replacement, 10, 1)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected record not found, got %v", err)
	}
	if own, _ := store.CheckIns().ListRecentByUser("user-a", 0); len(own) != 1 || own[0].Date != "2025-01-01" {
		t.Fatalf("expected original check-in untouched, got %+v", own)
	}

	if err := store.Maintenance().ReplaceUserData("user-a", nil, nil, 0, 0); err != nil {
		t.Fatalf("wipe without profile: %v", err)
	}
	if own, _ := store.CheckIns().ListRecentByUser("user-a", 0); len(own) != 0 {
		t.Fatalf("expected wipe to clear check-ins, got %d", len(own))
	}
}
