package db

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/terraincognita07/gymbro/internal/models"
	"gorm.io/gorm"
)

func TestOpenSQLiteCreatesCaseInsensitiveUserEmailUniqueIndex(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "gymbro-email-index.db"))

	firstUser := models.User{
		Email:        "QA-Test2@Gymbro.Local",
		PasswordHash: "hash-1",
		AuthProvider: models.AuthProviderPassword,
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&firstUser).Error; err != nil {
		t.Fatalf("create first user: %v", err)
	}
	if firstUser.ID == "" {
		t.Fatal("expected BeforeCreate to assign a user id")
	}

	secondUser := models.User{
		Email:        "qa-test2@gymbro.local",
		PasswordHash: "hash-2",
		AuthProvider: models.AuthProviderPassword,
		CreatedAt:    time.Now().UTC(),
	}
	if err := database.Create(&secondUser).Error; err == nil {
		t.Fatalf("expected duplicate normalized email insert to fail")
	}
}

func TestUserRepositoryLookups(t *testing.T) {
	database := openSQLiteForTest(t, filepath.Join(t.TempDir(), "gymbro-users.db"))
	repo := NewUserRepository(database)

	user := models.User{Email: "lookup@example.com", PasswordHash: "hash", AuthProvider: models.AuthProviderPassword, CreatedAt: time.Now().UTC()}
	if err := repo.Create(&user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	exists, err := repo.ExistsByNormalizedEmail("lookup@example.com")
	if err != nil || !exists {
		t.Fatalf("expected user to exist, exists=%v err=%v", exists, err)
	}

	found, err := repo.FindByNormalizedEmail("lookup@example.com")
	if err != nil {
		t.Fatalf("find by email: %v", err)
	}
	if found.ID != user.ID {
		t.Fatalf("expected id %q, got %q", user.ID, found.ID)
	}

	if err := repo.UpdatePassword(user.ID, "new-hash", true); err != nil {
		t.Fatalf("update password: %v", err)
	}
	reloaded, err := repo.FindByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if reloaded.PasswordHash != "new-hash" || !reloaded.MustChangePassword {
		t.Fatalf("expected password update to persist, got %+v", reloaded)
	}

	if err := repo.UpdatePassword("missing-user", "hash", false); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for missing user, got %v", err)
	}
}
