package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/gymbro/internal/db"
	"github.com/terraincognita07/gymbro/internal/models"
	"github.com/terraincognita07/gymbro/internal/services"
	"gorm.io/gorm"
)

func openTestDatabase(t *testing.T) (*gorm.DB, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "gymbro.db")
	database, err := db.OpenSQLite(path)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { closeDatabase(database) })
	return database, path
}

func createTestUser(t *testing.T, database *gorm.DB, email string) models.User {
	t.Helper()

	auth := services.NewAuthService(db.NewUserRepository(database), nil, []byte("cli-test-secret"), "")
	user, err := auth.Register(email, "StrongPass1", "StrongPass1", time.Now())
	if err != nil {
		t.Fatalf("register %s: %v", email, err)
	}
	return user
}

func TestRunResetPasswordCommandForcesChange(t *testing.T) {
	t.Parallel()

	database, _ := openTestDatabase(t)
	user := createTestUser(t, database, "athlete@example.com")

	var out bytes.Buffer
	if err := RunResetPasswordCommand(database, "  Athlete@Example.com ", &out); err != nil {
		t.Fatalf("RunResetPasswordCommand returned error: %v", err)
	}
	if !strings.Contains(out.String(), "Temporary password:") {
		t.Fatalf("expected temporary password in output, got %q", out.String())
	}

	stored, err := db.NewUserRepository(database).FindByID(user.ID)
	if err != nil {
		t.Fatalf("reload user: %v", err)
	}
	if !stored.MustChangePassword {
		t.Fatal("expected must_change_password after reset")
	}
	if stored.PasswordHash == user.PasswordHash {
		t.Fatal("expected password hash to change")
	}
}

func TestRunResetPasswordCommandUnknownUser(t *testing.T) {
	t.Parallel()

	database, _ := openTestDatabase(t)
	err := RunResetPasswordCommand(database, "ghost@example.com", &bytes.Buffer{})
	if !errors.Is(err, services.ErrAuthUserNotFound) {
		t.Fatalf("expected ErrAuthUserNotFound, got %v", err)
	}
}

func TestRunSetPasswordCommandValidatesStrength(t *testing.T) {
	t.Parallel()

	database, _ := openTestDatabase(t)
	createTestUser(t, database, "athlete@example.com")

	if err := RunSetPasswordCommand(database, "athlete@example.com", "weak", &bytes.Buffer{}); !errors.Is(err, services.ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}

	var out bytes.Buffer
	if err := RunSetPasswordCommand(database, "athlete@example.com", "NewStrong2", &out); err != nil {
		t.Fatalf("RunSetPasswordCommand returned error: %v", err)
	}
	auth := services.NewAuthService(db.NewUserRepository(database), nil, nil, "")
	if _, err := auth.Authenticate("athlete@example.com", "NewStrong2"); err != nil {
		t.Fatalf("expected new password to authenticate: %v", err)
	}
}

func TestSetPasswordCommandPromptsTwice(t *testing.T) {
	database, path := openTestDatabase(t)
	createTestUser(t, database, "athlete@example.com")

	answers := []string{"Prompted9x", "Prompted9x"}
	original := readSecret
	readSecret = func(*os.File) ([]byte, error) {
		answer := answers[0]
		answers = answers[1:]
		return []byte(answer), nil
	}
	t.Cleanup(func() { readSecret = original })

	var stdout, stderr bytes.Buffer
	code := Execute([]string{"--db-driver", "sqlite", "--db", path, "set-password", "athlete@example.com"}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code = %d, stderr = %q", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "Confirm password:") {
		t.Fatalf("expected confirmation prompt, got %q", stdout.String())
	}
	if !strings.Contains(stdout.String(), "Password updated for athlete@example.com") {
		t.Fatalf("expected success line, got %q", stdout.String())
	}
}

func TestSetPasswordCommandRejectsMismatch(t *testing.T) {
	answers := []string{"Prompted9x", "Different9x"}
	original := readSecret
	readSecret = func(*os.File) ([]byte, error) {
		answer := answers[0]
		answers = answers[1:]
		return []byte(answer), nil
	}
	t.Cleanup(func() { readSecret = original })

	var stdout, stderr bytes.Buffer
	code := Execute([]string{"--db", filepath.Join(t.TempDir(), "unused.db"), "set-password", "athlete@example.com"}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit code = %d, want 1", code)
	}
	if !strings.Contains(stderr.String(), "passwords do not match") {
		t.Fatalf("expected mismatch error, got %q", stderr.String())
	}
}
