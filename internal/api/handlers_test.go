package api

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/coach"
	"github.com/terraincognita07/gymbro/internal/db"
	"github.com/terraincognita07/gymbro/internal/services"
)

func TestNewHandlerRequiresSecretOutsideMockMode(t *testing.T) {
	t.Parallel()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "gymbro-handler.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if _, err := NewHandler(Options{Database: database}); err == nil {
		t.Fatal("expected missing secret key to be rejected")
	}

	handler, err := NewHandler(Options{})
	if err != nil {
		t.Fatalf("mock handler without secret: %v", err)
	}
	if !handler.MockMode() {
		t.Fatal("expected nil database to select mock mode")
	}
}

func TestStatusForError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		err  error
		want int
	}{
		{err: services.ErrChapterInvalidFocus, want: fiber.StatusBadRequest},
		{err: services.ErrWeakPassword, want: fiber.StatusBadRequest},
		{err: fmt.Errorf("wrapped: %w", services.ErrAuthTokenExpired), want: fiber.StatusBadRequest},
		{err: coach.ErrInvalidMessage, want: fiber.StatusBadRequest},
		{err: services.ErrChapterNotFound, want: fiber.StatusNotFound},
		{err: services.ErrCheckInProfileRequired, want: fiber.StatusConflict},
		{err: services.ErrSeedProfileRequired, want: fiber.StatusConflict},
		{err: services.ErrAuthEmailExists, want: fiber.StatusConflict},
		{err: services.ErrAuthInvalidCredentials, want: fiber.StatusUnauthorized},
		{err: services.ErrOAuthExchangeFailed, want: fiber.StatusBadGateway},
		{err: services.ErrAuthUnavailable, want: fiber.StatusServiceUnavailable},
		{err: services.ErrChapterSaveFailed, want: fiber.StatusInternalServerError},
	}

	for _, test := range tests {
		if got := statusForError(test.err); got != test.want {
			t.Fatalf("statusForError(%v) = %d, want %d", test.err, got, test.want)
		}
	}
}
