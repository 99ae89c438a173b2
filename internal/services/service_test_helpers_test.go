package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/terraincognita07/gymbro/internal/mockstore"
	"github.com/terraincognita07/gymbro/internal/models"
)

var errStubStorage = errors.New("storage unavailable")

func newTestBackend() Backend {
	store := mockstore.New()
	return Backend{
		Users:       store.Users(),
		Profiles:    store.Profiles(),
		Chapters:    store.Chapters(),
		CheckIns:    store.CheckIns(),
		Maintenance: store.Maintenance(),
	}
}

func mustSaveProfile(t *testing.T, profiles *ProfileService, userID string, now time.Time) models.Profile {
	t.Helper()
	profile, _, err := profiles.Save(userID, ProfileInput{Age: 30, Height: 180, Weight: 80, LongTermGoal: "Get stronger"}, now)
	if err != nil {
		t.Fatalf("save profile: %v", err)
	}
	return profile
}

type failingProfileRepository struct{}

func (failingProfileRepository) FindByUserID(string) (models.Profile, bool, error) {
	return models.Profile{}, false, errStubStorage
}

func (failingProfileRepository) Upsert(*models.Profile) error {
	return errStubStorage
}

func (failingProfileRepository) UpdateProgress(string, int, int) error {
	return errStubStorage
}

type capturingMailer struct {
	mu       sync.Mutex
	messages []MailMessage
}

func (mailer *capturingMailer) Send(_ context.Context, message MailMessage) error {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	mailer.messages = append(mailer.messages, message)
	return nil
}

func (mailer *capturingMailer) count() int {
	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	return len(mailer.messages)
}

func (mailer *capturingMailer) lastToken(t *testing.T) string {
	t.Helper()
	mailer.mu.Lock()
	defer mailer.mu.Unlock()

	if len(mailer.messages) == 0 {
		t.Fatal("expected a mail to be sent")
	}
	for _, line := range strings.Split(mailer.messages[len(mailer.messages)-1].Body, "\n") {
		if !strings.Contains(line, "token=") {
			continue
		}
		parsed, err := url.Parse(strings.TrimSpace(line))
		if err != nil {
			t.Fatalf("parse mailed link: %v", err)
		}
		return parsed.Query().Get("token")
	}
	t.Fatal("mailed body has no token link")
	return ""
}
