package api

import (
	"context"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/db"
	"github.com/terraincognita07/gymbro/internal/mockstore"
	"github.com/terraincognita07/gymbro/internal/services"
)

const testSecretKey = "gymbro-test-secret-key-0123456789abcdef"

var testNow = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

func fixedNow() time.Time {
	return testNow
}

type capturingMailer struct {
	mu       sync.Mutex
	messages []services.MailMessage
}

func (mailer *capturingMailer) Send(_ context.Context, message services.MailMessage) error {
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

// lastToken extracts the token query parameter from the link in the latest
// message.
func (mailer *capturingMailer) lastToken(t *testing.T) string {
	t.Helper()

	mailer.mu.Lock()
	defer mailer.mu.Unlock()
	if len(mailer.messages) == 0 {
		t.Fatal("expected a mail message")
	}
	body := mailer.messages[len(mailer.messages)-1].Body
	for _, line := range strings.Split(body, "\n") {
		if !strings.HasPrefix(line, "http") {
			continue
		}
		link, err := url.Parse(strings.TrimSpace(line))
		if err != nil {
			t.Fatalf("parse mailed link: %v", err)
		}
		if token := link.Query().Get("token"); token != "" {
			return token
		}
	}
	t.Fatalf("no token link in mail body %q", body)
	return ""
}

func newTestApp(t *testing.T, handler *Handler) *fiber.App {
	t.Helper()

	app := fiber.New()
	RegisterRoutes(app, handler)
	app.Use(handler.NotFound)
	return app
}

func newMockTestApp(t *testing.T, options Options) (*fiber.App, *Handler) {
	t.Helper()

	options.Database = nil
	if options.MockStore == nil {
		options.MockStore = mockstore.New()
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Now == nil {
		options.Now = fixedNow
	}

	handler, err := NewHandler(options)
	if err != nil {
		t.Fatalf("init mock handler: %v", err)
	}
	return newTestApp(t, handler), handler
}

func newDatabaseTestApp(t *testing.T, options Options) (*fiber.App, *Handler, *capturingMailer) {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "gymbro-api-test.db"))
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

	mailer := &capturingMailer{}
	options.Database = database
	options.SecretKey = testSecretKey
	options.Mailer = mailer
	if options.PublicURL == "" {
		options.PublicURL = "http://gymbro.test"
	}
	if options.Location == nil {
		options.Location = time.UTC
	}
	if options.Now == nil {
		options.Now = fixedNow
	}

	handler, err := NewHandler(options)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return newTestApp(t, handler), handler, mailer
}
