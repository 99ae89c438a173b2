package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/gymbro/internal/coach"
	"github.com/terraincognita07/gymbro/internal/metrics"
	"github.com/terraincognita07/gymbro/internal/mockstore"
	"github.com/terraincognita07/gymbro/internal/services"
	"gorm.io/gorm"
)

type Handler struct {
	secretKey    []byte
	location     *time.Location
	cookieSecure bool
	mockMode     bool
	devTools     bool
	now          func() time.Time

	backend     services.Backend
	mockStore   *mockstore.Store
	authService *services.AuthService
	profiles    *services.ProfileService
	chapters    *services.ChapterService
	checkIns    *services.CheckInService
	maintenance *services.MaintenanceService

	coach       *coach.Coach
	metrics     *metrics.Metrics
	identity    services.IdentityProvider
	stateSealer *oauthStateSealer
	authLimiter *attemptLimiter
}

// Options wires a Handler. A nil Database selects mock mode, in which every
// request runs as the fixed local user against MockStore.
type Options struct {
	Database     *gorm.DB
	MockStore    *mockstore.Store
	SecretKey    string
	Location     *time.Location
	CookieSecure bool
	DevTools     bool
	PublicURL    string

	Mailer   services.Mailer
	Coach    *coach.Coach
	Metrics  *metrics.Metrics
	Identity services.IdentityProvider
	Random   services.RandomSource
	Now      func() time.Time
}

const (
	defaultAuthTokenTTL  = 7 * 24 * time.Hour
	rememberAuthTokenTTL = 30 * 24 * time.Hour
	oauthStateTTL        = 10 * time.Minute
)

type authClaims struct {
	UserID string `json:"uid"`
	jwt.RegisteredClaims
}
