package api

import (
	"errors"
	"strings"
	"time"

	"github.com/terraincognita07/gymbro/internal/coach"
	"github.com/terraincognita07/gymbro/internal/metrics"
	"github.com/terraincognita07/gymbro/internal/mockstore"
)

func NewHandler(options Options) (*Handler, error) {
	location := options.Location
	if location == nil {
		location = time.Local
	}

	handler := &Handler{
		location:     location,
		cookieSecure: options.CookieSecure,
		mockMode:     options.Database == nil,
		devTools:     options.DevTools,
		now:          options.Now,
		coach:        options.Coach,
		metrics:      options.Metrics,
		identity:     options.Identity,
		authLimiter:  newAttemptLimiter(),
	}
	if handler.now == nil {
		handler.now = time.Now
	}
	if handler.coach == nil {
		handler.coach = coach.New(coach.Config{}, nil)
	}
	if handler.metrics == nil {
		handler.metrics = metrics.New()
	}

	secret := strings.TrimSpace(options.SecretKey)
	if secret == "" && !handler.mockMode {
		return nil, errors.New("secret key is required outside mock mode")
	}
	if secret != "" {
		handler.secretKey = []byte(secret)
		sealer, err := newOAuthStateSealer(handler.secretKey, oauthStateTTL)
		if err != nil {
			return nil, err
		}
		handler.stateSealer = sealer
	}

	if handler.mockMode {
		store := options.MockStore
		if store == nil {
			store = mockstore.New()
		}
		handler.mockStore = store
		handler.backend = backendFromMockStore(store)
	} else {
		handler.backend = backendFromDatabase(options.Database)
	}

	handler.withDependencies(options)
	return handler, nil
}

func (handler *Handler) MockMode() bool {
	return handler.mockMode
}
