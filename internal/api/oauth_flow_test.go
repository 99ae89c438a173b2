package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/gymbro/internal/services"
)

type stubIdentityProvider struct {
	email string
	err   error
	codes []string
}

func (provider *stubIdentityProvider) Name() string {
	return "google"
}

func (provider *stubIdentityProvider) AuthCodeURL(state string) string {
	return "https://accounts.example.test/o/oauth2/auth?state=" + url.QueryEscape(state)
}

func (provider *stubIdentityProvider) Identify(_ context.Context, code string) (string, error) {
	provider.codes = append(provider.codes, code)
	if provider.err != nil {
		return "", provider.err
	}
	return provider.email, nil
}

func startGoogleSignIn(t *testing.T, app *fiber.App, path string) (string, *http.Cookie) {
	t.Helper()

	response, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
	if err != nil {
		t.Fatalf("start sign-in failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected start status 303, got %d", response.StatusCode)
	}
	location, err := url.Parse(response.Header.Get("Location"))
	if err != nil {
		t.Fatalf("parse provider redirect: %v", err)
	}
	state := location.Query().Get("state")
	if state == "" {
		t.Fatal("expected state in provider redirect")
	}
	cookie := responseCookie(response.Cookies(), oauthStateCookieName)
	if cookie == nil || cookie.Value == "" || !cookie.HttpOnly {
		t.Fatal("expected sealed HttpOnly state cookie")
	}
	if cookie.Value == state {
		t.Fatal("expected the state cookie to be sealed, not plain")
	}
	return state, cookie
}

func TestGoogleSignInCreatesAccount(t *testing.T) {
	t.Parallel()

	provider := &stubIdentityProvider{email: "Athlete@Example.com"}
	app, _, _ := newDatabaseTestApp(t, Options{Identity: provider})

	state, stateCookie := startGoogleSignIn(t, app, "/api/auth/oauth/google?next=/chapters")

	request := httptest.NewRequest(http.MethodGet, "/api/auth/oauth/google/callback?code=auth-code&state="+url.QueryEscape(state), nil)
	request.Header.Set("Cookie", stateCookie.Name+"="+stateCookie.Value)
	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("callback failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusSeeOther {
		t.Fatalf("expected callback status 303, got %d", response.StatusCode)
	}
	if location := response.Header.Get("Location"); location != "/chapters" {
		t.Fatalf("expected redirect to /chapters, got %q", location)
	}
	authCookie := responseCookie(response.Cookies(), authCookieName)
	if authCookie == nil || authCookie.Value == "" {
		t.Fatal("expected auth cookie after provider sign-in")
	}
	if len(provider.codes) != 1 || provider.codes[0] != "auth-code" {
		t.Fatalf("expected one code exchange, got %#v", provider.codes)
	}

	me := sendJSON(t, app, http.MethodGet, "/api/auth/me", authCookie.Name+"="+authCookie.Value, nil)
	payload := struct {
		User userView `json:"user"`
	}{}
	me.decode(t, &payload)
	if payload.User.Email != "athlete@example.com" || payload.User.AuthProvider != "google" {
		t.Fatalf("unexpected provider user %#v", payload.User)
	}
}

func TestGoogleSignInRejectsStateMismatch(t *testing.T) {
	t.Parallel()

	provider := &stubIdentityProvider{email: "athlete@example.com"}
	app, _, _ := newDatabaseTestApp(t, Options{Identity: provider})

	_, stateCookie := startGoogleSignIn(t, app, "/api/auth/oauth/google")

	forged := sendJSON(t, app, http.MethodGet, "/api/auth/oauth/google/callback?code=auth-code&state=forged", stateCookie.Name+"="+stateCookie.Value, nil)
	expectStatus(t, forged, http.StatusBadRequest)

	noCookie := sendJSON(t, app, http.MethodGet, "/api/auth/oauth/google/callback?code=auth-code&state=anything", "", nil)
	expectStatus(t, noCookie, http.StatusBadRequest)

	if len(provider.codes) != 0 {
		t.Fatal("expected no code exchange for an invalid state")
	}
}

func TestGoogleSignInProviderFailure(t *testing.T) {
	t.Parallel()

	provider := &stubIdentityProvider{err: services.ErrOAuthEmailNotVerified}
	app, _, _ := newDatabaseTestApp(t, Options{Identity: provider})

	state, stateCookie := startGoogleSignIn(t, app, "/api/auth/oauth/google")
	response := sendJSON(t, app, http.MethodGet, "/api/auth/oauth/google/callback?code=c&state="+url.QueryEscape(state), stateCookie.Name+"="+stateCookie.Value, nil)
	expectStatus(t, response, http.StatusBadRequest)
	if got := response.errorMessage(t); got != services.ErrOAuthEmailNotVerified.Error() {
		t.Fatalf("unexpected provider error %q", got)
	}
}

func TestGoogleSignInNotConfigured(t *testing.T) {
	t.Parallel()

	app, _, _ := newDatabaseTestApp(t, Options{})

	response := sendJSON(t, app, http.MethodGet, "/api/auth/oauth/google", "", nil)
	expectStatus(t, response, http.StatusServiceUnavailable)
}
