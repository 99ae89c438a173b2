package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

type testResponse struct {
	status  int
	body    []byte
	cookies []*http.Cookie
	header  http.Header
}

func (response testResponse) decode(t *testing.T, target any) {
	t.Helper()
	if err := json.Unmarshal(response.body, target); err != nil {
		t.Fatalf("decode response body %q: %v", string(response.body), err)
	}
}

func (response testResponse) object(t *testing.T) map[string]any {
	t.Helper()
	payload := map[string]any{}
	response.decode(t, &payload)
	return payload
}

func (response testResponse) errorMessage(t *testing.T) string {
	t.Helper()
	return readAPIError(t, bytes.NewReader(response.body))
}

// sendJSON performs a request with an optional JSON body and auth cookie.
func sendJSON(t *testing.T, app *fiber.App, method string, path string, authCookie string, payload any) testResponse {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode %s %s payload: %v", method, path, err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	request.Header.Set("Accept", "application/json")
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	raw, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("%s %s read body failed: %v", method, path, err)
	}
	return testResponse{status: response.StatusCode, body: raw, cookies: response.Cookies(), header: response.Header}
}

func expectStatus(t *testing.T, response testResponse, expected int) {
	t.Helper()
	if response.status != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, response.status, string(response.body))
	}
}

func authCookieHeader(t *testing.T, response testResponse) string {
	t.Helper()
	cookie := responseCookie(response.cookies, authCookieName)
	if cookie == nil || cookie.Value == "" {
		t.Fatal("auth cookie is missing in response")
	}
	return cookie.Name + "=" + cookie.Value
}
