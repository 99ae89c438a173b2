package api

import (
	"errors"
	"strings"
	"testing"
	"time"
)

func TestOAuthStateSealerRoundTrip(t *testing.T) {
	t.Parallel()

	sealer, err := newOAuthStateSealer([]byte(testSecretKey), oauthStateTTL)
	if err != nil {
		t.Fatalf("init sealer: %v", err)
	}

	value := oauthState{State: "state-value", Next: "/chapters", IssuedAt: testNow}
	sealed, err := sealer.seal(value)
	if err != nil {
		t.Fatalf("seal: %v", err)
	}
	if !strings.HasPrefix(sealed, oauthStateSealPrefix) || strings.Contains(sealed, "state-value") {
		t.Fatalf("unexpected sealed value %q", sealed)
	}

	opened, err := sealer.open(sealed, testNow.Add(time.Minute))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if opened.State != value.State || opened.Next != value.Next || !opened.IssuedAt.Equal(testNow) {
		t.Fatalf("open = %+v, want %+v", opened, value)
	}
}

func TestOAuthStateSealerRejections(t *testing.T) {
	t.Parallel()

	sealer, err := newOAuthStateSealer([]byte(testSecretKey), oauthStateTTL)
	if err != nil {
		t.Fatalf("init sealer: %v", err)
	}
	sealed, err := sealer.seal(oauthState{State: "state-value", Next: "/", IssuedAt: testNow})
	if err != nil {
		t.Fatalf("seal: %v", err)
	}

	if _, err := sealer.open(sealed, testNow.Add(oauthStateTTL+time.Second)); !errors.Is(err, errInvalidOAuthState) {
		t.Fatalf("expected expired state to be rejected, got %v", err)
	}

	rotated, err := newOAuthStateSealer([]byte(testSecretKey+"-rotated"), oauthStateTTL)
	if err != nil {
		t.Fatalf("init rotated sealer: %v", err)
	}
	if _, err := rotated.open(sealed, testNow); !errors.Is(err, errInvalidOAuthState) {
		t.Fatalf("expected a different key to be rejected, got %v", err)
	}

	for _, raw := range []string{"", oauthStateSealPrefix, "xx1." + strings.TrimPrefix(sealed, oauthStateSealPrefix), oauthStateSealPrefix + "!!!"} {
		if _, err := sealer.open(raw, testNow); !errors.Is(err, errInvalidOAuthState) {
			t.Fatalf("expected %q to be rejected, got %v", raw, err)
		}
	}

	if _, err := newOAuthStateSealer(nil, oauthStateTTL); err == nil {
		t.Fatal("expected empty key to be rejected")
	}
}
