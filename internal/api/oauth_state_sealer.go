package api

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const oauthStateSealPrefix = "gs1."

var errInvalidOAuthState = errors.New("invalid sign-in state")

// oauthState travels in the state cookie between the redirect to the provider
// and its callback.
type oauthState struct {
	State    string    `json:"s"`
	Next     string    `json:"n"`
	IssuedAt time.Time `json:"t"`
}

// oauthStateSealer encrypts oauthState values with AES-GCM under a key derived
// from the server secret, so the browser can hold them without reading or
// altering them.
type oauthStateSealer struct {
	aead cipher.AEAD
	ttl  time.Duration
}

func newOAuthStateSealer(secretKey []byte, ttl time.Duration) (*oauthStateSealer, error) {
	if len(secretKey) == 0 {
		return nil, errors.New("oauth state sealer needs a secret key")
	}

	key := sha256.Sum256(append([]byte("gymbro/oauth-state\x00"), secretKey...))
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, fmt.Errorf("init oauth state cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("init oauth state aead: %w", err)
	}
	return &oauthStateSealer{aead: aead, ttl: ttl}, nil
}

func (sealer *oauthStateSealer) seal(value oauthState) (string, error) {
	plaintext, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, sealer.aead.NonceSize(), sealer.aead.NonceSize()+len(plaintext)+sealer.aead.Overhead())
	if _, err := rand.Read(nonce); err != nil {
		return "", fmt.Errorf("oauth state nonce: %w", err)
	}
	sealed := sealer.aead.Seal(nonce, nonce, plaintext, []byte(oauthStateSealPrefix))
	return oauthStateSealPrefix + base64.RawURLEncoding.EncodeToString(sealed), nil
}

// open rejects tampered, foreign and expired values alike.
func (sealer *oauthStateSealer) open(raw string, now time.Time) (oauthState, error) {
	encoded, ok := strings.CutPrefix(strings.TrimSpace(raw), oauthStateSealPrefix)
	if !ok || encoded == "" {
		return oauthState{}, errInvalidOAuthState
	}
	sealed, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil || len(sealed) <= sealer.aead.NonceSize() {
		return oauthState{}, errInvalidOAuthState
	}

	nonce, ciphertext := sealed[:sealer.aead.NonceSize()], sealed[sealer.aead.NonceSize():]
	plaintext, err := sealer.aead.Open(nil, nonce, ciphertext, []byte(oauthStateSealPrefix))
	if err != nil {
		return oauthState{}, errInvalidOAuthState
	}

	var value oauthState
	if err := json.Unmarshal(plaintext, &value); err != nil || value.State == "" {
		return oauthState{}, errInvalidOAuthState
	}
	if sealer.ttl > 0 && now.Sub(value.IssuedAt) > sealer.ttl {
		return oauthState{}, errInvalidOAuthState
	}
	return value, nil
}
