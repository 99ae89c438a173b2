// Package security holds the random generators behind temporary passwords and
// OAuth state values.
package security

import (
	"crypto/rand"
	"errors"
	"math/big"
)

const (
	// ReadableAlphabet drops characters that are easy to confuse when a
	// password is read aloud or copied by hand (0/O, 1/l/I).
	ReadableAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"
	TokenAlphabet    = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"
)

var (
	ErrInvalidLength = errors.New("length must be non-negative")
	ErrEmptyAlphabet = errors.New("alphabet must not be empty")
)

// RandomString draws length characters uniformly from alphabet using
// crypto/rand.
func RandomString(length int, alphabet string) (string, error) {
	switch {
	case length < 0:
		return "", ErrInvalidLength
	case length == 0:
		return "", nil
	case alphabet == "":
		return "", ErrEmptyAlphabet
	}

	symbols := []byte(alphabet)
	size := big.NewInt(int64(len(symbols)))
	out := make([]byte, 0, length)
	for len(out) < length {
		index, err := rand.Int(rand.Reader, size)
		if err != nil {
			return "", err
		}
		out = append(out, symbols[index.Int64()])
	}
	return string(out), nil
}

// RandomToken returns an alphanumeric token, as used for OAuth state.
func RandomToken(length int) (string, error) {
	return RandomString(length, TokenAlphabet)
}
