package cli

import (
	"bytes"
	"errors"
	"os"
	"strings"
	"testing"
)

func TestReadLineTrimsLineEndings(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"Secret9x\n":   "Secret9x",
		"Secret9x\r\n": "Secret9x",
		"Secret9x":     "Secret9x",
		"":             "",
	}
	for input, want := range tests {
		got, err := readLine(strings.NewReader(input))
		if err != nil {
			t.Fatalf("readLine(%q) returned error: %v", input, err)
		}
		if got != want {
			t.Fatalf("readLine(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestReadPasswordNoEchoRequiresStdin(t *testing.T) {
	t.Parallel()

	if _, err := readPasswordNoEcho(nil); !errors.Is(err, errStdinUnavailable) {
		t.Fatalf("expected errStdinUnavailable, got %v", err)
	}
}

func TestPromptPasswordWrapsReadErrors(t *testing.T) {
	original := readSecret
	readSecret = func(*os.File) ([]byte, error) { return nil, errStdinUnavailable }
	t.Cleanup(func() { readSecret = original })

	var out bytes.Buffer
	_, err := promptPassword(&out, "New password: ")
	if !errors.Is(err, errStdinUnavailable) {
		t.Fatalf("expected wrapped errStdinUnavailable, got %v", err)
	}
	if !strings.HasPrefix(out.String(), "New password: ") {
		t.Fatalf("expected prompt label, got %q", out.String())
	}
}
