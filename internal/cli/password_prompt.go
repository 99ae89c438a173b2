package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

var errStdinUnavailable = errors.New("stdin unavailable")

// readSecret is swapped in tests, where stdin is not a terminal.
var readSecret = readPasswordNoEcho

func readPasswordNoEcho(stdin *os.File) ([]byte, error) {
	if stdin == nil {
		return nil, errStdinUnavailable
	}

	var line string
	err := withEchoDisabled(stdin, func() error {
		var readErr error
		line, readErr = readLine(stdin)
		return readErr
	})
	if err != nil {
		return nil, err
	}
	return []byte(line), nil
}

func readLine(reader io.Reader) (string, error) {
	line, err := bufio.NewReader(reader).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

func promptPassword(out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	value, err := readSecret(os.Stdin)
	fmt.Fprintln(out)
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	return string(value), nil
}

func promptNewPassword(out io.Writer) (string, error) {
	password, err := promptPassword(out, "New password: ")
	if err != nil {
		return "", err
	}
	confirm, err := promptPassword(out, "Confirm password: ")
	if err != nil {
		return "", err
	}
	if password != confirm {
		return "", errors.New("passwords do not match")
	}
	return password, nil
}
