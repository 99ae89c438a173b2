//go:build !windows && !linux && !darwin && !freebsd && !netbsd && !openbsd && !dragonfly

package cli

import (
	"errors"
	"os"
)

func withEchoDisabled(*os.File, func() error) error {
	return errors.New("hidden password input is not supported on this platform")
}
