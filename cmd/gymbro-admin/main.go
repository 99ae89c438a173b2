package main

import (
	"os"

	"github.com/terraincognita07/gymbro/internal/cli"
	"github.com/terraincognita07/gymbro/internal/config"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	os.Exit(cli.Execute(os.Args[1:], os.Stdout, os.Stderr))
}
