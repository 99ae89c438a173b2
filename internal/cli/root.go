// Package cli implements gymbro-admin, the maintenance entry points that run
// directly against the configured database.
package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/gymbro/internal/config"
	"github.com/terraincognita07/gymbro/internal/db"
	"gorm.io/gorm"
)

type rootFlags struct {
	driver string
	dsn    string
}

// NewRootCommand builds a fresh command tree so callers and tests never share
// flag state.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	root := &cobra.Command{
		Use:           "gymbro-admin",
		Short:         "gymbro-admin maintains Gymbro accounts and data",
		Long:          "gymbro-admin wipes or seeds a user's data and resets passwords against the configured database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&flags.driver, "db-driver", "", "Database driver (sqlite or postgres); defaults to DB_DRIVER")
	root.PersistentFlags().StringVar(&flags.dsn, "db", "", "SQLite path or Postgres DSN; defaults to DB_PATH / DATABASE_URL")

	root.AddCommand(
		newWipeCommand(flags),
		newSeedCommand(flags),
		newResetPasswordCommand(flags),
		newSetPasswordCommand(flags),
	)
	return root
}

// Execute runs the admin CLI and returns the process exit code.
func Execute(args []string, stdout io.Writer, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, errorStyle.Render("error: "+err.Error()))
		return 1
	}
	return 0
}

func (flags *rootFlags) openDatabase() (*gorm.DB, error) {
	driver := flags.driver
	if driver == "" {
		resolved, err := config.ResolveDBDriver()
		if err != nil {
			return nil, err
		}
		driver = resolved
	}
	dsn := flags.dsn
	if dsn == "" {
		dsn = config.ResolveDatabaseDSN(driver)
	}
	if dsn == "" {
		return nil, fmt.Errorf("no database configured: set --db or DB_PATH / DATABASE_URL")
	}

	database, err := db.OpenDatabase(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("database init failed: %w", err)
	}
	return database, nil
}

func closeDatabase(database *gorm.DB) {
	if sqlDB, err := database.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func resolveLocation() *time.Location {
	return config.ResolveLocation(os.Getenv("TZ"))
}
