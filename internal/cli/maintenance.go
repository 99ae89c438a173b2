package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/gymbro/internal/db"
	"github.com/terraincognita07/gymbro/internal/models"
	"github.com/terraincognita07/gymbro/internal/services"
	"gorm.io/gorm"
)

func newWipeCommand(flags *rootFlags) *cobra.Command {
	var confirmed bool
	command := &cobra.Command{
		Use:   "wipe <user-id|email>",
		Short: "Delete every chapter and check-in of a user and zero their progress",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				return errors.New("refusing to wipe without --yes")
			}
			database, err := flags.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(database)
			return RunWipeCommand(database, args[0], cmd.OutOrStdout())
		},
	}
	command.Flags().BoolVar(&confirmed, "yes", false, "Confirm the wipe")
	return command
}

func newSeedCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <user-id|email>",
		Short: "Replace a user's data with two weeks of generated test history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := flags.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(database)
			return RunSeedCommand(database, args[0], time.Now(), cmd.OutOrStdout())
		},
	}
}

func RunWipeCommand(database *gorm.DB, reference string, out io.Writer) error {
	user, err := resolveUser(database, reference)
	if err != nil {
		return err
	}
	if err := maintenanceService(database).Wipe(user.ID); err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render("All data wiped for "+user.Email))
	return nil
}

func RunSeedCommand(database *gorm.DB, reference string, now time.Time, out io.Writer) error {
	user, err := resolveUser(database, reference)
	if err != nil {
		return err
	}
	summary, err := maintenanceService(database).Seed(user.ID, now)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, successStyle.Render("Seeded "+user.Email))
	fmt.Fprintln(out, mutedStyle.Render(summary.Message))
	return nil
}

func maintenanceService(database *gorm.DB) *services.MaintenanceService {
	return services.NewMaintenanceService(db.NewMaintenanceRepository(database), nil, resolveLocation())
}

// resolveUser accepts either a user id or an email address.
func resolveUser(database *gorm.DB, reference string) (models.User, error) {
	reference = strings.TrimSpace(reference)
	users := db.NewUserRepository(database)

	var (
		user models.User
		err  error
	)
	if strings.Contains(reference, "@") {
		user, err = users.FindByNormalizedEmail(services.NormalizeAuthEmail(reference))
	} else {
		user, err = users.FindByID(reference)
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.User{}, fmt.Errorf("user %q not found", reference)
	}
	if err != nil {
		return models.User{}, fmt.Errorf("load user %q: %w", reference, err)
	}
	return user, nil
}
