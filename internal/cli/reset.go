package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/gymbro/internal/db"
	"github.com/terraincognita07/gymbro/internal/services"
	"gorm.io/gorm"
)

func newResetPasswordCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-password <email>",
		Short: "Issue a temporary password that must be changed on next sign-in",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := flags.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(database)
			return RunResetPasswordCommand(database, args[0], cmd.OutOrStdout())
		},
	}
}

func newSetPasswordCommand(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "set-password <email>",
		Short: "Set a new password interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			password, err := promptNewPassword(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			database, err := flags.openDatabase()
			if err != nil {
				return err
			}
			defer closeDatabase(database)
			return RunSetPasswordCommand(database, args[0], password, cmd.OutOrStdout())
		},
	}
}

func RunResetPasswordCommand(database *gorm.DB, email string, out io.Writer) error {
	temporaryPassword, err := adminAuthService(database).IssueTemporaryPassword(email)
	if err != nil {
		return fmt.Errorf("reset password for %s: %w", email, err)
	}

	fmt.Fprintln(out, successStyle.Render("Password reset for "+services.NormalizeAuthEmail(email)))
	fmt.Fprintf(out, "Temporary password: %s\n", valueStyle.Render(temporaryPassword))
	fmt.Fprintln(out, warningStyle.Render("The user must change it after the next sign-in."))
	return nil
}

func RunSetPasswordCommand(database *gorm.DB, email string, password string, out io.Writer) error {
	if err := adminAuthService(database).SetPassword(email, password); err != nil {
		return fmt.Errorf("set password for %s: %w", email, err)
	}
	fmt.Fprintln(out, successStyle.Render("Password updated for "+services.NormalizeAuthEmail(email)))
	return nil
}

// Admin password changes never send mail, so the service gets no mailer or
// signing key.
func adminAuthService(database *gorm.DB) *services.AuthService {
	return services.NewAuthService(db.NewUserRepository(database), nil, nil, "")
}
