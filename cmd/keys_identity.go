package cmd

import (
	"fmt"

	"github.com/kestrel-crypto/kestrel/internal/primitives"
	"github.com/kestrel-crypto/kestrel/internal/ui"
	"github.com/kestrel-crypto/kestrel/internal/workflows"

	"github.com/spf13/cobra"
)

func optionalName(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	return ""
}

var extractCmd = &cobra.Command{
	Use:   "extract [identity]",
	Short: "Print the public key of an identity",
	Long: `Unlocks an identity, derives its public key from the private key and
prints it for sharing. Only the key is written to stdout, so the output can
be piped.

Without a name the default identity is used.

Examples:
  kestrel keys extract
  kestrel keys extract work > work.pub`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting extract command")

		password, err := readPassword("Password: ")
		if err != nil {
			return reportError(nil, err)
		}
		defer primitives.Zero(password)

		spinner, cleanup := startSpinner("Unlocking identity...", verbose)
		result, err := workflows.Extract(commandContext(cmd), workflows.ExtractOptions{
			Name:     optionalName(args),
			Password: password,
		})
		if err != nil {
			err = reportError(spinner, err)
			cleanup()
			return err
		}
		// Stop the spinner before printing so stdout only carries the key.
		cleanup()

		Logger.Infof("Extracted public key of %s", result.Contact.Name)
		fmt.Println(result.PublicKey)
		return nil
	},
}

var unlockCmd = &cobra.Command{
	Use:   "unlock [identity]",
	Short: "Check that a password unlocks an identity",
	Long: `Checks that the password opens the identity's private key and that the key
matches its stored public key. Exits non-zero if it does not.

Without a name the default identity is used.

Examples:
  kestrel keys unlock
  kestrel keys unlock work`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting unlock command")

		password, err := readPassword("Password: ")
		if err != nil {
			return reportError(nil, err)
		}
		defer primitives.Zero(password)

		spinner, cleanup := startSpinner("Unlocking identity...", verbose)
		defer cleanup()

		result, err := workflows.Unlock(commandContext(cmd), workflows.UnlockOptions{
			Name:     optionalName(args),
			Password: password,
		})
		if err != nil {
			return reportError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint(ui.Check) + " Password unlocks " + ui.Highlight.Sprint(result.Contact.Name)
		return nil
	},
}

var changePasswordCmd = &cobra.Command{
	Use:   "change-password [identity]",
	Short: "Change the password of an identity",
	Long: `Relocks an identity's private key under a new password. The key itself
does not change, so contacts keep using the same public key.

With --password-stdin, the current and new passwords are read as two lines.

Examples:
  kestrel keys change-password
  printf '%s\n%s\n' "$OLD" "$NEW" | kestrel keys change-password work --password-stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting change-password command")

		oldPassword, newPassword, err := readPasswordPair()
		if err != nil {
			return reportError(nil, err)
		}
		defer primitives.Zero(oldPassword)
		defer primitives.Zero(newPassword)

		spinner, cleanup := startSpinner("Changing password...", verbose)
		defer cleanup()

		result, err := workflows.ChangePassword(commandContext(cmd), workflows.ChangePasswordOptions{
			Name:        optionalName(args),
			OldPassword: oldPassword,
			NewPassword: newPassword,
		})
		if err != nil {
			return reportError(spinner, err)
		}

		spinner.FinalMSG = ui.Success.Sprint(ui.Check) + " Changed password of " + ui.Highlight.Sprint(result.Contact.Name)
		return nil
	},
}
