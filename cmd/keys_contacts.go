package cmd

import (
	"github.com/kestrel-crypto/kestrel/internal/ui"
	"github.com/kestrel-crypto/kestrel/internal/workflows"

	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name> <public-key>",
	Short: "Add a contact's public key",
	Long: `Adds another person's public key to your keyring under a name.

The key is checked before it is stored, so a mistyped key is rejected.

Examples:
  kestrel keys add alice OtU9wlWBsYr1Q6Hoz07cK05OSD31p+DVraU+fku4Y3R62CZl`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting add command")
		spinner, cleanup := startSpinner("Adding contact...", verbose)
		defer cleanup()

		result, err := workflows.AddContact(commandContext(cmd), workflows.AddOptions{
			Name:      args[0],
			PublicKey: args[1],
		})
		if err != nil {
			return reportError(spinner, err)
		}
		Logger.Infof("Added contact %s (%s)", result.Contact.Name, result.Contact.ID)

		spinner.FinalMSG = ui.Success.Sprint(ui.Check) + " Added " + ui.Highlight.Sprint(result.Contact.Name)
		return nil
	},
}

var (
	editNewName   string
	editPublicKey string
)

func init() {
	editCmd.Flags().StringVar(&editNewName, "name", "", "new name for the contact")
	editCmd.Flags().StringVar(&editPublicKey, "public-key", "", "replacement public key")
}

// resetEditCommandState resets the edit command's global state for testing.
func resetEditCommandState() {
	editNewName = ""
	editPublicKey = ""
}

var editCmd = &cobra.Command{
	Use:   "edit <name>",
	Short: "Rename a contact or replace its public key",
	Long: `Renames a contact and/or replaces its public key.

The public key of an identity cannot be replaced because it belongs to the
identity's private key.

Examples:
  kestrel keys edit alice --name "Alice Smith"
  kestrel keys edit bob --public-key <new-key>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting edit command")
		Logger.Debugf("Flags: name=%q, public-key set=%t", editNewName, editPublicKey != "")
		spinner, cleanup := startSpinner("Updating contact...", verbose)
		defer cleanup()

		result, err := workflows.EditContact(commandContext(cmd), workflows.EditOptions{
			Name:      args[0],
			NewName:   editNewName,
			PublicKey: editPublicKey,
		})
		if err != nil {
			return reportError(spinner, err)
		}

		finalMessage := ui.Success.Sprint(ui.Check) + " Updated " + ui.Highlight.Sprint(result.Contact.Name)
		if result.Renamed {
			finalMessage += "\n    renamed from: " + ui.Highlight.Sprint(args[0])
		}
		if result.KeyChanged {
			finalMessage += "\n    public key: " + ui.Key.Sprint(result.Contact.PublicKey)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}

var deleteConfirmed bool

func init() {
	deleteCmd.Flags().BoolVarP(&deleteConfirmed, "yes", "y", false, "confirm deleting an identity and its private key")
}

// resetDeleteCommandState resets the delete command's global state for testing.
func resetDeleteCommandState() {
	deleteConfirmed = false
}

var deleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a contact or identity",
	Long: `Removes a contact from your keyring.

Deleting an identity destroys its private key, so it needs --yes.

Examples:
  kestrel keys delete bob
  kestrel keys delete old-laptop --yes`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting delete command")
		spinner, cleanup := startSpinner("Deleting contact...", verbose)
		defer cleanup()

		result, err := workflows.DeleteContact(commandContext(cmd), workflows.DeleteOptions{
			Name:          args[0],
			AllowIdentity: deleteConfirmed,
		})
		if err != nil {
			return reportError(spinner, err)
		}

		finalMessage := ui.Success.Sprint(ui.Check) + " Deleted " + ui.Highlight.Sprint(result.Contact.Name)
		if result.WasDefault {
			finalMessage += "\n" + ui.Warning.Sprint("⚠") + " You no longer have a default identity"
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
