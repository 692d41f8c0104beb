package cmd

import (
	"io"
	"os"

	logger "github.com/kestrel-crypto/kestrel/internal/logging"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	verbose       bool
	debug         bool
	passwordStdin bool
	Logger        logger.Logger

	// passwordInput is where --password-stdin reads from.
	passwordInput io.Reader = os.Stdin

	KeysCmd = &cobra.Command{
		Use:   "keys",
		Short: "Manage your identities and contacts",
		Long: `Provides generation, import, export and management of the keys in your keyring.

Identities are your own key pairs. Their private keys are locked with a
password and never leave the keyring unlocked. Contacts are other people's
public keys.

Passwords are read from the terminal without echo. Use --password-stdin to
read them one per line from standard input instead.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			Logger = logger.Logger{
				Verbose: verbose,
				Debug:   debug,
			}
			Logger.Debugf("Initializing keys command with verbose=%t, debug=%t", verbose, debug)
		},
	}
)

func init() {
	KeysCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")
	KeysCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug output")
	KeysCmd.PersistentFlags().BoolVar(&passwordStdin, "password-stdin", false, "read passwords from stdin, one per line")

	KeysCmd.AddCommand(generateCmd)
	KeysCmd.AddCommand(addCmd)
	KeysCmd.AddCommand(editCmd)
	KeysCmd.AddCommand(deleteCmd)
	KeysCmd.AddCommand(listCmd)
	KeysCmd.AddCommand(extractCmd)
	KeysCmd.AddCommand(changePasswordCmd)
	KeysCmd.AddCommand(unlockCmd)
	KeysCmd.AddCommand(exportCmd)
	KeysCmd.AddCommand(importCmd)
	KeysCmd.AddCommand(logCmd)
}

// Helper functions for testing

// GetKeysCmd returns the KeysCmd for testing.
func GetKeysCmd() *cobra.Command {
	return KeysCmd
}

// ResetGlobalState resets all global variables to their default values for testing.
func ResetGlobalState() {
	verbose = false
	debug = false
	passwordStdin = false
	passwordInput = os.Stdin
	resetGenerateCommandState()
	resetEditCommandState()
	resetDeleteCommandState()
	resetListCommandState()
	resetExportCommandState()
	resetImportCommandState()
	resetLogCommandState()
	resetCobraFlagState(KeysCmd)
}

// SetPasswordInput sets the reader used by --password-stdin for testing.
func SetPasswordInput(r io.Reader) {
	passwordInput = r
}

// SetLogger sets the logger for testing.
func SetLogger(l logger.Logger) {
	Logger = l
}

// resetCobraFlagState marks every flag on root and its subcommands unchanged.
func resetCobraFlagState(root *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Changed = false
	}
	root.PersistentFlags().VisitAll(reset)
	root.Flags().VisitAll(reset)
	for _, sub := range root.Commands() {
		resetCobraFlagState(sub)
	}
}
