package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kestrel-crypto/kestrel/cmd"

	"github.com/common-nighthawk/go-figure"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kestrel",
	Short: "Kestrel - a password-protected keyring for X25519 keys.",
	Long: `Kestrel keeps your own key pairs and your contacts' public keys in one keyring.

Private keys are locked with a password using scrypt and ChaCha20-Poly1305.
Public keys carry a checksum so mistyped keys are caught when they are added.

Usage:
  kestrel <command> [flags]

Available Commands:
  keys       Manage identities and contacts
  config     View and change settings

Run 'kestrel help <command>' for more details on a specific command.
`,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(c *cobra.Command, args []string) {
		banner := figure.NewColorFigure("Kestrel", "alligator2", "green", true)
		banner.Print()
		fmt.Println()
		fmt.Println("Welcome to Kestrel! Run 'kestrel --help' to see available commands.")
	},
}

func init() {
	rootCmd.AddCommand(cmd.KeysCmd)
	rootCmd.AddCommand(cmd.ConfigCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, cmd.ErrSilent) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
