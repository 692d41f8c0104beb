package cmd

import (
	"github.com/kestrel-crypto/kestrel/internal/primitives"
	"github.com/kestrel-crypto/kestrel/internal/ui"
	"github.com/kestrel-crypto/kestrel/internal/workflows"

	"github.com/spf13/cobra"
)

var generateSetDefault bool

func init() {
	generateCmd.Flags().BoolVar(&generateSetDefault, "default", false, "make the new identity the default")
}

// resetGenerateCommandState resets the generate command's global state for testing.
func resetGenerateCommandState() {
	generateSetDefault = false
}

var generateCmd = &cobra.Command{
	Use:   "generate [name]",
	Short: "Generate a new identity",
	Long: `Generates a new key pair and stores it as an identity in your keyring.

The private key is locked with a password you choose. If no name is given,
one is derived from your username. Your first identity becomes the default.

Examples:
  kestrel keys generate
  kestrel keys generate work --default
  echo "$PASSWORD" | kestrel keys generate ci --password-stdin`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting generate command")

		name := ""
		if len(args) == 1 {
			name = args[0]
		}
		Logger.Debugf("Name: %q, default: %t", name, generateSetDefault)

		password, err := readNewPassword("Password for the new identity: ")
		if err != nil {
			return reportError(nil, err)
		}
		defer primitives.Zero(password)

		spinner, cleanup := startSpinner("Generating identity...", verbose)
		defer cleanup()

		result, err := workflows.Generate(commandContext(cmd), workflows.GenerateOptions{
			Name:       name,
			Password:   password,
			SetDefault: generateSetDefault,
		})
		if err != nil {
			return reportError(spinner, err)
		}
		Logger.Infof("Generated identity %s (%s)", result.Contact.Name, result.Contact.ID)

		finalMessage := ui.Success.Sprint(ui.Check) + " Generated identity " + ui.Highlight.Sprint(result.Contact.Name) + "\n" +
			"    public key: " + ui.Key.Sprint(result.Contact.PublicKey)
		if result.IsDefault {
			finalMessage += "\n" + ui.Info.Sprint(ui.Arrow) + " This is now your default identity"
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
