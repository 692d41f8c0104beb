package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/kestrel-crypto/kestrel/internal/configs"
	"github.com/kestrel-crypto/kestrel/internal/ui"
	"github.com/kestrel-crypto/kestrel/internal/utils"
	"github.com/kestrel-crypto/kestrel/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	exportOutputPath     string
	exportFormat         string
	exportIncludePrivate bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportOutputPath, "output", "o", "", "output file path, - for stdout (default: kestrel-keyring-YYYY-MM-DD.<format>)")
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "", "export format: toml, yaml or json (default from config)")
	exportCmd.Flags().BoolVar(&exportIncludePrivate, "include-private", false, "include password-locked private keys")
}

// resetExportCommandState resets the export command's global state for testing.
func resetExportCommandState() {
	exportOutputPath = ""
	exportFormat = ""
	exportIncludePrivate = false
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the keyring to a file",
	Long: `Writes the keyring as TOML, YAML or JSON.

Private keys are left out unless --include-private is given. Even then they
stay locked with their passwords.

Examples:
  kestrel keys export
  kestrel keys export -f yaml -o contacts.yaml
  kestrel keys export --include-private -o backup.toml
  kestrel keys export -f json -o -`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting export command")
		Logger.Debugf("Flags: output=%q, format=%q, include-private=%t", exportOutputPath, exportFormat, exportIncludePrivate)

		opts := workflows.ExportOptions{
			OutputPath:     exportOutputPath,
			Format:         exportFormat,
			IncludePrivate: exportIncludePrivate,
		}

		if !cmd.Flags().Changed("include-private") {
			userConfig, err := configs.LoadUserConfig()
			if err != nil {
				return Logger.ErrorfAndReturn("Failed to load user config: %w", err)
			}
			opts.IncludePrivate = userConfig.Export.IncludePrivate
		}

		if exportOutputPath == "-" {
			opts.OutputPath = ""
			opts.Out = os.Stdout
			result, err := workflows.Export(commandContext(cmd), opts)
			if err != nil {
				return reportError(nil, err)
			}
			if result.PrivateKeysIncluded > 0 {
				Logger.WarnfUser("Wrote %d locked private keys to stdout", result.PrivateKeysIncluded)
			}
			return nil
		}

		spinner, cleanup := startSpinner("Exporting keyring...", verbose)
		defer cleanup()

		result, err := workflows.Export(commandContext(cmd), opts)
		if err != nil {
			return reportError(spinner, err)
		}

		finalMessage := ui.Success.Sprint(ui.Check) + " Exported keyring to " + ui.Path.Sprint(result.OutputPath) + "\n" +
			fmt.Sprintf("    %d contacts, %d identities (%s)", result.ContactCount, result.IdentityCount, result.Format)
		if result.PrivateKeysIncluded > 0 {
			finalMessage += "\n" + ui.Warning.Sprint("⚠") + fmt.Sprintf(" Includes %d locked private keys. Keep this file safe", result.PrivateKeysIncluded)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}

var importDryRun bool

func init() {
	importCmd.Flags().BoolVar(&importDryRun, "dry-run", false, "show what would be imported without making changes")
}

// resetImportCommandState resets the import command's global state for testing.
func resetImportCommandState() {
	importDryRun = false
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import contacts saved from the web app",
	Long: `Merges a JSON contacts file saved from the Kestrel web app into your keyring.

Contacts whose names already exist are skipped. If any other entry is invalid
nothing is imported. The keyring is backed up before it is changed.

Examples:
  kestrel keys import contacts.json --dry-run
  kestrel keys import contacts.json`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting import command")
		spinner, cleanup := startSpinner("Importing contacts...", verbose)
		defer cleanup()

		result, err := workflows.Import(commandContext(cmd), workflows.ImportOptions{
			Path:   args[0],
			DryRun: importDryRun,
		})
		if err != nil {
			return reportError(spinner, err)
		}

		verb := "Imported"
		if result.DryRun {
			verb = "Would import"
		}
		finalMessage := ui.Success.Sprint(ui.Check) + fmt.Sprintf(" %s %d contacts", verb, len(result.Imported))
		for _, name := range result.Imported {
			finalMessage += "\n    + " + ui.Highlight.Sprint(name)
		}
		if len(result.Skipped) > 0 {
			finalMessage += "\n" + ui.Warning.Sprint("⚠") + fmt.Sprintf(" Skipped %d contacts that already exist:", len(result.Skipped)) +
				strings.TrimSuffix(utils.FormatNames(result.Skipped), "\n")
		}
		if result.BackupPath != "" {
			finalMessage += "\n" + ui.Info.Sprint(ui.Arrow) + " Previous keyring saved to " + ui.Path.Sprint(result.BackupPath)
		}
		spinner.FinalMSG = finalMessage
		return nil
	},
}
