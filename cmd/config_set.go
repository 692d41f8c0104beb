package cmd

import (
	"strings"

	"github.com/kestrel-crypto/kestrel/internal/configs"
	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
	"github.com/kestrel-crypto/kestrel/internal/ui"
	"github.com/kestrel-crypto/kestrel/internal/workflows"

	"github.com/spf13/cobra"
)

var setDefaultIdentityCmd = &cobra.Command{
	Use:   "set-default-identity <name>",
	Short: "Set the identity used when none is named",
	Long: `Sets the default identity in your user configuration.

Commands such as extract, unlock and change-password act on the default
identity when no name is given.

Examples:
  kestrel config set-default-identity work`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting set-default-identity command")
		spinner, cleanup := startSpinnerWithFlags("Setting default identity...", configVerbose, configDebug)
		defer cleanup()

		result, err := workflows.SetDefault(commandContext(cmd), workflows.SetDefaultOptions{Name: args[0]})
		if err != nil {
			return reportError(spinner, err)
		}
		ConfigLogger.Infof("Default identity set to %s", result.Contact.Name)

		spinner.FinalMSG = ui.Success.Sprint(ui.Check) + " Default identity set to " + ui.Highlight.Sprint(result.Contact.Name)
		return nil
	},
}

var setExportFormatCmd = &cobra.Command{
	Use:   "set-export-format <toml|yaml|json>",
	Short: "Set the default export format",
	Long: `Sets the format kestrel keys export uses when --format is not given.

Examples:
  kestrel config set-export-format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting set-export-format command")
		spinner, cleanup := startSpinnerWithFlags("Setting export format...", configVerbose, configDebug)
		defer cleanup()

		format := strings.ToLower(args[0])
		switch format {
		case workflows.FormatTOML, workflows.FormatYAML, workflows.FormatJSON:
		default:
			return reportError(spinner, kerrors.ErrUnsupportedFormat)
		}

		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %w", err)
		}

		if userConfig.Export.Format == format {
			spinner.FinalMSG = ui.Warning.Sprint("⚠") + " Export format is already " + ui.Highlight.Sprint(format)
			return nil
		}

		userConfig.Export.Format = format
		if err := configs.SaveUserConfig(userConfig); err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to save user config: %w", err)
		}
		ConfigLogger.Infof("User config saved successfully")

		spinner.FinalMSG = ui.Success.Sprint(ui.Check) + " Export format set to " + ui.Highlight.Sprint(format)
		return nil
	},
}
