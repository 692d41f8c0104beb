package cmd

import (
	logger "github.com/kestrel-crypto/kestrel/internal/logging"

	"github.com/spf13/cobra"
)

var (
	configVerbose bool
	configDebug   bool
	ConfigLogger  logger.Logger

	// ConfigCmd is the top-level config command.
	ConfigCmd = &cobra.Command{
		Use:   "config",
		Short: "Manage Kestrel configuration",
		Long: `Provides commands for viewing and changing your Kestrel settings.

Examples:
  # Show where Kestrel keeps its files and your settings
  kestrel config show

  # Choose the identity used when none is named
  kestrel config set-default-identity work

  # Change the default export format
  kestrel config set-export-format yaml`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			ConfigLogger = logger.Logger{
				Verbose: configVerbose,
				Debug:   configDebug,
			}
			ConfigLogger.Debugf("Initializing config command with verbose=%t, debug=%t", configVerbose, configDebug)
		},
	}
)

func init() {
	ConfigCmd.PersistentFlags().BoolVarP(&configVerbose, "verbose", "v", false, "enable verbose output")
	ConfigCmd.PersistentFlags().BoolVarP(&configDebug, "debug", "d", false, "enable debug output")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(setDefaultIdentityCmd)
	ConfigCmd.AddCommand(setExportFormatCmd)
}

// GetConfigCmd returns the ConfigCmd for testing.
func GetConfigCmd() *cobra.Command {
	return ConfigCmd
}

// ResetConfigState resets all config command global variables to their default values for testing.
func ResetConfigState() {
	configVerbose = false
	configDebug = false
	resetConfigShowState()
	resetCobraFlagState(ConfigCmd)
}
