package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/kestrel-crypto/kestrel/internal/audit"
	"github.com/kestrel-crypto/kestrel/internal/configs"
	"github.com/kestrel-crypto/kestrel/internal/ui"

	"github.com/spf13/cobra"
)

var configShowJSON bool

func init() {
	configShowCmd.Flags().BoolVar(&configShowJSON, "json", false, "output in JSON format")
}

// resetConfigShowState resets the config show command's global state for testing.
func resetConfigShowState() {
	configShowJSON = false
}

type configShowOutput struct {
	KeyringPath string              `json:"keyring_path"`
	AuditLog    string              `json:"audit_log_path"`
	ConfigPath  string              `json:"config_path"`
	Config      *configs.UserConfig `json:"config"`
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Display current configuration",
	Long: `Displays the files Kestrel uses and your user settings.

The keyring lives in $XDG_DATA_HOME/kestrel unless KESTREL_DATA_DIR is set.
Settings live in your config directory unless KESTREL_CONFIG_DIR is set.

Examples:
  kestrel config show
  kestrel config show --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ConfigLogger.Infof("Starting config show command")

		settings := configs.UserKestrelSettings
		ConfigLogger.Debugf("Loading user config from %s", settings.ConfigPath())
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return ConfigLogger.ErrorfAndReturn("Failed to load user config: %w", err)
		}

		output := configShowOutput{
			KeyringPath: settings.KeyringPath(),
			AuditLog:    audit.LogPath(),
			ConfigPath:  settings.ConfigPath(),
			Config:      userConfig,
		}

		if configShowJSON {
			data, err := json.MarshalIndent(output, "", "  ")
			if err != nil {
				return ConfigLogger.ErrorfAndReturn("Failed to marshal config to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		defaultIdentity := userConfig.User.DefaultIdentity
		if defaultIdentity == "" {
			defaultIdentity = ui.Muted.Sprint("none")
		} else {
			defaultIdentity = ui.Highlight.Sprint(defaultIdentity)
		}

		fmt.Println(ui.Info.Sprint("Files:"))
		fmt.Printf("  %-18s %s\n", "Keyring:", ui.Path.Sprint(output.KeyringPath))
		fmt.Printf("  %-18s %s\n", "Audit log:", ui.Path.Sprint(output.AuditLog))
		fmt.Printf("  %-18s %s\n", "Config:", ui.Path.Sprint(output.ConfigPath))
		fmt.Println()
		fmt.Println(ui.Info.Sprint("Settings:"))
		fmt.Printf("  %-18s %s\n", "Default identity:", defaultIdentity)
		fmt.Printf("  %-18s %s\n", "Export format:", userConfig.Export.Format)
		fmt.Printf("  %-18s %t\n", "Export private:", userConfig.Export.IncludePrivate)
		return nil
	},
}
