package configs

import (
	"fmt"
	"os"
)

type UserConfig struct {
	User   User   `toml:"user" json:"user"`
	Export Export `toml:"export" json:"export"`
}

type User struct {
	// DefaultIdentity names the identity used when a command needs one and
	// none was given.
	DefaultIdentity string `toml:"default_identity" json:"default_identity"`
}

type Export struct {
	Format         string `toml:"format" json:"format"`
	IncludePrivate bool   `toml:"include_private" json:"include_private"`
}

// DefaultExportFormat is used when the user config names no export format.
const DefaultExportFormat = "toml"

// LoadUserConfig loads the user configuration from the config file.
// A missing file yields the defaults.
func LoadUserConfig() (*UserConfig, error) {
	configPath := UserKestrelSettings.ConfigPath()

	config := &UserConfig{
		Export: Export{Format: DefaultExportFormat},
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return config, nil
	}

	if err := LoadTOML(configPath, config); err != nil {
		return nil, fmt.Errorf("failed to load user config: %w", err)
	}

	if config.Export.Format == "" {
		config.Export.Format = DefaultExportFormat
	}

	return config, nil
}

// SaveUserConfig saves the user configuration to the config file.
func SaveUserConfig(config *UserConfig) error {
	if err := SaveTOML(UserKestrelSettings.ConfigPath(), config); err != nil {
		return fmt.Errorf("failed to save user config: %w", err)
	}

	return nil
}
