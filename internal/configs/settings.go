package configs

import (
	"log"
	"os"
	"path/filepath"

	"github.com/kestrel-crypto/kestrel/internal/utils"
)

const (
	keyringFileName = "keyring.toml"
	auditFileName   = "audit.jsonl"
	configFileName  = "config.toml"
)

type UserSettings struct {
	UserDataPath    string
	UserConfigsPath string
	Username        string
}

var UserKestrelSettings *UserSettings

func init() {
	dataPath, err := defaultDataPath()
	if err != nil {
		log.Fatalf("error getting data directory: %s", err)
	}

	configsPath, err := defaultConfigsPath()
	if err != nil {
		log.Fatalf("error getting config directory: %s", err)
	}

	username, err := utils.GetUsername()
	if err != nil {
		username = ""
	}

	UserKestrelSettings = &UserSettings{
		UserDataPath:    dataPath,
		UserConfigsPath: configsPath,
		Username:        username,
	}
}

func defaultDataPath() (string, error) {
	if dir := os.Getenv("KESTREL_DATA_DIR"); dir != "" {
		return dir, nil
	}

	dataDir := os.Getenv("XDG_DATA_HOME")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataDir = filepath.Join(homeDir, ".local", "share")
	}

	return filepath.Join(dataDir, "kestrel"), nil
}

func defaultConfigsPath() (string, error) {
	if dir := os.Getenv("KESTREL_CONFIG_DIR"); dir != "" {
		return dir, nil
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(configDir, "kestrel"), nil
}

// KeyringPath returns the path of the keyring file.
func (s *UserSettings) KeyringPath() string {
	return filepath.Join(s.UserDataPath, keyringFileName)
}

// AuditLogPath returns the path of the audit log, which sits next to the keyring.
func (s *UserSettings) AuditLogPath() string {
	return filepath.Join(s.UserDataPath, auditFileName)
}

// ConfigPath returns the path of the user config file.
func (s *UserSettings) ConfigPath() string {
	return filepath.Join(s.UserConfigsPath, configFileName)
}
