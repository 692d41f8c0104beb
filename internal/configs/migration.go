package configs

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
)

// LegacyContact is a contact as stored by the Kestrel web app, which keeps
// its keyring as a JSON array in browser local storage.
type LegacyContact struct {
	Name       string `json:"name"`
	PublicKey  string `json:"publicKey"`
	PrivateKey string `json:"privateKey,omitempty"`
}

// LoadLegacyContacts reads a JSON contacts export from the web app.
func LoadLegacyContacts(path string) ([]LegacyContact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var legacy []LegacyContact
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidImportFile, path, err)
	}

	for i, c := range legacy {
		if c.Name == "" || c.PublicKey == "" {
			return nil, fmt.Errorf("%w: %s: entry %d is missing a name or public key", kerrors.ErrInvalidImportFile, path, i)
		}
	}

	return legacy, nil
}

// BackupKeyring copies the current keyring file next to itself with a
// timestamp suffix and returns the backup path. It returns "" and no error
// when there is no keyring file yet.
func BackupKeyring() (string, error) {
	return backupFile(UserKestrelSettings.KeyringPath(), time.Now())
}

func backupFile(path string, now time.Time) (string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return "", nil
	}

	backupPath := path + ".bak-" + now.Format("20060102-150405")
	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}

	return backupPath, nil
}

// copyFile copies a single file.
func copyFile(src, dst string) error {
	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode())
}
