package configs

import (
	"fmt"
	"os"

	"github.com/kestrel-crypto/kestrel/internal/contacts"
	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
)

// KeyringFileVersion is the layout version written to keyring.toml.
const KeyringFileVersion = 1

// KeyringFile is the on-disk form of the keyring.
type KeyringFile struct {
	Version  int                `toml:"version"`
	Contacts []contacts.Contact `toml:"contact"`
}

// LoadKeyring reads the keyring file from the user data directory.
func LoadKeyring() (*KeyringFile, error) {
	return LoadKeyringFile(UserKestrelSettings.KeyringPath())
}

// SaveKeyring writes kf to the user data directory.
func SaveKeyring(kf *KeyringFile) error {
	return SaveKeyringFile(UserKestrelSettings.KeyringPath(), kf)
}

// LoadKeyringFile reads a keyring file. A missing file is an empty keyring.
// Returns ErrInvalidKeyringFile if the file is not valid TOML or was written
// by a newer version.
func LoadKeyringFile(path string) (*KeyringFile, error) {
	kf := &KeyringFile{Version: KeyringFileVersion}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return kf, nil
	}

	if err := LoadTOML(path, kf); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", kerrors.ErrInvalidKeyringFile, path, err)
	}

	if kf.Version < 1 || kf.Version > KeyringFileVersion {
		return nil, fmt.Errorf("%w: %s: unsupported version %d", kerrors.ErrInvalidKeyringFile, path, kf.Version)
	}

	return kf, nil
}

// SaveKeyringFile atomically replaces the keyring file at path.
func SaveKeyringFile(path string, kf *KeyringFile) error {
	out := KeyringFile{Version: KeyringFileVersion, Contacts: kf.Contacts}
	if err := SaveTOML(path, out); err != nil {
		return fmt.Errorf("failed to save keyring: %w", err)
	}
	return nil
}
