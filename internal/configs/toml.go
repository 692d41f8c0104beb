package configs

import (
	"bytes"

	"github.com/kestrel-crypto/kestrel/internal/utils"

	"github.com/BurntSushi/toml"
)

// SaveTOML encodes data as TOML and atomically replaces filePath with it.
// The file is readable by the owner only.
func SaveTOML(filePath string, data interface{}) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(data); err != nil {
		return err
	}

	return utils.WriteFileAtomic(filePath, buf.Bytes(), 0600)
}

// LoadTOML loads a TOML file into a struct.
func LoadTOML(filePath string, data interface{}) error {
	_, err := toml.DecodeFile(filePath, data)
	return err
}
