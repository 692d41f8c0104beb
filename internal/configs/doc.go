// Package configs locates and persists Kestrel's on-disk state.
//
// UserKestrelSettings holds the resolved data and config directories. The
// keyring lives in keyring.toml under the data directory and user
// preferences in config.toml under the config directory. Both are TOML and
// are written atomically with owner-only permissions.
//
// The data directory defaults to $XDG_DATA_HOME/kestrel and can be moved
// with KESTREL_DATA_DIR. The config directory defaults to the OS user config
// directory and can be moved with KESTREL_CONFIG_DIR.
package configs
