package configs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kestrel-crypto/kestrel/internal/contacts"
	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
)

const testPublicKey = "OtU9wlWBsYr1Q6Hoz07cK05OSD31p+DVraU+fku4Y3R62CZl"

func useTempSettings(t *testing.T) {
	t.Helper()
	old := *UserKestrelSettings
	UserKestrelSettings.UserDataPath = filepath.Join(t.TempDir(), "data")
	UserKestrelSettings.UserConfigsPath = filepath.Join(t.TempDir(), "config")
	t.Cleanup(func() {
		*UserKestrelSettings = old
	})
}

func TestSettingsPaths(t *testing.T) {
	s := &UserSettings{UserDataPath: "/data/kestrel", UserConfigsPath: "/cfg/kestrel"}

	if got := s.KeyringPath(); got != filepath.Join("/data/kestrel", "keyring.toml") {
		t.Errorf("KeyringPath() = %q", got)
	}
	if got := s.AuditLogPath(); got != filepath.Join("/data/kestrel", "audit.jsonl") {
		t.Errorf("AuditLogPath() = %q", got)
	}
	if got := s.ConfigPath(); got != filepath.Join("/cfg/kestrel", "config.toml") {
		t.Errorf("ConfigPath() = %q", got)
	}
}

func TestDefaultPathsHonourOverrides(t *testing.T) {
	t.Setenv("KESTREL_DATA_DIR", "/tmp/kestrel-data")
	t.Setenv("KESTREL_CONFIG_DIR", "/tmp/kestrel-config")

	data, err := defaultDataPath()
	if err != nil || data != "/tmp/kestrel-data" {
		t.Errorf("defaultDataPath() = %q, %v", data, err)
	}
	cfg, err := defaultConfigsPath()
	if err != nil || cfg != "/tmp/kestrel-config" {
		t.Errorf("defaultConfigsPath() = %q, %v", cfg, err)
	}
}

func TestDefaultDataPathUsesXDG(t *testing.T) {
	t.Setenv("KESTREL_DATA_DIR", "")
	t.Setenv("XDG_DATA_HOME", "/xdg/data")

	data, err := defaultDataPath()
	if err != nil {
		t.Fatalf("defaultDataPath() failed: %v", err)
	}
	if want := filepath.Join("/xdg/data", "kestrel"); data != want {
		t.Errorf("defaultDataPath() = %q, want %q", data, want)
	}
}

func TestSaveAndLoadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "test.toml")

	type sample struct {
		Name  string `toml:"name"`
		Count int    `toml:"count"`
	}

	if err := SaveTOML(path, sample{Name: "kestrel", Count: 3}); err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("saved file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected permissions 0600, got %o", perm)
	}

	var loaded sample
	if err := LoadTOML(path, &loaded); err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}
	if loaded.Name != "kestrel" || loaded.Count != 3 {
		t.Errorf("unexpected round trip result: %+v", loaded)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	var data map[string]interface{}
	if err := LoadTOML(filepath.Join(t.TempDir(), "missing.toml"), &data); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestUserConfigDefaultsAndRoundTrip(t *testing.T) {
	useTempSettings(t)

	config, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if config.Export.Format != DefaultExportFormat {
		t.Errorf("expected default format %q, got %q", DefaultExportFormat, config.Export.Format)
	}

	config.User.DefaultIdentity = "work"
	config.Export.Format = "yaml"
	if err := SaveUserConfig(config); err != nil {
		t.Fatalf("SaveUserConfig failed: %v", err)
	}

	loaded, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig failed: %v", err)
	}
	if loaded.User.DefaultIdentity != "work" || loaded.Export.Format != "yaml" {
		t.Errorf("unexpected config: %+v", loaded)
	}
}

func TestKeyringRoundTrip(t *testing.T) {
	useTempSettings(t)

	kf, err := LoadKeyring()
	if err != nil {
		t.Fatalf("LoadKeyring on missing file failed: %v", err)
	}
	if len(kf.Contacts) != 0 {
		t.Fatalf("expected empty keyring, got %d contacts", len(kf.Contacts))
	}

	created := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	kf.Contacts = []contacts.Contact{
		{
			ID:        "6f1c1f7e-58f4-4c1a-9f43-0d4c3f0b9a11",
			Name:      "alice",
			PublicKey: testPublicKey,
			CreatedAt: created,
			UpdatedAt: created,
		},
	}
	if err := SaveKeyring(kf); err != nil {
		t.Fatalf("SaveKeyring failed: %v", err)
	}

	loaded, err := LoadKeyring()
	if err != nil {
		t.Fatalf("LoadKeyring failed: %v", err)
	}
	if loaded.Version != KeyringFileVersion {
		t.Errorf("expected version %d, got %d", KeyringFileVersion, loaded.Version)
	}
	if len(loaded.Contacts) != 1 {
		t.Fatalf("expected 1 contact, got %d", len(loaded.Contacts))
	}
	got := loaded.Contacts[0]
	if got.Name != "alice" || got.PublicKey != testPublicKey || got.PrivateKey != "" {
		t.Errorf("unexpected contact: %+v", got)
	}
	if !got.CreatedAt.Equal(created) {
		t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, created)
	}
}

func TestLoadKeyringFileInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed toml", "this is [not toml"},
		{"newer version", "version = 99\n"},
		{"wrong type", "version = \"one\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "keyring.toml")
			if err := os.WriteFile(path, []byte(tt.content), 0600); err != nil {
				t.Fatal(err)
			}

			_, err := LoadKeyringFile(path)
			if !errors.Is(err, kerrors.ErrInvalidKeyringFile) {
				t.Errorf("expected ErrInvalidKeyringFile, got %v", err)
			}
		})
	}
}

func TestSaveKeyringReplacesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keyring.toml")

	first := &KeyringFile{Contacts: []contacts.Contact{{Name: "a", PublicKey: testPublicKey}}}
	if err := SaveKeyringFile(path, first); err != nil {
		t.Fatal(err)
	}
	if err := SaveKeyringFile(path, &KeyringFile{}); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadKeyringFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(loaded.Contacts) != 0 {
		t.Errorf("expected empty keyring after overwrite, got %d", len(loaded.Contacts))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only keyring.toml, found %d entries", len(entries))
	}
}
