package cmd

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/kestrel-crypto/kestrel/internal/configs"
)

func TestConfigShowJSON(t *testing.T) {
	setupTestEnvironment(t)

	out, err := runCLIStdout(t, "", "config", "show", "--json")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}

	var shown configShowOutput
	if err := json.Unmarshal([]byte(out), &shown); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if shown.KeyringPath != configs.UserKestrelSettings.KeyringPath() {
		t.Errorf("keyring path = %q", shown.KeyringPath)
	}
	if shown.Config == nil || shown.Config.Export.Format != configs.DefaultExportFormat {
		t.Errorf("unexpected config: %+v", shown.Config)
	}
}

func TestConfigShowText(t *testing.T) {
	setupTestEnvironment(t)

	out, err := runCLI(t, "", "config", "show")
	if err != nil {
		t.Fatalf("config show failed: %v", err)
	}
	for _, want := range []string{"Keyring:", "Default identity:", "(none)", "Export format:"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %s", want, out)
		}
	}
}

func TestSetExportFormat(t *testing.T) {
	setupTestEnvironment(t)

	out, err := runCLI(t, "", "config", "set-export-format", "xml")
	if !errors.Is(err, ErrSilent) {
		t.Fatalf("expected ErrSilent, got %v: %s", err, out)
	}

	if out, err := runCLI(t, "", "config", "set-export-format", "YAML"); err != nil {
		t.Fatalf("set-export-format failed: %v\n%s", err, out)
	}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		t.Fatal(err)
	}
	if userConfig.Export.Format != "yaml" {
		t.Errorf("expected yaml, got %q", userConfig.Export.Format)
	}

	out, err = runCLI(t, "", "config", "set-export-format", "yaml")
	if err != nil || !strings.Contains(out, "already") {
		t.Errorf("expected already-set warning, got %v: %s", err, out)
	}
}

func TestSetDefaultIdentity(t *testing.T) {
	setupTestEnvironment(t)

	for _, name := range []string{"a", "b"} {
		if _, err := runCLI(t, "pw\n", "keys", "generate", name, "--password-stdin"); err != nil {
			t.Fatalf("generate %s failed: %v", name, err)
		}
	}

	if out, err := runCLI(t, "", "config", "set-default-identity", "b"); err != nil {
		t.Fatalf("set-default-identity failed: %v\n%s", err, out)
	}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		t.Fatal(err)
	}
	if userConfig.User.DefaultIdentity != "b" {
		t.Errorf("default identity = %q, want b", userConfig.User.DefaultIdentity)
	}

	out, err := runCLI(t, "", "config", "set-default-identity", "nobody")
	if !errors.Is(err, ErrSilent) || !strings.Contains(out, "Contact not found") {
		t.Errorf("expected not-found error, got %v: %s", err, out)
	}
}
