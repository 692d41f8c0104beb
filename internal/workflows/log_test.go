package workflows

import (
	"context"
	"errors"
	"testing"

	"github.com/kestrel-crypto/kestrel/internal/audit"
	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
)

func seedAuditLog(t *testing.T) {
	t.Helper()
	for _, e := range []audit.Entry{
		{Timestamp: "2024-01-10T09:00:00.000000Z", Operation: "generate", Contact: "me"},
		{Timestamp: "2024-01-11T09:00:00.000000Z", Operation: "add", Contact: "bob"},
		{Timestamp: "2024-01-12T09:00:00.000000Z", Operation: "edit", Contact: "bob", NewName: "robert"},
		{Timestamp: "2024-01-13T09:00:00.000000Z", Operation: "export", Format: "yaml"},
		{Timestamp: "2024-01-14T09:00:00.000000Z", Operation: "delete", Contact: "robert"},
	} {
		audit.Log(e)
	}
}

func TestLogMissingFile(t *testing.T) {
	setupTest(t)

	result, err := Log(context.Background(), LogOptions{})
	if err != nil {
		t.Fatalf("Log failed: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(result.Entries))
	}
}

func TestLogFilters(t *testing.T) {
	setupTest(t)
	seedAuditLog(t)

	tests := []struct {
		name    string
		opts    LogOptions
		wantOps []string
	}{
		{"all", LogOptions{}, []string{"generate", "add", "edit", "export", "delete"}},
		{"by contact old or new name", LogOptions{Contact: "ROBERT"}, []string{"edit", "delete"}},
		{"by operations", LogOptions{Operations: "add, delete"}, []string{"add", "delete"}},
		{"since", LogOptions{Since: "2024-01-13"}, []string{"export", "delete"}},
		{"until is inclusive", LogOptions{Until: "2024-01-11"}, []string{"generate", "add"}},
		{"limit keeps most recent", LogOptions{Limit: 2}, []string{"export", "delete"}},
		{"reverse with limit", LogOptions{Reverse: true, Limit: 2}, []string{"delete", "export"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Log(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("Log failed: %v", err)
			}
			if result.TotalEntriesBeforeFilter != 5 {
				t.Errorf("expected 5 entries before filter, got %d", result.TotalEntriesBeforeFilter)
			}
			if len(result.Entries) != len(tt.wantOps) {
				t.Fatalf("expected %d entries, got %d", len(tt.wantOps), len(result.Entries))
			}
			for i, op := range tt.wantOps {
				if result.Entries[i].Operation != op {
					t.Errorf("entry %d: expected %q, got %q", i, op, result.Entries[i].Operation)
				}
			}
		})
	}
}

func TestLogInvalidDate(t *testing.T) {
	setupTest(t)

	for _, opts := range []LogOptions{{Since: "01/02/2024"}, {Until: "yesterday"}} {
		_, err := Log(context.Background(), opts)
		if !errors.Is(err, kerrors.ErrInvalidDateFormat) {
			t.Errorf("expected ErrInvalidDateFormat for %+v, got %v", opts, err)
		}
	}
}

func TestFormatDetails(t *testing.T) {
	tests := []struct {
		entry audit.Entry
		want  string
	}{
		{audit.Entry{Operation: "add", Contact: "bob"}, "bob"},
		{audit.Entry{Operation: "edit", Contact: "bob", NewName: "robert"}, "bob -> robert"},
		{audit.Entry{Operation: "export", Format: "json"}, "stdout (json)"},
		{audit.Entry{Operation: "export", Format: "toml", OutputPath: "k.toml", IncludePrivate: true}, "k.toml (toml, with private keys)"},
		{audit.Entry{Operation: "import", SourcePath: "c.json", ImportedCount: 2, SkippedCount: 1}, "c.json, 2 added, 1 skipped"},
		{audit.Entry{Operation: "unknown"}, ""},
	}

	for _, tt := range tests {
		if got := FormatDetails(tt.entry); got != tt.want {
			t.Errorf("FormatDetails(%+v) = %q, want %q", tt.entry, got, tt.want)
		}
	}
}

func TestFormatDateTime(t *testing.T) {
	if got := FormatDateTime("2024-01-10T09:08:07.000000Z"); got != "2024-01-10 09:08:07" {
		t.Errorf("FormatDateTime = %q", got)
	}
	if got := FormatDateTime("garbage"); got != "garbage" {
		t.Errorf("FormatDateTime(garbage) = %q", got)
	}
}
