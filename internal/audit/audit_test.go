package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/kestrel-crypto/kestrel/internal/configs"
)

func useTempDataDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "kestrel")
	old := *configs.UserKestrelSettings
	configs.UserKestrelSettings.UserDataPath = dir
	configs.UserKestrelSettings.Username = "tester"
	t.Cleanup(func() {
		*configs.UserKestrelSettings = old
	})
	return dir
}

func TestLog_CreatesFile(t *testing.T) {
	dir := useTempDataDir(t)

	Log(Entry{Operation: "add", Contact: "alice"})

	logPath := filepath.Join(dir, "audit.jsonl")
	info, err := os.Stat(logPath)
	if err != nil {
		t.Fatalf("Audit log file was not created: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected permissions 0600, got %o", perm)
	}
}

func TestLog_AppendsEntries(t *testing.T) {
	useTempDataDir(t)

	Log(Entry{Operation: "generate", Contact: "me"})
	Log(Entry{Operation: "add", Contact: "bob"})
	Log(Entry{Operation: "delete", Contact: "bob"})

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}

	wantOps := []string{"generate", "add", "delete"}
	for i, op := range wantOps {
		if entries[i].Operation != op {
			t.Errorf("entry %d: expected op %q, got %q", i, op, entries[i].Operation)
		}
	}
}

func TestLog_SetsTimestamp(t *testing.T) {
	useTempDataDir(t)

	before := time.Now().UTC().Add(-time.Second)
	Log(Entry{Operation: "add"})

	entries, err := ReadEntries()
	if err != nil || len(entries) != 1 {
		t.Fatalf("ReadEntries = %v, %v", entries, err)
	}

	ts, err := time.Parse(TimestampFormat, entries[0].Timestamp)
	if err != nil {
		t.Fatalf("Timestamp %q does not parse: %v", entries[0].Timestamp, err)
	}
	if ts.Before(before) {
		t.Errorf("timestamp %v is before %v", ts, before)
	}
}

func TestLog_KeepsExplicitTimestamp(t *testing.T) {
	useTempDataDir(t)

	Log(Entry{Timestamp: "2024-01-01T00:00:00.000000Z", Operation: "add"})

	entries, _ := ReadEntries()
	if len(entries) != 1 || entries[0].Timestamp != "2024-01-01T00:00:00.000000Z" {
		t.Errorf("unexpected entries: %+v", entries)
	}
}

func TestLogWithUser(t *testing.T) {
	useTempDataDir(t)

	entry := LogWithUser("export")
	if entry.Operation != "export" {
		t.Errorf("expected op export, got %q", entry.Operation)
	}
	if entry.User != "tester" {
		t.Errorf("expected user tester, got %q", entry.User)
	}
}

func TestEntry_OmitsEmptyFields(t *testing.T) {
	data, err := json.Marshal(Entry{Timestamp: "t", Operation: "delete", Contact: "bob"})
	if err != nil {
		t.Fatal(err)
	}

	s := string(data)
	for _, field := range []string{"output_path", "format", "imported_count", "include_private", "user"} {
		if strings.Contains(s, field) {
			t.Errorf("expected %q to be omitted, got %s", field, s)
		}
	}
	if !strings.Contains(s, `"contact":"bob"`) {
		t.Errorf("expected contact field, got %s", s)
	}
}

func TestReadEntries_MissingLog(t *testing.T) {
	useTempDataDir(t)

	entries, err := ReadEntries()
	if err != nil {
		t.Fatalf("ReadEntries failed: %v", err)
	}
	if entries != nil {
		t.Errorf("expected nil entries, got %v", entries)
	}
}

func TestParseEntries_SkipsMalformedLines(t *testing.T) {
	data := []byte(`{"ts":"a","op":"add","contact":"alice"}
not json
{"ts":"b","op":"edit","contact":"alice","new_name":"Alice"}

{"ts":"c","op":"delete"`)

	entries, err := ParseEntries(data)
	if err != nil {
		t.Fatalf("ParseEntries failed: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].NewName != "Alice" {
		t.Errorf("expected new_name Alice, got %q", entries[1].NewName)
	}
}

func TestParseEntries_Empty(t *testing.T) {
	entries, err := ParseEntries(nil)
	if err != nil || entries != nil {
		t.Errorf("ParseEntries(nil) = %v, %v", entries, err)
	}
}
