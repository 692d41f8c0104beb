package audit

import (
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/kestrel-crypto/kestrel/internal/configs"
)

// TimestampFormat is the layout of Entry.Timestamp.
const TimestampFormat = "2006-01-02T15:04:05.000000Z"

// Entry represents a single audit log entry.
type Entry struct {
	Timestamp string `json:"ts"`             // RFC3339 with microseconds.
	User      string `json:"user,omitempty"` // OS user performing action.
	Operation string `json:"op"`             // Operation name.

	// Optional fields depending on operation.
	Contact        string `json:"contact,omitempty"`         // Contact the operation applied to.
	ContactID      string `json:"contact_id,omitempty"`      // Stable ID of that contact.
	NewName        string `json:"new_name,omitempty"`        // For edit when renamed.
	Format         string `json:"format,omitempty"`          // For export.
	OutputPath     string `json:"output_path,omitempty"`     // For export.
	IncludePrivate bool   `json:"include_private,omitempty"` // For export.
	SourcePath     string `json:"source_path,omitempty"`     // For import.
	ImportedCount  int    `json:"imported_count,omitempty"`  // For import.
	SkippedCount   int    `json:"skipped_count,omitempty"`   // For import.
}

// Log appends an entry to the audit log.
// If logging fails, it does not return an error.
// Operations should not fail just because audit logging failed.
func Log(entry Entry) {
	if entry.Timestamp == "" {
		entry.Timestamp = time.Now().UTC().Format(TimestampFormat)
	}

	logPath := LogPath()
	if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
		return
	}

	f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return
	}
	defer f.Close()

	data, err := json.Marshal(entry)
	if err != nil {
		return
	}

	_, _ = f.Write(append(data, '\n'))
}

// LogWithUser returns an entry for op with the user field filled in.
func LogWithUser(op string) Entry {
	return Entry{
		Operation: op,
		User:      configs.UserKestrelSettings.Username,
	}
}

// LogPath returns the path to the audit log file.
func LogPath() string {
	return configs.UserKestrelSettings.AuditLogPath()
}

// ReadEntries reads all entries from the audit log.
// Returns an empty slice if the log doesn't exist.
func ReadEntries() ([]Entry, error) {
	data, err := os.ReadFile(LogPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return ParseEntries(data)
}

// ParseEntries parses JSON Lines data into audit entries.
// Malformed lines are silently skipped.
func ParseEntries(data []byte) ([]Entry, error) {
	if len(data) == 0 {
		return nil, nil
	}

	var entries []Entry
	start := 0

	for i := 0; i <= len(data); i++ {
		if i == len(data) || data[i] == '\n' {
			line := data[start:i]
			start = i + 1

			if len(line) == 0 {
				continue
			}

			var entry Entry
			if err := json.Unmarshal(line, &entry); err != nil {
				continue
			}
			entries = append(entries, entry)
		}
	}

	return entries, nil
}
