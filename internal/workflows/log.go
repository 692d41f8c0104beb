package workflows

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kestrel-crypto/kestrel/internal/audit"
	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
)

// LogOptions configures the log workflow.
type LogOptions struct {
	// Limit is the maximum number of entries to return. 0 means no limit.
	Limit int

	// Reverse orders entries from most recent to oldest when true.
	Reverse bool

	// Contact filters entries by contact name, matching old or new names.
	Contact string

	// Operations filters entries by operation types (comma-separated).
	Operations string

	// Since filters entries after this date (YYYY-MM-DD format).
	Since string

	// Until filters entries before this date (YYYY-MM-DD format).
	Until string
}

// LogResult contains the outcome of a log operation.
type LogResult struct {
	// Entries are the filtered audit log entries.
	Entries []audit.Entry

	// TotalEntriesBeforeFilter is the count of entries before filtering.
	TotalEntriesBeforeFilter int
}

// Log reads and filters the audit log. A missing log yields no entries.
//
// Returns ErrInvalidDateFormat if the date format is invalid.
func Log(ctx context.Context, opts LogOptions) (*LogResult, error) {
	var since, until time.Time
	if opts.Since != "" {
		t, err := time.Parse("2006-01-02", opts.Since)
		if err != nil {
			return nil, fmt.Errorf("%w: --since date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		since = t
	}
	if opts.Until != "" {
		t, err := time.Parse("2006-01-02", opts.Until)
		if err != nil {
			return nil, fmt.Errorf("%w: --until date format invalid, use YYYY-MM-DD", kerrors.ErrInvalidDateFormat)
		}
		// Include the entire day.
		until = t.Add(24*time.Hour - time.Nanosecond)
	}

	data, err := os.ReadFile(audit.LogPath())
	if os.IsNotExist(err) {
		return &LogResult{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading audit log: %w", err)
	}

	entries, err := audit.ParseEntries(data)
	if err != nil {
		return nil, fmt.Errorf("parsing audit log: %w", err)
	}

	result := &LogResult{
		TotalEntriesBeforeFilter: len(entries),
	}

	filtered := entries

	if opts.Contact != "" {
		filtered = filterByContact(filtered, opts.Contact)
	}

	if opts.Operations != "" {
		ops := strings.Split(opts.Operations, ",")
		for i := range ops {
			ops[i] = strings.TrimSpace(ops[i])
		}
		filtered = filterByOperations(filtered, ops)
	}

	if !since.IsZero() {
		filtered = filterSince(filtered, since)
	}
	if !until.IsZero() {
		filtered = filterUntil(filtered, until)
	}

	if opts.Reverse {
		for i, j := 0, len(filtered)-1; i < j; i, j = i+1, j-1 {
			filtered[i], filtered[j] = filtered[j], filtered[i]
		}
	}

	if opts.Limit > 0 && len(filtered) > opts.Limit {
		if opts.Reverse {
			// When reversed, limit takes first N (most recent).
			filtered = filtered[:opts.Limit]
		} else {
			// When not reversed, limit takes last N (most recent).
			filtered = filtered[len(filtered)-opts.Limit:]
		}
	}

	result.Entries = filtered
	return result, nil
}

// filterByContact filters entries by contact name (case-insensitive).
func filterByContact(entries []audit.Entry, name string) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		if strings.EqualFold(e.Contact, name) || strings.EqualFold(e.NewName, name) {
			result = append(result, e)
		}
	}
	return result
}

// filterByOperations filters entries by operation types.
func filterByOperations(entries []audit.Entry, ops []string) []audit.Entry {
	opSet := make(map[string]bool)
	for _, op := range ops {
		opSet[strings.ToLower(op)] = true
	}

	var result []audit.Entry
	for _, e := range entries {
		if opSet[strings.ToLower(e.Operation)] {
			result = append(result, e)
		}
	}
	return result
}

func parseTimestamp(ts string) (time.Time, error) {
	t, err := time.Parse(audit.TimestampFormat, ts)
	if err != nil {
		t, err = time.Parse(time.RFC3339, ts)
	}
	return t, err
}

// filterSince filters entries to only include those at or after the given time.
func filterSince(entries []audit.Entry, since time.Time) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, err := parseTimestamp(e.Timestamp)
		if err != nil {
			continue
		}
		if !t.Before(since) {
			result = append(result, e)
		}
	}
	return result
}

// filterUntil filters entries to only include those at or before the given time.
func filterUntil(entries []audit.Entry, until time.Time) []audit.Entry {
	var result []audit.Entry
	for _, e := range entries {
		t, err := parseTimestamp(e.Timestamp)
		if err != nil {
			continue
		}
		if !t.After(until) {
			result = append(result, e)
		}
	}
	return result
}

// FormatDateTime formats a timestamp string to YYYY-MM-DD HH:MM:SS format.
func FormatDateTime(ts string) string {
	t, err := parseTimestamp(ts)
	if err != nil {
		if len(ts) >= 19 {
			return ts[:19]
		}
		return ts
	}
	return t.Format("2006-01-02 15:04:05")
}

// FormatDetails formats the details for a log entry.
func FormatDetails(e audit.Entry) string {
	switch e.Operation {
	case "generate", "add", "delete", "change-password":
		return e.Contact
	case "edit":
		if e.NewName != "" {
			return fmt.Sprintf("%s -> %s", e.Contact, e.NewName)
		}
		return e.Contact
	case "export":
		target := e.OutputPath
		if target == "" {
			target = "stdout"
		}
		if e.IncludePrivate {
			return fmt.Sprintf("%s (%s, with private keys)", target, e.Format)
		}
		return fmt.Sprintf("%s (%s)", target, e.Format)
	case "import":
		return fmt.Sprintf("%s, %d added, %d skipped", e.SourcePath, e.ImportedCount, e.SkippedCount)
	default:
		return ""
	}
}
