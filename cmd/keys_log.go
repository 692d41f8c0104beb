package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/kestrel-crypto/kestrel/internal/audit"
	"github.com/kestrel-crypto/kestrel/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	logLimit     int
	logReverse   bool
	logContact   string
	logOperation string
	logSince     string
	logUntil     string
	logJSON      bool
)

func init() {
	logCmd.Flags().IntVarP(&logLimit, "number", "n", 0, "limit number of entries shown")
	logCmd.Flags().BoolVar(&logReverse, "reverse", false, "show most recent entries first")
	logCmd.Flags().StringVar(&logContact, "contact", "", "filter by contact name")
	logCmd.Flags().StringVar(&logOperation, "operation", "", "filter by operation type (comma-separated)")
	logCmd.Flags().StringVar(&logSince, "since", "", "show entries after date (YYYY-MM-DD)")
	logCmd.Flags().StringVar(&logUntil, "until", "", "show entries before date (YYYY-MM-DD)")
	logCmd.Flags().BoolVar(&logJSON, "json", false, "output as JSON array")
}

// resetLogCommandState resets the log command's global state for testing.
func resetLogCommandState() {
	logLimit = 0
	logReverse = false
	logContact = ""
	logOperation = ""
	logSince = ""
	logUntil = ""
	logJSON = false
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "View the keyring audit log",
	Long: `Displays the audit log of changes to your keyring.

Examples:
  kestrel keys log                             # View full log
  kestrel keys log -n 10                       # Last 10 entries
  kestrel keys log --reverse                   # Most recent first
  kestrel keys log --contact alice             # Filter by contact
  kestrel keys log --operation add,delete      # Filter by operation
  kestrel keys log --since 2024-01-01          # Filter by date
  kestrel keys log --json                      # JSON output`,
	Args: cobra.NoArgs,
	RunE: runLog,
}

func runLog(cmd *cobra.Command, args []string) error {
	Logger.Infof("Starting log command")

	result, err := workflows.Log(commandContext(cmd), workflows.LogOptions{
		Limit:      logLimit,
		Reverse:    logReverse,
		Contact:    logContact,
		Operations: logOperation,
		Since:      logSince,
		Until:      logUntil,
	})
	if err != nil {
		return reportError(nil, err)
	}

	Logger.Debugf("Parsed %d entries from audit log", result.TotalEntriesBeforeFilter)
	Logger.Debugf("After filtering: %d entries", len(result.Entries))

	if logJSON {
		return outputLogJSON(result.Entries)
	}

	if len(result.Entries) == 0 {
		if result.TotalEntriesBeforeFilter == 0 {
			fmt.Println("No audit log entries found.")
		} else {
			fmt.Println("No audit log entries found matching the filters.")
		}
		return nil
	}

	outputLogDefault(result.Entries)
	return nil
}

func outputLogJSON(entries []audit.Entry) error {
	if entries == nil {
		entries = []audit.Entry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal entries to JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func outputLogDefault(entries []audit.Entry) {
	for _, e := range entries {
		datetime := workflows.FormatDateTime(e.Timestamp)
		details := workflows.FormatDetails(e)
		fmt.Printf("%-19s  %-12s  %-15s  %s\n", datetime, e.User, e.Operation, details)
	}
}
