package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/kestrel-crypto/kestrel/internal/contacts"
	"github.com/kestrel-crypto/kestrel/internal/ui"
	"github.com/kestrel-crypto/kestrel/internal/workflows"

	"github.com/spf13/cobra"
)

var (
	listIdentities bool
	listJSON       bool
)

func init() {
	listCmd.Flags().BoolVar(&listIdentities, "identities", false, "only show identities")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "output in JSON format")
}

// resetListCommandState resets the list command's global state for testing.
func resetListCommandState() {
	listIdentities = false
	listJSON = false
}

type listEntry struct {
	Name      string `json:"name"`
	ID        string `json:"id"`
	PublicKey string `json:"public_key"`
	Identity  bool   `json:"identity"`
	Default   bool   `json:"default"`
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List identities and contacts",
	Long: `Lists the contacts in your keyring, sorted by name.

Identities are marked, and the default identity is starred. Private keys are
never shown.

Examples:
  kestrel keys list
  kestrel keys list --identities
  kestrel keys list --json`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		Logger.Infof("Starting list command")

		result, err := workflows.ListContacts(commandContext(cmd), workflows.ListOptions{
			IdentitiesOnly: listIdentities,
		})
		if err != nil {
			return reportError(nil, err)
		}
		Logger.Debugf("Found %d contacts", len(result.Contacts))

		entries := make([]listEntry, len(result.Contacts))
		for i, c := range result.Contacts {
			entries[i] = toListEntry(c, result.DefaultIdentity)
		}

		if listJSON {
			data, err := json.MarshalIndent(entries, "", "  ")
			if err != nil {
				return fmt.Errorf("failed to marshal contacts to JSON: %w", err)
			}
			fmt.Println(string(data))
			return nil
		}

		if len(entries) == 0 {
			fmt.Println(ui.Info.Sprint("ℹ") + " Your keyring is empty\n" +
				ui.Info.Sprint(ui.Arrow) + " Run " + ui.Code.Sprint("kestrel keys generate") + " to create an identity")
			return nil
		}

		outputListTable(entries)
		return nil
	},
}

func toListEntry(c contacts.Contact, defaultIdentity string) listEntry {
	return listEntry{
		Name:      c.Name,
		ID:        c.ID,
		PublicKey: c.PublicKey,
		Identity:  c.IsIdentity(),
		Default:   c.IsIdentity() && strings.EqualFold(c.Name, defaultIdentity),
	}
}

func outputListTable(entries []listEntry) {
	nameWidth := len("NAME")
	for _, e := range entries {
		if len(e.Name) > nameWidth {
			nameWidth = len(e.Name)
		}
	}

	fmt.Printf("  %-*s  %-8s  %s\n", nameWidth, "NAME", "TYPE", "PUBLIC KEY")
	for _, e := range entries {
		marker := " "
		kind := "contact"
		if e.Identity {
			kind = "identity"
		}
		if e.Default {
			marker = "*"
		}
		fmt.Printf("%s %-*s  %-8s  %s\n", marker, nameWidth, e.Name, kind, e.PublicKey)
	}
}
