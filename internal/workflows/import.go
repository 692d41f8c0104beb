package workflows

import (
	"context"
	"errors"

	"github.com/kestrel-crypto/kestrel/internal/audit"
	"github.com/kestrel-crypto/kestrel/internal/configs"
	"github.com/kestrel-crypto/kestrel/internal/contacts"
	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
)

// ImportOptions configures the import workflow.
type ImportOptions struct {
	// Path is a JSON contacts file saved from the Kestrel web app.
	Path string

	// DryRun previews the import without making changes.
	DryRun bool
}

// ImportResult contains the outcome of an import operation.
type ImportResult struct {
	// Imported lists the names of contacts added to the keyring.
	Imported []string

	// Skipped lists names that already existed in the keyring.
	Skipped []string

	// BackupPath is the copy of the keyring taken before the import.
	BackupPath string

	DryRun bool
}

// Import merges contacts from a web app export into the keyring. Contacts
// whose names already exist are skipped. Every other entry must be valid or
// nothing is imported. The keyring is backed up before it is rewritten.
//
// Returns ErrInvalidImportFile if the file is not a JSON contacts array.
// Returns the codec errors for entries with malformed keys.
func Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	legacy, err := configs.LoadLegacyContacts(opts.Path)
	if err != nil {
		return nil, err
	}

	k, err := openKeyring(newCodec())
	if err != nil {
		return nil, err
	}

	result := &ImportResult{DryRun: opts.DryRun}
	for _, lc := range legacy {
		c, err := k.Add(contacts.Contact{
			Name:       lc.Name,
			PublicKey:  lc.PublicKey,
			PrivateKey: lc.PrivateKey,
		})
		if errors.Is(err, kerrors.ErrContactExists) {
			result.Skipped = append(result.Skipped, lc.Name)
			continue
		}
		if err != nil {
			return nil, err
		}
		result.Imported = append(result.Imported, c.Name)
	}

	if opts.DryRun || len(result.Imported) == 0 {
		return result, nil
	}

	backupPath, err := configs.BackupKeyring()
	if err != nil {
		return nil, err
	}
	result.BackupPath = backupPath

	if err := saveKeyring(k); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser("import")
	auditEntry.SourcePath = opts.Path
	auditEntry.ImportedCount = len(result.Imported)
	auditEntry.SkippedCount = len(result.Skipped)
	audit.Log(auditEntry)

	return result, nil
}
