// Package workflows provides high-level orchestration for Kestrel commands.
//
// Workflows coordinate the keyring codec, the contact keyring, on-disk
// configuration and the audit log to implement complete user-facing
// features. Each workflow handles a single command's business logic,
// independent of CLI concerns like flag parsing, spinners, and output
// formatting.
//
// The cmd/ package should be a thin layer that:
//   - Parses command-line flags and arguments
//   - Reads passwords from the terminal or stdin
//   - Calls the appropriate workflow function
//   - Formats the result for display
//
// # Available Workflows
//
//   - Generate: Creates a new identity with a password-locked private key
//   - AddContact, EditContact, DeleteContact, ListContacts: Manage contacts
//   - Extract: Unlocks an identity and returns its checked public key
//   - ChangePassword: Relocks an identity under a new password
//   - Unlock: Checks that a password opens an identity
//   - Export, Import: Move the keyring in and out of files
//   - Log: Reads the audit log
//
// # Error Handling
//
// Workflows return typed errors from the internal/errors package, allowing
// the CLI layer to provide appropriate user-facing messages without string
// matching:
//
//	result, err := workflows.Unlock(ctx, opts)
//	if errors.Is(err, kerrors.ErrChaPolyDecrypt) {
//	    // Most likely a wrong password.
//	}
//
// # Context Usage
//
// All workflow functions accept a context.Context as their first parameter.
// Key derivation is slow by design of the envelope format, so workflows that
// take a password run it in a goroutine and return ctx.Err() as soon as the
// context ends. The derivation itself cannot be interrupted and finishes in
// the background.
package workflows
