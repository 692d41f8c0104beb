// Package audit records changes to the keyring.
//
// Every operation that modifies or exports the keyring appends one JSON
// object per line to audit.jsonl, which lives next to keyring.toml. Entries
// never contain key material.
//
//	entry := audit.LogWithUser("add")
//	entry.Contact = c.Name
//	entry.ContactID = c.ID
//	audit.Log(entry)
//
// Logging is best-effort: a failed write is dropped and the operation that
// produced it still succeeds. ReadEntries skips malformed lines so a partial
// write does not hide the rest of the log.
package audit
