// Package contacts manages the user's keyring of contacts.
//
// A contact pairs a unique name with an encoded public key. Contacts that
// also hold an encoded private key envelope are the user's own identities.
// The keyring keeps contacts sorted by name and validates key material as it
// is added; it never sees passwords or raw private keys.
//
// Persistence lives in internal/configs; this package is purely in-memory.
package contacts
