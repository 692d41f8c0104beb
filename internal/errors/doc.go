// Package errors provides typed error values for Kestrel.
//
// Sentinel errors let callers handle specific conditions with errors.Is()
// rather than string matching. The envelope and public key errors also carry
// a stable kind string (see Kind) that older tooling pattern-matches on.
//
// # Error Categories
//
//   - Envelope errors: malformed or foreign private key envelopes
//     (ErrPrivateKeyLength, ErrPrivateKeyFormat)
//   - Crypto errors: authentication failures (ErrChaPolyDecrypt)
//   - Public key errors: malformed or corrupted public keys
//     (ErrPublicKeyLength, ErrPublicKeyChecksum)
//   - Keyring errors: contact bookkeeping (ErrContactNotFound, ErrContactExists)
//
// # Usage
//
// Handle errors in the CLI layer:
//
//	_, err := workflows.Extract(ctx, opts)
//	if errors.Is(err, kerrors.ErrChaPolyDecrypt) {
//	    // Most likely a wrong password
//	}
//
// Wrap errors with additional context:
//
//	return fmt.Errorf("unlocking key for %s: %w", name, err)
package errors
