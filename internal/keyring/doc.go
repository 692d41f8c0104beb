// Package keyring implements the Kestrel key envelope formats.
//
// # Private Key Envelope
//
// A private key is stored locked under a password as 84 bytes, base64
// encoded for storage and display:
//
//	offset 0..4    version tag  0x65 0x67 0x6b 0x30 ("egk0")
//	offset 4..36   scrypt salt  (32 random bytes, fresh per lock)
//	offset 36..84  ciphertext   (32-byte key + 16-byte Poly1305 tag)
//
// The key encryption key is scrypt(password, salt, N=32768, r=8, p=1, 32).
// The key is sealed with ChaCha20-Poly1305 under an all-zero 12-byte nonce
// with the version tag as additional authenticated data.
//
// The fixed nonce is only sound because every lock uses a fresh salt, so no
// two seals ever share a key. Callers must never reuse a salt. The nonce and
// AAD are not configurable through this package for that reason.
//
// # Public Key Encoding
//
// A public key is encoded as the 32-byte X25519 key followed by the first
// four bytes of its SHA-256 hash, base64 encoded (36 bytes raw). The
// checksum detects corruption only; it is not a security boundary.
//
// # Errors
//
// Unlock and decode failures are reported with the sentinels in
// internal/errors: ErrPrivateKeyLength, ErrPrivateKeyFormat,
// ErrPublicKeyLength, ErrPublicKeyChecksum. Authentication failures are
// whatever the Primitives implementation returns from ChaPolyDecrypt,
// unchanged (ErrChaPolyDecrypt for the default primitives).
package keyring
