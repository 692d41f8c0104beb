// Package primitives supplies the cryptographic building blocks used by the
// keyring codec: scrypt, SHA-256, ChaCha20-Poly1305 (IETF, 12-byte nonce),
// X25519 and secure random bytes.
//
// The codec never calls this package directly. It receives a value
// satisfying keyring.Primitives, which keeps it free of global state and
// lets tests substitute their own implementation. Default is the value
// production code passes in.
package primitives
