package primitives

import (
	"crypto/cipher"
	"crypto/rand"
	"fmt"

	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"

	"github.com/minio/sha256-simd"
	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/scrypt"
)

const (
	// KeySize is the ChaCha20-Poly1305 key size.
	KeySize = chacha20poly1305.KeySize

	// NonceSize is the IETF ChaCha20-Poly1305 nonce size.
	NonceSize = chacha20poly1305.NonceSize

	// TagSize is the Poly1305 authentication tag size.
	TagSize = chacha20poly1305.Overhead

	// SaltSize is the size of salts produced by NewSalt.
	SaltSize = 32
)

// Crypto implements the primitive set on top of golang.org/x/crypto and
// github.com/minio/sha256-simd. The zero value is ready to use.
type Crypto struct{}

// Default is the primitive set used outside of tests.
var Default = Crypto{}

// Scrypt derives keyLen bytes from password and salt (RFC 7914).
func (Crypto) Scrypt(password, salt []byte, n, r, p, keyLen int) ([]byte, error) {
	key, err := scrypt.Key(password, salt, n, r, p, keyLen)
	if err != nil {
		return nil, fmt.Errorf("deriving scrypt key: %w", err)
	}
	return key, nil
}

// SHA256 returns the SHA-256 digest of data.
func (Crypto) SHA256(data []byte) [32]byte {
	return sha256.Sum256(data)
}

// ChaPolyEncrypt seals plaintext with ChaCha20-Poly1305 (RFC 8439). The
// result is len(plaintext)+TagSize bytes.
func (Crypto) ChaPolyEncrypt(key, nonce, plaintext, aad []byte) ([]byte, error) {
	aead, err := newAEAD(key, nonce)
	if err != nil {
		return nil, err
	}
	return aead.Seal(nil, nonce, plaintext, aad), nil
}

// ChaPolyDecrypt opens ciphertext sealed by ChaPolyEncrypt. An
// authentication failure returns ErrChaPolyDecrypt.
func (Crypto) ChaPolyDecrypt(key, nonce, ciphertext, aad []byte) ([]byte, error) {
	aead, err := newAEAD(key, nonce)
	if err != nil {
		return nil, err
	}
	plaintext, err := aead.Open(nil, nonce, ciphertext, aad)
	if err != nil {
		return nil, kerrors.ErrChaPolyDecrypt
	}
	return plaintext, nil
}

func newAEAD(key, nonce []byte) (cipher.AEAD, error) {
	if len(key) != KeySize {
		return nil, fmt.Errorf("%w: key is %d bytes, want %d", kerrors.ErrInvalidKeyLength, len(key), KeySize)
	}
	if len(nonce) != NonceSize {
		return nil, fmt.Errorf("%w: nonce is %d bytes, want %d", kerrors.ErrInvalidKeyLength, len(nonce), NonceSize)
	}
	return chacha20poly1305.New(key)
}

// NewSalt returns a fresh random salt for locking a private key.
func NewSalt() ([SaltSize]byte, error) {
	var salt [SaltSize]byte
	if _, err := rand.Read(salt[:]); err != nil {
		return salt, fmt.Errorf("generating salt: %w", err)
	}
	return salt, nil
}

// Zero overwrites b with zeros.
func Zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
