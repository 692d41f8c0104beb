package keyring

import (
	"encoding/base64"
	"fmt"

	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
)

const (
	// PrivateKeySize is the size of a raw private key.
	PrivateKeySize = 32

	// PublicKeySize is the size of a raw public key.
	PublicKeySize = 32

	// SaltSize is the size of the scrypt salt stored in an envelope.
	SaltSize = 32

	// PrivateKeyEnvelopeSize is the decoded size of a locked private key.
	PrivateKeyEnvelopeSize = versionSize + SaltSize + PrivateKeySize + tagSize

	// PublicKeyEnvelopeSize is the decoded size of an encoded public key.
	PublicKeyEnvelopeSize = PublicKeySize + checksumSize

	versionSize  = 4
	tagSize      = 16
	nonceSize    = 12
	checksumSize = 4

	scryptN      = 32768
	scryptR      = 8
	scryptP      = 1
	scryptKeyLen = 32
)

// privateKeyVersion is both the envelope header and the AEAD associated data.
var privateKeyVersion = [versionSize]byte{0x65, 0x67, 0x6b, 0x30}

// Primitives is the set of cryptographic functions the codec is built on.
type Primitives interface {
	Scrypt(password, salt []byte, n, r, p, keyLen int) ([]byte, error)
	SHA256(data []byte) [32]byte
	ChaPolyEncrypt(key, nonce, plaintext, aad []byte) ([]byte, error)
	ChaPolyDecrypt(key, nonce, ciphertext, aad []byte) ([]byte, error)
}

// Codec locks, unlocks and encodes keys. It holds no state besides its
// primitives and is safe for concurrent use.
type Codec struct {
	p Primitives
}

// NewCodec returns a Codec using p.
func NewCodec(p Primitives) *Codec {
	return &Codec{p: p}
}

// LockPrivateKey seals privateKey under password and returns the base64
// envelope. salt must be freshly generated for every call.
func (c *Codec) LockPrivateKey(privateKey [PrivateKeySize]byte, password []byte, salt [SaltSize]byte) (string, error) {
	key, err := c.deriveKey(password, salt[:])
	if err != nil {
		return "", err
	}
	defer zero(key)

	// All-zero nonce; the key is unique per salt.
	var nonce [nonceSize]byte
	ciphertext, err := c.p.ChaPolyEncrypt(key, nonce[:], privateKey[:], privateKeyVersion[:])
	if err != nil {
		return "", fmt.Errorf("sealing private key: %w", err)
	}

	envelope := make([]byte, 0, PrivateKeyEnvelopeSize)
	envelope = append(envelope, privateKeyVersion[:]...)
	envelope = append(envelope, salt[:]...)
	envelope = append(envelope, ciphertext...)

	return base64.StdEncoding.EncodeToString(envelope), nil
}

// UnlockPrivateKey opens a base64 envelope produced by LockPrivateKey.
//
// Returns ErrPrivateKeyLength if the envelope is not base64 or not 84 bytes.
// Returns ErrPrivateKeyFormat if the version tag is unknown.
// Returns the ChaPolyDecrypt error of the primitives if authentication fails.
func (c *Codec) UnlockPrivateKey(envelope string, password []byte) ([PrivateKeySize]byte, error) {
	var privateKey [PrivateKeySize]byte

	raw, err := parsePrivateKeyEnvelope(envelope)
	if err != nil {
		return privateKey, err
	}

	version := raw[:versionSize]
	salt := raw[versionSize : versionSize+SaltSize]
	ciphertext := raw[versionSize+SaltSize:]

	key, err := c.deriveKey(password, salt)
	if err != nil {
		return privateKey, err
	}
	defer zero(key)

	var nonce [nonceSize]byte
	plaintext, err := c.p.ChaPolyDecrypt(key, nonce[:], ciphertext, version)
	if err != nil {
		return privateKey, err
	}
	defer zero(plaintext)

	if len(plaintext) != PrivateKeySize {
		return privateKey, fmt.Errorf("%w: unlocked key is %d bytes", kerrors.ErrPrivateKeyLength, len(plaintext))
	}
	copy(privateKey[:], plaintext)

	return privateKey, nil
}

// CheckPrivateKeyEnvelope validates the structure of envelope (encoding,
// length and version) without a password.
func CheckPrivateKeyEnvelope(envelope string) error {
	_, err := parsePrivateKeyEnvelope(envelope)
	return err
}

// EncodePublicKey appends the SHA-256 checksum to publicKey and returns the
// base64 encoding.
func (c *Codec) EncodePublicKey(publicKey [PublicKeySize]byte) string {
	sum := c.p.SHA256(publicKey[:])

	encoded := make([]byte, 0, PublicKeyEnvelopeSize)
	encoded = append(encoded, publicKey[:]...)
	encoded = append(encoded, sum[:checksumSize]...)

	return base64.StdEncoding.EncodeToString(encoded)
}

// DecodePublicKey reverses EncodePublicKey.
//
// Returns ErrPublicKeyLength if encoded is not base64 or not 36 bytes.
// Returns ErrPublicKeyChecksum if the checksum does not match.
func (c *Codec) DecodePublicKey(encoded string) ([PublicKeySize]byte, error) {
	var publicKey [PublicKeySize]byte

	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return publicKey, fmt.Errorf("%w: base64 decode for public key failed: %v", kerrors.ErrPublicKeyLength, err)
	}
	if len(raw) != PublicKeyEnvelopeSize {
		return publicKey, fmt.Errorf("%w: got %d bytes, want %d", kerrors.ErrPublicKeyLength, len(raw), PublicKeyEnvelopeSize)
	}

	key := raw[:PublicKeySize]
	checksum := raw[PublicKeySize:]
	sum := c.p.SHA256(key)
	if !compare(checksum, sum[:checksumSize]) {
		return publicKey, kerrors.ErrPublicKeyChecksum
	}

	copy(publicKey[:], key)
	return publicKey, nil
}

func parsePrivateKeyEnvelope(envelope string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(envelope)
	if err != nil {
		return nil, fmt.Errorf("%w: base64 decode for private key failed: %v", kerrors.ErrPrivateKeyLength, err)
	}
	if len(raw) != PrivateKeyEnvelopeSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", kerrors.ErrPrivateKeyLength, len(raw), PrivateKeyEnvelopeSize)
	}
	if !compare(raw[:versionSize], privateKeyVersion[:]) {
		return nil, kerrors.ErrPrivateKeyFormat
	}
	return raw, nil
}

func (c *Codec) deriveKey(password, salt []byte) ([]byte, error) {
	key, err := c.p.Scrypt(password, salt, scryptN, scryptR, scryptP, scryptKeyLen)
	if err != nil {
		return nil, fmt.Errorf("deriving key: %w", err)
	}
	return key, nil
}

func zero(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
