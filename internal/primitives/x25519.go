package primitives

import (
	"crypto/rand"
	"fmt"

	"golang.org/x/crypto/curve25519"
)

// KeyPair is an X25519 key agreement key pair.
type KeyPair struct {
	PrivateKey [32]byte
	PublicKey  [32]byte
}

// GenerateX25519 creates a new X25519 key pair from crypto/rand.
func GenerateX25519() (KeyPair, error) {
	var kp KeyPair
	if _, err := rand.Read(kp.PrivateKey[:]); err != nil {
		return kp, fmt.Errorf("generating X25519 private key: %w", err)
	}

	pub, err := PublicFromPrivate(kp.PrivateKey)
	if err != nil {
		return kp, err
	}
	kp.PublicKey = pub

	return kp, nil
}

// PublicFromPrivate derives the X25519 public key for priv.
func PublicFromPrivate(priv [32]byte) ([32]byte, error) {
	var pub [32]byte
	out, err := curve25519.X25519(priv[:], curve25519.Basepoint)
	if err != nil {
		return pub, fmt.Errorf("deriving X25519 public key: %w", err)
	}
	copy(pub[:], out)
	return pub, nil
}
