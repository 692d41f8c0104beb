package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"private key length", ErrPrivateKeyLength, "PrivateKeyLength"},
		{"private key format", ErrPrivateKeyFormat, "PrivateKeyFormat"},
		{"chapoly", ErrChaPolyDecrypt, "ChaPolyDecryptError"},
		{"public key length", ErrPublicKeyLength, "PublicKeyLength"},
		{"public key checksum", ErrPublicKeyChecksum, "PublicKeyChecksum"},
		{"wrapped", fmt.Errorf("unlocking alice: %w", ErrChaPolyDecrypt), "ChaPolyDecryptError"},
		{"keyring error", ErrContactNotFound, ""},
		{"foreign error", errors.New("boom"), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Kind(tt.err); got != tt.want {
				t.Errorf("Kind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
