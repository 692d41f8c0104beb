package workflows

import (
	"context"
	"fmt"

	"github.com/kestrel-crypto/kestrel/internal/audit"
	"github.com/kestrel-crypto/kestrel/internal/contacts"
	"github.com/kestrel-crypto/kestrel/internal/primitives"
)

// UnlockOptions configures the unlock workflow.
type UnlockOptions struct {
	// Name selects the identity. If empty, the default identity is used.
	Name string

	Password []byte
}

// UnlockResult contains the outcome of an unlock operation.
type UnlockResult struct {
	Contact contacts.Contact
}

// Unlock checks that the password opens the identity's private key and that
// the key matches the stored public key. No key material is returned.
//
// Returns ErrEmptyPassword if the password is empty.
// Returns ErrIdentityRequired or ErrNoIdentities if no identity can be chosen.
// Returns ErrNotAnIdentity if the named contact has no private key.
// Returns ErrChaPolyDecrypt if the password is wrong.
// Returns ErrKeyPairMismatch if the key does not match the public key.
func Unlock(ctx context.Context, opts UnlockOptions) (*UnlockResult, error) {
	if err := checkPassword(opts.Password); err != nil {
		return nil, err
	}

	codec := newCodec()
	k, err := openKeyring(codec)
	if err != nil {
		return nil, err
	}

	c, err := resolveIdentity(k, opts.Name)
	if err != nil {
		return nil, err
	}

	privateKey, err := unlockIdentity(ctx, codec, c, opts.Password)
	if err != nil {
		return nil, err
	}
	primitives.Zero(privateKey[:])

	return &UnlockResult{Contact: c}, nil
}

// ExtractOptions configures the extract workflow.
type ExtractOptions struct {
	// Name selects the identity. If empty, the default identity is used.
	Name string

	Password []byte
}

// ExtractResult contains the outcome of an extract operation.
type ExtractResult struct {
	Contact contacts.Contact

	// PublicKey is the encoded public key derived from the unlocked private key.
	PublicKey string
}

// Extract unlocks an identity, derives its public key from the private key,
// checks it against the stored one and returns it encoded for sharing.
//
// Errors are the same as for Unlock.
func Extract(ctx context.Context, opts ExtractOptions) (*ExtractResult, error) {
	if err := checkPassword(opts.Password); err != nil {
		return nil, err
	}

	codec := newCodec()
	k, err := openKeyring(codec)
	if err != nil {
		return nil, err
	}

	c, err := resolveIdentity(k, opts.Name)
	if err != nil {
		return nil, err
	}

	privateKey, err := unlockIdentity(ctx, codec, c, opts.Password)
	if err != nil {
		return nil, err
	}
	defer primitives.Zero(privateKey[:])

	publicKey, err := primitives.PublicFromPrivate(privateKey)
	if err != nil {
		return nil, err
	}

	return &ExtractResult{
		Contact:   c,
		PublicKey: codec.EncodePublicKey(publicKey),
	}, nil
}

// ChangePasswordOptions configures the change-password workflow.
type ChangePasswordOptions struct {
	// Name selects the identity. If empty, the default identity is used.
	Name string

	OldPassword []byte
	NewPassword []byte
}

// ChangePasswordResult contains the outcome of a change-password operation.
type ChangePasswordResult struct {
	Contact contacts.Contact
}

// ChangePassword unlocks an identity with the old password and relocks the
// same private key under the new password with a fresh salt. The old
// envelope is replaced in a single keyring save.
//
// Returns ErrEmptyPassword if either password is empty.
// Otherwise errors are the same as for Unlock.
func ChangePassword(ctx context.Context, opts ChangePasswordOptions) (*ChangePasswordResult, error) {
	if err := checkPassword(opts.OldPassword); err != nil {
		return nil, err
	}
	if err := checkPassword(opts.NewPassword); err != nil {
		return nil, err
	}

	codec := newCodec()
	k, err := openKeyring(codec)
	if err != nil {
		return nil, err
	}

	c, err := resolveIdentity(k, opts.Name)
	if err != nil {
		return nil, err
	}

	privateKey, err := unlockIdentity(ctx, codec, c, opts.OldPassword)
	if err != nil {
		return nil, err
	}
	defer primitives.Zero(privateKey[:])

	envelope, err := lockPrivateKey(ctx, codec, &privateKey, opts.NewPassword)
	if err != nil {
		return nil, fmt.Errorf("locking private key: %w", err)
	}

	relocked := c
	relocked.PrivateKey = envelope
	updated, err := k.Update(c.Name, relocked)
	if err != nil {
		return nil, err
	}

	if err := saveKeyring(k); err != nil {
		return nil, err
	}

	auditEntry := audit.LogWithUser("change-password")
	auditEntry.Contact = updated.Name
	auditEntry.ContactID = updated.ID
	audit.Log(auditEntry)

	return &ChangePasswordResult{Contact: updated}, nil
}
