package workflows

import (
	"context"
	"fmt"

	"github.com/kestrel-crypto/kestrel/internal/audit"
	"github.com/kestrel-crypto/kestrel/internal/configs"
	"github.com/kestrel-crypto/kestrel/internal/contacts"
	"github.com/kestrel-crypto/kestrel/internal/primitives"
	"github.com/kestrel-crypto/kestrel/internal/utils"
)

// GenerateOptions configures the generate workflow.
type GenerateOptions struct {
	// Name is the contact name for the new identity.
	// If empty, a name is derived from the system username.
	Name string

	// Password locks the new private key. Must not be empty.
	Password []byte

	// SetDefault makes the new identity the default even if one is set.
	SetDefault bool
}

// GenerateResult contains the outcome of a generate operation.
type GenerateResult struct {
	// Contact is the stored identity.
	Contact contacts.Contact

	// IsDefault indicates the identity is now the default identity.
	IsDefault bool
}

// Generate creates an X25519 key pair, locks the private key under the
// password with a fresh salt, and stores both keys as a new identity.
// The first identity in a keyring becomes the default.
//
// Returns ErrEmptyPassword if no password was given.
// Returns ErrContactExists if the name is already taken.
// Returns ErrInvalidKeyringFile if the keyring file is malformed.
func Generate(ctx context.Context, opts GenerateOptions) (*GenerateResult, error) {
	if err := checkPassword(opts.Password); err != nil {
		return nil, err
	}

	codec := newCodec()
	k, err := openKeyring(codec)
	if err != nil {
		return nil, err
	}

	name := opts.Name
	if name == "" {
		name = utils.GenerateIdentityName(k.Names())
	}

	kp, err := primitives.GenerateX25519()
	if err != nil {
		return nil, fmt.Errorf("generating key pair: %w", err)
	}
	defer primitives.Zero(kp.PrivateKey[:])

	envelope, err := lockPrivateKey(ctx, codec, &kp.PrivateKey, opts.Password)
	if err != nil {
		return nil, fmt.Errorf("locking private key: %w", err)
	}

	c, err := k.Add(contacts.Contact{
		Name:       name,
		PublicKey:  codec.EncodePublicKey(kp.PublicKey),
		PrivateKey: envelope,
	})
	if err != nil {
		return nil, err
	}

	if err := saveKeyring(k); err != nil {
		return nil, err
	}

	result := &GenerateResult{Contact: c}

	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return nil, err
	}
	if opts.SetDefault || userConfig.User.DefaultIdentity == "" {
		userConfig.User.DefaultIdentity = c.Name
		if err := configs.SaveUserConfig(userConfig); err != nil {
			return nil, err
		}
		result.IsDefault = true
	}

	auditEntry := audit.LogWithUser("generate")
	auditEntry.Contact = c.Name
	auditEntry.ContactID = c.ID
	audit.Log(auditEntry)

	return result, nil
}
