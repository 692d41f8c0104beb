package workflows

import (
	"bytes"
	"context"
	"fmt"

	"github.com/kestrel-crypto/kestrel/internal/configs"
	"github.com/kestrel-crypto/kestrel/internal/contacts"
	kerrors "github.com/kestrel-crypto/kestrel/internal/errors"
	"github.com/kestrel-crypto/kestrel/internal/keyring"
	"github.com/kestrel-crypto/kestrel/internal/primitives"
)

// cryptoPrimitives backs every codec the workflows build.
var cryptoPrimitives keyring.Primitives = primitives.Default

func newCodec() *keyring.Codec {
	return keyring.NewCodec(cryptoPrimitives)
}

// openKeyring loads the keyring file into an in-memory keyring.
func openKeyring(codec *keyring.Codec) (*contacts.Keyring, error) {
	kf, err := configs.LoadKeyring()
	if err != nil {
		return nil, err
	}
	return contacts.New(codec, kf.Contacts), nil
}

func saveKeyring(k *contacts.Keyring) error {
	return configs.SaveKeyring(&configs.KeyringFile{Contacts: k.List()})
}

// resolveIdentity picks the identity a command acts on. An explicit name
// wins, then the configured default, then the only identity in the keyring.
func resolveIdentity(k *contacts.Keyring, name string) (contacts.Contact, error) {
	if name == "" {
		userConfig, err := configs.LoadUserConfig()
		if err != nil {
			return contacts.Contact{}, err
		}
		name = userConfig.User.DefaultIdentity
	}

	if name == "" {
		identities := k.Identities()
		switch len(identities) {
		case 0:
			return contacts.Contact{}, kerrors.ErrNoIdentities
		case 1:
			return identities[0], nil
		default:
			return contacts.Contact{}, kerrors.ErrIdentityRequired
		}
	}

	c, err := k.Get(name)
	if err != nil {
		return contacts.Contact{}, err
	}
	if !c.IsIdentity() {
		return contacts.Contact{}, fmt.Errorf("%w: %s", kerrors.ErrNotAnIdentity, c.Name)
	}
	return c, nil
}

// unlockIdentity opens c's private key with password and checks that it
// produces c's public key. The caller must zero the returned key.
func unlockIdentity(ctx context.Context, codec *keyring.Codec, c contacts.Contact, password []byte) ([keyring.PrivateKeySize]byte, error) {
	pw := bytes.Clone(password)
	privateKey, err := runWithContext(ctx, func() ([keyring.PrivateKeySize]byte, error) {
		defer primitives.Zero(pw)
		return codec.UnlockPrivateKey(c.PrivateKey, pw)
	}, func(abandoned [keyring.PrivateKeySize]byte) {
		primitives.Zero(abandoned[:])
	})
	if err != nil {
		return privateKey, fmt.Errorf("unlocking %s: %w", c.Name, err)
	}

	publicKey, err := primitives.PublicFromPrivate(privateKey)
	if err != nil {
		primitives.Zero(privateKey[:])
		return [keyring.PrivateKeySize]byte{}, err
	}
	if codec.EncodePublicKey(publicKey) != c.PublicKey {
		primitives.Zero(privateKey[:])
		return [keyring.PrivateKeySize]byte{}, fmt.Errorf("%w: %s", kerrors.ErrKeyPairMismatch, c.Name)
	}

	return privateKey, nil
}

// lockPrivateKey seals the key behind privateKey under password with a fresh
// salt. The goroutine doing the work owns its own copies of the key and
// password and zeroes them when it finishes, even if ctx ended first.
func lockPrivateKey(ctx context.Context, codec *keyring.Codec, privateKey *[keyring.PrivateKeySize]byte, password []byte) (string, error) {
	salt, err := primitives.NewSalt()
	if err != nil {
		return "", err
	}

	key := *privateKey
	pw := bytes.Clone(password)
	return runWithContext(ctx, func() (string, error) {
		defer primitives.Zero(key[:])
		defer primitives.Zero(pw)
		return codec.LockPrivateKey(key, pw, salt)
	}, nil)
}

// runWithContext runs fn in a goroutine and returns early with ctx.Err() if
// the context ends first. fn keeps running to completion in that case; its
// result is handed to discard, when non-nil, instead of being returned.
func runWithContext[T any](ctx context.Context, fn func() (T, error), discard func(T)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}

	type outcome struct {
		value T
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := fn()
		done <- outcome{v, err}
	}()

	select {
	case <-ctx.Done():
		if discard != nil {
			go func() {
				o := <-done
				discard(o.value)
			}()
		}
		return zero, ctx.Err()
	case o := <-done:
		return o.value, o.err
	}
}

func checkPassword(password []byte) error {
	if len(password) == 0 {
		return kerrors.ErrEmptyPassword
	}
	return nil
}

func setDefaultIdentity(name string) error {
	userConfig, err := configs.LoadUserConfig()
	if err != nil {
		return err
	}
	userConfig.User.DefaultIdentity = name
	return configs.SaveUserConfig(userConfig)
}
